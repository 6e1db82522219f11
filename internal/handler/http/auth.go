package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/utils"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// login checks credentials and issues a bearer token. The token is returned
// both in the Authorization header and in the JSON body.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	actor, err := h.services.GovernanceService.Authenticate(ctx, user.Username, user.Password)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, actor)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	log.Debug().Int64("id", actor.ID).Str("role", actor.Role.String()).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, token, http.StatusOK)
}
