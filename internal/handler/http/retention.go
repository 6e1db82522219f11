package http

import (
	"net/http"

	"github.com/MKhiriev/go-privacy-keeper/internal/utils"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

func (h *Handler) listExpired(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.listExpired", err)
		return
	}

	expired, err := h.services.GovernanceService.ListExpired(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.listExpired", err)
		return
	}
	if expired == nil {
		expired = []models.ExpiredSubject{}
	}

	utils.WriteJSON(w, models.ExpiredResponse{Expired: expired, Length: len(expired)}, http.StatusOK)
}

func (h *Handler) purgeExpired(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.purgeExpired", err)
		return
	}

	count, err := h.services.GovernanceService.PurgeExpired(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.purgeExpired", err)
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}
