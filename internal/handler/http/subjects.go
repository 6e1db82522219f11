package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-privacy-keeper/internal/utils"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

func (h *Handler) addSubject(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.addSubject", err)
		return
	}

	var subject models.NewSubject
	if err = decodeJSON(r, &subject); err != nil {
		writeError(w, r, "*Handler.addSubject", err)
		return
	}

	id, err := h.services.GovernanceService.AddSubject(r.Context(), actor, subject)
	if err != nil {
		writeError(w, r, "*Handler.addSubject", err)
		return
	}

	utils.WriteJSON(w, models.AddSubjectResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.listSubjects", err)
		return
	}

	views, err := h.services.GovernanceService.GetView(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.listSubjects", err)
		return
	}
	if views == nil {
		views = []models.SubjectView{}
	}

	utils.WriteJSON(w, views, http.StatusOK)
}

func (h *Handler) getSubject(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.subjectCall(w, r, "*Handler.getSubject")
	if !ok {
		return
	}

	view, err := h.services.GovernanceService.GetViewOne(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, "*Handler.getSubject", err)
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) anonymizeAll(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.anonymizeAll", err)
		return
	}

	count, err := h.services.GovernanceService.AnonymizeAll(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.anonymizeAll", err)
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}

func (h *Handler) encryptSubject(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.subjectCall(w, r, "*Handler.encryptSubject")
	if !ok {
		return
	}

	if err := h.services.GovernanceService.EncryptSubject(r.Context(), actor, id); err != nil {
		writeError(w, r, "*Handler.encryptSubject", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decryptSubject(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.subjectCall(w, r, "*Handler.decryptSubject")
	if !ok {
		return
	}

	subject, err := h.services.GovernanceService.DecryptSubject(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, "*Handler.decryptSubject", err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, subject, http.StatusOK)
}

func (h *Handler) restoreSubject(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.subjectCall(w, r, "*Handler.restoreSubject")
	if !ok {
		return
	}

	if err := h.services.GovernanceService.RestoreSubject(r.Context(), actor, id); err != nil {
		writeError(w, r, "*Handler.restoreSubject", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// setRetention falls back to defaultRetentionDays when the body omits days.
func (h *Handler) setRetention(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.subjectCall(w, r, "*Handler.setRetention")
	if !ok {
		return
	}

	var req models.RetentionRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, "*Handler.setRetention", err)
		return
	}

	days := defaultRetentionDays
	if req.Days != nil {
		days = *req.Days
	}

	if err := h.services.GovernanceService.SetRetention(r.Context(), actor, id, days); err != nil {
		writeError(w, r, "*Handler.setRetention", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setConsent(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.subjectCall(w, r, "*Handler.setConsent")
	if !ok {
		return
	}

	var req models.ConsentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.setConsent", err)
		return
	}

	if err := h.services.GovernanceService.SetConsent(r.Context(), actor, id, req.Given); err != nil {
		writeError(w, r, "*Handler.setConsent", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// subjectCall reads the actor and the {id} path parameter. On failure it
// has already written the response.
func (h *Handler) subjectCall(w http.ResponseWriter, r *http.Request, funcName string) (models.Actor, int64, bool) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, funcName, err)
		return models.Actor{}, 0, false
	}

	id, err := subjectIDFromPath(r)
	if err != nil {
		writeError(w, r, funcName, err)
		return models.Actor{}, 0, false
	}

	return actor, id, true
}
