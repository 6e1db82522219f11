package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-privacy-keeper/internal/utils"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// getAuditLog serves ?limit=N entries, most recent first. Without limit
// every entry is returned.
func (h *Handler) getAuditLog(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.getAuditLog", err)
		return
	}

	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		writeError(w, r, "*Handler.getAuditLog", err)
		return
	}

	entries, err := h.services.GovernanceService.GetAuditLog(r.Context(), actor, limit)
	if err != nil {
		writeError(w, r, "*Handler.getAuditLog", err)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}

	utils.WriteJSON(w, models.AuditLogResponse{Entries: entries, Length: len(entries)}, http.StatusOK)
}

// exportAuditLog serves the audit log as a CSV attachment.
func (h *Handler) exportAuditLog(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.exportAuditLog", err)
		return
	}

	var buf bytes.Buffer
	if err = h.services.GovernanceService.ExportAuditLog(r.Context(), actor, &buf); err != nil {
		writeError(w, r, "*Handler.exportAuditLog", err)
		return
	}

	filename := fmt.Sprintf("audit_log_%s.csv", time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// activityStats serves per-day audit counts for the last ?days=N days.
func (h *Handler) activityStats(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.activityStats", err)
		return
	}

	days, err := intQuery(r, "days", defaultActivityDays)
	if err != nil {
		writeError(w, r, "*Handler.activityStats", err)
		return
	}

	stats, err := h.services.GovernanceService.ActivityStats(r.Context(), actor, days)
	if err != nil {
		writeError(w, r, "*Handler.activityStats", err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}
