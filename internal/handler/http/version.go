package http

import (
	"net/http"
)

const (
	buildDateHeader   = "X-Build-Date"
	buildCommitHeader = "X-Build-Commit"
)

// getServerVersion writes the version as plain text. Build date and commit
// travel in response headers.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	build := h.services.AppInfoService.GetBuildInfo(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set(buildDateHeader, build.BuildDate())
	w.Header().Set(buildCommitHeader, build.BuildCommit())
	w.Write([]byte(build.BuildVersion()))
}
