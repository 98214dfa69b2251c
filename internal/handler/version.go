package handler

import "net/http"

// Version is set at build time via -ldflags
var Version = "dev"

// VersionResponse reports the running build
type VersionResponse struct {
	Version string `json:"version"`
}

// HandleVersion returns the build version for deployment verification
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionResponse{Version: Version})
	}
}
