package handlers

import (
	"log/slog"
	"net/http"
)

func Status(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendJSONOrLog(w, logger, map[string]string{"status": "ok"})
	}
}
