// Package tierhub is the Yandex Cloud Functions entry point.
package tierhub

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/lumiforge/tierhub-backend/internal/cloudfunction"
)

// EntryPoint - точка входа для Yandex Cloud Functions (HttpTrigger)
func EntryPoint(w http.ResponseWriter, r *http.Request) {
	handler, err := cloudfunction.HTTPHandler(r.Context())
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		http.Error(w, "Internal Server Error: Initialization failed", http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}

// Handler - точка входа для вызова через API Gateway
func Handler(ctx context.Context, request []byte) ([]byte, error) {
	return cloudfunction.Handler(ctx, request)
}
