package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ihimanshusharma33/video-demo/internal/coordinator"
	"github.com/ihimanshusharma33/video-demo/internal/ws"
)

func SetupRoutes(c *coordinator.Coordinator, reg *ws.Registry, originPatterns []string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/rooms", MintRoomID(c))
	r.Get("/healthz", Healthz)
	r.Get("/stats", Stats(c))
	r.Get("/ws", ws.Handler(reg, c, originPatterns, log.Named("ws")))
	return r
}
