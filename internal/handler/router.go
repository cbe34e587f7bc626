package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/love-arena/internal/handler/events"
	gamehandler "github.com/zhouzirui/love-arena/internal/handler/game"
	middlewarePkg "github.com/zhouzirui/love-arena/internal/middleware"
	gameservice "github.com/zhouzirui/love-arena/internal/service/game"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(engine *gameservice.Engine, hub *events.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	gameHandler := gamehandler.New(engine)

	r.Route("/api", func(api chi.Router) {
		gameHandler.RegisterRoutes(api)
		hub.RegisterRoutes(api)
	})

	return r
}
