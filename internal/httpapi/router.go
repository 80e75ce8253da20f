// Package httpapi is the REST surface of the template editor.
package httpapi

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/eyevinn-osaas/ograf-editor/internal/httpapi/handlers"
	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/middleware"
	"github.com/eyevinn-osaas/ograf-editor/internal/sandbox"
	"github.com/eyevinn-osaas/ograf-editor/internal/storage"
)

type Deps struct {
	Pool      *pgxpool.Pool
	RDB       *redis.Client
	SP        storage.Provider
	Host      *sandbox.Host
	QueueName string
	Log       *logger.Logger
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Timeout(30 * time.Second))

	allowedOrigins := envCSV("CORS_ALLOWED_ORIGINS", []string{
		"http://localhost:8081",
		"http://localhost:5173",
	})
	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAgeSeconds:    600,
	}))

	h := handlers.New(handlers.Deps{
		Pool:      d.Pool,
		RDB:       d.RDB,
		SP:        d.SP,
		Host:      d.Host,
		QueueName: d.QueueName,
		Log:       log,
	})

	r.Get("/health", h.Health)

	r.Route("/templates", func(r chi.Router) {
		r.Post("/", h.PostTemplate)
		r.Get("/", h.ListTemplates)
		r.Post("/import", h.ImportTemplate)

		r.Route("/{templateId}", func(r chi.Router) {
			r.Get("/", h.GetTemplate)
			r.Delete("/", h.DeleteTemplate)
			r.Get("/export", h.ExportTemplate)
			r.Get("/artifact", h.GetArtifact)

			r.Post("/elements", h.PostElement)
			r.Patch("/elements/{elementId}", h.PatchElement)
			r.Delete("/elements/{elementId}", h.DeleteElement)

			r.Put("/schema/{propName}", h.PutProperty)
			r.Delete("/schema/{propName}", h.DeleteProperty)

			r.Patch("/animation", h.PatchAnimation)

			r.Post("/playout/load", h.PlayoutLoad)
			r.Post("/playout/play", h.PlayoutPlay)
			r.Post("/playout/stop", h.PlayoutStop)
			r.Post("/playout/update", h.PlayoutUpdate)
			r.Post("/playout/action", h.PlayoutAction)

			r.Post("/publish", h.PostPublish)
			r.Get("/publish", h.GetPublish)
			r.Get("/publish/objects/*", h.GetPublishObject)
		})
	})

	return r
}

func envCSV(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
