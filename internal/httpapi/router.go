package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tiendanube/internal/api"
	"tiendanube/internal/auth"
	"tiendanube/internal/installation"
	"tiendanube/internal/storeapi"
	"tiendanube/internal/webhook"
	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

// Installations is everything the routes need from storage.
type Installations interface {
	auth.InstallationStore
	webhook.Installations
}

type Dependencies struct {
	Cfg           config.Config
	Installations Installations
	Log           *zap.Logger
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	authHandlers := auth.Handlers{
		Cfg:           deps.Cfg,
		Installations: deps.Installations,
		Exchanger: tiendanube.OAuthExchanger{
			AuthBaseURL:  deps.Cfg.Nube.AuthBaseURL,
			ClientID:     deps.Cfg.Nube.AppID,
			ClientSecret: deps.Cfg.Nube.ClientSecret,
		},
		Log: deps.Log,
	}
	webhookHandler := webhook.Handler{
		Cfg:           deps.Cfg,
		Installations: deps.Installations,
		Log:           deps.Log,
	}
	storeHandlers := storeapi.Handlers{Cfg: deps.Cfg, Log: deps.Log}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/auth/install", authHandlers.Install)
		r.Get("/auth/callback", authHandlers.Callback)

		r.Post("/webhooks/tiendanube", webhookHandler.ServeHTTP)

		// Embedded admin, scoped to the store in the session token.
		r.Route("/admin", func(r chi.Router) {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.AdminAllowedOrigins,
				AllowedHeaders: []string{"Content-Type", "Authorization"},
			}))
			r.Use(api.SessionAuth(deps.Cfg, deps.Installations, deps.Log))
			storeapi.Mount(r, storeHandlers)
		})
	})

	return r
}

// Compile-time check that the pgx repository satisfies the router's needs.
var _ Installations = (*installation.Repository)(nil)
