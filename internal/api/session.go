package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tiendanube/internal/installation"
	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

type InstallationFinder interface {
	FindByStoreID(ctx context.Context, storeID int64) (*installation.Installation, error)
}

// SessionAuth resolves the calling store from an embedded admin session token
// (Authorization: Bearer <JWT>) and attaches its installation to the context.
//
// Outside prod a missing token may be replaced by an X-Store-Id header so the
// admin endpoints can be exercised with curl.
func SessionAuth(cfg config.Config, installs InstallationFinder, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var storeID string
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			switch {
			case strings.HasPrefix(strings.ToLower(authz), "bearer "):
				vs, err := tiendanube.VerifySessionToken(strings.TrimSpace(authz[7:]), cfg.Nube.AppID, cfg.Nube.ClientSecret, time.Now())
				if err != nil {
					log.Debug("session token rejected", zap.Error(err))
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
					return
				}
				storeID = vs.StoreID
			case !cfg.IsProd():
				storeID = strings.TrimSpace(r.Header.Get("X-Store-Id"))
			}
			if storeID == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
				return
			}

			id, err := strconv.ParseInt(storeID, 10, 64)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid store id")
				return
			}
			inst, err := installs.FindByStoreID(r.Context(), id)
			if err != nil {
				if errors.Is(err, installation.ErrNotFound) {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown store")
					return
				}
				log.Error("load installation", zap.Int64("store_id", id), zap.Error(err))
				WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load store")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithInstallation(r.Context(), inst)))
		})
	}
}
