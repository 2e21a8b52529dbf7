package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tiendanube/internal/api"
	"tiendanube/internal/installation"
	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

const stateCookie = "oauth_state"

type InstallationStore interface {
	Upsert(ctx context.Context, storeID int64, accessToken, scope string) (*installation.Installation, error)
}

type TokenExchanger interface {
	ExchangeCode(ctx context.Context, code string) (*tiendanube.AccessToken, error)
}

type Handlers struct {
	Cfg           config.Config
	Installations InstallationStore
	Exchanger     TokenExchanger
	Log           *zap.Logger
}

// WebhookPath is where install registers the app's webhooks, relative to
// PublicBaseURL.
const WebhookPath = "/v1/webhooks/tiendanube"

// webhookEvents are subscribed on every install.
var webhookEvents = []string{tiendanube.EventAppUninstalled, tiendanube.EventOrderPaid}

func (h Handlers) Install(w http.ResponseWriter, r *http.Request) {
	state := randomHex(16)
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.IsProd(),
	})

	http.Redirect(w, r, tiendanube.AuthorizeURL(h.Cfg.Nube.AuthBaseURL, h.Cfg.Nube.AppID, state), http.StatusFound)
}

func (h Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	code := strings.TrimSpace(qs.Get("code"))
	if code == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing code")
		return
	}

	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" || c.Value != qs.Get("state") {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid oauth state")
		return
	}

	tok, err := h.Exchanger.ExchangeCode(r.Context(), code)
	if err != nil {
		h.Log.Warn("token exchange failed", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, "UPSTREAM", "token exchange failed")
		return
	}

	inst, err := h.Installations.Upsert(r.Context(), tok.StoreID, tok.AccessToken, tok.Scope)
	if err != nil {
		h.Log.Error("save installation", zap.Int64("store_id", tok.StoreID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save store")
		return
	}
	h.Log.Info("store installed", zap.Int64("store_id", inst.StoreID), zap.String("scope", inst.Scope))

	if base := strings.TrimRight(strings.TrimSpace(h.Cfg.PublicBaseURL), "/"); base != "" {
		h.registerWebhooks(r.Context(), inst, base+WebhookPath)
	}

	_, _ = w.Write([]byte("installed"))
}

// registerWebhooks is best effort: a store stays installed even when the
// subscriptions fail.
func (h Handlers) registerWebhooks(ctx context.Context, inst *installation.Installation, url string) {
	store := inst.Client(installation.ClientOptions(h.Cfg.Nube, h.Log)...)
	for _, event := range webhookEvents {
		if _, err := store.Webhooks.Register(ctx, event, url); err != nil {
			h.Log.Warn("webhook register failed",
				zap.Int64("store_id", inst.StoreID), zap.String("event", event), zap.Error(err))
		}
	}
}

func randomHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
