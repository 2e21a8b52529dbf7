package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tiendanube/internal/api"
	"tiendanube/internal/installation"
	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

type Installations interface {
	FindByStoreID(ctx context.Context, storeID int64) (*installation.Installation, error)
	Delete(ctx context.Context, storeID int64) error
	RecordWebhook(ctx context.Context, storeID int64, event, signature string) (bool, error)
	ForgetWebhook(ctx context.Context, storeID int64, signature string) error
}

type Handler struct {
	Cfg           config.Config
	Installations Installations
	Log           *zap.Logger
}

// ServeHTTP accepts webhook deliveries. Once the signature checks out the
// platform always gets a 200, so failures here never trigger redelivery.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}

	signature := strings.TrimSpace(r.Header.Get(tiendanube.WebhookSignatureHeader))
	if !tiendanube.VerifyWebhook(body, signature, h.Cfg.Nube.ClientSecret) {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid webhook signature")
		return
	}

	if err := h.handle(r.Context(), body, strings.ToLower(signature)); err != nil {
		h.Log.Warn("webhook not processed", zap.Error(err))
	}
	w.WriteHeader(http.StatusOK)
}

func (h Handler) handle(ctx context.Context, body []byte, signature string) error {
	ev, err := tiendanube.ParseWebhookEvent(body)
	if err != nil {
		return err
	}
	storeID, err := ev.StoreID.Int64()
	if err != nil {
		return err
	}
	event := NormalizeEvent(ev.Event)
	log := h.Log.With(zap.Int64("store_id", storeID), zap.String("event", event))

	inst, err := h.Installations.FindByStoreID(ctx, storeID)
	if err != nil {
		if errors.Is(err, installation.ErrNotFound) {
			log.Debug("webhook for unknown store")
			return nil
		}
		return err
	}

	first, err := h.Installations.RecordWebhook(ctx, storeID, event, signature)
	if err != nil {
		return err
	}
	if !first {
		log.Debug("webhook already processed")
		return nil
	}

	// The delivery is claimed before the work runs. A failure releases the
	// claim so the platform's redelivery gets another try.
	if err := h.process(ctx, log, inst, event, ev.ID.String()); err != nil {
		if ferr := h.Installations.ForgetWebhook(ctx, storeID, signature); ferr != nil {
			log.Error("release webhook delivery failed", zap.Error(ferr))
		}
		return err
	}
	return nil
}

func (h Handler) process(ctx context.Context, log *zap.Logger, inst *installation.Installation, event, id string) error {
	switch event {
	case "app_uninstalled":
		log.Info("store uninstalled")
		return h.Installations.Delete(ctx, inst.StoreID)
	case "order_paid":
		return h.handleOrderPaid(ctx, log, inst, id)
	default:
		log.Debug("webhook ignored", zap.String("id", id))
		return nil
	}
}

func (h Handler) handleOrderPaid(ctx context.Context, log *zap.Logger, inst *installation.Installation, orderID string) error {
	if orderID == "" {
		return errors.New("order/paid without order id")
	}
	store := inst.Client(installation.ClientOptions(h.Cfg.Nube, h.Log)...)
	order, err := store.Orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	total, err := order.Decimal("total")
	if err != nil {
		return err
	}
	log.Info("order paid",
		zap.String("order_id", order.ID()),
		zap.String("number", order.String("number")),
		zap.String("total", total.StringFixed(2)),
		zap.String("currency", order.String("currency")),
	)
	return nil
}
