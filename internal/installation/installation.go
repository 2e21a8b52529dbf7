package installation

import (
	"time"

	"go.uber.org/zap"

	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

// Installation is a store that granted the app access.
type Installation struct {
	StoreID     int64
	AccessToken string
	Scope       string
	Status      string
	InstalledAt time.Time
}

// Client builds a store facade authenticated with this installation's token.
func (i *Installation) Client(opts ...tiendanube.Option) *tiendanube.Store {
	return tiendanube.NewClient(i.AccessToken, opts...).Store(i.StoreID)
}

// ClientOptions maps app config onto API client options.
func ClientOptions(cfg config.NubeConfig, log *zap.Logger) []tiendanube.Option {
	opts := []tiendanube.Option{tiendanube.WithUserAgent(cfg.UserAgent)}
	if cfg.APIBaseURL != "" {
		opts = append(opts, tiendanube.WithBaseURL(cfg.APIBaseURL))
	}
	if log != nil {
		opts = append(opts, tiendanube.WithLogger(log))
	}
	return opts
}
