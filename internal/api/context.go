package api

import (
	"context"

	"tiendanube/internal/installation"
)

type ctxKey string

const ctxKeyInstallation ctxKey = "installation"

func WithInstallation(ctx context.Context, i *installation.Installation) context.Context {
	return context.WithValue(ctx, ctxKeyInstallation, i)
}

func InstallationFromContext(ctx context.Context) *installation.Installation {
	i, _ := ctx.Value(ctxKeyInstallation).(*installation.Installation)
	return i
}
