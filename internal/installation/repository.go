package installation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("installation not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, storeID int64, accessToken, scope string) (*Installation, error) {
	const q = `
INSERT INTO stores (store_id, access_token, scope, status)
VALUES ($1, $2, $3, 'active')
ON CONFLICT (store_id) DO UPDATE SET
  access_token = EXCLUDED.access_token,
  scope = EXCLUDED.scope,
  status = 'active'
RETURNING store_id, access_token, scope, status, installed_at
`
	i := &Installation{}
	if err := r.db.QueryRow(ctx, q, storeID, accessToken, scope).Scan(
		&i.StoreID, &i.AccessToken, &i.Scope, &i.Status, &i.InstalledAt,
	); err != nil {
		return nil, err
	}
	return i, nil
}

func (r *Repository) FindByStoreID(ctx context.Context, storeID int64) (*Installation, error) {
	const q = `
SELECT store_id, access_token, scope, status, installed_at
FROM stores
WHERE store_id = $1
`
	i := &Installation{}
	if err := r.db.QueryRow(ctx, q, storeID).Scan(
		&i.StoreID, &i.AccessToken, &i.Scope, &i.Status, &i.InstalledAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return i, nil
}

// Delete removes the store; recorded webhook events cascade.
func (r *Repository) Delete(ctx context.Context, storeID int64) error {
	const q = `DELETE FROM stores WHERE store_id = $1`
	_, err := r.db.Exec(ctx, q, storeID)
	return err
}

// RecordWebhook stores a delivery keyed by its signature. It returns false
// when the same delivery was already recorded.
func (r *Repository) RecordWebhook(ctx context.Context, storeID int64, event, signature string) (bool, error) {
	const q = `
INSERT INTO webhook_events (store_id, event, signature)
VALUES ($1, $2, $3)
ON CONFLICT (store_id, signature) DO NOTHING
`
	tag, err := r.db.Exec(ctx, q, storeID, event, signature)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ForgetWebhook drops a recorded delivery so a redelivery is processed again.
func (r *Repository) ForgetWebhook(ctx context.Context, storeID int64, signature string) error {
	const q = `DELETE FROM webhook_events WHERE store_id = $1 AND signature = $2`
	_, err := r.db.Exec(ctx, q, storeID, signature)
	return err
}
