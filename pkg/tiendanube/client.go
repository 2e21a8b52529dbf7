package tiendanube

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Store groups every resource accessor of one store.
type Store struct {
	ID string

	Info       *StoreResource
	Customers  *CustomerResource
	Products   *ProductResource
	Categories *CategoryResource
	Orders     *OrderResource
	Scripts    *ScriptResource
	Webhooks   *WebhookResource
}

func NewStore(api APIClient, storeID string) *Store {
	return &Store{
		ID:         storeID,
		Info:       NewStoreResource(api, storeID),
		Customers:  NewCustomerResource(api, storeID),
		Products:   NewProductResource(api, storeID),
		Categories: NewCategoryResource(api, storeID),
		Orders:     NewOrderResource(api, storeID),
		Scripts:    NewScriptResource(api, storeID),
		Webhooks:   NewWebhookResource(api, storeID),
	}
}

func (s *Store) GetInfo(ctx context.Context) (Item, error) {
	return s.Info.Get(ctx)
}

// Collection looks up a list resource by its API name ("products", "orders", ...).
func (s *Store) Collection(name string) (Collection, bool) {
	switch name {
	case ResourceProducts:
		return s.Products, true
	case ResourceCustomers:
		return s.Customers, true
	case ResourceCategories:
		return s.Categories, true
	case ResourceOrders:
		return s.Orders, true
	case ResourceScripts:
		return s.Scripts, true
	case ResourceWebhooks:
		return s.Webhooks, true
	default:
		return nil, false
	}
}

// NubeClient hands out Store facades sharing one set of credentials.
type NubeClient struct {
	api APIClient
}

type Option func(*APIClient)

func WithUserAgent(ua string) Option {
	return func(c *APIClient) { c.UserAgent = ua }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.HTTPClient = hc }
}

func WithBaseURL(u string) Option {
	return func(c *APIClient) { c.BaseURL = u }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *APIClient) { c.Logger = l }
}

func NewClient(apiKey string, opts ...Option) *NubeClient {
	api := APIClient{APIKey: apiKey, UserAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(&api)
	}
	return &NubeClient{api: api}
}

// Store returns the facade for storeID. Any value with a natural string
// form (int, int64, string, json.Number) is accepted.
func (c *NubeClient) Store(storeID any) *Store {
	return NewStore(c.api, fmt.Sprint(storeID))
}
