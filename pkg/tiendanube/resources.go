package tiendanube

import "context"

// API collection names.
const (
	ResourceStore      = "store"
	ResourceProducts   = "products"
	ResourceCustomers  = "customers"
	ResourceOrders     = "orders"
	ResourceCategories = "categories"
	ResourceScripts    = "scripts"
	ResourceWebhooks   = "webhooks"

	SubResourceVariants = "variants"
	SubResourceImages   = "images"
)

type StoreResource struct {
	Resource
}

func NewStoreResource(api APIClient, storeID string) *StoreResource {
	return &StoreResource{Resource{api: api, storeID: storeID, path: []string{ResourceStore}}}
}

type ProductResource struct {
	*ListResource
}

func NewProductResource(api APIClient, storeID string) *ProductResource {
	return &ProductResource{newListResource(api, storeID, ResourceProducts)}
}

func (p *ProductResource) Variants(productID any) *ListSubResource {
	return p.Sub(productID, SubResourceVariants)
}

func (p *ProductResource) Images(productID any) *ListSubResource {
	return p.Sub(productID, SubResourceImages)
}

// Product is a fetched product with its nested collections bound to it.
type Product struct {
	Item
	Variants *ListSubResource
	Images   *ListSubResource
}

// GetProduct fetches a product and binds its variants and images.
func (p *ProductResource) GetProduct(ctx context.Context, id any) (*Product, error) {
	it, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	pid := it.ID()
	if pid == "" {
		pid = formatValue(id)
	}
	return &Product{
		Item:     it,
		Variants: p.Variants(pid),
		Images:   p.Images(pid),
	}, nil
}

type CustomerResource struct{ *ListResource }

func NewCustomerResource(api APIClient, storeID string) *CustomerResource {
	return &CustomerResource{newListResource(api, storeID, ResourceCustomers)}
}

type OrderResource struct{ *ListResource }

func NewOrderResource(api APIClient, storeID string) *OrderResource {
	return &OrderResource{newListResource(api, storeID, ResourceOrders)}
}

type CategoryResource struct{ *ListResource }

func NewCategoryResource(api APIClient, storeID string) *CategoryResource {
	return &CategoryResource{newListResource(api, storeID, ResourceCategories)}
}

type ScriptResource struct{ *ListResource }

func NewScriptResource(api APIClient, storeID string) *ScriptResource {
	return &ScriptResource{newListResource(api, storeID, ResourceScripts)}
}

type WebhookResource struct{ *ListResource }

func NewWebhookResource(api APIClient, storeID string) *WebhookResource {
	return &WebhookResource{newListResource(api, storeID, ResourceWebhooks)}
}

// Register subscribes url to event, e.g. "order/paid".
func (w *WebhookResource) Register(ctx context.Context, event, url string) (Item, error) {
	return w.Add(ctx, Item{"event": event, "url": url})
}
