package tiendanube

import (
	"context"
	"net/http"
)

// Collection is implemented by every list-shaped resource, top level or nested.
type Collection interface {
	List(ctx context.Context, opts *ListOptions) ([]Item, error)
	Get(ctx context.Context, id any) (Item, error)
	Add(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
}

// Resource is a single object addressed by a fixed path, such as the store itself.
type Resource struct {
	api     APIClient
	storeID string
	path    []string
}

func (r Resource) Get(ctx context.Context) (Item, error) {
	return r.api.getItem(ctx, r.storeID, r.path)
}

// collection holds the operations shared by ListResource and ListSubResource;
// only the base path differs between the two.
type collection struct {
	api     APIClient
	storeID string
	path    []string
}

func (c collection) at(id any) []string {
	p := make([]string, 0, len(c.path)+1)
	p = append(p, c.path...)
	return append(p, formatValue(id))
}

func (c collection) List(ctx context.Context, opts *ListOptions) ([]Item, error) {
	return c.api.getItems(ctx, c.storeID, c.path, opts.values())
}

func (c collection) Get(ctx context.Context, id any) (Item, error) {
	if formatValue(id) == "" {
		return nil, ErrMissingID
	}
	return c.api.getItem(ctx, c.storeID, c.at(id))
}

func (c collection) Add(ctx context.Context, item Item) (Item, error) {
	return c.api.send(ctx, http.MethodPost, c.storeID, c.path, item)
}

func (c collection) Update(ctx context.Context, item Item) (Item, error) {
	id := item.ID()
	if id == "" {
		return nil, ErrMissingID
	}
	return c.api.send(ctx, http.MethodPut, c.storeID, c.at(id), item)
}

// ListResource is a top level collection, e.g. products or orders.
type ListResource struct {
	collection
	Name string
}

func newListResource(api APIClient, storeID, name string) *ListResource {
	return &ListResource{
		collection: collection{api: api, storeID: storeID, path: []string{name}},
		Name:       name,
	}
}

// Sub returns the collection nested under one item of r,
// i.e. {r.Name}/{parentID}/{name}.
func (r *ListResource) Sub(parentID any, name string) *ListSubResource {
	pid := formatValue(parentID)
	return &ListSubResource{
		collection: collection{
			api:     r.api,
			storeID: r.storeID,
			path:    []string{r.Name, pid, name},
		},
		Parent:   r.Name,
		ParentID: pid,
		Name:     name,
	}
}

// ListSubResource is a collection nested under a parent item,
// e.g. products/{id}/variants.
type ListSubResource struct {
	collection
	Parent   string
	ParentID string
	Name     string
}

var (
	_ Collection = (*ListResource)(nil)
	_ Collection = (*ListSubResource)(nil)
)
