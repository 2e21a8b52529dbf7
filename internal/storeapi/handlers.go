package storeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tiendanube/internal/api"
	"tiendanube/internal/installation"
	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

// Handlers expose the calling store's resources to the embedded admin,
// authenticated with the store's own installation token.
type Handlers struct {
	Cfg config.Config
	Log *zap.Logger
}

func (h Handlers) store(r *http.Request) *tiendanube.Store {
	inst := api.InstallationFromContext(r.Context())
	if inst == nil {
		return nil
	}
	return inst.Client(installation.ClientOptions(h.Cfg.Nube, h.Log)...)
}

func (h Handlers) Info(w http.ResponseWriter, r *http.Request) {
	s := h.store(r)
	if s == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing store")
		return
	}
	it, err := s.GetInfo(r.Context())
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, it)
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	items, err := c.List(r.Context(), listOptions(r))
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	if items == nil {
		items = []tiendanube.Item{}
	}
	api.WriteJSON(w, http.StatusOK, items)
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	it, err := c.Get(r.Context(), itemID(r))
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, it)
}

func (h Handlers) Add(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	item, ok := decodeItem(w, r)
	if !ok {
		return
	}
	created, err := c.Add(r.Context(), item)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// Update takes the id from the path; an id in the body is overwritten.
func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	item, ok := decodeItem(w, r)
	if !ok {
		return
	}
	item["id"] = itemID(r)
	updated, err := c.Update(r.Context(), item)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

// collection resolves {resource}, or {resource}/{id}/{sub} for the product
// sub-resources.
func (h Handlers) collection(w http.ResponseWriter, r *http.Request) (tiendanube.Collection, bool) {
	s := h.store(r)
	if s == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing store")
		return nil, false
	}

	resource := chi.URLParam(r, "resource")
	if sub := chi.URLParam(r, "sub"); sub != "" {
		parentID := chi.URLParam(r, "id")
		if resource != tiendanube.ResourceProducts || parentID == "" {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "unknown resource")
			return nil, false
		}
		switch sub {
		case tiendanube.SubResourceVariants:
			return s.Products.Variants(parentID), true
		case tiendanube.SubResourceImages:
			return s.Products.Images(parentID), true
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "unknown resource")
		return nil, false
	}

	c, ok := s.Collection(resource)
	if !ok {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "unknown resource")
		return nil, false
	}
	return c, true
}

// itemID is the id of the addressed item: {sub_id} on nested routes, {id} otherwise.
func itemID(r *http.Request) string {
	if chi.URLParam(r, "sub") != "" {
		return chi.URLParam(r, "sub_id")
	}
	return chi.URLParam(r, "id")
}

// listOptions maps ?fields=a,b and any other query parameter onto a List call.
func listOptions(r *http.Request) *tiendanube.ListOptions {
	qs := r.URL.Query()
	if len(qs) == 0 {
		return nil
	}
	opts := &tiendanube.ListOptions{Filters: tiendanube.Filters{}}
	for k, vs := range qs {
		if len(vs) == 0 {
			continue
		}
		if k == "fields" {
			for _, f := range strings.Split(vs[0], ",") {
				if f = strings.TrimSpace(f); f != "" {
					opts.Fields = append(opts.Fields, f)
				}
			}
			continue
		}
		opts.Filters[k] = vs[0]
	}
	return opts
}

func decodeItem(w http.ResponseWriter, r *http.Request) (tiendanube.Item, bool) {
	var item tiendanube.Item
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&item); err != nil || item == nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "body must be a JSON object")
		return nil, false
	}
	return item, true
}

// writeUpstreamError forwards client errors from the platform as-is and
// reports everything else as a bad gateway.
func (h Handlers) writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *tiendanube.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.StatusCode)
		_, _ = w.Write(apiErr.Body)
		return
	}
	h.Log.Warn("tiendanube request failed", zap.Error(err))
	api.WriteError(w, http.StatusBadGateway, "UPSTREAM", "tiendanube request failed")
}
