package storeapi

import "github.com/go-chi/chi/v5"

// Mount registers the store routes on r. Authentication is the caller's job.
func Mount(r chi.Router, h Handlers) {
	r.Get("/store", h.Info)

	r.Get("/{resource}", h.List)
	r.Post("/{resource}", h.Add)
	r.Get("/{resource}/{id}", h.Get)
	r.Put("/{resource}/{id}", h.Update)

	r.Get("/{resource}/{id}/{sub}", h.List)
	r.Post("/{resource}/{id}/{sub}", h.Add)
	r.Get("/{resource}/{id}/{sub}/{sub_id}", h.Get)
	r.Put("/{resource}/{id}/{sub}/{sub_id}", h.Update)
}
