// Package handler implements the HTTP handlers for the product API and the
// operational endpoints around it.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/menezmethod/vitrina/internal/apierror"
	"github.com/menezmethod/vitrina/internal/middleware"
	"github.com/menezmethod/vitrina/internal/product"
	"github.com/menezmethod/vitrina/internal/store"
)

var tracer trace.Tracer = otel.Tracer("github.com/menezmethod/vitrina/internal/handler")

type listResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []product.Product `json:"data"`
}

type itemResponse struct {
	Success bool            `json:"success"`
	Data    product.Product `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListProducts returns the products matching the search, minPrice and
// maxPrice query parameters, paginated by page and limit.
//
//	GET /api/products
func ListProducts(s store.Store) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		q := product.ParseQuery(r.URL.Query())

		_, span := tracer.Start(r.Context(), "store.All")
		all := s.All()
		span.End()

		page := q.Apply(all)
		return writeJSON(w, http.StatusOK, listResponse{Success: true, Count: len(page), Data: page})
	}
}

// GetProduct returns a single product.
//
//	GET /api/products/{id}
func GetProduct(s store.Store) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := pathID(r)
		if err != nil {
			return err
		}

		_, span := tracer.Start(r.Context(), "store.Get", trace.WithAttributes(attribute.Int("product.id", id)))
		p, err := s.Get(id)
		span.End()
		if err != nil {
			return storeError(err)
		}

		return writeJSON(w, http.StatusOK, itemResponse{Success: true, Data: p})
	}
}

// CreateProduct appends a product built from the request body.
//
//	POST /api/products
func CreateProduct(s store.Store) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		body := middleware.BodyFromContext(r.Context())

		_, span := tracer.Start(r.Context(), "store.Create")
		p := s.Create(body)
		span.SetAttributes(attribute.Int("product.id", p.ID))
		span.End()

		middleware.ProductMutations.WithLabelValues("create").Inc()
		return writeJSON(w, http.StatusCreated, itemResponse{Success: true, Data: p})
	}
}

// UpdateProduct shallow-merges the request body onto an existing product.
//
//	PUT /api/products/{id}
func UpdateProduct(s store.Store) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := pathID(r)
		if err != nil {
			return err
		}
		body := middleware.BodyFromContext(r.Context())

		_, span := tracer.Start(r.Context(), "store.Update", trace.WithAttributes(attribute.Int("product.id", id)))
		p, err := s.Update(id, body)
		span.End()
		if err != nil {
			return storeError(err)
		}

		middleware.ProductMutations.WithLabelValues("update").Inc()
		return writeJSON(w, http.StatusOK, itemResponse{Success: true, Data: p})
	}
}

// DeleteProduct removes a product.
//
//	DELETE /api/products/{id}
func DeleteProduct(s store.Store) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := pathID(r)
		if err != nil {
			return err
		}

		_, span := tracer.Start(r.Context(), "store.Delete", trace.WithAttributes(attribute.Int("product.id", id)))
		err = s.Delete(id)
		span.End()
		if err != nil {
			return storeError(err)
		}

		middleware.ProductMutations.WithLabelValues("delete").Inc()
		return writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Product deleted"})
	}
}

// NotFound answers requests that match no route.
func NotFound() apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		return apierror.NotFound("Cannot " + r.Method + " " + r.URL.Path)
	}
}

// pathID parses the {id} path value. A value that is not an integer can
// never name a product, so it is reported as not found.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, apierror.NotFound(apierror.MsgNotFound)
	}
	return id, nil
}

func storeError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apierror.NotFound(apierror.MsgNotFound)
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
	return nil
}
