package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/menezmethod/vitrina/internal/auth"
	"github.com/menezmethod/vitrina/internal/config"
	"github.com/menezmethod/vitrina/internal/product"
	"github.com/menezmethod/vitrina/internal/store"
)

const token = "12345"

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var _ = Describe("Handler", func() {
	var (
		st *store.Memory
		h  http.Handler
	)

	BeforeEach(func() {
		cfg := config.Defaults()
		secret, err := auth.NewSecret(cfg.Auth.Token)
		Expect(err).NotTo(HaveOccurred())
		st = store.NewMemory(store.IDLength, store.DefaultSeed()...)
		h = Handler(cfg, st, secret, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	do := func(method, target, body string, authed bool) (*httptest.ResponseRecorder, envelope) {
		var rd io.Reader
		if body != "" {
			rd = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, target, rd)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if authed {
			req.Header.Set("x-auth-token", token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		var env envelope
		if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
			Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(Succeed())
		}
		return rec, env
	}

	names := func(raw json.RawMessage) []string {
		var ps []product.Product
		Expect(json.Unmarshal(raw, &ps)).To(Succeed())
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			n, _ := p.Name()
			out = append(out, n)
		}
		return out
	}

	Describe("GET /api/products/{id}", func() {
		It("returns every stored product unchanged", func() {
			for _, p := range st.All() {
				rec, env := do("GET", "/api/products/"+jsonID(p), "", false)
				Expect(rec.Code).To(Equal(http.StatusOK))
				want, err := json.Marshal(p)
				Expect(err).NotTo(HaveOccurred())
				Expect(env.Data).To(MatchJSON(want))
			}
		})

		It("answers 404 for an unknown or non-numeric id", func() {
			for _, id := range []string{"9999", "abc"} {
				rec, env := do("GET", "/api/products/"+id, "", false)
				Expect(rec.Code).To(Equal(http.StatusNotFound))
				Expect(env.Success).To(BeFalse())
				Expect(env.Message).To(Equal("Product not found"))
			}
		})
	})

	Describe("POST /api/products", func() {
		It("adds exactly one record with id = count+1", func() {
			before := st.Len()
			rec, env := do("POST", "/api/products", `{"name":"Tablet","price":300}`, true)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(env.Success).To(BeTrue())
			Expect(env.Data).To(MatchJSON(`{"id":3,"name":"Tablet","price":300}`))
			Expect(st.Len()).To(Equal(before + 1))
		})

		It("rejects a missing token before validating", func() {
			rec, env := do("POST", "/api/products", `{}`, false)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(env.Message).To(Equal("Unauthorized - missing or invalid token"))
			Expect(st.Len()).To(Equal(2))
		})

		DescribeTable("rejects bodies without a truthy name and price",
			func(body string) {
				rec, env := do("POST", "/api/products", body, true)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(env.Message).To(Equal("Name and price are required"))
				Expect(st.Len()).To(Equal(2))
			},
			Entry("missing name", `{"price":10}`),
			Entry("missing price", `{"name":"Pen"}`),
			Entry("zero price", `{"name":"Pen","price":0}`),
			Entry("empty name", `{"name":"","price":10}`),
		)

		It("rejects a body with data after the JSON object", func() {
			rec, env := do("POST", "/api/products", `{"name":"A","price":1} trailing-garbage`, true)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(HavePrefix("Invalid JSON in request body"))
			Expect(st.Len()).To(Equal(2))
		})

		It("rejects malformed JSON with 400", func() {
			rec, env := do("POST", "/api/products", `{"name":`, true)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(HavePrefix("Invalid JSON in request body"))
			Expect(st.Len()).To(Equal(2))
		})
	})

	Describe("PUT /api/products/{id}", func() {
		It("answers 404 for an unknown id and leaves the store alone", func() {
			before := st.All()
			rec, env := do("PUT", "/api/products/9999", `{"name":"X","price":1}`, true)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(env.Message).To(Equal("Product not found"))
			Expect(st.All()).To(Equal(before))
		})

		It("merges the body into the existing product", func() {
			rec, env := do("PUT", "/api/products/1", `{"name":"Phone X","price":900,"color":"black"}`, true)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(env.Data).To(MatchJSON(`{"id":1,"name":"Phone X","price":900,"color":"black"}`))
		})
	})

	Describe("DELETE /api/products/{id}", func() {
		It("removes one record and later GETs miss", func() {
			rec, env := do("DELETE", "/api/products/1", "", true)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(env.Message).To(Equal("Product deleted"))
			Expect(st.Len()).To(Equal(1))

			rec, _ = do("GET", "/api/products/1", "", false)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("requires the token", func() {
			rec, _ := do("DELETE", "/api/products/1", "", false)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(st.Len()).To(Equal(2))
		})
	})

	Describe("GET /api/products", func() {
		It("filters by minPrice", func() {
			rec, env := do("GET", "/api/products?minPrice=1000", "", false)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(*env.Count).To(Equal(1))
			Expect(names(env.Data)).To(Equal([]string{"Laptop"}))
		})

		It("paginates", func() {
			_, env := do("GET", "/api/products?page=2&limit=1", "", false)
			Expect(*env.Count).To(Equal(1))
			Expect(names(env.Data)).To(Equal([]string{"Laptop"}))
		})

		It("searches names case-insensitively", func() {
			_, env := do("GET", "/api/products?search=PHO", "", false)
			Expect(names(env.Data)).To(Equal([]string{"Phone"}))
		})
	})

	Describe("unknown routes", func() {
		It("matches paths strictly and case-sensitively", func() {
			for _, target := range []string{"/api/products/", "/API/products"} {
				rec, env := do("GET", target, "", false)
				Expect(rec.Code).To(Equal(http.StatusNotFound))
				Expect(env.Message).To(Equal("Cannot GET " + target))
			}
		})

		It("answers with a 404 envelope", func() {
			rec, env := do("PATCH", "/api/products/1", "", true)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("Cannot PATCH /api/products/1"))
		})
	})

	Describe("operational endpoints", func() {
		It("reports readiness with the product count", func() {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", "/health/ready", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"products":2`))
		})

		It("exposes prometheus metrics", func() {
			do("GET", "/api/products", "", false)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("vitrina_http_requests_total"))
		})

		It("keeps the products gauge in step with the store", func() {
			do("POST", "/api/products", `{"name":"Tablet","price":300}`, true)
			do("DELETE", "/api/products/1", "", true)
			do("DELETE", "/api/products/2", "", true)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			Expect(rec.Body.String()).To(MatchRegexp(`(?m)^vitrina_products 1$`))
		})

		It("echoes the request id", func() {
			req := httptest.NewRequest("GET", "/health", nil)
			req.Header.Set("X-Request-ID", "req-1")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			Expect(rec.Header().Get("X-Request-ID")).To(Equal("req-1"))
		})
	})
})

var _ = Describe("New", func() {
	It("applies the configured address and timeouts", func() {
		cfg := config.Defaults()
		cfg.Server.Host = "127.0.0.1"
		secret, err := auth.NewSecret(cfg.Auth.Token)
		Expect(err).NotTo(HaveOccurred())

		srv := New(cfg, store.NewMemory(store.IDLength), secret, slog.New(slog.NewTextHandler(io.Discard, nil)))
		Expect(srv.Addr).To(Equal("127.0.0.1:5000"))
		Expect(srv.ReadTimeout).To(Equal(cfg.Server.ReadTimeout))
		Expect(srv.WriteTimeout).To(Equal(cfg.Server.WriteTimeout))
	})
})

func jsonID(p product.Product) string {
	b, _ := json.Marshal(p.ID)
	return string(b)
}
