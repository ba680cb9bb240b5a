package chi

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/catalog/internal/domain"
	logpkg "github.com/kailas-cloud/catalog/internal/logger"
)

// Path parameter names.
const (
	paramID       = "id"
	paramCategory = "category"
	paramMinPrice = "min_price"
	paramMaxPrice = "max_price"
)

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Get("/items", s.ListItems)
	r.With(s.createRateLimit()).Post("/items", s.CreateItem)
	r.Get("/items/price/{min_price}/{max_price}", s.listPriceRangeWrapper)
	r.Get("/items/{id}", s.itemWrapper(s.GetItem))
	r.Get("/items/{id}/related", s.itemWrapper(s.RelatedItems))
	r.Get("/categories/{category}/items", s.listCategoryWrapper)
}

// Handler builds a router with the API mounted, behind the given middlewares.
func (s *Server) Handler(middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, ErrorCodeNotFound, "Resource not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "Method not allowed.")
	})
	s.Routes(r)
	return r
}

func (s *Server) itemWrapper(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if err := bindPathParam(r, paramID, &id); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		next(w, r, id)
	}
}

func (s *Server) listCategoryWrapper(w http.ResponseWriter, r *http.Request) {
	var category string
	if err := bindPathParam(r, paramCategory, &category); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.ListCategoryItems(w, r, category)
}

func (s *Server) listPriceRangeWrapper(w http.ResponseWriter, r *http.Request) {
	var minPrice, maxPrice float64
	if err := bindDecimalParam(r, paramMinPrice, &minPrice); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := bindDecimalParam(r, paramMaxPrice, &maxPrice); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.ListPriceRangeItems(w, r, minPrice, maxPrice)
}

// bindPathParam decodes a simple-style path parameter into dest.
func bindPathParam(r *http.Request, name string, dest any) error {
	raw := chi.URLParam(r, name)
	err := runtime.BindStyledParameterWithOptions("simple", name, raw, dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return domain.Invalidf(name, "invalid value %q", raw)
	}
	return nil
}

func bindDecimalParam(r *http.Request, name string, dest *float64) error {
	if err := bindPathParam(r, name, dest); err != nil {
		return domain.Invalidf(name, "must be a number, got %q", chi.URLParam(r, name))
	}
	if math.IsNaN(*dest) || math.IsInf(*dest, 0) {
		return domain.Invalidf(name, "must be a number, got %q", chi.URLParam(r, name))
	}
	return nil
}

// createRateLimit throttles item creation with a token bucket. rps <= 0 disables it.
func (s *Server) createRateLimit() func(http.Handler) http.Handler {
	if s.opts.CreateRPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(s.opts.CreateRPS), max(s.opts.CreateBurst, 1))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logpkg.FromContext(r.Context()).Warn("create rate limited",
					zap.Float64("rps", s.opts.CreateRPS),
					zap.Int("burst", s.opts.CreateBurst),
				)
				w.Header().Set("Retry-After", "1")
				s.handleDomainError(w, r, domain.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
