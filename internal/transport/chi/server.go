package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalog/internal/clock"
	"github.com/kailas-cloud/catalog/internal/domain"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
	"github.com/kailas-cloud/catalog/internal/domain/query/request"
	logpkg "github.com/kailas-cloud/catalog/internal/logger"
	cataloguc "github.com/kailas-cloud/catalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/catalog/internal/usecase/health"
	itemuc "github.com/kailas-cloud/catalog/internal/usecase/item"
)

const defaultMaxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Options tunes request parsing and limits.
type Options struct {
	Limits       request.Limits
	MaxBodyBytes int64
	CreateRPS    float64
	CreateBurst  int
}

// Server serves the catalog HTTP API.
type Server struct {
	catalog       *cataloguc.Service
	items         *itemuc.Service
	health        *healthuc.Service
	clock         clock.Clock
	opts          Options
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	items *itemuc.Service,
	health *healthuc.Service,
	clk clock.Clock,
	opts Options,
) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	s := &Server{
		catalog: catalog,
		items:   items,
		health:  health,
		clock:   clk,
		opts:    opts,
	}
	s.errorHandlers = []errorHandler{
		s.validationHandler,
		s.sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		s.sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorCodeAlreadyExists),
		s.sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
	}
	return s
}

// ListItems handles GET /items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	spec, err := request.Parse(r.URL.Query(), s.opts.Limits)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeList(w, r, &spec)
}

// ListCategoryItems handles GET /categories/{category}/items.
func (s *Server) ListCategoryItems(w http.ResponseWriter, r *http.Request, category string) {
	spec, err := parsePathScoped(r, s.opts.Limits, request.ParamCategory)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	forced := spec.WithCategory(category)
	s.writeList(w, r, &forced)
}

// ListPriceRangeItems handles GET /items/price/{min_price}/{max_price}.
func (s *Server) ListPriceRangeItems(w http.ResponseWriter, r *http.Request, minPrice, maxPrice float64) {
	spec, err := parsePathScoped(r, s.opts.Limits, request.ParamMinPrice, request.ParamMaxPrice)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	forced := spec.WithPriceRange(minPrice, maxPrice)
	s.writeList(w, r, &forced)
}

// parsePathScoped parses a list query for a route whose path already sets pathParams.
// Supplying them again in the query string is rejected instead of being overridden.
func parsePathScoped(r *http.Request, lim request.Limits, pathParams ...string) (request.Spec, error) {
	params := r.URL.Query()
	if err := request.CheckAbsent(params, "set by the request path", pathParams...); err != nil {
		return request.Spec{}, err
	}
	return request.Parse(params, lim)
}

func (s *Server) writeList(w http.ResponseWriter, r *http.Request, spec *request.Spec) {
	pg := s.catalog.List(r.Context(), spec)
	w.Header().Set("X-Total-Count", strconv.Itoa(pg.Total()))
	writeJSON(w, http.StatusOK, listToDTO(&pg))
}

// GetItem handles GET /items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request, id string) {
	params := r.URL.Query()
	if err := request.CheckKnown(params, request.ItemParams...); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	fields := projection.Parse(params.Get(projection.Param))
	it, err := s.catalog.Get(r.Context(), id, fields)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// RelatedItems handles GET /items/{id}/related.
func (s *Server) RelatedItems(w http.ResponseWriter, r *http.Request, id string) {
	q, err := request.ParseRelated(r.URL.Query(), s.opts.Limits)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.catalog.Related(r.Context(), id, &q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, relatedToDTO(&res))
}

// CreateItem handles POST /items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge, "Request body too large.")
			return
		}
		s.writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid or missing JSON body.")
		return
	}

	if err := validateCreateBody(body); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var req CreateItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.handleDomainError(w, r, domain.NewValidationError(bodyParam, "does not match the item shape"))
		return
	}

	it, err := s.items.Create(r.Context(), createInputFromDTO(&req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/items/"+it.ID)
	writeJSON(w, http.StatusCreated, it)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func createInputFromDTO(req *CreateItemRequest) *itemuc.CreateInput {
	in := &itemuc.CreateInput{
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		Rating:     req.Rating,
		Tags:       req.Tags,
		Stock:      req.Stock,
		Attributes: req.Attributes,
	}
	if req.ID != nil {
		in.ID = *req.ID
	}
	if req.Vendor != nil {
		in.Vendor = *req.Vendor
	}
	return in
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeErrorAt(w, status, code, message, timestamp(s.clock.Now()))
}

func writeErrorAt(w http.ResponseWriter, status int, code ErrorCode, message, ts string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: ts,
	}})
}

// safeDomainMessage returns a client message for a sentinel error without exposing internals.
func safeDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Item not found."
	case errors.Is(err, domain.ErrAlreadyExists):
		return "Item with this 'id' already exists."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests."
	default:
		return "Internal error."
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func (s *Server) sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		s.writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

// validationHandler reports the offending parameter of a ValidationError.
func (s *Server) validationHandler(w http.ResponseWriter, err error) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	s.writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, ve.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	logpkg.FromContext(r.Context()).Error("unhandled domain error",
		zap.Error(err),
		zap.Bool("persistence", errors.Is(err, domain.ErrPersistence)),
	)
	s.writeError(w, http.StatusInternalServerError, ErrorCodeInternal, safeDomainMessage(err))
}
