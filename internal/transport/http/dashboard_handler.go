package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "brandpulse/internal/errors"
	"brandpulse/internal/services"
)

// DashboardServiceInterface is the view-model contract the handler depends
// on, kept as an interface for handler tests.
type DashboardServiceInterface interface {
	FilterOptions(ctx context.Context) (*services.FilterOptionsResponse, error)
	VolumeShareTrends(ctx context.Context, req services.VolumeShareRequest) (*services.VolumeShareResponse, error)
	KeywordTrends(ctx context.Context, req services.KeywordTrendsRequest) (*services.KeywordTrendsResponse, error)
	BrandStrengthTrends(ctx context.Context, req services.BrandStrengthRequest) (*services.BrandStrengthResponse, error)
}

// DatasetInvalidator drops cached snapshots so the next query re-reads the
// workbooks.
type DatasetInvalidator interface {
	Invalidate(reason string)
}

// Envelope wraps view payloads so the frontend can distinguish "empty but
// valid" from errors.
type Envelope struct {
	NoData bool        `json:"no_data"`
	Data   interface{} `json:"data"`
}

// DashboardHandler serves the dashboard API with RFC 7807 errors.
type DashboardHandler struct {
	service      DashboardServiceInterface
	store        DatasetInvalidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, store DatasetInvalidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:      service,
		store:        store,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/filters", h.GetFilters)
	r.Post("/volume-share", h.PostVolumeShare)
	r.Post("/keyword-trends", h.PostKeywordTrends)
	r.Post("/brand-strength", h.PostBrandStrength)
	r.Post("/reload", h.PostReload)

	return r
}

// GetFilters handles GET /api/dashboard/filters.
func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			render.JSON(w, r, Envelope{NoData: true, Data: &services.FilterOptionsResponse{}})
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, Envelope{Data: opts})
}

// PostVolumeShare handles POST /api/dashboard/volume-share.
func (h *DashboardHandler) PostVolumeShare(w http.ResponseWriter, r *http.Request) {
	var req services.VolumeShareRequest
	if !h.bind(w, r, &req) {
		return
	}

	resp, err := h.service.VolumeShareTrends(r.Context(), req)
	if err != nil {
		if h.renderEmpty(w, r, err, &services.VolumeShareResponse{Segments: []services.VolumeShareSegment{}}) {
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, Envelope{Data: resp})
}

// PostKeywordTrends handles POST /api/dashboard/keyword-trends.
func (h *DashboardHandler) PostKeywordTrends(w http.ResponseWriter, r *http.Request) {
	var req services.KeywordTrendsRequest
	if !h.bind(w, r, &req) {
		return
	}

	resp, err := h.service.KeywordTrends(r.Context(), req)
	if err != nil {
		if h.renderEmpty(w, r, err, &services.KeywordTrendsResponse{Trends: []services.PlatformMetricTrend{}}) {
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, Envelope{Data: resp})
}

// PostBrandStrength handles POST /api/dashboard/brand-strength.
func (h *DashboardHandler) PostBrandStrength(w http.ResponseWriter, r *http.Request) {
	var req services.BrandStrengthRequest
	if !h.bind(w, r, &req) {
		return
	}

	resp, err := h.service.BrandStrengthTrends(r.Context(), req)
	if err != nil {
		if h.renderEmpty(w, r, err, &services.BrandStrengthResponse{Trends: []services.BrandStrengthTrend{}}) {
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, Envelope{Data: resp})
}

// PostReload handles POST /api/dashboard/reload.
func (h *DashboardHandler) PostReload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "manual dataset reload requested")
	h.store.Invalidate("manual reload")
	render.JSON(w, r, map[string]string{"status": "reloaded"})
}

// bind decodes and validates the request body, rendering the problem
// response itself on failure.
func (h *DashboardHandler) bind(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if r.Body != nil && r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, req); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error()))
			return false
		}
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return false
	}
	return true
}

// renderEmpty maps the no-data sentinels to a 200 envelope. Returns true
// when it handled the error.
func (h *DashboardHandler) renderEmpty(w http.ResponseWriter, r *http.Request, err error, empty interface{}) bool {
	if errors.Is(err, services.ErrNoData) || errors.Is(err, services.ErrNoMatchingRows) {
		h.logger.InfoContext(r.Context(), "query matched no rows",
			slog.String("reason", err.Error()))
		render.JSON(w, r, Envelope{NoData: true, Data: empty})
		return true
	}
	return false
}
