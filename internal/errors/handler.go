package errors

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorHandler converts errors into RFC 7807 problem responses and logs
// them with request context.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates an ErrorHandler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger}
}

// HandleError writes the problem document for err and logs it. Server
// errors log at Error, client errors at Warn.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	problem := h.ErrorToProblem(r, err)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.LogAttrs(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", problem.Status),
		slog.String("problem_type", problem.Type),
		slog.String("error", err.Error()),
	)

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	if encodeErr := json.NewEncoder(w).Encode(problem); encodeErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode problem response",
			slog.String("error", encodeErr.Error()))
	}
}

// ErrorToProblem maps an error to its RFC 7807 representation.
func (h *ErrorHandler) ErrorToProblem(r *http.Request, err error) *ProblemDetails {
	instance := ""
	if r != nil && r.URL != nil {
		instance = r.URL.Path
	}

	switch {
	case errors.Is(err, context.Canceled):
		return NewProblemDetails(499, TypeRequestCanceled, "Request Canceled",
			"The client canceled the request", instance)
	case errors.Is(err, context.DeadlineExceeded):
		return NewProblemDetails(http.StatusGatewayTimeout, TypeRequestTimeout, "Request Timeout",
			"The request exceeded its deadline", instance)
	}

	var problem *ProblemDetails
	if errors.As(err, &problem) {
		if problem.Instance == "" {
			problem.Instance = instance
		}
		return problem
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		p := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed",
			"One or more request fields are invalid", instance)
		fields := make([]map[string]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, map[string]string{
				"field": fe.Field(),
				"rule":  fe.Tag(),
			})
		}
		return p.WithExtension("invalid_fields", fields)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		p := NewProblemDetails(apiErr.StatusCode, typeForStatus(apiErr.StatusCode),
			apiErr.ErrorCode, apiErr.Message, instance)
		if apiErr.Details != nil {
			p.WithExtension("details", apiErr.Details)
		}
		return p
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return h.appErrorToProblem(appErr, instance)
	}

	return NewProblemDetails(http.StatusInternalServerError, TypeInternal,
		"Internal Server Error", "An unexpected error occurred", instance)
}

func (h *ErrorHandler) appErrorToProblem(appErr *AppError, instance string) *ProblemDetails {
	var p *ProblemDetails
	switch appErr.Type {
	case ErrTypeValidation:
		p = NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed",
			appErr.Message, instance)
	case ErrTypeNotFound:
		p = NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found",
			appErr.Message, instance)
	case ErrTypeParsing:
		p = NewProblemDetails(http.StatusInternalServerError, TypeDatasetSchema, "Dataset Error",
			appErr.Message, instance)
	case ErrTypeStorage:
		p = NewProblemDetails(http.StatusInternalServerError, TypeDatasetLoad, "Dataset Load Failed",
			appErr.Message, instance)
	case ErrTypeConfig:
		p = NewProblemDetails(http.StatusInternalServerError, TypeInternal, "Configuration Error",
			appErr.Message, instance)
	default:
		p = NewProblemDetails(http.StatusInternalServerError, TypeInternal, "Internal Server Error",
			appErr.Message, instance)
	}
	for k, v := range appErr.Context {
		p.WithExtension(k, v)
	}
	return p
}

func typeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return TypeBadRequest
	case http.StatusNotFound:
		return TypeNotFound
	case http.StatusTooManyRequests:
		return TypeRateLimit
	case http.StatusServiceUnavailable:
		return TypeUnavailable
	default:
		return TypeInternal
	}
}
