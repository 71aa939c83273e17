package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// Problem type URIs used across the API. Clients match on these rather
// than on detail strings.
const (
	TypeValidation      = "/errors/validation"
	TypeBadRequest      = "/errors/bad-request"
	TypeNotFound        = "/errors/not-found"
	TypeDataNotFound    = "/errors/data/not-found"
	TypeDataNoMatch     = "/errors/data/no-matching-rows"
	TypeDatasetLoad     = "/errors/data/load-failed"
	TypeDatasetSchema   = "/errors/data/schema"
	TypeRateLimit       = "/errors/rate-limit"
	TypeInternal        = "/errors/internal"
	TypeUnavailable     = "/errors/unavailable"
	TypeRequestTimeout  = "/errors/timeout"
	TypeRequestCanceled = "/errors/canceled"
)

// ProblemDetails implements RFC 7807 problem+json responses.
type ProblemDetails struct {
	Type       string                 `json:"type"`
	Title      string                 `json:"title"`
	Status     int                    `json:"status"`
	Detail     string                 `json:"detail,omitempty"`
	Instance   string                 `json:"instance,omitempty"`
	Extensions map[string]interface{} `json:"-"`
}

// NewProblemDetails creates a ProblemDetails with the given fields.
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// WithExtension adds a custom extension member to the problem document.
func (p *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	if p.Extensions == nil {
		p.Extensions = make(map[string]interface{})
	}
	p.Extensions[key] = value
	return p
}

// MarshalJSON flattens extension members into the top-level object as
// RFC 7807 requires.
func (p *ProblemDetails) MarshalJSON() ([]byte, error) {
	type alias ProblemDetails
	base, err := json.Marshal((*alias)(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extensions) == 0 {
		return base, nil
	}

	var merged map[string]interface{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range p.Extensions {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Error implements the error interface.
func (p *ProblemDetails) Error() string {
	return p.Title + ": " + p.Detail
}

// Render implements render.Renderer, setting the problem+json content type.
func (p *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/problem+json")
	render.Status(r, p.Status)
	return nil
}
