// AngelaMos | 2026
// handler.go

package platform

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/renankelm10/cursera/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/platform", h.GetConfig)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	requireAuth, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(adminOnly)

		r.Put("/admin/platform", h.UpdateConfig)
	})
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.GetConfig(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponse(config))
}

func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	config, err := h.service.UpdateConfig(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponse(config))
}
