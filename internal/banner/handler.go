// AngelaMos | 2026
// handler.go

package banner

import (
	"encoding/json"
	"errors"
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
	r.Get("/banners", h.ListActive)
	r.Get("/banners/{bannerID}", h.Get)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	requireAuth, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/banners", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(adminOnly)

		r.Get("/", h.ListAll)
		r.Post("/", h.Create)
		r.Put("/{bannerID}", h.Update)
		r.Delete("/{bannerID}", h.Delete)
	})
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.ListActive(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponseList(banners))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, "bannerID")

	banner, err := h.service.Get(r.Context(), bannerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "banner")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponse(banner))
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponseList(banners))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	banner, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, toResponse(banner))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, "bannerID")

	var req UpdateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	banner, err := h.service.Update(r.Context(), bannerID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "banner")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponse(banner))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, "bannerID")

	if err := h.service.Delete(r.Context(), bannerID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "banner")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
