// AngelaMos | 2026
// handler.go

package course

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/middleware"
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

// RegisterRoutes wires the public catalog. Listing and detail work for
// anonymous callers; the identity middleware upstream decides how much of
// the detail payload each caller gets.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireAuth func(http.Handler) http.Handler,
) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Get("/{courseID}", h.GetCourse)

		r.With(requireAuth).Post("/{courseID}/enroll", h.Enroll)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	requireAuth, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/courses", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(adminOnly)

		r.Post("/", h.CreateCourse)
		r.Put("/{courseID}", h.UpdateCourse)
		r.Delete("/{courseID}", h.DeleteCourse)
	})
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	params := ListCoursesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Category: r.URL.Query().Get("category"),
		Level:    r.URL.Query().Get("level"),
		Search:   r.URL.Query().Get("search"),
	}

	courses, total, err := h.service.ListCourses(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToCourseResponseList(courses),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	ident := middleware.IdentityFrom(r.Context())

	detail, err := h.service.GetDetail(r.Context(), courseID, ident)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, detail)
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	userID := middleware.GetUserID(r.Context())

	enrollment, err := h.service.Enroll(r.Context(), userID, courseID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("enrollment"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, EnrollmentResponse{
		ID:        enrollment.ID,
		UserID:    enrollment.UserID,
		CourseID:  enrollment.CourseID,
		CreatedAt: enrollment.CreatedAt,
	})
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	course, err := h.service.CreateCourse(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToCourseResponse(course))
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), courseID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCourseResponse(course))
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
