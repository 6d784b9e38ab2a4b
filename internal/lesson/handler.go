// AngelaMos | 2026
// handler.go

package lesson

import (
	"encoding/json"
	"errors"
	"net/http"

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireAuth func(http.Handler) http.Handler,
) {
	r.Route("/lessons", func(r chi.Router) {
		r.Get("/{lessonID}", h.GetLesson)
		r.Get("/course/{courseID}", h.ListByCourseGated)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/{lessonID}/complete", h.MarkComplete)
			r.Get("/course/{courseID}/progress", h.GetCourseProgress)
		})
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	requireAuth, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(adminOnly)

		r.Post("/admin/courses/{courseID}/lessons", h.CreateLesson)
		r.Get("/admin/courses/{courseID}/lessons", h.ListLessons)
		r.Put("/admin/lessons/{lessonID}", h.UpdateLesson)
		r.Delete("/admin/lessons/{lessonID}", h.DeleteLesson)
	})
}

func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")
	ident := middleware.IdentityFrom(r.Context())

	lesson, err := h.service.GetLesson(r.Context(), lessonID, ident)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "lesson")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, lesson)
}

func (h *Handler) ListByCourseGated(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	ident := middleware.IdentityFrom(r.Context())

	lessons, err := h.service.ListForCourseGated(r.Context(), courseID, ident)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, lessons)
}

func (h *Handler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")
	userID := middleware.GetUserID(r.Context())

	progress, err := h.service.MarkComplete(r.Context(), userID, lessonID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "lesson")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{
		"lesson_id":    progress.LessonID,
		"course_id":    progress.CourseID,
		"completed_at": progress.CompletedAt,
	})
}

func (h *Handler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	userID := middleware.GetUserID(r.Context())

	progress, err := h.service.GetCourseProgress(r.Context(), userID, courseID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, progress)
}

func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	var req CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	lesson, err := h.service.CreateLesson(r.Context(), courseID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, toAdminResponse(lesson))
}

func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	lessons, err := h.service.ListByCourse(r.Context(), courseID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]AdminLessonResponse, 0, len(lessons))
	for i := range lessons {
		responses = append(responses, toAdminResponse(&lessons[i]))
	}

	core.OK(w, responses)
}

func (h *Handler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")

	var req UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	lesson, err := h.service.UpdateLesson(r.Context(), lessonID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "lesson")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toAdminResponse(lesson))
}

func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")

	if err := h.service.DeleteLesson(r.Context(), lessonID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "lesson")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
