// internal/app/features/courses/courses.go
package courses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	coursestore "github.com/campushub/campushub/internal/app/store/courses"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/domain/models"
)

type createCourseInput struct {
	CourseCode string `json:"course_code"`
	Name       string `json:"name"`
	Faculty    string `json:"faculty"`
	Credits    int    `json:"credits"`
}

// HandleList returns all courses.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list courses")
	defer cancel()

	courses, err := h.Courses.List(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, courses)
}

// HandleCreate adds a course offering. Course codes are unique; the
// index decides conflicts.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createCourseInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if strings.TrimSpace(in.CourseCode) == "" || strings.TrimSpace(in.Name) == "" {
		apierr.Write(w, h.Log, apierr.Invalid("missing_fields", "course_code and name are required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create course")
	defer cancel()

	course, err := h.Courses.Create(ctx, models.Course{
		CourseCode: in.CourseCode,
		Name:       in.Name,
		Faculty:    strings.TrimSpace(in.Faculty),
		Credits:    in.Credits,
	})
	if err != nil {
		if errors.Is(err, coursestore.ErrDuplicateCode) {
			apierr.Write(w, h.Log, apierr.Conflict("duplicate_course_code", "a course with this code already exists"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.Created(w, course)
}

// HandleView returns a single course.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	courseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_course_id", "course id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view course")
	defer cancel()

	course, err := h.Courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, coursestore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("course_not_found", "course does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, course)
}

// HandleDelete removes a course.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	courseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_course_id", "course id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete course")
	defer cancel()

	if err := h.Courses.Delete(ctx, courseID); err != nil {
		if errors.Is(err, coursestore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("course_not_found", "course does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.NoContent(w)
}

// HandleRegister adds the signed-in user to a course roster. Repeat
// registration is a no-op, not an error.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	courseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_course_id", "course id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register for course")
	defer cancel()

	if err := h.Courses.Register(ctx, courseID, user.ID); err != nil {
		if errors.Is(err, coursestore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("course_not_found", "course does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, map[string]string{"status": "registered"})
}

// HandleRegistered returns the signed-in user's registered courses.
func (h *Handler) HandleRegistered(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list registered courses")
	defer cancel()

	courses, err := h.Courses.ListRegistered(ctx, user.ID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, courses)
}
