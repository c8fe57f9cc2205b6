// internal/app/features/files/files.go
package files

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	filestore "github.com/campushub/campushub/internal/app/store/files"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
)

// HandleList returns every uploaded file record, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list files")
	defer cancel()

	files, err := h.Files.List(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, files)
}

// HandleListByCourse returns a course's files, newest first.
func (h *Handler) HandleListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "courseID"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_course_id", "course id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list course files")
	defer cancel()

	files, err := h.Files.ListByCourse(ctx, courseID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, files)
}

// HandleDelete removes a file's metadata record and its blob. Any
// signed-in user may delete; file records carry no ownership rule. The
// metadata record goes first so the file disappears from listings even
// if the blob delete fails.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	fileID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_file_id", "file id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.External(), h.Log, "delete course file")
	defer cancel()

	meta, err := h.Files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("file_not_found", "file does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	if err := h.Files.Delete(ctx, fileID); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("file_not_found", "file does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	if err := h.Blobs.Delete(ctx, meta.StorageKey); err != nil {
		h.Log.Warn("blob delete failed after metadata delete",
			zap.String("key", meta.StorageKey), zap.Error(err))
	}
	httpjson.NoContent(w)
}
