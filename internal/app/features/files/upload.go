// internal/app/features/files/upload.go
package files

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	coursestore "github.com/campushub/campushub/internal/app/store/courses"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/blobstore"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/domain/models"
)

// maxUploadBytes caps a single PDF upload.
const maxUploadBytes = 20 << 20

// HandleUpload accepts a multipart form with a PDF under "file" plus a
// "course_id" field and optional "subject" and "description". The blob
// is stored first; the metadata record is only written once the blob
// write succeeds.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_multipart", "could not parse multipart form"))
		return
	}

	courseID, err := primitive.ObjectIDFromHex(strings.TrimSpace(r.FormValue("course_id")))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_course_id", "course_id is not a valid object id"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("missing_file", "a file part named 'file' is required"))
		return
	}
	defer file.Close()

	if header.Size == 0 {
		apierr.Write(w, h.Log, apierr.Invalid("empty_file", "uploaded file is empty"))
		return
	}
	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		apierr.Write(w, h.Log, apierr.Invalid("not_pdf", "only PDF files are accepted"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.External(), h.Log, "upload course file")
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

	key := storageKey(course.Name, header.Filename)
	if err := h.Blobs.Put(ctx, key, file, blobstore.PutOptions{
		ContentType: "application/pdf",
		Metadata:    map[string]string{"uploader": user.RegNo},
	}); err != nil {
		apierr.Write(w, h.Log, apierr.Internal(fmt.Errorf("store blob %q: %w", key, err)))
		return
	}

	meta, err := h.Files.Create(ctx, models.FileMetadata{
		CourseID:    course.ID,
		UploaderID:  user.ID,
		FileName:    header.Filename,
		StorageKey:  key,
		URL:         h.Blobs.URL(key),
		Size:        header.Size,
		Subject:     strings.TrimSpace(r.FormValue("subject")),
		Description: strings.TrimSpace(r.FormValue("description")),
	})
	if err != nil {
		// The blob is orphaned if this fails; try to clean it up.
		if derr := h.Blobs.Delete(ctx, key); derr != nil {
			h.Log.Warn("orphaned blob after metadata insert failure",
				zap.String("key", key), zap.Error(derr))
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}

	h.Log.Info("course file uploaded",
		zap.String("course", course.CourseCode),
		zap.String("key", key),
		zap.Int64("size", header.Size))
	httpjson.Created(w, meta)
}

// isPDF requires a .pdf extension and, when the part declares a content
// type, that it be application/pdf. A name with no extension is accepted
// on the content type alone.
func isPDF(name, contentType string) bool {
	if contentType != "" && contentType != "application/pdf" {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return true
	case "":
		return contentType == "application/pdf"
	default:
		return false
	}
}

// storageKey builds the blob key: the course name as a path prefix,
// then a UTC timestamp and a short random token so same-second uploads
// of the same file never collide.
func storageKey(courseName, fileName string) string {
	ts := time.Now().UTC().Format("20060102_150405")
	token := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s/%s_%s_%s", slug(courseName), ts, token, sanitizeFileName(fileName))
}

// slug lowercases a course name and collapses anything non-alphanumeric
// to single hyphens.
func slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "course"
	}
	return out
}

// sanitizeFileName strips path components and replaces characters that
// are unsafe in object keys.
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return "file.pdf"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file.pdf"
	}
	return b.String()
}
