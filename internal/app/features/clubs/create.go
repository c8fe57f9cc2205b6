// internal/app/features/clubs/create.go
package clubs

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/campushub/internal/app/clubflow"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/blobstore"
	"github.com/campushub/campushub/internal/app/system/htmlsanitize"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
)

// maxImageBytes caps a club image upload.
const maxImageBytes = 5 << 20

type createClubInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	FacultyAdvisor []string `json:"faculty_advisor"`
}

// HandleCreate creates a club with the caller as first admin. Accepts
// either a JSON body or a multipart form; the multipart form may carry
// an optional club image that lands in blob storage.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.External(), h.Log, "create club")
	defer cancel()

	var in createClubInput
	var imageURL string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			apierr.Write(w, h.Log, apierr.Invalid("bad_multipart", "could not parse multipart form"))
			return
		}
		in.Name = r.FormValue("name")
		in.Description = r.FormValue("description")
		in.FacultyAdvisor = r.MultipartForm.Value["faculty_advisor"]

		url, err := h.storeClubImage(r)
		if err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
		imageURL = url
	} else {
		if err := httpjson.Decode(r, &in); err != nil {
			apierr.Write(w, h.Log, err)
			return
		}
	}

	advisors, err := parseAdvisorIDs(in.FacultyAdvisor)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_advisor_id", "faculty advisor ids must be valid object ids"))
		return
	}

	club, err := h.Flow.CreateClub(ctx, clubflow.ClubProfile{
		Name:           in.Name,
		Description:    htmlsanitize.Sanitize(in.Description),
		FacultyAdvisor: advisors,
		ImageURL:       imageURL,
	}, user.ID)
	if err != nil {
		apierr.Write(w, h.Log, flowErr(err))
		return
	}

	httpjson.Created(w, club)
}

// parseAdvisorIDs converts the faculty advisor hex ids from the request
// into object ids, skipping blank entries.
func parseAdvisorIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// storeClubImage uploads the optional "image" part and returns its
// public URL. A missing part is not an error.
func (h *Handler) storeClubImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", apierr.Invalid("bad_image", "could not read image part")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", apierr.Invalid("bad_image_type", "club image must be png, jpg, gif, or webp")
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.External(), h.Log, "store club image")
	defer cancel()

	key := fmt.Sprintf("clubs/%s_%s%s",
		time.Now().UTC().Format("20060102_150405"),
		strings.Split(uuid.NewString(), "-")[0], ext)
	if err := h.Blobs.Put(ctx, key, file, blobstore.PutOptions{
		ContentType: header.Header.Get("Content-Type"),
	}); err != nil {
		return "", apierr.Internal(fmt.Errorf("store club image %q: %w", key, err))
	}
	return h.Blobs.URL(key), nil
}
