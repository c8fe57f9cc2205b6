// internal/app/features/users/register.go
package users

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/password"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/domain/models"
)

type registerInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	RegNo      string `json:"regno"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Year       int    `json:"year"`
}

// HandleRegister creates an account. Uniqueness of regno and email is
// enforced by the store's unique indexes, not by pre-checks.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.RegNo = strings.TrimSpace(in.RegNo)
	switch {
	case in.Name == "":
		apierr.Write(w, h.Log, apierr.Invalid("missing_name", "name is required"))
		return
	case in.RegNo == "":
		apierr.Write(w, h.Log, apierr.Invalid("missing_regno", "registration number is required"))
		return
	case len(in.Password) < 8:
		apierr.Write(w, h.Log, apierr.Invalid("weak_password", "password must be at least 8 characters"))
		return
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_email", "email address is not valid"))
		return
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register user")
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Name:       in.Name,
		Email:      in.Email,
		RegNo:      in.RegNo,
		Password:   hash,
		Department: strings.TrimSpace(in.Department),
		Year:       in.Year,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			apierr.Write(w, h.Log, apierr.Conflict("duplicate_user", "registration number or email already in use"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}

	httpjson.Created(w, u)
}
