// internal/app/features/users/login.go
package users

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/password"
	"github.com/campushub/campushub/internal/app/system/timeouts"
)

type loginInput struct {
	RegNo    string `json:"regno"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and sets the session cookie. The
// response body carries the token too, for non-browser clients.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if strings.TrimSpace(in.RegNo) == "" || in.Password == "" {
		apierr.Write(w, h.Log, apierr.Invalid("missing_credentials", "regno and password are required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, err := h.Users.GetByRegNo(ctx, in.RegNo)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			// Same response as a bad password; do not leak which part failed.
			apierr.Write(w, h.Log, apierr.Unauthenticated("bad_credentials", "invalid registration number or password"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	if !password.Verify(u.Password, in.Password) {
		apierr.Write(w, h.Log, apierr.Unauthenticated("bad_credentials", "invalid registration number or password"))
		return
	}

	token, err := h.TM.Issue(u.RegNo, u.Email)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	h.TM.SetCookie(w, token)

	h.Log.Info("user signed in", zap.String("regno", u.RegNo))
	httpjson.OK(w, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         u,
	})
}

// HandleLogout clears the session cookie. The JWT itself stays valid
// until expiry; logout is a client-side contract.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.TM.ClearCookie(w)
	httpjson.OK(w, map[string]string{"status": "signed_out"})
}
