package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithUser injects a session user into the request context, bypassing
// the token middleware.
func WithUser(r *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		RegNo: u.RegNo,
	})
}

// AnonymousUser returns a session user not backed by any document,
// for handlers that only need an authenticated identity.
func AnonymousUser() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID(),
		Name:  "Test User",
		Email: "test@test.edu",
		RegNo: "21BCE0000",
	}
}
