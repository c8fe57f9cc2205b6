// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/campushub/campushub/internal/app/clubflow"
	clubsfeature "github.com/campushub/campushub/internal/app/features/clubs"
	commentsfeature "github.com/campushub/campushub/internal/app/features/comments"
	coursesfeature "github.com/campushub/campushub/internal/app/features/courses"
	filesfeature "github.com/campushub/campushub/internal/app/features/files"
	healthfeature "github.com/campushub/campushub/internal/app/features/health"
	postsfeature "github.com/campushub/campushub/internal/app/features/posts"
	usersfeature "github.com/campushub/campushub/internal/app/features/users"
	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/blobstore"
	"github.com/campushub/campushub/internal/app/system/moderation"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. CampusHub builds the token
// manager, the club workflow engine, the moderation gate, and the blob
// store, then mounts the feature routers under /api/v1.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	tm, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenTTL, appCfg.CookieDomain, secure, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request, so
	// deleted accounts lose access as soon as the record is gone.
	tm.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	flow := clubflow.New(deps.MongoClient, deps.MongoDatabase, logger)
	gate := buildGate(appCfg, logger)

	blobs, err := buildBlobStore(appCfg)
	if err != nil {
		logger.Error("blob store init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads the session user into context when
	// a valid token is present. Handlers read it via auth.CurrentUser.
	r.Use(tm.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api/v1", func(api chi.Router) {
		usersHandler := usersfeature.NewHandler(deps.MongoDatabase, tm, flow, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler, tm))

		postsHandler := postsfeature.NewHandler(deps.MongoDatabase, gate, logger)
		api.Mount("/posts", postsfeature.Routes(postsHandler, tm))

		// Comment routes live at this level: listing and creation are
		// nested under /posts/{postID}, deletion under /comments/{id}.
		commentsHandler := commentsfeature.NewHandler(deps.MongoDatabase, gate, logger)
		commentsfeature.Routes(commentsHandler, tm)(api)

		clubsHandler := clubsfeature.NewHandler(deps.MongoDatabase, flow, gate, blobs, logger)
		api.Mount("/clubs", clubsfeature.Routes(clubsHandler, tm))

		coursesHandler := coursesfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/courses", coursesfeature.Routes(coursesHandler, tm))

		filesHandler := filesfeature.NewHandler(deps.MongoDatabase, logger, blobs)
		api.Mount("/files", filesfeature.Routes(filesHandler, tm))
	})

	return r, nil
}

// buildGate assembles the moderation gate from config. A blank
// moderation URL disables the gate entirely.
func buildGate(appCfg AppConfig, logger *zap.Logger) *moderation.Gate {
	if appCfg.ModerationURL == "" {
		logger.Warn("moderation_url not set; content gate disabled")
		return moderation.NewGate(nil, false, logger)
	}
	cls := moderation.NewGeminiClassifier(appCfg.ModerationURL, appCfg.ModerationModel, appCfg.ModerationAPIKey, nil)
	return moderation.NewGate(cls, appCfg.ModerationFailClosed, logger)
}

// buildBlobStore selects the storage backend from config. ValidateConfig
// has already rejected unknown storage types.
func buildBlobStore(appCfg AppConfig) (blobstore.Store, error) {
	if appCfg.StorageType == "s3" {
		return blobstore.NewS3(appCfg.StorageS3Region, appCfg.StorageS3Bucket)
	}
	return blobstore.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
}
