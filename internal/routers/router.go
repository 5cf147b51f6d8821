// Package routers assembles the public API router and the private
// ops router.
package routers

import (
	"time"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"

	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/middleware"
	"github.com/aigility/cloud-vault-service/internal/routers/api_router"
	"github.com/aigility/cloud-vault-service/internal/routers/websocket_router"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/limiter"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
)

// NewRouter builds the public API engine, including the websocket
// endpoint wired as the live change notifier.
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()

	tokenParser := func(token string) (*pkgapp.UserEntity, error) {
		return pkgapp.ParseTokenWithKey(token, cfg.Security.AuthTokenKey)
	}

	wss := pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:    true,
			ParallelEnabled:     true,
			ParallelGolimit:     8,
			Recovery:            gws.Recovery,
			PermessageDeflate:   gws.PermessageDeflate{Enabled: true},
			ReadMaxPayloadSize:  1024 * 1024 * 64,
			WriteMaxPayloadSize: 1024 * 1024 * 64,
		},
	}, tokenParser, appContainer.Logger())

	itemsWS := websocket_router.NewItemsWSHandler(appContainer, wss)
	wss.Use(websocket_router.ActionItemsList, itemsWS.ItemsList)
	wss.Use(websocket_router.ActionUserUsage, itemsWS.UserUsage)
	wss.UserDataSelectUse(itemsWS.UserInfo)

	// from here on every successful mutation reaches open sessions
	appContainer.SetChangeNotifier(itemsWS)

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		userHandler := api_router.NewUserHandler(appContainer)
		fileHandler := api_router.NewFileHandler(appContainer)
		folderHandler := api_router.NewFolderHandler(appContainer)
		itemHandler := api_router.NewItemHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/user/sync", wss.Run())

		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)

		authorized := api.Group("")
		authorized.Use(middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		{
			authorized.POST("/user/change_password", userHandler.ChangePassword)
			authorized.POST("/user/change_email", userHandler.ChangeEmail)
			authorized.GET("/user/info", userHandler.Info)
			authorized.GET("/user/usage", userHandler.Usage)

			authorized.POST("/file", fileHandler.Upload)
			authorized.GET("/file/content", fileHandler.Download)
			authorized.DELETE("/file", fileHandler.Delete)
			authorized.PUT("/file/favorite", fileHandler.ToggleFavorite)
			authorized.PUT("/file/shared", fileHandler.ToggleShared)
			authorized.GET("/files", fileHandler.List)

			authorized.POST("/folder", folderHandler.Create)
			authorized.DELETE("/folder", folderHandler.Delete)

			authorized.GET("/items", itemHandler.List)

			authorized.GET("/system/status", healthHandler.Status)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
