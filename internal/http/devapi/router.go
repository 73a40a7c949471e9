// Package devapi assembles the reference REST backend the console talks to.
package devapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/signage-console/internal/http/api/admin/endpoints"
	authapi "github.com/Nixie-Tech-LLC/signage-console/internal/http/api/auth/endpoints"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/signage-console/internal/notify"
	"github.com/Nixie-Tech-LLC/signage-console/internal/storage"
)

// Prefix is where every endpoint lives.
const Prefix = "/api"

type Deps struct {
	Store       db.Store
	Storage     storage.Storage
	Notifier    notify.Notifier
	JWTSecret   string
	TokenExpiry time.Duration
	CORSOrigins []string
	// UploadDir is served under /uploads when set.
	UploadDir string
}

// NewRouter builds the gin engine with the auth, agency, content, schedule and device modules.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(corsConfig(deps.CORSOrigins)))

	api.MountGroup(r, api.GroupConfig{Prefix: Prefix},
		authapi.AuthModule(deps.JWTSecret, deps.TokenExpiry, deps.Store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    Prefix,
		Auth:      true,
		SecretKey: deps.JWTSecret,
		Users:     deps.Store,
	},
		adminapi.AgencyModule(deps.Store),
		adminapi.ContentModule(deps.Store, deps.Storage),
		adminapi.ScheduleModule(deps.Store),
		adminapi.DeviceModule(deps.Store, deps.Notifier),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.UploadDir != "" {
		r.Static("/uploads", deps.UploadDir)
	}
	return r
}

// corsConfig allows the configured origins, or any origin without credentials when none are set.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
