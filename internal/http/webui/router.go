// Package webui assembles the console's gin engine.
package webui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web/endpoints"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

type Deps struct {
	Client  *backend.Client
	Manager *session.Manager
	Cookies sessions.Store
}

// NewRouter mounts the public auth pages, the guarded screens, static assets and /healthz.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.SetHTMLTemplate(web.LoadTemplates())

	r.StaticFS("/static", web.Static())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": deps.Manager.Len()})
	})

	pages := r.Group("")
	pages.Use(web.Sessions(deps.Cookies, deps.Manager))
	pages.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, endpoints.HomePath)
	})

	web.MountGroup(pages, web.GroupConfig{}, endpoints.AuthModule())
	web.MountGroup(pages, web.GroupConfig{Protected: true},
		endpoints.DashboardModule(deps.Client),
		endpoints.AgencyModule(deps.Client),
		endpoints.ContentModule(deps.Client),
		endpoints.ScheduleModule(deps.Client),
		endpoints.DeviceModule(deps.Client),
	)
	return r
}
