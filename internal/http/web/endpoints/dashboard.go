package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/console"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

// DashboardModule mounts /dashboard.
func DashboardModule(client *backend.Client) web.Module {
	sources := console.BackendSources(client)
	return web.ModuleFunc(func(c *web.Controller) {
		c.GET("/dashboard", func(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
			d := console.LoadDashboard(ctx.Request.Context(), s.Credentials(), sources)
			if d.Expired {
				return web.Expired(ctx, s), nil
			}
			return web.Page{
				Template: "dashboard.html",
				Title:    "Dashboard",
				Active:   "dashboard",
				Error:    d.Error,
				Data:     d,
			}, nil
		})
	})
}
