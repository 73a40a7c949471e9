package web

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/signage-console/internal/http/middleware"
)

// Module attaches a group of pages to a Controller.
type Module interface {
	Mount(c *Controller)
}

type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// Controller is the router group pages are registered on.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFunc) {
	c.Group.GET(path, Resolve(h))
}

func (c *Controller) POST(path string, h HandlerFunc) {
	c.Group.POST(path, Resolve(h))
}

type GroupConfig struct {
	Prefix string
	// Protected puts the route guard in front of every page.
	Protected bool
}

// MountGroup mounts modules under a prefix, guarded when cfg.Protected is set.
func MountGroup(parent *gin.RouterGroup, cfg GroupConfig, modules ...Module) {
	grp := parent.Group(cfg.Prefix)
	if cfg.Protected {
		grp.Use(middleware.RequireSession(Loading))
	}
	controller := &Controller{Group: grp}
	for _, m := range modules {
		m.Mount(controller)
	}
}
