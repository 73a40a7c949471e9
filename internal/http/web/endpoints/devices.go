package endpoints

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/console"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

type DeviceLookups struct {
	Agencies    []model.Agency
	AgencyIndex console.Index[model.Agency]
}

type devicePages struct {
	*screen[model.Device, console.DeviceForm]
	client *backend.Client
}

// DeviceModule mounts the /devices screen and the quick status transitions.
func DeviceModule(client *backend.Client) web.Module {
	p := &devicePages{
		client: client,
		screen: &screen[model.Device, console.DeviceForm]{
			path:     "/devices",
			title:    "Dispositivos",
			template: "devices.html",
			missing:  "Dispositivo não encontrado",
			newCtl:   func() *console.Devices { return console.NewDevices(client.Devices()) },
			label:    func(d model.Device) string { return d.Name },
			bind: func(ctx *gin.Context, current console.DeviceForm) (console.DeviceForm, error) {
				var form packets.DeviceForm
				if err := ctx.ShouldBind(&form); err != nil {
					return console.DeviceForm{}, err
				}
				return form.Console(current), nil
			},
			lookups: func(ctx context.Context, creds *backend.Credentials) any {
				agencies, err := client.Agencies().List(ctx, creds)
				if err != nil {
					log.Warn().Err(err).Msg("could not load agencies for devices")
				}
				return DeviceLookups{Agencies: agencies, AgencyIndex: console.AgencyIndex(agencies)}
			},
		},
	}
	return web.ModuleFunc(func(c *web.Controller) {
		p.mount(c)
		c.POST("/devices/:id/status", p.setStatus)
	})
}

func (p *devicePages) setStatus(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	id, pageErr := paramID(ctx)
	if pageErr != nil {
		return nil, pageErr
	}
	var form packets.StatusForm
	_ = ctx.ShouldBind(&form)

	ctl := p.newCtl()
	if !console.SetStatus(ctx.Request.Context(), s.Credentials(), p.client, ctl, id, model.DeviceStatus(form.Status)) {
		failure := ctl.Error
		ctl.Load(ctx.Request.Context(), s.Credentials())
		ctl.Error = failure
	}
	return p.page(ctx, s, ctl), nil
}
