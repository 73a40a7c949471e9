package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/console"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

// AgencyModule mounts the /agencies screen.
func AgencyModule(client *backend.Client) web.Module {
	sc := &screen[model.Agency, console.AgencyForm]{
		path:     "/agencies",
		title:    "Agências",
		template: "agencies.html",
		missing:  console.AgencyMissing,
		newCtl:   func() *console.Agencies { return console.NewAgencies(client.Agencies()) },
		label:    func(a model.Agency) string { return a.Name },
		bind: func(ctx *gin.Context, _ console.AgencyForm) (console.AgencyForm, error) {
			var form packets.AgencyForm
			if err := ctx.ShouldBind(&form); err != nil {
				return console.AgencyForm{}, err
			}
			return form.Console(), nil
		},
	}
	return web.ModuleFunc(sc.mount)
}
