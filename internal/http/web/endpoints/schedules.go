package endpoints

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/console"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

// ScheduleLookups feeds the content and agency selects and the card labels.
type ScheduleLookups struct {
	Contents     []model.Content
	Agencies     []model.Agency
	ContentIndex console.Index[model.Content]
	AgencyIndex  console.Index[model.Agency]
}

// ScheduleModule mounts the /schedules screen.
func ScheduleModule(client *backend.Client) web.Module {
	sc := &screen[model.Schedule, console.ScheduleForm]{
		path:     "/schedules",
		title:    "Agendamentos",
		template: "schedules.html",
		missing:  "Agendamento não encontrado",
		newCtl:   func() *console.Schedules { return console.NewSchedules(client.Schedules()) },
		label: func(s model.Schedule) string {
			return s.StartTime + " - " + s.EndTime + " (" + console.DaysText(s.DaysOfWeek) + ")"
		},
		bind: func(ctx *gin.Context, _ console.ScheduleForm) (console.ScheduleForm, error) {
			var form packets.ScheduleForm
			if err := ctx.ShouldBind(&form); err != nil {
				return console.ScheduleForm{}, err
			}
			return form.Console(), nil
		},
		lookups: func(ctx context.Context, creds *backend.Credentials) any {
			return scheduleLookups(ctx, creds, client)
		},
	}
	return web.ModuleFunc(sc.mount)
}

// scheduleLookups loads contents and agencies together. A failed fetch leaves its list empty,
// so references render as not found.
func scheduleLookups(ctx context.Context, creds *backend.Credentials, client *backend.Client) ScheduleLookups {
	var out ScheduleLookups
	var g errgroup.Group
	g.Go(func() error {
		items, err := client.Contents().List(ctx, creds)
		if err != nil {
			log.Warn().Err(err).Msg("could not load contents for schedules")
			return nil
		}
		out.Contents = items
		return nil
	})
	g.Go(func() error {
		items, err := client.Agencies().List(ctx, creds)
		if err != nil {
			log.Warn().Err(err).Msg("could not load agencies for schedules")
			return nil
		}
		out.Agencies = items
		return nil
	})
	_ = g.Wait()
	out.ContentIndex = console.ContentIndex(out.Contents)
	out.AgencyIndex = console.AgencyIndex(out.Agencies)
	return out
}
