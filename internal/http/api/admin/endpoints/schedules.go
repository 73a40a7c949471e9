package endpoints

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const scheduleNotFound = "Schedule not found"

type ScheduleController struct {
	store db.Store
}

// ScheduleModule mounts the authenticated /schedules endpoints.
func ScheduleModule(store db.Store) api.Module {
	ctl := &ScheduleController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)
	})
}

func (s *ScheduleController) listSchedules(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	all, err := s.store.ListSchedules(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("could not list schedules")
	}
	return all, nil
}

func (s *ScheduleController) getSchedule(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	sc, err := s.store.GetSchedule(ctx.Request.Context(), id)
	if err != nil {
		return nil, storeError(err, scheduleNotFound)
	}
	return sc, nil
}

// bind reads and checks a schedule body, including that its content and agency exist.
func (s *ScheduleController) bind(ctx *gin.Context) (model.Schedule, *api.APIError) {
	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return model.Schedule{}, api.BindError(err)
	}
	if !request.ValidDays() {
		return model.Schedule{}, api.BadRequest("days_of_week must list weekday codes 0-6")
	}
	if apiErr := s.references(ctx.Request.Context(), request.ContentID, request.AgencyID); apiErr != nil {
		return model.Schedule{}, apiErr
	}
	return request.Model(), nil
}

func (s *ScheduleController) references(ctx context.Context, contentID, agencyID int) *api.APIError {
	if _, err := s.store.GetContent(ctx, contentID); err != nil {
		return storeError(err, contentNotFound)
	}
	if _, err := s.store.GetAgency(ctx, agencyID); err != nil {
		return storeError(err, agencyNotFound)
	}
	return nil
}

func (s *ScheduleController) createSchedule(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	sc, apiErr := s.bind(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	created, err := s.store.CreateSchedule(ctx.Request.Context(), sc)
	if err != nil {
		return nil, storeError(err, scheduleNotFound)
	}
	return api.Created(created), nil
}

func (s *ScheduleController) updateSchedule(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	sc, apiErr := s.bind(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	updated, err := s.store.UpdateSchedule(ctx.Request.Context(), id, sc)
	if err != nil {
		return nil, storeError(err, scheduleNotFound)
	}
	return updated, nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.store.DeleteSchedule(ctx.Request.Context(), id); err != nil {
		return nil, storeError(err, scheduleNotFound)
	}
	return packets.MessageResponse{Message: "Schedule deleted successfully"}, nil
}
