package endpoints

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const agencyNotFound = "Agency not found"

type AgencyController struct {
	store db.Store
}

// AgencyModule mounts the authenticated /agencies endpoints.
func AgencyModule(store db.Store) api.Module {
	ctl := &AgencyController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/agencies", ctl.listAgencies)
		c.POST("/agencies", ctl.createAgency)
		c.GET("/agencies/:id", ctl.getAgency)
		c.PUT("/agencies/:id", ctl.updateAgency)
		c.DELETE("/agencies/:id", ctl.deleteAgency)
	})
}

func (a *AgencyController) listAgencies(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	all, err := a.store.ListAgencies(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("could not list agencies")
	}
	return all, nil
}

func (a *AgencyController) getAgency(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	agency, err := a.store.GetAgency(ctx.Request.Context(), id)
	if err != nil {
		return nil, storeError(err, agencyNotFound)
	}
	return agency, nil
}

func (a *AgencyController) createAgency(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.AgencyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BindError(err)
	}
	agency, err := a.store.CreateAgency(ctx.Request.Context(), request.Model())
	if err != nil {
		return nil, storeError(err, agencyNotFound)
	}
	log.Info().Int("agency_id", agency.ID).Str("by", user.Username).Msg("[agencies] created")
	return api.Created(agency), nil
}

func (a *AgencyController) updateAgency(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.AgencyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BindError(err)
	}
	agency, err := a.store.UpdateAgency(ctx.Request.Context(), id, request.Model())
	if err != nil {
		return nil, storeError(err, agencyNotFound)
	}
	return agency, nil
}

func (a *AgencyController) deleteAgency(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	err := a.store.DeleteAgency(ctx.Request.Context(), id)
	if errors.Is(err, db.ErrInUse) {
		return nil, api.BadRequest("Cannot delete agency with associated devices or schedules")
	}
	if err != nil {
		return nil, storeError(err, agencyNotFound)
	}
	log.Info().Int("agency_id", id).Str("by", user.Username).Msg("[agencies] deleted")
	return packets.MessageResponse{Message: "Agency deleted successfully"}, nil
}
