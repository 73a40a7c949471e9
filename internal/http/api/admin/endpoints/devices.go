package endpoints

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
	"github.com/Nixie-Tech-LLC/signage-console/internal/notify"
)

const (
	deviceNotFound = "Device not found"
	duplicateIP    = "Device with this IP address already exists"
)

type DeviceController struct {
	store    db.Store
	notifier notify.Notifier
	now      func() time.Time
}

// DeviceModule mounts the authenticated /devices endpoints. Status changes are published to notifier.
func DeviceModule(store db.Store, notifier notify.Notifier) api.Module {
	ctl := &DeviceController{store: store, notifier: notifier, now: time.Now}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/devices", ctl.listDevices)
		c.POST("/devices", ctl.createDevice)
		c.GET("/devices/:id", ctl.getDevice)
		c.PUT("/devices/:id", ctl.updateDevice)
		c.DELETE("/devices/:id", ctl.deleteDevice)
		c.PUT("/devices/:id/status", ctl.updateStatus)
	})
}

func (d *DeviceController) listDevices(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	all, err := d.store.ListDevices(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("could not list devices")
	}
	return all, nil
}

func (d *DeviceController) getDevice(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	device, err := d.store.GetDevice(ctx.Request.Context(), id)
	if err != nil {
		return nil, storeError(err, deviceNotFound)
	}
	return device, nil
}

func (d *DeviceController) bind(ctx *gin.Context) (model.Device, *api.APIError) {
	var request packets.DeviceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return model.Device{}, api.BindError(err)
	}
	if _, err := d.store.GetAgency(ctx.Request.Context(), request.AgencyID); err != nil {
		return model.Device{}, storeError(err, agencyNotFound)
	}
	return request.Model(), nil
}

func (d *DeviceController) createDevice(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	device, apiErr := d.bind(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	created, err := d.store.CreateDevice(ctx.Request.Context(), device)
	if errors.Is(err, db.ErrDuplicate) {
		return nil, api.BadRequest(duplicateIP)
	}
	if err != nil {
		return nil, storeError(err, deviceNotFound)
	}
	return api.Created(created), nil
}

func (d *DeviceController) updateDevice(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	device, apiErr := d.bind(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	updated, err := d.store.UpdateDevice(ctx.Request.Context(), id, device)
	if errors.Is(err, db.ErrDuplicate) {
		return nil, api.BadRequest(duplicateIP)
	}
	if err != nil {
		return nil, storeError(err, deviceNotFound)
	}
	return updated, nil
}

func (d *DeviceController) deleteDevice(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := d.store.DeleteDevice(ctx.Request.Context(), id); err != nil {
		return nil, storeError(err, deviceNotFound)
	}
	return packets.MessageResponse{Message: "Device deleted successfully"}, nil
}

// updateStatus changes only the status, stamps last_seen and notifies the device.
func (d *DeviceController) updateStatus(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.StatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BindError(err)
	}

	device, err := d.store.SetDeviceStatus(ctx.Request.Context(), id, model.DeviceStatus(request.Status), d.now().UTC())
	if err != nil {
		return nil, storeError(err, deviceNotFound)
	}

	if err := d.notifier.DeviceStatus(ctx.Request.Context(), device); err != nil {
		log.Warn().Err(err).Int("device_id", id).Msg("[devices] status notification failed")
	}
	log.Info().Int("device_id", id).Str("status", request.Status).Str("by", user.Username).Msg("[devices] status changed")
	return device, nil
}
