package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

type DeviceForm struct {
	Name       string
	AgencyID   int
	IPAddress  string
	MACAddress string
	Status     model.DeviceStatus
	Version    string
	// carried through edits untouched
	LastSeen *time.Time
}

type Devices = Controller[model.Device, DeviceForm]

var deviceMessages = Messages{
	LoadError:     "Erro ao carregar dispositivos",
	SaveError:     "Erro ao salvar dispositivo",
	DeleteError:   "Erro ao excluir dispositivo",
	Created:       "Dispositivo criado com sucesso!",
	Updated:       "Dispositivo atualizado com sucesso!",
	Deleted:       "Dispositivo excluído com sucesso!",
	ConfirmDelete: "Tem certeza que deseja excluir este dispositivo?",
}

const (
	statusError    = "Erro ao atualizar status do dispositivo"
	DefaultVersion = "1.0.0"
)

func NewDevices(api Endpoint[model.Device]) *Devices {
	return NewController(api, Config[model.Device, DeviceForm]{
		Name:     "devices",
		Messages: deviceMessages,
		NewForm: func() DeviceForm {
			return DeviceForm{Status: model.DeviceOffline, Version: DefaultVersion}
		},
		FormFrom: func(d model.Device) DeviceForm {
			f := DeviceForm{
				Name:      d.Name,
				AgencyID:  d.AgencyID,
				IPAddress: d.IPAddress,
				Status:    d.Status,
				Version:   d.Version,
				LastSeen:  d.LastSeen,
			}
			if d.MACAddress != nil {
				f.MACAddress = *d.MACAddress
			}
			return f
		},
		Payload: devicePayload,
	})
}

func devicePayload(f DeviceForm) (model.Device, error) {
	d := model.Device{
		Name:      strings.TrimSpace(f.Name),
		AgencyID:  f.AgencyID,
		IPAddress: strings.TrimSpace(f.IPAddress),
		Status:    f.Status,
		LastSeen:  f.LastSeen,
		Version:   strings.TrimSpace(f.Version),
	}
	if mac := strings.TrimSpace(f.MACAddress); mac != "" {
		d.MACAddress = &mac
	}
	switch {
	case d.Name == "":
		return d, invalid("Informe o nome do dispositivo")
	case d.AgencyID == 0:
		return d, invalid("Selecione uma agência")
	case !d.Status.Valid():
		return d, invalid("Status inválido")
	}
	return d, nil
}

// StatusAction is one quick status button on a device card.
type StatusAction struct {
	Status   model.DeviceStatus
	Label    string
	Variant  string
	Disabled bool
}

var quickStatuses = []StatusAction{
	{Status: model.DeviceOnline, Label: "Online", Variant: "outline-success"},
	{Status: model.DeviceOffline, Label: "Offline", Variant: "outline-secondary"},
	{Status: model.DeviceMaintenance, Label: "Manutenção", Variant: "outline-warning"},
}

// StatusActions lists the quick transitions, the current status disabled. Error is never offered.
func StatusActions(d model.Device) []StatusAction {
	out := make([]StatusAction, len(quickStatuses))
	for i, a := range quickStatuses {
		a.Disabled = a.Status == d.Status
		out[i] = a
	}
	return out
}

// Badge is the status pill of a device card.
type Badge struct {
	Variant string
	Text    string
}

// StatusBadge maps unknown statuses to the offline badge.
func StatusBadge(s model.DeviceStatus) Badge {
	switch s {
	case model.DeviceOnline:
		return Badge{Variant: "success", Text: "Online"}
	case model.DeviceError:
		return Badge{Variant: "danger", Text: "Erro"}
	case model.DeviceMaintenance:
		return Badge{Variant: "warning", Text: "Manutenção"}
	}
	return Badge{Variant: "secondary", Text: "Offline"}
}

// LastSeenText formats a heartbeat for display.
func LastSeenText(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "Nunca"
	}
	return t.Local().Format("02/01/2006 15:04:05")
}

// StatusSetter is the narrow status transition endpoint.
type StatusSetter interface {
	SetDeviceStatus(ctx context.Context, creds *backend.Credentials, id int, status model.DeviceStatus) error
}

// SetStatus applies a quick transition on the devices screen and refetches on success.
func SetStatus(ctx context.Context, creds *backend.Credentials, api StatusSetter, ctl *Devices, id int, status model.DeviceStatus) bool {
	ctl.Error, ctl.Success = "", ""
	if !status.Valid() {
		ctl.Error = statusError
		return false
	}
	if err := api.SetDeviceStatus(ctx, creds, id, status); err != nil {
		log.Error().Err(err).Int("device_id", id).Str("status", string(status)).Msg("could not update device status")
		ctl.Error = backend.Detail(err, statusError)
		return false
	}
	ctl.Success = fmt.Sprintf("Status do dispositivo atualizado para %s", status)
	ctl.Load(ctx, creds)
	return true
}
