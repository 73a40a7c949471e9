package console

import (
	"strings"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

type AgencyForm struct {
	Name               string
	IPAddress          string
	Orientation        model.Orientation
	HibernationEnabled bool
	HibernationStart   string
	HibernationEnd     string
}

type Agencies = Controller[model.Agency, AgencyForm]

var agencyMessages = Messages{
	LoadError:     "Erro ao carregar agências",
	SaveError:     "Erro ao salvar agência",
	DeleteError:   "Erro ao excluir agência",
	Created:       "Agência criada com sucesso!",
	Updated:       "Agência atualizada com sucesso!",
	Deleted:       "Agência excluída com sucesso!",
	ConfirmDelete: "Tem certeza que deseja excluir esta agência?",
}

// AgencyMissing labels a reference to an agency that is not in the loaded list.
const AgencyMissing = "Agência não encontrada"

func NewAgencies(api Endpoint[model.Agency]) *Agencies {
	return NewController(api, Config[model.Agency, AgencyForm]{
		Name:     "agencies",
		Messages: agencyMessages,
		NewForm: func() AgencyForm {
			return AgencyForm{
				Orientation:        model.OrientationHorizontal,
				HibernationEnabled: true,
				HibernationStart:   "18:00",
				HibernationEnd:     "08:00",
			}
		},
		FormFrom: func(a model.Agency) AgencyForm {
			return AgencyForm{
				Name:               a.Name,
				IPAddress:          a.IPAddress,
				Orientation:        a.Orientation,
				HibernationEnabled: a.HibernationEnabled,
				HibernationStart:   a.HibernationStart,
				HibernationEnd:     a.HibernationEnd,
			}
		},
		Payload: agencyPayload,
	})
}

func agencyPayload(f AgencyForm) (model.Agency, error) {
	if strings.TrimSpace(f.Name) == "" {
		return model.Agency{}, invalid("Informe o nome da agência")
	}
	orientation := f.Orientation
	if orientation != model.OrientationVertical {
		orientation = model.OrientationHorizontal
	}
	// the window is sent as-is even when hibernation is off
	return model.Agency{
		Name:               strings.TrimSpace(f.Name),
		IPAddress:          strings.TrimSpace(f.IPAddress),
		Orientation:        orientation,
		HibernationEnabled: f.HibernationEnabled,
		HibernationStart:   f.HibernationStart,
		HibernationEnd:     f.HibernationEnd,
	}, nil
}

// AgencyIndex resolves agency ids to names.
func AgencyIndex(items []model.Agency) Index[model.Agency] {
	return NewIndex(items, func(a model.Agency) string { return a.Name }, AgencyMissing)
}

func OrientationLabel(o model.Orientation) string {
	if o == model.OrientationVertical {
		return "Vertical"
	}
	return "Horizontal"
}
