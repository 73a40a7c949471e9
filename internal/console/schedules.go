package console

import (
	"errors"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

type ScheduleForm struct {
	ContentID int
	AgencyID  int
	StartTime string
	EndTime   string
	Days      DaySet
	Priority  int
	IsActive  bool
}

type Schedules = Controller[model.Schedule, ScheduleForm]

var scheduleMessages = Messages{
	LoadError:     "Erro ao carregar agendamentos",
	SaveError:     "Erro ao salvar agendamento",
	DeleteError:   "Erro ao excluir agendamento",
	Created:       "Agendamento criado com sucesso!",
	Updated:       "Agendamento atualizado com sucesso!",
	Deleted:       "Agendamento excluído com sucesso!",
	ConfirmDelete: "Tem certeza que deseja excluir este agendamento?",
}

func NewSchedules(api Endpoint[model.Schedule]) *Schedules {
	return NewController(api, Config[model.Schedule, ScheduleForm]{
		Name:     "schedules",
		Messages: scheduleMessages,
		NewForm: func() ScheduleForm {
			return ScheduleForm{
				StartTime: "08:00",
				EndTime:   "18:00",
				Priority:  model.MinSchedulePriority,
				IsActive:  true,
			}
		},
		FormFrom: func(s model.Schedule) ScheduleForm {
			return ScheduleForm{
				ContentID: s.ContentID,
				AgencyID:  s.AgencyID,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
				Days:      ParseDays(s.DaysOfWeek),
				Priority:  s.Priority,
				IsActive:  s.IsActive,
			}
		},
		Payload: schedulePayload,
	})
}

func schedulePayload(f ScheduleForm) (model.Schedule, error) {
	s := model.Schedule{
		ContentID:  f.ContentID,
		AgencyID:   f.AgencyID,
		StartTime:  f.StartTime,
		EndTime:    f.EndTime,
		DaysOfWeek: f.Days.Encode(),
		Priority:   f.Priority,
		IsActive:   f.IsActive,
	}
	switch {
	case s.ContentID == 0:
		return s, invalid("Selecione um conteúdo")
	case s.AgencyID == 0:
		return s, invalid("Selecione uma agência")
	case s.StartTime == "" || s.EndTime == "":
		return s, invalid("Informe o horário de início e fim")
	}
	if err := s.Validate(); err != nil {
		if errors.Is(err, model.ErrPriorityOutOfRange) {
			return s, invalid("A prioridade deve estar entre 1 e 10")
		}
		return s, err
	}
	return s, nil
}
