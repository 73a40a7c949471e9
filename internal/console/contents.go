package console

import (
	"errors"
	"strings"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

type ContentForm struct {
	Title       string
	Type        model.ContentType
	URL         string
	Description string
	Duration    int
}

type Contents = Controller[model.Content, ContentForm]

var contentMessages = Messages{
	LoadError:     "Erro ao carregar conteúdos",
	SaveError:     "Erro ao salvar conteúdo",
	DeleteError:   "Erro ao excluir conteúdo",
	Created:       "Conteúdo criado com sucesso!",
	Updated:       "Conteúdo atualizado com sucesso!",
	Deleted:       "Conteúdo excluído com sucesso!",
	ConfirmDelete: "Tem certeza que deseja excluir este conteúdo?",
}

const (
	ContentMissing  = "Conteúdo não encontrado"
	DefaultDuration = 30
)

func NewContents(api Endpoint[model.Content]) *Contents {
	return NewController(api, Config[model.Content, ContentForm]{
		Name:     "contents",
		Messages: contentMessages,
		NewForm: func() ContentForm {
			return ContentForm{Type: model.ContentLink, Duration: DefaultDuration}
		},
		FormFrom: func(c model.Content) ContentForm {
			return ContentForm{
				Title:       c.Title,
				Type:        c.Type,
				URL:         c.URL,
				Description: c.Description,
				Duration:    c.Duration,
			}
		},
		Payload: contentPayload,
	})
}

func contentPayload(f ContentForm) (model.Content, error) {
	c := model.Content{
		Title:       strings.TrimSpace(f.Title),
		Type:        f.Type,
		URL:         strings.TrimSpace(f.URL),
		Description: f.Description,
		Duration:    f.Duration,
	}
	switch {
	case c.Title == "":
		return c, invalid("Informe o título do conteúdo")
	case !c.Type.Valid():
		return c, invalid("Tipo de conteúdo inválido")
	case c.URL == "":
		return c, invalid("Informe a URL ou envie um arquivo")
	}
	if err := c.Validate(); err != nil {
		if errors.Is(err, model.ErrDurationOutOfRange) {
			return c, invalid("A duração deve estar entre 5 e 3600 segundos")
		}
		return c, err
	}
	return c, nil
}

// ContentIndex resolves content ids to titles.
func ContentIndex(items []model.Content) Index[model.Content] {
	return NewIndex(items, func(c model.Content) string { return c.Title }, ContentMissing)
}

func ContentTypeLabel(t model.ContentType) string {
	switch t {
	case model.ContentLink:
		return "Link"
	case model.ContentImage:
		return "Imagem"
	case model.ContentVideo:
		return "Vídeo"
	}
	return "Conteúdo"
}

func ContentIcon(t model.ContentType) string {
	switch t {
	case model.ContentLink:
		return "🔗"
	case model.ContentImage:
		return "🖼️"
	case model.ContentVideo:
		return "🎥"
	}
	return "📄"
}
