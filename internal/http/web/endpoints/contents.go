package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/console"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

const noFile = "Selecione um arquivo para enviar"

type contentPages struct {
	*screen[model.Content, console.ContentForm]
	client *backend.Client
}

// ContentModule mounts the /contents screen and its upload side-channel.
func ContentModule(client *backend.Client) web.Module {
	p := &contentPages{
		client: client,
		screen: &screen[model.Content, console.ContentForm]{
			path:     "/contents",
			title:    "Conteúdos",
			template: "contents.html",
			missing:  console.ContentMissing,
			newCtl:   func() *console.Contents { return console.NewContents(client.Contents()) },
			label:    func(c model.Content) string { return c.Title },
			bind: func(ctx *gin.Context, _ console.ContentForm) (console.ContentForm, error) {
				var form packets.ContentForm
				if err := ctx.ShouldBind(&form); err != nil {
					return console.ContentForm{}, err
				}
				return form.Console(), nil
			},
		},
	}
	return web.ModuleFunc(func(c *web.Controller) {
		c.POST("/contents/upload", p.upload)
		p.mount(c)
	})
}

// upload sends the picked file and re-opens the modal with its url filled in. Nothing is saved yet.
func (p *contentPages) upload(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	var form packets.ContentForm
	bindErr := ctx.ShouldBind(&form)

	ctl := p.loaded(ctx, s)
	switch {
	case form.ID == 0:
		ctl.OpenCreate()
	case !ctl.EditByID(form.ID):
		// an edit must never turn into a create
		if ctl.Error == "" {
			ctl.Error = p.missing
		}
		return p.page(ctx, s, ctl), nil
	}
	if bindErr != nil {
		log.Warn().Err(bindErr).Msg("unreadable content form")
		ctl.Error = formError
		return p.page(ctx, s, ctl), nil
	}
	ctl.Form = form.Console()

	header, err := ctx.FormFile(backend.UploadField)
	if err != nil {
		ctl.Error = noFile
		return p.page(ctx, s, ctl), nil
	}
	file, err := header.Open()
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("could not open uploaded file")
		ctl.Error = noFile
		return p.page(ctx, s, ctl), nil
	}
	defer file.Close()

	console.Upload(ctx.Request.Context(), s.Credentials(), p.client, ctl, console.File{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Body:      file,
	})
	return p.page(ctx, s, ctl), nil
}
