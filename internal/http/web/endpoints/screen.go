// Package endpoints holds the console's pages: login, register, dashboard and the four resource screens.
package endpoints

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/console"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

const formError = "Dados do formulário inválidos"

// screen wires one console.Controller to the list, form, save and delete pages.
type screen[T console.Keyed, F any] struct {
	path     string
	title    string
	template string
	missing  string
	newCtl   func() *console.Controller[T, F]
	label    func(T) string
	// bind reads the posted form; current is the form the modal opened with.
	bind func(ctx *gin.Context, current F) (F, error)
	// lookups loads what the page needs besides its own collection.
	lookups func(ctx context.Context, creds *backend.Credentials) any
}

// ScreenData is what a resource template renders.
type ScreenData[T console.Keyed, F any] struct {
	Ctl     *console.Controller[T, F]
	Path    string
	Lookups any
}

// Action is where the modal form posts.
func (d ScreenData[T, F]) Action() string {
	if d.Ctl.Editing != nil {
		return fmt.Sprintf("%s/%d", d.Path, (*d.Ctl.Editing).Key())
	}
	return d.Path
}

// EditID is the id of the record in the modal, 0 when creating.
func (d ScreenData[T, F]) EditID() int {
	if d.Ctl.Editing == nil {
		return 0
	}
	return (*d.Ctl.Editing).Key()
}

func (sc *screen[T, F]) mount(c *web.Controller) {
	c.GET(sc.path, sc.list)
	c.POST(sc.path, sc.create)
	c.GET(sc.path+"/new", sc.newForm)
	c.GET(sc.path+"/:id/edit", sc.edit)
	c.POST(sc.path+"/:id", sc.update)
	c.GET(sc.path+"/:id/delete", sc.confirmDelete)
	c.POST(sc.path+"/:id/delete", sc.delete)
}

// page renders the screen, or signs out when the backend rejected the session's token.
func (sc *screen[T, F]) page(ctx *gin.Context, s *session.Session, ctl *console.Controller[T, F]) any {
	if ctl.Expired {
		return web.Expired(ctx, s)
	}
	data := ScreenData[T, F]{Ctl: ctl, Path: sc.path}
	if sc.lookups != nil {
		data.Lookups = sc.lookups(ctx.Request.Context(), s.Credentials())
	}
	return web.Page{
		Template: sc.template,
		Title:    sc.title,
		Active:   ctl.Name(),
		Error:    ctl.Error,
		Success:  ctl.Success,
		Data:     data,
	}
}

func (sc *screen[T, F]) loaded(ctx *gin.Context, s *session.Session) *console.Controller[T, F] {
	ctl := sc.newCtl()
	ctl.Load(ctx.Request.Context(), s.Credentials())
	return ctl
}

func (sc *screen[T, F]) list(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	ctl := sc.loaded(ctx, s)
	if ctx.Query("modal") == "new" {
		ctl.OpenCreate()
	}
	return sc.page(ctx, s, ctl), nil
}

func (sc *screen[T, F]) newForm(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	ctl := sc.loaded(ctx, s)
	ctl.OpenCreate()
	return sc.page(ctx, s, ctl), nil
}

func (sc *screen[T, F]) edit(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	id, pageErr := paramID(ctx)
	if pageErr != nil {
		return nil, pageErr
	}
	ctl := sc.loaded(ctx, s)
	if !ctl.EditByID(id) && ctl.Error == "" {
		ctl.Error = sc.missing
	}
	return sc.page(ctx, s, ctl), nil
}

func (sc *screen[T, F]) create(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	ctl := sc.loaded(ctx, s)
	ctl.OpenCreate()
	sc.submit(ctx, s, ctl)
	return sc.page(ctx, s, ctl), nil
}

func (sc *screen[T, F]) update(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	id, pageErr := paramID(ctx)
	if pageErr != nil {
		return nil, pageErr
	}
	ctl := sc.loaded(ctx, s)
	if !ctl.EditByID(id) {
		if ctl.Error == "" {
			ctl.Error = sc.missing
		}
		return sc.page(ctx, s, ctl), nil
	}
	sc.submit(ctx, s, ctl)
	return sc.page(ctx, s, ctl), nil
}

func (sc *screen[T, F]) submit(ctx *gin.Context, s *session.Session, ctl *console.Controller[T, F]) {
	form, err := sc.bind(ctx, ctl.Form)
	if err != nil {
		log.Warn().Err(err).Str("screen", ctl.Name()).Msg("unreadable form")
		ctl.Error = formError
		return
	}
	ctl.Form = form
	ctl.Submit(ctx.Request.Context(), s.Credentials())
}

// Confirm is the delete confirmation page.
type Confirm struct {
	Prompt string
	Label  string
	Action string
	Back   string
}

func (sc *screen[T, F]) confirmDelete(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	id, pageErr := paramID(ctx)
	if pageErr != nil {
		return nil, pageErr
	}
	ctl := sc.loaded(ctx, s)
	item, ok := ctl.Find(id)
	if !ok {
		if ctl.Error != "" {
			return sc.page(ctx, s, ctl), nil
		}
		return nil, web.NotFound(sc.missing)
	}
	return web.Page{
		Template: "confirm.html",
		Title:    sc.title,
		Active:   ctl.Name(),
		Data: Confirm{
			Prompt: ctl.Messages().ConfirmDelete,
			Label:  sc.label(item),
			Action: fmt.Sprintf("%s/%d/delete", sc.path, id),
			Back:   sc.path,
		},
	}, nil
}

// delete issues the DELETE only when the confirmation form answered yes.
func (sc *screen[T, F]) delete(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	id, pageErr := paramID(ctx)
	if pageErr != nil {
		return nil, pageErr
	}
	var form packets.ConfirmForm
	_ = ctx.ShouldBind(&form)

	ctl := sc.newCtl()
	if !ctl.Delete(ctx.Request.Context(), s.Credentials(), id, console.Confirmed(form.Accepted())) {
		failure := ctl.Error
		ctl.Load(ctx.Request.Context(), s.Credentials())
		if failure != "" {
			ctl.Error = failure
		}
	}
	return sc.page(ctx, s, ctl), nil
}

func paramID(ctx *gin.Context) (int, *web.PageError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, web.BadRequest("Identificador inválido")
	}
	return id, nil
}
