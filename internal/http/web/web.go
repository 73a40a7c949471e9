// Package web renders the console's HTML pages. Handlers return a Page or a Redirect the way the
// JSON api package's handlers return a body, and Resolve writes it.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

// PageError aborts a handler with a bare error page.
type PageError struct {
	Code    int
	Message string
}

func (e *PageError) Error() string { return e.Message }

func NotFound(msg string) *PageError   { return &PageError{Code: http.StatusNotFound, Message: msg} }
func BadRequest(msg string) *PageError { return &PageError{Code: http.StatusBadRequest, Message: msg} }

// Page is one rendered template.
type Page struct {
	Template string
	Title    string
	// Active marks the navigation entry.
	Active  string
	Error   string
	Success string
	Data    any
}

// View is what every template receives.
type View struct {
	Page
	User    *model.User
	Flashes []string
}

// Redirect sends the browser elsewhere with 303 See Other.
type Redirect struct {
	To string
}

type HandlerFunc func(ctx *gin.Context, s *session.Session) (any, *PageError)

// Resolve runs h with the request's console session and renders its result.
func Resolve(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		s, ok := middleware.CurrentSession(ctx)
		if !ok {
			log.Error().Str("path", ctx.Request.URL.Path).Msg("no console session on request")
			ctx.String(http.StatusInternalServerError, "session unavailable")
			return
		}
		result, pageErr := h(ctx, s)
		write(ctx, s, result, pageErr)
	}
}

func write(ctx *gin.Context, s *session.Session, result any, pageErr *PageError) {
	if pageErr != nil {
		Render(ctx, s, pageErr.Code, Page{Template: "error.html", Title: "Erro", Error: pageErr.Message})
		return
	}
	switch r := result.(type) {
	case Redirect:
		ctx.Redirect(http.StatusSeeOther, r.To)
	case Page:
		Render(ctx, s, http.StatusOK, r)
	case *Page:
		Render(ctx, s, http.StatusOK, *r)
	default:
		log.Error().Str("path", ctx.Request.URL.Path).Msgf("unexpected handler result %T", result)
		ctx.String(http.StatusInternalServerError, "internal error")
	}
}

// Render writes p inside the layout, with the signed-in user and any pending flashes.
func Render(ctx *gin.Context, s *session.Session, code int, p Page) {
	view := View{Page: p, Flashes: Flashes(ctx)}
	if s != nil {
		if u, ok := s.Identity(); ok {
			view.User = &u
		}
	}
	ctx.HTML(code, p.Template, view)
}

const sessionExpired = "Sua sessão expirou. Faça login novamente."

// Expired signs s out after the backend rejected its token and sends the browser to the login page.
func Expired(ctx *gin.Context, s *session.Session) Redirect {
	log.Info().Str("session", s.Key()).Msg("backend rejected token, signing out")
	s.Logout(ctx.Request.Context())
	Flash(ctx, sessionExpired)
	return Redirect{To: middleware.LoginURL(ctx.Request)}
}

// Loading is shown while a session's stored token is still being checked.
func Loading(ctx *gin.Context) {
	ctx.Header("Cache-Control", "no-store")
	ctx.HTML(http.StatusOK, "loading.html", View{Page: Page{Title: "Carregando"}})
}
