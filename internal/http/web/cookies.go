package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

const (
	CookieName   = "signage_console"
	sessionIDKey = "sid"
	cookieKey    = "consoleCookie"
)

// CookieOptions configures the signed session cookie.
type CookieOptions struct {
	Secure bool
	MaxAge int
}

// NewCookieStore signs the session cookie with secret.
func NewCookieStore(secret string, opts CookieOptions) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Sessions gives every browser a random session id in a signed cookie and attaches the
// matching console session to the request.
func Sessions(store sessions.Store, manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs, err := store.Get(c.Request, CookieName)
		if err != nil {
			// tampered or rotated secret; a fresh session is issued below
			log.Debug().Err(err).Msg("discarding unreadable session cookie")
		}

		id, _ := cs.Values[sessionIDKey].(string)
		if _, perr := uuid.Parse(id); perr != nil {
			id = uuid.NewString()
			cs.Values[sessionIDKey] = id
			if err := cs.Save(c.Request, c.Writer); err != nil {
				log.Error().Err(err).Msg("could not write session cookie")
			}
		}

		c.Set(cookieKey, cs)
		middleware.SetSession(c, manager.Session(id))
		c.Next()
	}
}

func cookieSession(c *gin.Context) (*sessions.Session, bool) {
	v, ok := c.Get(cookieKey)
	if !ok {
		return nil, false
	}
	cs, ok := v.(*sessions.Session)
	return cs, ok
}

// Flash queues a message for the next rendered page. Call it before writing the response.
func Flash(c *gin.Context, msg string) {
	cs, ok := cookieSession(c)
	if !ok {
		return
	}
	cs.AddFlash(msg)
	if err := cs.Save(c.Request, c.Writer); err != nil {
		log.Error().Err(err).Msg("could not save flash")
	}
}

// Flashes pops the pending messages.
func Flashes(c *gin.Context) []string {
	cs, ok := cookieSession(c)
	if !ok {
		return nil
	}
	raw := cs.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := cs.Save(c.Request, c.Writer); err != nil {
		log.Error().Err(err).Msg("could not clear flashes")
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
