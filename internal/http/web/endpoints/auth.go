package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/web/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

const (
	HomePath         = "/dashboard"
	registered       = "Cadastro realizado com sucesso! Faça login para continuar."
	signedOut        = "Você saiu da sua conta."
	incompleteLogin  = "Informe usuário e senha"
	incompleteSignup = "Preencha todos os campos"
)

// LoginData re-fills the login form after a failed attempt.
type LoginData struct {
	Username string
	Next     string
}

// AuthModule mounts the public login, register and logout pages.
func AuthModule() web.Module {
	return web.ModuleFunc(func(c *web.Controller) {
		c.GET(middleware.LoginPath, loginPage)
		c.POST(middleware.LoginPath, login)
		c.GET("/register", registerPage)
		c.POST("/register", register)
		c.POST("/logout", logout)
	})
}

func loginView(data LoginData, errMsg string) web.Page {
	return web.Page{Template: "login.html", Title: "Login", Error: errMsg, Data: data}
}

func loginPage(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	s.Restore(ctx.Request.Context())
	next := ctx.Query("next")
	if _, ok := s.Identity(); ok {
		return web.Redirect{To: middleware.SafeNext(next, HomePath)}, nil
	}
	return loginView(LoginData{Next: next}, ""), nil
}

func login(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	var form packets.LoginForm
	if err := ctx.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		return loginView(LoginData{Username: form.Username, Next: form.Next}, incompleteLogin), nil
	}

	result := s.Login(ctx.Request.Context(), form.Username, form.Password)
	if !result.Success {
		return loginView(LoginData{Username: form.Username, Next: form.Next}, result.Error), nil
	}
	log.Info().Str("username", form.Username).Msg("console login")
	return web.Redirect{To: middleware.SafeNext(form.Next, HomePath)}, nil
}

func registerPage(_ *gin.Context, _ *session.Session) (any, *web.PageError) {
	return web.Page{Template: "register.html", Title: "Cadastro", Data: packets.RegisterForm{}}, nil
}

func register(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	var form packets.RegisterForm
	if err := ctx.ShouldBind(&form); err != nil || form.Username == "" || form.Email == "" || form.Password == "" {
		form.Password = ""
		return web.Page{Template: "register.html", Title: "Cadastro", Error: incompleteSignup, Data: form}, nil
	}

	result := s.Register(ctx.Request.Context(), form.Registration())
	if !result.Success {
		form.Password = ""
		return web.Page{Template: "register.html", Title: "Cadastro", Error: result.Error, Data: form}, nil
	}
	web.Flash(ctx, registered)
	return web.Redirect{To: middleware.LoginPath}, nil
}

func logout(ctx *gin.Context, s *session.Session) (any, *web.PageError) {
	s.Logout(ctx.Request.Context())
	web.Flash(ctx, signedOut)
	return web.Redirect{To: middleware.LoginPath}, nil
}
