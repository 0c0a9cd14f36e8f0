package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/LekaAli/fes/internal/model"
	"github.com/LekaAli/fes/internal/services"
	xhttp "github.com/LekaAli/fes/pkg/http"
)

type AuthService interface {
	Register(ctx context.Context, p model.UserCreateRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type AuthHandler struct {
	svc        AuthService
	sessions   SessionStore
	cookieName string
	sessionTTL time.Duration
}

func NewAuthHandler(svc AuthService, sessions SessionStore, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		svc:        svc,
		sessions:   sessions,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

func RegisterAuthRoutes(r *router.Router, h *AuthHandler, auth *Auth) {
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/logout", auth.Require(h.Logout))
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type registerForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (h *AuthHandler) LoginForm(ctx *xhttp.RequestCtx) {
	// an already-authenticated visitor goes straight to the dashboard
	if token := string(ctx.Request.Header.Cookie(h.cookieName)); token != "" {
		if _, err := h.sessions.Get(token); err == nil {
			redirect(ctx, "/")
			return
		}
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"title": "Login"})
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	form := loginForm{
		Username: formValue(ctx, "username"),
		Password: formValue(ctx, "password"),
	}
	if errs := validateForm(form); errs != nil {
		writeFieldErrors(ctx, errs)
		return
	}

	user, err := h.svc.Login(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(ctx, xhttp.StatusUnauthorized, "Invalid username or password")
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}

	token, err := h.sessions.Create(user.ID)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}

	h.setSessionCookie(ctx, token)
	redirect(ctx, "/")
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	token := string(ctx.Request.Header.Cookie(h.cookieName))
	if err := h.sessions.Destroy(token); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}
	h.clearSessionCookie(ctx)
	redirect(ctx, "/login")
}

func (h *AuthHandler) RegisterForm(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"title": "Register"})
}

func (h *AuthHandler) Register(ctx *xhttp.RequestCtx) {
	form := registerForm{
		Username: formValue(ctx, "username"),
		Email:    formValue(ctx, "email"),
		Password: formValue(ctx, "password"),
	}
	if errs := validateForm(form); errs != nil {
		writeFieldErrors(ctx, errs)
		return
	}

	_, err := h.svc.Register(ctx, model.UserCreateRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			writeError(ctx, xhttp.StatusConflict, err.Error())
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}

	redirect(ctx, "/login")
}

func (h *AuthHandler) setSessionCookie(ctx *xhttp.RequestCtx, token string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(h.cookieName)
	c.SetValue(token)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(time.Now().Add(h.sessionTTL))
	ctx.Response.Header.SetCookie(c)
}

func (h *AuthHandler) clearSessionCookie(ctx *xhttp.RequestCtx) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(h.cookieName)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(c)
}
