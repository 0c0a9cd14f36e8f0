package handlers

import (
	xhttp "github.com/LekaAli/fes/pkg/http"
)

// SessionStore is the identity boundary every protected handler goes
// through.
type SessionStore interface {
	Create(userID int64) (string, error)
	Get(token string) (int64, error)
	Destroy(token string) error
}

const userIDKey = "auth_user_id"

// Auth gates handlers behind a live session. Unauthenticated requests are
// 302-redirected to the login page before any handler logic runs, so they
// can have no persistence side effects.
type Auth struct {
	sessions   SessionStore
	cookieName string
}

func NewAuth(sessions SessionStore, cookieName string) *Auth {
	return &Auth{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

func (a *Auth) Require(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		token := string(ctx.Request.Header.Cookie(a.cookieName))
		userID, err := a.sessions.Get(token)
		if err != nil {
			redirect(ctx, "/login")
			return
		}
		ctx.SetUserValue(userIDKey, userID)
		next(ctx)
	}
}

// CurrentUserID reports the identity Require stashed on the request.
func CurrentUserID(ctx *xhttp.RequestCtx) (int64, bool) {
	id, ok := ctx.UserValue(userIDKey).(int64)
	return id, ok
}
