package api

import (
	"context"
	"net/http"

	"github.com/avdeyev/bizdash/internal/client/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string              `json:"token"`
	User  *session.UserRecord `json:"user"`
}

// Login exchanges credentials for a token and user record. It performs no
// session mutation; persisting the pair is the login flow's job. A 401 here
// is ErrInvalidCredentials, never a session invalidation.
func (c *Client) Login(ctx context.Context, email, password string) (string, *session.UserRecord, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/login",
		loginRequest{Email: email, Password: password}, &resp,
		callOpts{skipSessionGuard: true})
	if err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, &ServerError{Status: http.StatusOK, Message: "login response missing token or user"}
	}
	return resp.Token, resp.User, nil
}

// Logout tells the server the session is over. The server is stateless, so
// this is best-effort by design; the caller must not let a failure here
// block local cleanup.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil,
		callOpts{skipSessionGuard: true})
}

// CurrentUser fetches the authenticated principal's profile. Goes through
// the normal classification path, so an expired token lands the user back at
// login.
func (c *Client) CurrentUser(ctx context.Context) (*session.UserRecord, error) {
	var u session.UserRecord
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &u, callOpts{}); err != nil {
		return nil, err
	}
	return &u, nil
}
