package api

import (
	"context"
	"net/http"

	"carbook/internal/domain"
)

// Credentials are the sign-in inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the sign-up inputs.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Login authenticates and returns the bearer token plus the user identity.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, *domain.User, error) {
	return c.authenticate(ctx, "/api/user/login", creds)
}

// Register creates an account and returns the bearer token plus the user
// identity; the backend signs new accounts in directly.
func (c *Client) Register(ctx context.Context, reg Registration) (string, *domain.User, error) {
	return c.authenticate(ctx, "/api/user/register", reg)
}

// Logout invalidates the current session on the backend.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/user/logout", nil, nil, nil)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (string, *domain.User, error) {
	var doc resourceDoc
	if err := c.do(ctx, http.MethodPost, path, nil, body, &doc); err != nil {
		return "", nil, err
	}

	obj := decodeOne(doc)
	token := obj.str("token")
	if token == "" {
		token = obj.str("access_token")
	}

	user := &domain.User{
		ID:    obj.id(),
		Name:  obj.str("name"),
		Email: obj.str("email"),
		Phone: obj.str("phone"),
	}
	if nested := obj.rel("user"); nested.id() != "" {
		user.ID = nested.id()
		user.Name = nested.str("name")
		user.Email = nested.str("email")
		user.Phone = nested.str("phone")
	}
	return token, user, nil
}
