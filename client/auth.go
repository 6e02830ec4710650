package client

import (
	"context"
	"net/http"

	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/internal/transport"
)

// Login exchanges credentials for a token pair and installs it. The
// returned profile is whatever the backend attached to the response;
// it may be zero when the backend omits it.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Profile, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   map[string]string{"email": email, "password": password},
	}, false)
	if apiErr != nil {
		return domain.Profile{}, apiErr
	}

	var dto tokensDTO
	if err := decode(raw, &dto); err != nil {
		return domain.Profile{}, err
	}
	c.session.SetTokens(dto.pair())

	if dto.User != nil {
		return dto.User.toDomain(), nil
	}
	return domain.Profile{}, nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates an account. The backend responds by sending a
// verification code; no tokens are issued until VerifyCode succeeds.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	_, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/register",
		Body:   input,
	}, false)
	if apiErr != nil {
		return apiErr
	}
	return nil
}

// VerifyCode confirms the registration code. On success the backend
// issues the first token pair, which is installed like a login.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (domain.Profile, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/verify-otp",
		Body:   map[string]string{"email": email, "otp": code},
	}, false)
	if apiErr != nil {
		return domain.Profile{}, apiErr
	}

	var dto tokensDTO
	if err := decode(raw, &dto); err != nil {
		return domain.Profile{}, err
	}
	c.session.SetTokens(dto.pair())

	if dto.User != nil {
		return dto.User.toDomain(), nil
	}
	return domain.Profile{}, nil
}

// ResendCode asks for a fresh verification code.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	_, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/resend-otp",
		Body:   map[string]string{"email": email},
	}, false)
	if apiErr != nil {
		return apiErr
	}
	return nil
}

// RequestPasswordReset starts the reset flow by mailing a code.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/reset-password",
		Body:   map[string]string{"email": email},
	}, false)
	if apiErr != nil {
		return apiErr
	}
	return nil
}

// ConfirmPasswordReset completes the reset flow. The backend issues a
// fresh token pair so the user lands signed in.
func (c *Client) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/reset-password/confirm",
		Body: map[string]string{
			"email":        email,
			"otp":          code,
			"new_password": newPassword,
		},
	}, false)
	if apiErr != nil {
		return apiErr
	}

	var dto tokensDTO
	if err := decode(raw, &dto); err != nil {
		return err
	}
	if !dto.pair().IsZero() {
		c.session.SetTokens(dto.pair())
	}
	return nil
}

// ChangePassword rotates the password for the signed-in user.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/profile/change-password",
		Body: map[string]string{
			"old_password": oldPassword,
			"new_password": newPassword,
		},
	}, true)
	if apiErr != nil {
		return apiErr
	}
	return nil
}
