// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package hubapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/apphub/hubclient/internal/model"
	"github.com/tidwall/gjson"
)

// Register creates a hub account. The account stays inactive until its email
// address is validated.
func (c *Client) Register(ctx context.Context, form model.RegistrationForm) error {
	_, err := c.Send(ctx, http.MethodPost, PathRegistration, form)
	return err
}

// ValidateEmail confirms a registration with the code sent by email.
func (c *Client) ValidateEmail(ctx context.Context, code string) error {
	_, err := c.Send(ctx, http.MethodPost, PathEmailValidation+"?code="+url.QueryEscape(code), nil)
	return err
}

// Login authenticates and stores the session cookie set by the hub.
func (c *Client) Login(ctx context.Context, user, password string) error {
	prev := c.getIdentity()
	c.setIdentity(user)
	if _, err := c.Send(ctx, http.MethodPost, PathLogin, model.LoginCredentials{User: user, Password: password}); err != nil {
		c.setIdentity(prev)
		return err
	}
	if !c.HasCookie() {
		c.setIdentity(prev)
		return c.fail(newError(http.StatusOK, "", errors.New("login response carried no session cookie")), true)
	}
	return nil
}

// Logout ends the session on the hub. The local cookie is dropped even when
// the request fails.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Send(ctx, http.MethodPost, PathLogout, nil)
	c.ClearSession(ctx)
	return err
}

// DeleteAccount removes the logged in account and everything it owns.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if _, err := c.Send(ctx, http.MethodPost, PathDeleteAccount, nil); err != nil {
		return err
	}
	c.ClearSession(ctx)
	return nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := c.Send(ctx, http.MethodPost, PathChangePassword, model.ChangePasswordForm{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	return err
}

// AuthCheck asks the hub whether the current cookie is still valid and
// returns the authenticated user name. Failures are not alerted.
func (c *Client) AuthCheck(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, PathAuthCheck, nil, false)
	if err != nil {
		return "", err
	}
	user := gjson.GetBytes(resp.Body, "value").String()
	if user == "" {
		return "", newError(resp.Status, "", errors.New("auth check returned no user"))
	}
	c.setIdentity(user)
	return user, nil
}
