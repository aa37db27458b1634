package gateway

import (
	"context"
	"io"
	"net/http"

	"blogspace-client/domain/blog"
	apperrors "blogspace-client/pkg/errors"
)

// authResponse is the envelope the auth endpoints share.
type authResponse struct {
	Message      string       `json:"message"`
	User         UserDocument `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Login exchanges credentials for a session. On success the tokens are
// persisted before the user is returned, so a crash between the two
// cannot leave a user without a credential.
func (c *Client) Login(ctx context.Context, email, password string) (*blog.User, error) {
	body := map[string]string{"email": email, "password": password}
	var res authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &res); err != nil {
		return nil, err
	}
	c.storeSession(res)
	user := res.User.ToUser()
	return &user, nil
}

// Signup registers a new account and signs it in.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*blog.User, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     "user",
	}
	var res authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", body, &res); err != nil {
		return nil, err
	}
	c.storeSession(res)
	user := res.User.ToUser()
	return &user, nil
}

// Logout tells the server to invalidate the session. Stored tokens are
// cleared regardless of the outcome; a dead server must not keep a user
// signed in locally.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.tokens.ClearTokens()
	return err
}

// RefreshToken exchanges the stored refresh credential for a new access
// token and returns it. Satisfies auth.RefreshFunc.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	refresh := c.tokens.RefreshCredential()
	if refresh == "" {
		return "", apperrors.NewUnauthorizedError("no refresh credential available")
	}
	body := map[string]string{"refreshToken": refresh}
	var res authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh-token", body, &res); err != nil {
		return "", err
	}
	if res.RefreshToken != "" {
		c.tokens.SetRefreshCredential(res.RefreshToken)
	}
	return res.AccessToken, nil
}

// UpdateProfile saves profile edits and returns the authoritative user
// the server produced.
func (c *Client) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*blog.User, error) {
	var res struct {
		User UserDocument `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPut, pathf("/users/%s", userID), updates, &res); err != nil {
		return nil, err
	}
	user := res.User.ToUser()
	return &user, nil
}

// UploadResult describes a stored media file.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Upload streams a media file to the server.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	form := newMultipartForm()
	if err := form.addFile("file", filename, file); err != nil {
		return nil, apperrors.NewInternalError("failed to build upload form").WithCause(err)
	}
	var res UploadResult
	if err := c.doMultipart(ctx, http.MethodPost, "/upload", form, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) storeSession(res authResponse) {
	if res.AccessToken != "" {
		c.tokens.SetToken(res.AccessToken)
	}
	if res.RefreshToken != "" {
		c.tokens.SetRefreshCredential(res.RefreshToken)
	}
}
