package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Makepad-fr/tada-remote/internal/model"
)

// SignupResult is the outcome of a sign-up call. Any status is a result;
// only transport failures are errors.
type SignupResult struct {
	StatusCode int
	Message    string
}

// Signup posts credentials to /auth/signup.
func (c *Client) Signup(ctx context.Context, cred model.Credentials) (SignupResult, error) {
	status, data, err := c.do(ctx, http.MethodPost, "/auth/signup", cred, false)
	if err != nil {
		return SignupResult{}, err
	}
	return SignupResult{StatusCode: status, Message: messageFromBody(data)}, nil
}

type signinResponse struct {
	AccessToken string `json:"access_token"`
}

// Signin exchanges credentials for an access token.
func (c *Client) Signin(ctx context.Context, cred model.Credentials) (string, error) {
	status, data, err := c.do(ctx, http.MethodPost, "/auth/signin", cred, false)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", newStatusError(http.MethodPost, "/auth/signin", status, data)
	}
	var resp signinResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("signin: empty access_token")
	}
	return resp.AccessToken, nil
}
