//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/2beens/fittrack/internal/users"
)

type apiResponse struct {
	status int
	body   []byte
}

func (r apiResponse) text() string {
	return strings.TrimSpace(string(r.body))
}

// do sends body as JSON (when not nil) with an optional bearer token.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body any) apiResponse {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return s.send(req)
}

func (s *IntegrationTestSuite) send(req *http.Request) apiResponse {
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	return apiResponse{status: resp.StatusCode, body: respBytes}
}

// doInto expects the given status and decodes the JSON response into out.
func (s *IntegrationTestSuite) doInto(ctx context.Context, method, path, token string, body any, expectedStatus int, out any) {
	resp := s.do(ctx, method, path, token, body)
	s.Require().Equal(expectedStatus, resp.status, "%s %s: %s", method, path, resp.text())
	if out != nil {
		s.Require().NoError(json.Unmarshal(resp.body, out))
	}
}

// login uses the OAuth2 password form, the way browser clients do.
func (s *IntegrationTestSuite) login(ctx context.Context, username, password string) (string, apiResponse) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverEndpoint+"/users/token", strings.NewReader(form.Encode()))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp := s.send(req)
	if resp.status != http.StatusOK {
		return "", resp
	}

	var tokenResp users.TokenResponse
	s.Require().NoError(json.Unmarshal(resp.body, &tokenResp))
	return tokenResp.AccessToken, resp
}

func (s *IntegrationTestSuite) mustLogin(ctx context.Context, username, password string) string {
	token, resp := s.login(ctx, username, password)
	s.Require().Equal(http.StatusOK, resp.status, resp.text())
	s.Require().NotEmpty(token)
	return token
}

// newUser registers a fresh user with random credentials and logs it in.
func (s *IntegrationTestSuite) newUser(ctx context.Context) (users.User, string) {
	user, _, token := s.newUserWithPassword(ctx)
	return user, token
}

func (s *IntegrationTestSuite) newUserWithPassword(ctx context.Context) (users.User, string, string) {
	password := fakePassword()
	req := users.CreateRequest{
		Username: fakeUsername(),
		Email:    strPtr(fakeEmail()),
		Password: password,
	}

	var created users.User
	s.doInto(ctx, http.MethodPost, "/users", "", req, http.StatusCreated, &created)
	return created, password, s.mustLogin(ctx, created.Username, password)
}
