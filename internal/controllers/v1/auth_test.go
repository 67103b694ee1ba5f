package v1_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vending-machines/backend/internal/auth"
	v1 "github.com/vending-machines/backend/internal/controllers/v1"
	"github.com/vending-machines/backend/test"
)

func registerRequest(email string) v1.RegisterRequest {
	return v1.RegisterRequest{
		LastName:       "Ivanov",
		FirstName:      "Ivan",
		MiddleName:     "Ivanovich",
		Email:          email,
		Password:       "s3cr3t!",
		RepeatPassword: "s3cr3t!",
		Language:       "ru",
	}
}

// register creates a user and logs in, returning the session.
func (suite *TestSuiteStandard) register(t *testing.T, email string) v1.Session {
	r := test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/auth/register", registerRequest(email))
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	r = test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/auth/login", v1.LoginRequest{Email: email, Password: "s3cr3t!"})
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var session v1.SessionResponse
	test.DecodeResponse(t, &r, &session)
	return *session.Data
}

func (suite *TestSuiteStandard) TestAuthRegister() {
	r := test.Request(suite.T(), suite.co, http.MethodPost, "http://example.com/v1/auth/register", registerRequest("Ivanov@Example.com"))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var user v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &user)
	suite.Assert().Equal("ivanov@example.com", user.Data.Email)
	suite.Assert().Equal("Ivanov Ivan Ivanovich", user.Data.FullName)
	suite.Assert().NotContains(r.Body.String(), "s3cr3t!")
	suite.Assert().NotContains(strings.ToLower(r.Body.String()), "password")

	mismatch := registerRequest("other@example.com")
	mismatch.RepeatPassword = "different"

	invalidLanguage := registerRequest("third@example.com")
	invalidLanguage.Language = "not a language"

	tests := []struct {
		name     string
		body     any
		status   int
		errorMsg string
	}{
		{"Duplicate email", registerRequest("ivanov@example.com"), http.StatusBadRequest, "a user with this email address already exists"},
		{"Passwords differ", mismatch, http.StatusBadRequest, "the passwords do not match"},
		{"Invalid language", invalidLanguage, http.StatusBadRequest, "the language must be a valid BCP 47 language tag, e.g. ru or en-US"},
		{"Email missing", v1.RegisterRequest{LastName: "A", FirstName: "B", Password: "s3cr3t!", RepeatPassword: "s3cr3t!"}, http.StatusBadRequest, ""},
		{"Empty body", "", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/auth/register", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.errorMsg == "" {
				return
			}

			var response v1.UserResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.errorMsg, *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestAuthLogin() {
	r := test.Request(suite.T(), suite.co, http.MethodPost, "http://example.com/v1/auth/register", registerRequest("ivanov@example.com"))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	tests := []struct {
		name   string
		body   v1.LoginRequest
		status int
	}{
		{"Valid", v1.LoginRequest{Email: "ivanov@example.com", Password: "s3cr3t!"}, http.StatusOK},
		{"Email with different case", v1.LoginRequest{Email: " IVANOV@example.com ", Password: "s3cr3t!"}, http.StatusOK},
		{"Wrong password", v1.LoginRequest{Email: "ivanov@example.com", Password: "wrong"}, http.StatusUnauthorized},
		{"Unknown user", v1.LoginRequest{Email: "nobody@example.com", Password: "s3cr3t!"}, http.StatusUnauthorized},
		{"Password missing", v1.LoginRequest{Email: "ivanov@example.com"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/auth/login", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var session v1.SessionResponse
			test.DecodeResponse(t, &r, &session)

			if tt.status != http.StatusOK {
				assert.Nil(t, session.Data)
				return
			}

			assert.NotEmpty(t, session.Data.Token)
			assert.Equal(t, "ivanov@example.com", session.Data.User.Email)
			assert.Contains(t, r.Header().Get("Set-Cookie"), auth.CookieName+"="+session.Data.Token)
			assert.Contains(t, r.Header().Get("Set-Cookie"), "HttpOnly")
		})
	}

	r = test.Request(suite.T(), suite.co, http.MethodPost, "http://example.com/v1/auth/login", v1.LoginRequest{Email: "ivanov@example.com", Password: "wrong"})
	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(auth.ErrCredentialsInvalid.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestAuthSession() {
	session := suite.register(suite.T(), "ivanov@example.com")

	r := test.Request(suite.T(), suite.co, http.MethodGet, "http://example.com/v1/auth/info", "", test.Bearer(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var user v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &user)
	suite.Assert().Equal(session.User.ID, user.Data.ID)
	suite.Assert().Equal("http://example.com/v1/auth/info", user.Data.Links.Self)

	// The cookie is accepted as well
	r = test.Request(suite.T(), suite.co, http.MethodGet, "http://example.com/v1/auth/info", "", map[string]string{"Cookie": auth.CookieName + "=" + session.Token})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), suite.co, http.MethodPost, "http://example.com/v1/auth/refresh-token", "", test.Bearer(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var refreshed v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &refreshed)
	suite.Assert().NotEmpty(refreshed.Data.Token)
	suite.Assert().False(refreshed.Data.ExpiresAt.Before(session.ExpiresAt))

	r = test.Request(suite.T(), suite.co, http.MethodPost, "http://example.com/v1/auth/logout", "", test.Bearer(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Contains(r.Header().Get("Set-Cookie"), auth.CookieName+"=;")
}

func (suite *TestSuiteStandard) TestAuthUnauthenticated() {
	tests := []struct {
		name    string
		method  string
		url     string
		headers []map[string]string
	}{
		{"Info without token", http.MethodGet, "http://example.com/v1/auth/info", nil},
		{"Refresh without token", http.MethodPost, "http://example.com/v1/auth/refresh-token", nil},
		{"Logout without token", http.MethodPost, "http://example.com/v1/auth/logout", nil},
		{"Devices without token", http.MethodGet, "http://example.com/v1/devices", nil},
		{"Devices with broken token", http.MethodGet, "http://example.com/v1/devices", []map[string]string{test.Bearer("not.a.token")}},
		{"Devices with wrong scheme", http.MethodGet, "http://example.com/v1/devices", []map[string]string{{"Authorization": "Basic dXNlcjpwYXNz"}}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, tt.method, tt.url, "", tt.headers...)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}

	// A valid token for a user that does not exist
	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/auth/info", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAuthOptions() {
	for _, path := range []string{"register", "login", "refresh-token", "logout"} {
		r := test.Request(suite.T(), suite.co, http.MethodOptions, "http://example.com/v1/auth/"+path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"), path)
	}

	r := test.Request(suite.T(), suite.co, http.MethodOptions, "http://example.com/v1/auth/info", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}
