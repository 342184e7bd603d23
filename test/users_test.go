package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/fitstack/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRegisterAndLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	profile := registerUser(ctx, t, "mile", "a-strong-password-1")
	assert.Equal(t, 0, profile.TotalPoints)
	assert.Equal(t, 1, profile.Level)

	// duplicate username is rejected
	status, _ := doRequest(ctx, t, "POST", fmt.Sprintf("%s/a/register", serverEndpoint), "", credentialsRequest{
		Username: "mile",
		Password: "another-password-1",
	})
	assert.Equal(t, http.StatusConflict, status)

	// wrong password gets no session
	status, _ = doRequest(ctx, t, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), "", credentialsRequest{
		Username: "mile",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	token := doLogin(ctx, t, "mile", "a-strong-password-1")

	// no token, no profile
	status, _ = doRequest(ctx, t, "GET", fmt.Sprintf("%s/me", serverEndpoint), "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := doRequest(ctx, t, "GET", fmt.Sprintf("%s/me", serverEndpoint), token, nil)
	require.Equal(t, http.StatusOK, status)
	var me users.Profile
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "mile", me.Username)

	age := 30
	weight := 82.5
	status, body = doRequest(ctx, t, "PUT", fmt.Sprintf("%s/me", serverEndpoint), token, map[string]any{
		"fullName": "Mile Milutinovic",
		"age":      age,
		"weight":   weight,
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "Mile Milutinovic", me.FullName)
	require.NotNil(t, me.Age)
	assert.Equal(t, age, *me.Age)

	// public profile lookup needs no session
	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/users/mile", serverEndpoint), "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "Mile Milutinovic", me.FullName)

	// logout invalidates the session
	status, _ = doRequest(ctx, t, "GET", fmt.Sprintf("%s/a/logout", serverEndpoint), token, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doRequest(ctx, t, "GET", fmt.Sprintf("%s/me", serverEndpoint), token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
