package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/fitstack/internal/groups"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestCoachGroups() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerUser(ctx, t, "coach_steva", "a-strong-password-1")
	trainee := registerUser(ctx, t, "trainee_laza", "a-strong-password-2")
	coachToken := doLogin(ctx, t, "coach_steva", "a-strong-password-1")
	traineeToken := doLogin(ctx, t, "trainee_laza", "a-strong-password-2")

	status, body := doRequest(ctx, t, "POST", fmt.Sprintf("%s/groups", serverEndpoint), coachToken, map[string]any{
		"name":        "Morning Crew",
		"description": "early bird sessions",
	})
	require.Equal(t, http.StatusCreated, status)
	var group groups.Group
	require.NoError(t, json.Unmarshal(body, &group))
	require.NotEmpty(t, group.ID)

	// the trainee is not in the group yet, so it stays hidden
	status, _ = doRequest(ctx, t, "GET", fmt.Sprintf("%s/groups/%s", serverEndpoint, group.ID), traineeToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// only the coach can add members
	status, _ = doRequest(ctx, t, "POST", fmt.Sprintf("%s/groups/%s/members", serverEndpoint, group.ID), traineeToken, map[string]any{
		"userId": trainee.ID,
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(ctx, t, "POST", fmt.Sprintf("%s/groups/%s/members", serverEndpoint, group.ID), coachToken, map[string]any{
		"userId": trainee.ID,
	})
	require.Equal(t, http.StatusOK, status)

	// adding twice is a conflict
	status, _ = doRequest(ctx, t, "POST", fmt.Sprintf("%s/groups/%s/members", serverEndpoint, group.ID), coachToken, map[string]any{
		"userId": trainee.ID,
	})
	assert.Equal(t, http.StatusConflict, status)

	// the member now sees the group, with the member list attached
	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/groups/%s", serverEndpoint, group.ID), traineeToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &group))
	require.Len(t, group.Members, 1)
	assert.Equal(t, "trainee_laza", group.Members[0].Username)

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/groups", serverEndpoint), traineeToken, nil)
	require.Equal(t, http.StatusOK, status)
	var visibleGroups []groups.Group
	require.NoError(t, json.Unmarshal(body, &visibleGroups))
	require.Len(t, visibleGroups, 1)
	assert.Equal(t, "Morning Crew", visibleGroups[0].Name)

	status, _ = doRequest(ctx, t, "DELETE", fmt.Sprintf("%s/groups/%s/members/%s", serverEndpoint, group.ID, trainee.ID), coachToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(ctx, t, "GET", fmt.Sprintf("%s/groups/%s", serverEndpoint, group.ID), traineeToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
