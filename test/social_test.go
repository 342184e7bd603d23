package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/fitstack/internal/social"
	"github.com/2beens/fitstack/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSocialFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ana := registerUser(ctx, t, "ana", "a-strong-password-1")
	registerUser(ctx, t, "zoki", "a-strong-password-2")
	anaToken := doLogin(ctx, t, "ana", "a-strong-password-1")
	zokiToken := doLogin(ctx, t, "zoki", "a-strong-password-2")

	// ana logs and shares a workout
	status, body := doRequest(ctx, t, "POST", fmt.Sprintf("%s/workouts", serverEndpoint), anaToken, workouts.Workout{
		Name: "Morning Run",
	})
	require.Equal(t, http.StatusCreated, status)
	var anaWorkout workouts.Workout
	require.NoError(t, json.Unmarshal(body, &anaWorkout))

	status, body = doRequest(ctx, t, "POST", fmt.Sprintf("%s/social/shares", serverEndpoint), anaToken, map[string]any{
		"workoutId": anaWorkout.ID,
		"caption":   "new week, new me",
	})
	require.Equal(t, http.StatusCreated, status)
	var share social.Share
	require.NoError(t, json.Unmarshal(body, &share))
	assert.Equal(t, 0, share.LikesCount)

	// zoki cannot share ana's workout
	status, _ = doRequest(ctx, t, "POST", fmt.Sprintf("%s/social/shares", serverEndpoint), zokiToken, map[string]any{
		"workoutId": anaWorkout.ID,
	})
	assert.Equal(t, http.StatusNotFound, status)

	// zoki follows ana
	status, _ = doRequest(ctx, t, "POST", fmt.Sprintf("%s/social/follow/%s", serverEndpoint, ana.ID), zokiToken, nil)
	require.Equal(t, http.StatusOK, status)

	// following twice is a conflict
	status, _ = doRequest(ctx, t, "POST", fmt.Sprintf("%s/social/follow/%s", serverEndpoint, ana.ID), zokiToken, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/social/followers", serverEndpoint), anaToken, nil)
	require.Equal(t, http.StatusOK, status)
	var followers []social.FollowEntry
	require.NoError(t, json.Unmarshal(body, &followers))
	require.Len(t, followers, 1)
	assert.Equal(t, "zoki", followers[0].Username)

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/social/following", serverEndpoint), zokiToken, nil)
	require.Equal(t, http.StatusOK, status)
	var following []social.FollowEntry
	require.NoError(t, json.Unmarshal(body, &following))
	require.Len(t, following, 1)
	assert.Equal(t, "ana", following[0].Username)

	// ana's share shows up in zoki's feed
	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/social/feed", serverEndpoint), zokiToken, nil)
	require.Equal(t, http.StatusOK, status)
	var feed social.FeedResponse
	require.NoError(t, json.Unmarshal(body, &feed))
	require.Equal(t, 1, feed.Total)
	assert.Equal(t, "ana", feed.Items[0].AuthorUsername)
	assert.Equal(t, "Morning Run", feed.Items[0].WorkoutName)
	assert.False(t, feed.Items[0].LikedByMe)

	// like, then the feed reflects it
	status, body = doRequest(ctx, t, "POST", fmt.Sprintf("%s/social/shares/%s/like", serverEndpoint, share.ID), zokiToken, nil)
	require.Equal(t, http.StatusOK, status)
	var liked struct {
		LikesCount int `json:"likesCount"`
	}
	require.NoError(t, json.Unmarshal(body, &liked))
	assert.Equal(t, 1, liked.LikesCount)

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/social/feed", serverEndpoint), zokiToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &feed))
	require.Equal(t, 1, feed.Total)
	assert.True(t, feed.Items[0].LikedByMe)
	assert.Equal(t, 1, feed.Items[0].LikesCount)

	status, body = doRequest(ctx, t, "DELETE", fmt.Sprintf("%s/social/shares/%s/like", serverEndpoint, share.ID), zokiToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &liked))
	assert.Equal(t, 0, liked.LikesCount)

	// unfollow empties the feed again
	status, _ = doRequest(ctx, t, "DELETE", fmt.Sprintf("%s/social/follow/%s", serverEndpoint, ana.ID), zokiToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/social/feed", serverEndpoint), zokiToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &feed))
	assert.Equal(t, 0, feed.Total)
}
