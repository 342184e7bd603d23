package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/fitstack/internal/exercises"
	"github.com/2beens/fitstack/internal/gamify"
	"github.com/2beens/fitstack/internal/users"
	"github.com/2beens/fitstack/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestWorkoutFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerUser(ctx, t, "pera", "a-strong-password-1")
	token := doLogin(ctx, t, "pera", "a-strong-password-1")

	// exercise catalog is public and comes from the seed data
	status, body := doRequest(ctx, t, "GET", fmt.Sprintf("%s/exercises", serverEndpoint), "", nil)
	require.Equal(t, http.StatusOK, status)
	var catalog []exercises.Exercise
	require.NoError(t, json.Unmarshal(body, &catalog))
	require.NotEmpty(t, catalog)

	var benchPress exercises.Exercise
	for _, exercise := range catalog {
		if exercise.Name == "Barbell Bench Press" {
			benchPress = exercise
			break
		}
	}
	require.NotEmpty(t, benchPress.ID)

	durationMinutes := 45
	status, body = doRequest(ctx, t, "POST", fmt.Sprintf("%s/workouts", serverEndpoint), token, workouts.Workout{
		Name:            "Push Day",
		Notes:           "felt strong",
		DurationMinutes: &durationMinutes,
		Exercises: []workouts.WorkoutExercise{
			{
				ExerciseID: benchPress.ID,
				Sets:       3,
				Reps:       []int{10, 8, 6},
				Weight:     []float64{60, 70, 80},
			},
		},
	})
	require.Equal(t, http.StatusCreated, status)

	var addedWorkout workouts.Workout
	require.NoError(t, json.Unmarshal(body, &addedWorkout))
	require.NotEmpty(t, addedWorkout.ID)
	require.Len(t, addedWorkout.Exercises, 1)
	assert.Equal(t, 0, addedWorkout.Exercises[0].OrderIndex)

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/workouts/%s", serverEndpoint, addedWorkout.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	var gotWorkout workouts.Workout
	require.NoError(t, json.Unmarshal(body, &gotWorkout))
	assert.Equal(t, "Push Day", gotWorkout.Name)

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/workouts/list/page/1/size/10", serverEndpoint), token, nil)
	require.Equal(t, http.StatusOK, status)
	var list workouts.ListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Total)

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/workouts/stats", serverEndpoint), token, nil)
	require.Equal(t, http.StatusOK, status)
	var stats workouts.WorkoutStats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 1, stats.TotalWorkouts)
	assert.Equal(t, 1, stats.WorkoutsThisWeek)
	assert.Equal(t, 1, stats.StreakDays)
	assert.Equal(t, float64(durationMinutes), stats.AvgDurationMinutes)

	// the logged workout produced a personal best
	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/gamify/personalbests", serverEndpoint), token, nil)
	require.Equal(t, http.StatusOK, status)
	var bests []gamify.PersonalBest
	require.NoError(t, json.Unmarshal(body, &bests))
	require.Len(t, bests, 1)
	assert.Equal(t, benchPress.ID, bests[0].ExerciseID)
	assert.Equal(t, 80.0, bests[0].BestWeightKg)
	assert.Equal(t, 10, bests[0].BestReps)

	// first workout and first personal best achievements landed
	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/gamify/earned", serverEndpoint), token, nil)
	require.Equal(t, http.StatusOK, status)
	var earned []gamify.EarnedAchievement
	require.NoError(t, json.Unmarshal(body, &earned))
	earnedNames := make([]string, 0, len(earned))
	for _, e := range earned {
		earnedNames = append(earnedNames, e.Name)
	}
	assert.Contains(t, earnedNames, "First Steps")
	assert.Contains(t, earnedNames, "Record Setter")

	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/me/progress", serverEndpoint), token, nil)
	require.Equal(t, http.StatusOK, status)
	var progress users.ProgressResponse
	require.NoError(t, json.Unmarshal(body, &progress))
	assert.Equal(t, 100, progress.TotalPoints)
	assert.Equal(t, 1, progress.Level)
	assert.GreaterOrEqual(t, progress.Rank, 1)

	// leaderboard is public and includes the fresh points
	status, body = doRequest(ctx, t, "GET", fmt.Sprintf("%s/leaderboard", serverEndpoint), "", nil)
	require.Equal(t, http.StatusOK, status)
	var leaderboard users.LeaderboardResponse
	require.NoError(t, json.Unmarshal(body, &leaderboard))
	require.NotEmpty(t, leaderboard.Entries)
	found := false
	for _, entry := range leaderboard.Entries {
		if entry.Username == "pera" {
			found = true
			assert.Equal(t, 100, entry.TotalPoints)
		}
	}
	assert.True(t, found)
}
