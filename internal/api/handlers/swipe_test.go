package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/devmatch/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type likeResult struct {
	IsMatch bool `json:"isMatch"`
	Like    struct {
		LikerID string `json:"likerId"`
		LikedID string `json:"likedId"`
	} `json:"like"`
	Match *struct {
		ID string `json:"id"`
	} `json:"match"`
}

func doLike(t *testing.T, ts *testutil.TestServer, token, likedID string) *http.Response {
	t.Helper()

	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/swipes/like"),
		map[string]string{"likedUserId": likedID}, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSwipeHandler_Like(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, aliceToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	bob, bobToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doLike(t, ts, aliceToken, bob.ID.String())
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var first likeResult
	testutil.AssertJSONResponse(t, resp, &first)
	assert.False(t, first.IsMatch)
	assert.Equal(t, alice.ID.String(), first.Like.LikerID)
	assert.Equal(t, bob.ID.String(), first.Like.LikedID)
	assert.Nil(t, first.Match)

	// Reciprocation completes the match
	resp = doLike(t, ts, bobToken, alice.ID.String())
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var mutual likeResult
	testutil.AssertJSONResponse(t, resp, &mutual)
	assert.True(t, mutual.IsMatch)
	require.NotNil(t, mutual.Match)
	assert.NotEmpty(t, mutual.Match.ID)
}

func TestSwipeHandler_Like_ErrorMapping(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, aliceToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	bob, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doLike(t, ts, aliceToken, bob.ID.String())
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	tests := []struct {
		name           string
		token          string
		likedID        string
		expectedStatus int
		message        string
	}{
		{
			name:           "duplicate like",
			token:          aliceToken,
			likedID:        bob.ID.String(),
			expectedStatus: http.StatusConflict,
			message:        "already liked",
		},
		{
			name:           "self like",
			token:          aliceToken,
			likedID:        alice.ID.String(),
			expectedStatus: http.StatusBadRequest,
			message:        "cannot like yourself",
		},
		{
			name:           "unknown target",
			token:          aliceToken,
			likedID:        uuid.NewString(),
			expectedStatus: http.StatusNotFound,
			message:        "User not found",
		},
		{
			name:           "bad user id",
			token:          aliceToken,
			likedID:        "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
			message:        "valid user id",
		},
		{
			name:           "missing token",
			token:          "",
			likedID:        bob.ID.String(),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doLike(t, ts, tt.token, tt.likedID)
			if tt.message == "" {
				testutil.AssertStatusCode(t, resp, tt.expectedStatus)
				return
			}
			testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.message)
		})
	}
}

func TestSwipeHandler_Like_RateLimited(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.LikesPerMinute = 2
	ts := testutil.NewTestServerWithConfig(t, cfg)

	_, aliceToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	targets := make([]string, 3)
	for i := range targets {
		target, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		targets[i] = target.ID.String()
	}

	for _, id := range targets[:2] {
		resp := doLike(t, ts, aliceToken, id)
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	}

	resp := doLike(t, ts, aliceToken, targets[2])
	testutil.AssertErrorResponse(t, resp, http.StatusTooManyRequests, "Too many likes")

	// A fresh window restores the budget
	ts.Redis.FastForward(time.Minute + time.Second)
	resp = doLike(t, ts, aliceToken, targets[2])
	testutil.AssertStatusCode(t, resp, http.StatusOK)
}

func TestSwipeHandler_GetMatches(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, aliceToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	bob, _ := testutil.NewUserBuilder().WithName("bob").BuildAndAuthenticate(t, ts)
	match := testutil.MutualLike(t, ts, alice, bob)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/swipes/matches"), nil, aliceToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var matches []struct {
		ID   string `json:"id"`
		User *struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	testutil.AssertJSONResponse(t, resp, &matches)
	require.Len(t, matches, 1)
	assert.Equal(t, match.ID.String(), matches[0].ID)
	require.NotNil(t, matches[0].User)
	assert.Equal(t, bob.ID.String(), matches[0].User.ID)
	assert.Equal(t, "bob", matches[0].User.Name)
}
