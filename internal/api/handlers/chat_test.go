package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getChatHistory(t *testing.T, ts *testutil.TestServer, token, matchID string) *http.Response {
	t.Helper()

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet,
		ts.APIURL("/chats/"+matchID+"/messages"), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestChatHandler_GetHistory(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	bob, bobToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, eveToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	match := testutil.MutualLike(t, ts, alice, bob)

	msg := &domain.Message{
		ID:       uuid.New(),
		MatchID:  match.ID,
		SenderID: alice.ID,
		Content:  "hey bob",
	}
	require.NoError(t, ts.Repos.Message.Create(context.Background(), msg))

	t.Run("participant reads history", func(t *testing.T) {
		resp := getChatHistory(t, ts, bobToken, match.ID.String())
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var history struct {
			MatchID  string `json:"matchId"`
			Messages []struct {
				Content string `json:"content"`
				Sender  struct {
					ID string `json:"id"`
				} `json:"sender"`
			} `json:"messages"`
		}
		testutil.AssertJSONResponse(t, resp, &history)
		assert.Equal(t, match.ID.String(), history.MatchID)
		require.Len(t, history.Messages, 1)
		assert.Equal(t, "hey bob", history.Messages[0].Content)
		assert.Equal(t, alice.ID.String(), history.Messages[0].Sender.ID)
	})

	t.Run("non-participant forbidden", func(t *testing.T) {
		resp := getChatHistory(t, ts, eveToken, match.ID.String())
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "not part of this match")
	})

	t.Run("unknown match", func(t *testing.T) {
		resp := getChatHistory(t, ts, bobToken, uuid.NewString())
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Match not found")
	})

	t.Run("bad match id", func(t *testing.T) {
		resp := getChatHistory(t, ts, bobToken, "not-a-uuid")
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid match id")
	})

	t.Run("missing token", func(t *testing.T) {
		resp := getChatHistory(t, ts, "", match.ID.String())
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestChatHandler_GetChatList(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, aliceToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	bob, _ := testutil.NewUserBuilder().WithName("bob").BuildAndAuthenticate(t, ts)

	match := testutil.MutualLike(t, ts, alice, bob)

	msg := &domain.Message{
		ID:       uuid.New(),
		MatchID:  match.ID,
		SenderID: bob.ID,
		Content:  "last word",
	}
	require.NoError(t, ts.Repos.Message.Create(context.Background(), msg))

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/chats"), nil, aliceToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var chats []struct {
		MatchID   string `json:"matchId"`
		OtherUser *struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"otherUser"`
		LastMessage *struct {
			Content string `json:"content"`
		} `json:"lastMessage"`
	}
	testutil.AssertJSONResponse(t, resp, &chats)
	require.Len(t, chats, 1)
	assert.Equal(t, match.ID.String(), chats[0].MatchID)
	require.NotNil(t, chats[0].OtherUser)
	assert.Equal(t, bob.ID.String(), chats[0].OtherUser.ID)
	assert.Equal(t, "bob", chats[0].OtherUser.Name)
	require.NotNil(t, chats[0].LastMessage)
	assert.Equal(t, "last word", chats[0].LastMessage.Content)
}
