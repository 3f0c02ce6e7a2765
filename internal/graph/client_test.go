package graph_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klemjul/msgdump/internal/graph"
	"github.com/klemjul/msgdump/internal/graph/graphtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *graphtest.Server, opts graph.ClientOptions) graph.Client {
	opts.BaseURL = srv.URL
	if opts.AccessToken == "" {
		opts.AccessToken = graphtest.Token
	}
	return graph.NewClient(opts)
}

func TestResolveConversation_Success(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()
	srv.AddConversation("other", "t_42")

	client := newTestClient(srv, graph.ClientOptions{})
	id, err := client.ResolveConversation(t.Context(), "other")

	require.NoError(t, err)
	assert.Equal(t, "t_42", id)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/v17.0/me/conversations", reqs[0].Path)
	q := reqs[0].Query()
	assert.Equal(t, "other", q.Get("user_id"))
	assert.Equal(t, "25", q.Get("limit"))
	assert.Equal(t, "messages{message,from}", q.Get("fields"))
	assert.Equal(t, graphtest.Token, q.Get("access_token"))
	assert.False(t, q.Has("platform"))
}

func TestResolveConversation_Instagram(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()
	srv.AddConversation("other", "ig_1")

	client := newTestClient(srv, graph.ClientOptions{Platform: graph.PlatformInstagram, Version: "v22.0", PageSize: 10})
	id, err := client.ResolveConversation(t.Context(), "other")

	require.NoError(t, err)
	assert.Equal(t, "ig_1", id)
	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/v22.0/me/conversations", reqs[0].Path)
	assert.Equal(t, "instagram", reqs[0].Query().Get("platform"))
	assert.Equal(t, "10", reqs[0].Query().Get("limit"))
}

func TestResolveConversation_NotFound(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()

	client := newTestClient(srv, graph.ClientOptions{})
	id, err := client.ResolveConversation(t.Context(), "nobody")

	assert.Empty(t, id)
	assert.ErrorIs(t, err, graph.ErrConversationNotFound)
}

func TestResolveConversation_StatusError(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()
	srv.FailConversations(http.StatusInternalServerError)

	client := newTestClient(srv, graph.ClientOptions{})
	_, err := client.ResolveConversation(t.Context(), "other")

	var statusErr *graph.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "conversations", statusErr.Op)
	assert.Equal(t, "conversation lookup failed", statusErr.Message)
}

func TestResolveConversation_BadToken(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()
	srv.AddConversation("other", "t_42")

	client := newTestClient(srv, graph.ClientOptions{AccessToken: "wrong"})
	_, err := client.ResolveConversation(t.Context(), "other")

	var statusErr *graph.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "Invalid OAuth access token")
}

func TestFetchMessages_FirstPageOmitsCursor(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()
	srv.AddConversation("other", "t_1", graphtest.ScriptedPage{
		Records: []graph.Record{
			{ID: "m1", SenderID: "B", SenderName: "Bea", Text: "héllo <3", CreatedTime: "2023-07-01T10:00:00+0000"},
		},
	})

	client := newTestClient(srv, graph.ClientOptions{})
	page, err := client.FetchMessages(t.Context(), "t_1", "")

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, graph.Record{ID: "m1", SenderID: "B", SenderName: "Bea", Text: "héllo <3", CreatedTime: "2023-07-01T10:00:00+0000"}, page.Data[0])
	assert.Equal(t, "cursor-1", page.Paging.Cursors.After)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/v17.0/t_1/messages", reqs[0].Path)
	assert.False(t, reqs[0].Query().Has("after"))
}

func TestFetchMessages_PassesCursor(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()
	srv.AddConversation("other", "t_1",
		graphtest.ScriptedPage{Records: []graph.Record{{SenderID: "A", Text: "one"}}},
		graphtest.ScriptedPage{Records: []graph.Record{{SenderID: "B", Text: "two"}}, NoCursor: true},
	)

	client := newTestClient(srv, graph.ClientOptions{})
	page, err := client.FetchMessages(t.Context(), "t_1", "cursor-1")

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "two", page.Data[0].Text)
	assert.Empty(t, page.Paging.Cursors.After)
	assert.Equal(t, []string{"cursor-1"}, srv.MessageRequests())
}

func TestFetchMessages_MissingData(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()
	srv.AddConversation("other", "t_1", graphtest.ScriptedPage{OmitData: true})

	client := newTestClient(srv, graph.ClientOptions{})
	page, err := client.FetchMessages(t.Context(), "t_1", "")

	assert.Nil(t, page)
	assert.ErrorIs(t, err, graph.ErrMalformedPage)
}

func TestFetchMessages_StatusError(t *testing.T) {
	srv := graphtest.NewServer()
	defer srv.Close()

	client := newTestClient(srv, graph.ClientOptions{})
	_, err := client.FetchMessages(t.Context(), "missing", "")

	var statusErr *graph.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "messages", statusErr.Op)
}

func TestFetchMessages_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := graph.NewClient(graph.ClientOptions{BaseURL: server.URL})
	_, err := client.FetchMessages(t.Context(), "t_1", "")

	assert.ErrorContains(t, err, "decode messages")
}

func TestFetchMessages_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := graph.NewClient(graph.ClientOptions{BaseURL: server.URL, AccessToken: "secret", Timeout: 50 * time.Millisecond})
	_, err := client.FetchMessages(context.Background(), "t_1", "")

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
	var statusErr *graph.StatusError
	assert.False(t, errors.As(err, &statusErr))
}
