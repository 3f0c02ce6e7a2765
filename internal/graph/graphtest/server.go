// Package graphtest serves a scripted Graph API for tests.
package graphtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/klemjul/msgdump/internal/graph"
)

const Token = "test-token"

// ScriptedPage is one response of the messages edge. Pages are served in order:
// page i is answered for cursor "cursor-i" (the first page for an empty cursor).
type ScriptedPage struct {
	Records  []graph.Record
	NoCursor bool
	OmitData bool
	Status   int
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	convs    map[string]string
	pages    map[string][]ScriptedPage
	convCode int
	requests []url.URL
}

func NewServer() *Server {
	s := &Server{
		convs: map[string]string{},
		pages: map[string][]ScriptedPage{},
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.authorize)
	r.Get("/{version}/me/conversations", s.conversations)
	r.Get("/{version}/{conversationID}/messages", s.messages)

	s.Server = httptest.NewServer(r)
	return s
}

// AddConversation maps a participant to a conversation and scripts its pages.
func (s *Server) AddConversation(participantID, conversationID string, pages ...ScriptedPage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[participantID] = conversationID
	s.pages[conversationID] = pages
}

// FailConversations makes the conversations lookup answer with status code.
func (s *Server) FailConversations(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convCode = code
}

func (s *Server) Requests() []url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.URL{}, s.requests...)
}

// MessageRequests returns the after cursor of every messages request, in order.
func (s *Server) MessageRequests() []string {
	var cursors []string
	for _, u := range s.Requests() {
		if strings.HasSuffix(u.Path, "/messages") {
			cursors = append(cursors, u.Query().Get("after"))
		}
	}
	return cursors
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, *r.URL)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != Token {
			writeError(w, http.StatusBadRequest, "Invalid OAuth access token.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) conversations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	code := s.convCode
	convID, ok := s.convs[r.URL.Query().Get("user_id")]
	s.mu.Unlock()

	if code != 0 {
		writeError(w, code, "conversation lookup failed")
		return
	}

	data := []map[string]string{}
	if ok {
		data = append(data, map[string]string{"id": convID})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	convID := chi.URLParam(r, "conversationID")

	s.mu.Lock()
	pages, ok := s.pages[convID]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unsupported get request. Object with ID '%s' does not exist", convID))
		return
	}

	index := 0
	if after := r.URL.Query().Get("after"); after != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(after, "cursor-"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid cursor")
			return
		}
		index = n
	}
	if index >= len(pages) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []graph.Record{}})
		return
	}

	page := pages[index]
	if page.Status != 0 && page.Status != http.StatusOK {
		writeError(w, page.Status, "messages request failed")
		return
	}
	if page.OmitData {
		writeJSON(w, http.StatusOK, map[string]any{"paging": map[string]any{}})
		return
	}

	records := page.Records
	if records == nil {
		records = []graph.Record{}
	}
	body := map[string]any{"data": records}
	if !page.NoCursor {
		body["paging"] = graph.Paging{Cursors: graph.Cursors{
			Before: fmt.Sprintf("cursor-%d", index),
			After:  fmt.Sprintf("cursor-%d", index+1),
		}}
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    "OAuthException",
			"code":    code,
		},
	})
}
