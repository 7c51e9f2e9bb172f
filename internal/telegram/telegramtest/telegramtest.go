// Package telegramtest provides a fake Telegram Bot API server for tests.
package telegramtest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
)

// Token is the bot token used by clients of the fake server.
const Token = "123456:test-token"

// Call is one recorded Bot API request.
type Call struct {
	Method string
	Params map[string]string
}

// Server records Bot API calls and answers them with canned results.
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	calls     []Call
	usernames map[int64]string
	failSend  map[int64]bool
	failChat  map[int64]bool
}

// NewServer starts a fake server that is closed with the test.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		usernames: make(map[int64]string),
		failSend:  make(map[int64]bool),
		failChat:  make(map[int64]bool),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)
	return s
}

// Bot returns a client talking to the fake server.
func (s *Server) Bot(t testing.TB, opts ...bot.Option) *bot.Bot {
	t.Helper()
	opts = append([]bot.Option{bot.WithServerURL(s.srv.URL), bot.WithSkipGetMe()}, opts...)
	b, err := bot.New(Token, opts...)
	if err != nil {
		t.Fatalf("bot.New: %v", err)
	}
	return b
}

// SetUsername makes getChat report username for chatID.
func (s *Server) SetUsername(chatID int64, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usernames[chatID] = username
}

// FailSend makes sendMessage to chatID fail.
func (s *Server) FailSend(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSend[chatID] = true
}

// FailChat makes getChat for chatID fail.
func (s *Server) FailChat(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failChat[chatID] = true
}

// Calls returns the recorded requests for method, or all requests when
// method is empty.
func (s *Server) Calls(method string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Texts returns the text of every sendMessage call, in order.
func (s *Server) Texts() []string {
	var out []string
	for _, c := range s.Calls("sendMessage") {
		out = append(out, c.Params["text"])
	}
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	params := make(map[string]string)
	if err := r.ParseMultipartForm(1 << 20); err == nil {
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
	} else if errors.Is(err, http.ErrNotMultipart) {
		_ = r.ParseForm()
		for k := range r.Form {
			params[k] = r.Form.Get(k)
		}
	}

	method := path.Base(r.URL.Path)
	chatID, _ := strconv.ParseInt(params["chat_id"], 10, 64)

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: method, Params: params})
	failSend := s.failSend[chatID]
	failChat := s.failChat[chatID]
	username := s.usernames[chatID]
	s.mu.Unlock()

	switch method {
	case "sendMessage":
		if failSend {
			writeError(w, http.StatusForbidden, "Forbidden: bot was blocked by the user")
			return
		}
		writeResult(w, map[string]any{
			"message_id": len(s.Calls("sendMessage")),
			"date":       0,
			"chat":       map[string]any{"id": chatID, "type": "private"},
			"text":       params["text"],
		})
	case "getChat":
		if failChat {
			writeError(w, http.StatusBadRequest, "Bad Request: chat not found")
			return
		}
		writeResult(w, map[string]any{"id": chatID, "type": "private", "username": username})
	case "getUpdates":
		time.Sleep(10 * time.Millisecond)
		writeResult(w, []any{})
	case "getMe":
		writeResult(w, map[string]any{"id": 1, "is_bot": true, "first_name": "Glossary", "username": "glossary_bot"})
	default:
		writeResult(w, true)
	}
}

func writeResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func writeError(w http.ResponseWriter, status int, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error_code": status, "description": description})
}
