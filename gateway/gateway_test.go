package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"syncode/localstore"
	"syncode/session"
	"syncode/types"
)

func newTestSession(t *testing.T) *session.Manager {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "local_storage.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(store.Close)
	return session.NewManager(store)
}

func TestBearerTokenAttachedWhenSessionPresent(t *testing.T) {
	sess := newTestSession(t)
	err := sess.Set(types.Session{UserID: "u1", Username: "ada", Token: "jwt-abc", Role: types.RoleUser})
	if err != nil {
		t.Fatalf("set session: %v", err)
	}

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]types.Snippet{})
	}))
	defer server.Close()

	client := New(server.URL, sess)
	if _, err := client.ListSnippets("u1"); err != nil {
		t.Fatalf("list snippets: %v", err)
	}
	if gotAuth != "Bearer jwt-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoAuthorizationHeaderWithoutSession(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{
			"userId": "u1", "username": "ada", "token": "jwt", "role": "user",
		})
	}))
	defer server.Close()

	client := New(server.URL, newTestSession(t))
	s, err := client.Login("a@b.com", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
	if s.Token != "jwt" || s.Role != "user" || s.UserID != "u1" || s.Username != "ada" {
		t.Fatalf("unexpected login result: %+v", s)
	}
}

func TestNon2xxBecomesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired token"})
	}))
	defer server.Close()

	client := New(server.URL, newTestSession(t))
	_, err := client.ListSnippets("u1")
	if err == nil {
		t.Fatalf("expected error")
	}

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *GatewayError, got %T: %v", err, err)
	}
	if gwErr.Status != 401 || gwErr.Message != "Invalid or expired token" {
		t.Fatalf("unexpected gateway error: %+v", gwErr)
	}
}

func TestGatewayErrorDoesNotClearSession(t *testing.T) {
	sess := newTestSession(t)
	err := sess.Set(types.Session{UserID: "u1", Username: "ada", Token: "stale", Role: types.RoleUser})
	if err != nil {
		t.Fatalf("set session: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
	}))
	defer server.Close()

	client := New(server.URL, sess)
	if _, err := client.ListSnippets("u1"); err == nil {
		t.Fatalf("expected 401 error")
	}

	// Only explicit logout clears the session; a rejected token stays stored.
	s, err := sess.Get()
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !s.Present() || s.Token != "stale" {
		t.Fatalf("expected session to survive 401, got %+v", s)
	}
}

func TestRunCodeMapsCppAndUnwrapsOutput(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/run" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"run": map[string]string{"output": "hello\n"},
		})
	}))
	defer server.Close()

	client := New(server.URL, newTestSession(t))
	output, err := client.RunCode("cpp", "int main() {}")
	if err != nil {
		t.Fatalf("run code: %v", err)
	}
	if gotBody["language"] != "c++" {
		t.Fatalf("expected wire language c++, got %q", gotBody["language"])
	}
	if output != "hello\n" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestUpdateSnippetSendsFullRecord(t *testing.T) {
	var got types.Snippet
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/snippets/s1" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(got)
	}))
	defer server.Close()

	client := New(server.URL, newTestSession(t))
	sn := types.Snippet{ID: "s1", OwnerID: "u1", Language: "python", Code: "print(1)", Pinned: true}
	updated, err := client.UpdateSnippet("s1", sn)
	if err != nil {
		t.Fatalf("update snippet: %v", err)
	}
	if got != sn {
		t.Fatalf("expected full record on the wire, got %+v", got)
	}
	if updated != sn {
		t.Fatalf("expected echoed record, got %+v", updated)
	}
}
