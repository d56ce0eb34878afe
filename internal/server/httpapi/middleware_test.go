package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/auth"
	"github.com/adhalianna/trackers/internal/server/auth/scope"
	"github.com/adhalianna/trackers/internal/server/config"
)

func testCodec() *auth.Codec {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return auth.NewCodec(cfg)
}

func issueToken(t *testing.T, codec *auth.Codec, userID uuid.UUID) string {
	t.Helper()
	token, err := codec.Issue(30*time.Minute, scope.Scope{scope.Produce(scope.UserResources{}, userID)})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return token
}

func TestRealmMiddleware_SetsChallenge(t *testing.T) {
	handler := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), realmMiddleware("tracke.rs"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("WWW-Authenticate"); got != `Bearer realm="tracke.rs"` {
		t.Fatalf("unexpected challenge header: %q", got)
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		token, ok := extractBearerToken(r)
		if ok != tc.ok || token != tc.token {
			t.Fatalf("header %q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	handler := authMiddleware(testCodec())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/task", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body := decodeErrorBody(t, rec)
	if body.Msg != msgBadToken {
		t.Fatalf("unexpected msg: %q", body.Msg)
	}
	if body.Links["new session"] != newSession || body.Links["documentation"] != docPath {
		t.Fatalf("unexpected links: %v", body.Links)
	}
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	handler := authMiddleware(testCodec())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with a garbage token")
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/task", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Msg != msgBadToken {
		t.Fatalf("unexpected msg: %q", body.Msg)
	}
}

func TestAuthMiddleware_ValidTokenCarriesClaims(t *testing.T) {
	codec := testCodec()
	userID := uuid.New()

	var seen *auth.Claims
	handler := authMiddleware(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = claimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/task", nil)
	r.Header.Set("Authorization", "Bearer "+issueToken(t, codec, userID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if seen == nil {
		t.Fatal("claims missing from context")
	}
	got, err := scope.ExtractVariable(seen.Scope, scope.UserResources{})
	if err != nil {
		t.Fatalf("ExtractVariable error: %v", err)
	}
	if got != userID {
		t.Fatalf("unexpected user id: %s", got)
	}
}

func TestRecoveryMiddleware_TurnsPanicInto500(t *testing.T) {
	handler := recoveryMiddleware(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Msg != msgInternal {
		t.Fatalf("unexpected msg: %q", body.Msg)
	}
}
