package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghostcomment/ghostcomment/internal/gcerr"
	gitctx "github.com/ghostcomment/ghostcomment/internal/git"
	"github.com/ghostcomment/ghostcomment/internal/types"
)

var testPR = gitctx.Context{Owner: "acme", Repo: "widgets", PRNumber: 12, HeadSHA: "headsha"}

var testComments = []types.GhostComment{
	{FilePath: "a.go", LineNumber: 3, Content: "drop this", Prefix: "//_gc_", OriginalLine: "//_gc_ drop this"},
	{FilePath: "b.go", LineNumber: 9, Content: "and this", Prefix: "//_gc_", OriginalLine: "//_gc_ and this"},
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("tok", nil)
	c.BaseURL = srv.URL
	return c
}

func TestPostComments_Success(t *testing.T) {
	var got []reviewComment
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets/pulls/12/comments" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("unexpected auth header %q", auth)
		}
		var rc reviewComment
		if err := json.NewDecoder(r.Body).Decode(&rc); err != nil {
			t.Fatal(err)
		}
		got = append(got, rc)
		w.WriteHeader(http.StatusCreated)
	})

	n, err := c.PostComments(context.Background(), testPR, testComments)
	if err != nil {
		t.Fatalf("PostComments: %v", err)
	}
	if n != 2 || len(got) != 2 {
		t.Fatalf("expected 2 posts, got n=%d received=%d", n, len(got))
	}
	if !strings.HasPrefix(got[0].Body, commentMarker) || !strings.HasSuffix(got[0].Body, "drop this") {
		t.Fatalf("unexpected body %q", got[0].Body)
	}
	if got[0].Path != "a.go" || got[0].Line != 3 || got[0].Side != "RIGHT" || got[0].CommitID != "headsha" {
		t.Fatalf("unexpected comment %+v", got[0])
	}
}

func TestPostComments_AuthFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	})
	n, err := c.PostComments(context.Background(), testPR, testComments)
	if !gcerr.IsKind(err, gcerr.KindAuth) {
		t.Fatalf("expected AUTH_ERROR, got %v", err)
	}
	if n != 0 {
		t.Fatalf("expected zero posted, got %d", n)
	}
}

func TestPostComments_APIErrorStopsEarly(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
			return
		}
		http.Error(w, `{"message":"Validation Failed"}`, http.StatusUnprocessableEntity)
	})
	n, err := c.PostComments(context.Background(), testPR, testComments)
	if !gcerr.IsKind(err, gcerr.KindAPI) {
		t.Fatalf("expected API_ERROR, got %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one posted before the failure, got %d", n)
	}
	if !strings.Contains(err.Error(), "b.go:9") {
		t.Fatalf("error should name the failed comment: %v", err)
	}
}

func TestPostComments_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient("tok", nil)
	c.BaseURL = url
	_, err := c.PostComments(context.Background(), testPR, testComments)
	if !gcerr.IsKind(err, gcerr.KindNetwork) {
		t.Fatalf("expected NETWORK_ERROR, got %v", err)
	}
}

func TestPostComments_MissingToken(t *testing.T) {
	c := NewClient("", nil)
	_, err := c.PostComments(context.Background(), testPR, testComments)
	if !gcerr.IsKind(err, gcerr.KindAuth) {
		t.Fatalf("expected AUTH_ERROR, got %v", err)
	}
}

func TestPostComments_MissingPRNumber(t *testing.T) {
	c := NewClient("tok", nil)
	pr := testPR
	pr.PRNumber = 0
	_, err := c.PostComments(context.Background(), pr, testComments)
	if !gcerr.IsKind(err, gcerr.KindGit) {
		t.Fatalf("expected GIT_ERROR, got %v", err)
	}
}
