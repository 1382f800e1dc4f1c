// Package github posts ghost comments as pull request review comments
// through the REST API. Only the two endpoints the tool needs are
// implemented; a full API client would be overkill here.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ghostcomment/ghostcomment/internal/gcerr"
	gitctx "github.com/ghostcomment/ghostcomment/internal/git"
	"github.com/ghostcomment/ghostcomment/internal/types"
)

const defaultBaseURL = "https://api.github.com"

// commentMarker prefixes every posted body so humans (and a later cleanup
// pass) can tell the tool's comments apart from review discussion.
const commentMarker = "\U0001F47B "

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Logger  *zap.Logger
}

func NewClient(token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: defaultBaseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

type reviewComment struct {
	Body     string `json:"body"`
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Side     string `json:"side"`
	CommitID string `json:"commit_id"`
}

// PostComments creates one review comment per ghost comment on the pull
// request identified by pr. It stops at the first failure and returns how
// many comments were posted before it.
func (c *Client) PostComments(ctx context.Context, pr gitctx.Context, comments []types.GhostComment) (int, error) {
	if c.Token == "" {
		return 0, gcerr.New(gcerr.KindAuth, "no GitHub token provided")
	}
	if pr.PRNumber <= 0 {
		return 0, gcerr.New(gcerr.KindGit, "no pull request number to post against")
	}

	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/comments", c.BaseURL, pr.Owner, pr.Repo, pr.PRNumber)
	posted := 0
	for _, gc := range comments {
		rc := reviewComment{
			Body:     commentMarker + gc.Content,
			Path:     gc.FilePath,
			Line:     gc.LineNumber,
			Side:     "RIGHT",
			CommitID: pr.HeadSHA,
		}
		if err := c.post(ctx, url, rc); err != nil {
			return posted, err
		}
		posted++
		c.Logger.Debug("posted review comment",
			zap.String("path", gc.FilePath),
			zap.Int("line", gc.LineNumber))
	}
	return posted, nil
}

func (c *Client) post(ctx context.Context, url string, rc reviewComment) error {
	body, err := json.Marshal(rc)
	if err != nil {
		return gcerr.Wrap(gcerr.KindAPI, "encode review comment", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return gcerr.Wrap(gcerr.KindAPI, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return gcerr.Wrap(gcerr.KindNetwork, "post review comment", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return gcerr.Newf(gcerr.KindAuth, "GitHub rejected the token (%s): %s", resp.Status, snippet)
	default:
		return gcerr.Newf(gcerr.KindAPI, "GitHub API error (%s) for %s:%d: %s",
			resp.Status, rc.Path, rc.Line, snippet)
	}
}
