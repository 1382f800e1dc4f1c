package git

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/ghostcomment/ghostcomment/internal/gcerr"
)

// Context identifies the pull/merge request that posted comments anchor to.
type Context struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	PRNumber int    `json:"pr_number"`
	HeadSHA  string `json:"head_sha"`
	BaseSHA  string `json:"base_sha,omitempty"`
	Branch   string `json:"branch,omitempty"`
}

// Detect resolves the PR context from the CI environment first (GitHub
// Actions, then GitLab CI), falling back to repository metadata read with
// go-git. In the fallback PRNumber is zero and the caller must supply it.
func Detect(root string) (Context, error) {
	if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
		return detectGitHub(repo)
	}
	if os.Getenv("GITLAB_CI") != "" {
		return detectGitLab()
	}
	return detectLocal(root)
}

func detectGitHub(repoSlug string) (Context, error) {
	owner, name, ok := strings.Cut(repoSlug, "/")
	if !ok || owner == "" || name == "" {
		return Context{}, gcerr.Newf(gcerr.KindGit, "malformed GITHUB_REPOSITORY %q", repoSlug)
	}
	ctx := Context{Owner: owner, Repo: name, HeadSHA: os.Getenv("GITHUB_SHA")}

	// refs/pull/<n>/merge on pull_request events
	if ref := os.Getenv("GITHUB_REF"); strings.HasPrefix(ref, "refs/pull/") {
		parts := strings.Split(ref, "/")
		if len(parts) >= 3 {
			if n, err := strconv.Atoi(parts[2]); err == nil {
				ctx.PRNumber = n
			}
		}
	}

	// The event payload has the precise head/base SHAs; GITHUB_SHA on a
	// pull_request event is the synthetic merge commit.
	if eventPath := os.Getenv("GITHUB_EVENT_PATH"); eventPath != "" {
		if b, err := os.ReadFile(eventPath); err == nil {
			var event struct {
				PullRequest struct {
					Number int `json:"number"`
					Head   struct {
						SHA string `json:"sha"`
						Ref string `json:"ref"`
					} `json:"head"`
					Base struct {
						SHA string `json:"sha"`
					} `json:"base"`
				} `json:"pull_request"`
			}
			if err := json.Unmarshal(b, &event); err == nil && event.PullRequest.Number != 0 {
				ctx.PRNumber = event.PullRequest.Number
				if event.PullRequest.Head.SHA != "" {
					ctx.HeadSHA = event.PullRequest.Head.SHA
				}
				ctx.BaseSHA = event.PullRequest.Base.SHA
				ctx.Branch = event.PullRequest.Head.Ref
			}
		}
	}

	if ctx.PRNumber == 0 {
		return Context{}, gcerr.New(gcerr.KindGit, "not a pull request run: no PR number in GITHUB_REF or event payload")
	}
	if ctx.HeadSHA == "" {
		return Context{}, gcerr.New(gcerr.KindGit, "no head commit SHA in environment")
	}
	return ctx, nil
}

func detectGitLab() (Context, error) {
	iid := os.Getenv("CI_MERGE_REQUEST_IID")
	n, err := strconv.Atoi(iid)
	if err != nil || n <= 0 {
		return Context{}, gcerr.New(gcerr.KindGit, "not a merge request pipeline: CI_MERGE_REQUEST_IID is unset")
	}
	ctx := Context{
		Owner:    os.Getenv("CI_PROJECT_NAMESPACE"),
		Repo:     os.Getenv("CI_PROJECT_NAME"),
		PRNumber: n,
		HeadSHA:  os.Getenv("CI_COMMIT_SHA"),
		BaseSHA:  os.Getenv("CI_MERGE_REQUEST_DIFF_BASE_SHA"),
		Branch:   os.Getenv("CI_COMMIT_REF_NAME"),
	}
	if ctx.Owner == "" || ctx.Repo == "" || ctx.HeadSHA == "" {
		return Context{}, gcerr.New(gcerr.KindGit, "incomplete GitLab CI environment")
	}
	return ctx, nil
}

// detectLocal reads HEAD and the origin remote from the repository itself.
func detectLocal(root string) (Context, error) {
	repo, err := gogit.PlainOpen(root)
	if err != nil {
		return Context{}, gcerr.Wrap(gcerr.KindGit, "open repository at "+root, err)
	}
	head, err := repo.Head()
	if err != nil {
		return Context{}, gcerr.Wrap(gcerr.KindGit, "resolve HEAD", err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return Context{}, gcerr.Wrap(gcerr.KindGit, "no origin remote", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return Context{}, gcerr.New(gcerr.KindGit, "origin remote has no URL")
	}
	owner, name, ok := ParseRemoteURL(urls[0])
	if !ok {
		return Context{}, gcerr.Newf(gcerr.KindGit, "cannot parse owner/repo from remote %q", urls[0])
	}
	return Context{
		Owner:   owner,
		Repo:    name,
		HeadSHA: head.Hash().String(),
		Branch:  head.Name().Short(),
	}, nil
}

// ParseRemoteURL extracts owner and repository name from the common remote
// URL shapes: git@host:owner/repo.git, ssh://git@host/owner/repo.git and
// https://host/owner/repo.git.
func ParseRemoteURL(url string) (owner, repo string, ok bool) {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	s = strings.TrimSuffix(s, "/")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "/"); j >= 0 {
			s = s[j+1:]
		}
	} else if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return "", "", false
	}
	owner, repo = parts[len(parts)-2], parts[len(parts)-1]
	return owner, repo, owner != "" && repo != ""
}
