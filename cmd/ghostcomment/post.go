package ghostcomment

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostcomment/ghostcomment/internal/cleaner"
	"github.com/ghostcomment/ghostcomment/internal/engine"
	"github.com/ghostcomment/ghostcomment/internal/git"
	"github.com/ghostcomment/ghostcomment/internal/github"
	"github.com/ghostcomment/ghostcomment/internal/report"
	"github.com/ghostcomment/ghostcomment/internal/types"
)

var (
	postPath      string
	postToken     string
	postPR        int
	postThenClean bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post ghost comments as PR review comments",
		Long:  "post scans the tree and creates one pull request review comment per ghost comment, anchored to the file and line it was found on.",
		RunE:  runPost,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&postPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&postToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	cmd.Flags().IntVar(&postPR, "pr", 0, "pull request number (overrides CI detection)")
	cmd.Flags().BoolVar(&postThenClean, "clean", false, "delete the comment lines after posting")
}

func runPost(cmd *cobra.Command, _ []string) error {
	setup, err := resolveSetup(postPath)
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	scanner := engine.New(setup.cfg, logger)
	scanner.NoCache = setup.noCache
	comments, err := scanner.Scan(setup.root)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		fmt.Println("No ghost comments found ✅")
		return nil
	}

	pr, err := git.Detect(setup.root)
	if err != nil {
		return err
	}
	if postPR != 0 {
		pr.PRNumber = postPR
	}

	token := postToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	client := github.NewClient(token, logger)
	posted, err := client.PostComments(context.Background(), pr, comments)
	if err != nil {
		fmt.Fprintf(os.Stderr, "posted %d of %d before failing\n", posted, len(comments))
		return err
	}
	fmt.Printf("Posted %d review comment(s) to %s/%s#%d\n", posted, pr.Owner, pr.Repo, pr.PRNumber)

	if !postThenClean {
		return nil
	}
	opts := types.CleanOptions{CreateBackups: true, RestoreOnError: true}
	c := cleaner.New(logger)
	c.NoCache = setup.noCache
	res, err := c.RemoveComments(comments, opts, setup.root)
	if err != nil {
		return err
	}
	report.PrintCleanResult(os.Stdout, res, false)
	if res.HasErrors {
		os.Exit(1)
	}
	return nil
}
