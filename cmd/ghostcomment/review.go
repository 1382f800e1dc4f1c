package ghostcomment

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostcomment/ghostcomment/internal/cleaner"
	"github.com/ghostcomment/ghostcomment/internal/engine"
	"github.com/ghostcomment/ghostcomment/internal/gcerr"
	"github.com/ghostcomment/ghostcomment/internal/report"
	"github.com/ghostcomment/ghostcomment/internal/tui"
	"github.com/ghostcomment/ghostcomment/internal/types"
)

var (
	reviewPath   string
	reviewDryRun bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively pick which ghost comments to delete",
		RunE:  runReview,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&reviewPath, "path", "p", ".", "path to scan")
	cmd.Flags().BoolVar(&reviewDryRun, "dry-run", false, "report what would change without writing")
}

func runReview(cmd *cobra.Command, _ []string) error {
	if !report.StdoutIsTerminal() {
		return gcerr.New(gcerr.KindConfig, "review needs an interactive terminal; use 'clean' in scripts")
	}
	setup, err := resolveSetup(reviewPath)
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

	selected, confirmed, err := tui.Run(comments)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted, nothing changed.")
		return nil
	}
	if len(selected) == 0 {
		fmt.Println("Nothing selected, nothing changed.")
		return nil
	}

	opts := types.CleanOptions{CreateBackups: true, RestoreOnError: true, DryRun: reviewDryRun}
	c := cleaner.New(logger)
	c.NoCache = setup.noCache
	res, err := c.RemoveComments(selected, opts, setup.root)
	if err != nil {
		return err
	}
	report.PrintCleanResult(os.Stdout, res, reviewDryRun)
	if res.HasErrors {
		os.Exit(1)
	}
	return nil
}
