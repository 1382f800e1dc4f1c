package ghostcomment

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostcomment/ghostcomment/internal/cleaner"
	"github.com/ghostcomment/ghostcomment/internal/engine"
	"github.com/ghostcomment/ghostcomment/internal/report"
	"github.com/ghostcomment/ghostcomment/internal/types"
)

var (
	cleanPath          string
	cleanDryRun        bool
	cleanNoBackup      bool
	cleanNoRestore     bool
	cleanRemoveBackups bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete ghost comment lines from the working tree",
		RunE:  runClean,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&cleanPath, "path", "p", ".", "path to clean")
	cmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&cleanNoBackup, "no-backup", false, "skip per-file backups before rewriting")
	cmd.Flags().BoolVar(&cleanNoRestore, "no-restore", false, "do not roll back already-cleaned files when a later file fails")
	cmd.Flags().BoolVar(&cleanRemoveBackups, "remove-backups", false, "delete backups after a fully clean batch")
}

func runClean(cmd *cobra.Command, _ []string) error {
	setup, err := resolveSetup(cleanPath)
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

	opts := types.CleanOptions{
		CreateBackups:  !cleanNoBackup,
		RestoreOnError: !cleanNoRestore,
		RemoveBackups:  cleanRemoveBackups,
		DryRun:         cleanDryRun,
	}
	c := cleaner.New(logger)
	c.NoCache = setup.noCache
	res, err := c.RemoveComments(comments, opts, setup.root)
	if err != nil {
		return err
	}

	report.PrintCleanResult(os.Stdout, res, cleanDryRun)
	if res.HasErrors {
		os.Exit(1)
	}
	return nil
}
