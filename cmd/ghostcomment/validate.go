package ghostcomment

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostcomment/ghostcomment/internal/cleaner"
	"github.com/ghostcomment/ghostcomment/internal/engine"
)

var validatePath string

func init() {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that found ghost comments are still safe to delete",
		RunE:  runValidate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&validatePath, "path", "p", ".", "path to validate")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	setup, err := resolveSetup(validatePath)
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

	res := cleaner.New(logger).Validate(comments, setup.root)
	if res.Valid {
		fmt.Printf("%d ghost comment(s) validated ✅\n", len(comments))
		return nil
	}
	fmt.Fprintf(os.Stderr, "%d validation error(s):\n", len(res.Errors))
	for _, e := range res.Errors {
		fmt.Fprintln(os.Stderr, " ", e)
	}
	os.Exit(1)
	return nil
}
