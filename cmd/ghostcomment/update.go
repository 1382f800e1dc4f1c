package ghostcomment

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghostcomment/ghostcomment/internal/update"
)

var updateCheckOnly bool

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update ghostcomment to the latest release",
		RunE:  runUpdate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&updateCheckOnly, "check", false, "only report whether a newer release exists")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	latest, newer, err := update.Check(version, false)
	if err != nil {
		return err
	}
	if !newer {
		fmt.Printf("ghostcomment v%s is up to date\n", version)
		return nil
	}
	fmt.Printf("new version available: v%s (current v%s)\n", latest, version)
	if updateCheckOnly {
		return nil
	}
	if err := selfUpdate(); err != nil {
		return fmt.Errorf("self-update failed: %w", err)
	}
	fmt.Println("updated; re-run your command")
	return nil
}
