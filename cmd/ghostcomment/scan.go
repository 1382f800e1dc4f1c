package ghostcomment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghostcomment/ghostcomment/internal/config"
	"github.com/ghostcomment/ghostcomment/internal/engine"
	"github.com/ghostcomment/ghostcomment/internal/report"
	"github.com/ghostcomment/ghostcomment/internal/types"
	"github.com/ghostcomment/ghostcomment/internal/update"
)

var (
	flagPath        string
	flagPrefix      string
	flagInclude     string
	flagExclude     string
	flagCount       bool
	flagFailOnFound bool
	flagCopy        bool
	flagSingle      string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files for ghost comments",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagPrefix, "prefix", "", "marker prefix (default //_gc_)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().BoolVar(&flagCount, "count", false, "print only the number of ghost comments")
	cmd.Flags().BoolVar(&flagFailOnFound, "fail-on-found", false, "exit 1 when any ghost comment is found")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "copy the JSON result to the clipboard")
	cmd.Flags().StringVar(&flagSingle, "file", "", "scan a single file instead of walking the tree")
}

// scanSetup is the resolved environment shared by scan, clean, validate,
// post and review: CLI flags merged over local and global config.
type scanSetup struct {
	root    string
	cfg     config.ScanConfig
	noColor bool
	noCache bool
}

func resolveSetup(path string) (scanSetup, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return scanSetup{}, err
	}
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := config.ScanConfig{
		Prefix:      pickString(flagPrefix, lcfg.Prefix, gcfg.Prefix),
		Include:     pickStringSlice(splitCSV(flagInclude), lcfg.Include, gcfg.Include),
		Exclude:     pickStringSlice(splitCSV(flagExclude), lcfg.Exclude, gcfg.Exclude),
		FailOnFound: pickBool(flagFailOnFound, lcfg.FailOnFound, gcfg.FailOnFound),
	}
	if cfg.Prefix == "" {
		cfg.Prefix = config.DefaultPrefix
	}
	if len(cfg.Include) == 0 {
		cfg.Include = []string{"**/*"}
	}

	return scanSetup{
		root:    abs,
		cfg:     cfg,
		noColor: pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || !report.StdoutIsTerminal(),
		noCache: pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
	}, nil
}

func updateBanner() {
	if flagJSON || flagNoUpdateCheck {
		return
	}
	if latest, newer, _ := update.Check(version, false); newer && latest != "" {
		fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'ghostcomment update' to upgrade\n", latest)
	}
}

func runScan(cmd *cobra.Command, _ []string) error {
	setup, err := resolveSetup(flagPath)
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	scanner := engine.New(setup.cfg, logger)
	scanner.NoCache = setup.noCache

	updateBanner()

	if flagCount {
		n, err := scanner.Count(setup.root)
		if err != nil {
			return err
		}
		fmt.Println(n)
		if setup.cfg.FailOnFound && n > 0 {
			os.Exit(1)
		}
		return nil
	}

	start := time.Now()
	var comments []types.GhostComment
	if flagSingle != "" {
		comments, err = scanner.ScanFile(setup.root, flagSingle)
	} else {
		comments, err = scanner.Scan(setup.root)
	}
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if flagCopy {
		if err := report.CopyComments(comments); err != nil {
			fmt.Fprintln(os.Stderr, "clipboard:", err)
		}
	}

	if flagJSON {
		if err := report.WriteJSON(os.Stdout, comments); err != nil {
			return err
		}
	} else {
		report.PrintComments(os.Stdout, comments, report.PrintOptions{
			NoColor:  setup.noColor,
			Duration: duration,
		})
	}

	if setup.cfg.FailOnFound && len(comments) > 0 {
		os.Exit(1)
	}
	return nil
}
