package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/press/internal/logging"
	"github.com/yaklabco/press/pkg/config"
	"github.com/yaklabco/press/pkg/reporter"
	"github.com/yaklabco/press/pkg/runner"
)

type checkFlags struct {
	format    string
	ignore    []string
	jobs      int
	noContext bool
	noCache   bool
	quiet     bool
	stats     bool
	compact   bool
}

func newCheckCommand(global *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check manuscripts for errors",
		Long:  checkLongDescription,
		Args:  usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide the source line under diagnostics")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "neither read nor write the result cache")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "only list manuscripts with errors")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a detailed summary with sizing totals")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

const checkLongDescription = `Check manuscripts for errors.

By default, checks all .press and .ms files in the current directory and
subdirectories. Each manuscript is compiled independently and stops at its
first error; manuscripts that compile report their sizing.

Examples:
  press check                      # Check the current directory
  press check book/                # Check one directory
  press check book/intro.ms        # Check a single file
  press check --ignore 'drafts/**' # Skip a subtree
  press check --format json        # Machine-readable output for CI`

func runCheck(cmd *cobra.Command, args []string, global *globalFlags, flags *checkFlags) error {
	cliCfg := &config.Config{
		Format:    config.OutputFormat(flags.format),
		Ignore:    flags.ignore,
		Jobs:      flags.jobs,
		NoContext: flags.noContext,
	}
	if flags.noCache {
		disabled := false
		cliCfg.Cache.Enabled = &disabled
	}

	sess, err := loadSession(cmd, global, cliCfg)
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return &usageError{err}
	}

	runOpts := runner.OptionsFromConfig(sess.cfg)
	runOpts.Paths = args
	runOpts.WorkingDir = sess.workDir
	if store := sess.openCache(); store != nil {
		defer store.Close()
		runOpts.Cache = store
	}

	logger.Debug("starting check",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, sess.workDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(sess.ctx, runOpts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       sess.color,
		ShowContext: !sess.cfg.NoContext,
		ShowPassed:  !flags.quiet,
		ShowSummary: true,
		Detailed:    flags.stats,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(sess.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitManuscriptErrors:
		return ErrManuscriptErrors
	case ExitIOError:
		return errUnreadable
	}
	return nil
}
