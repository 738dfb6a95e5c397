package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/press/pkg/config"
	"github.com/yaklabco/press/pkg/reporter"
	"github.com/yaklabco/press/pkg/runner"
)

type tokensFlags struct {
	format  string
	noCache bool
	compact bool
}

func newTokensCommand(global *globalFlags) *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a manuscript",
		Long: `Compile one manuscript and print its refined token stream: one row per
line token with its kind, source line, list or reference index, and inline
text. Markup in the text is shown as {strong-begin}, {en-dash} and so on.

Examples:
  press tokens book/intro.ms
  press tokens book/intro.ms --format json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "neither read nor write the result cache")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

func runTokens(cmd *cobra.Command, path string, global *globalFlags, flags *tokensFlags) error {
	cliCfg := &config.Config{Format: config.OutputFormat(flags.format)}
	if flags.noCache {
		disabled := false
		cliCfg.Cache.Enabled = &disabled
	}

	sess, err := loadSession(cmd, global, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return &usageError{err}
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(sess.workDir, path)
	}

	opts := runner.Options{WorkingDir: sess.workDir, Jobs: 1}
	if store := sess.openCache(); store != nil {
		defer store.Close()
		opts.Cache = store
	}

	r := runner.New()
	r.KeepTokens = true
	result, err := r.RunFiles(sess.ctx, []string{path}, opts)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	file := result.Files[0]

	repOpts := reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       sess.color,
		ShowContext: !sess.cfg.NoContext,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
		TermWidth:   terminalWidth(cmd.OutOrStdout()),
	}

	switch {
	case file.Error != nil:
		return file.Error
	case file.Diagnostic != nil:
		rep, err := reporter.New(repOpts)
		if err != nil {
			return fmt.Errorf("create reporter: %w", err)
		}
		if _, err := rep.Report(sess.ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
		return ErrManuscriptErrors
	}

	return reporter.WriteTokens(repOpts, reporter.TokenDump{
		Path:   file.Path,
		Cached: file.Cached,
		Sizing: file.Sizing,
		Tokens: file.Tokens,
	})
}

// terminalWidth returns the width of w when it is a terminal, or zero.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
