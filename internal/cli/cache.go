package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/press/internal/logging"
	"github.com/yaklabco/press/pkg/cache"
	"github.com/yaklabco/press/pkg/config"
)

// defaultPruneAge is how long results stay cached by default.
const defaultPruneAge = 30 * 24 * time.Hour

func newCacheCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or prune the result cache",
		Args:  usageArgs(cobra.NoArgs),
	}

	cmd.AddCommand(newCacheInfoCommand(global))
	cmd.AddCommand(newCachePruneCommand(global))

	return cmd
}

func newCacheInfoCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the cache location and entry count",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheForCommand(cmd, global)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Len(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries\n", store.Path(), n)
			return nil
		},
	}
}

func newCachePruneCommand(global *globalFlags) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete cached results older than a given age",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan < 0 {
				return &usageError{fmt.Errorf("--older-than must not be negative")}
			}
			store, err := openCacheForCommand(cmd, global)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			logging.Default().Info("pruned cache", logging.FieldCache, store.Path(), logging.FieldRemoved, removed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", defaultPruneAge, "remove entries last checked before this age")

	return cmd
}

// openCacheForCommand opens the configured cache even when caching is
// disabled for checks.
func openCacheForCommand(cmd *cobra.Command, global *globalFlags) (*cache.Store, error) {
	sess, err := loadSession(cmd, global, &config.Config{})
	if err != nil {
		return nil, err
	}
	path, err := sess.cachePath()
	if err != nil {
		return nil, fmt.Errorf("resolve cache path: %w", err)
	}
	store, err := cache.Open(sess.ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	cmd.SetContext(sess.ctx)
	return store, nil
}
