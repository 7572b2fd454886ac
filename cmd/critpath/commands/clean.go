package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/critpath/internal/app"
	"go.trai.ch/critpath/internal/core/domain"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the report cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cacheDir, _ := cmd.Flags().GetString("cache")
			return c.app.Clean(cmd.Context(), app.CleanOptions{CacheDir: cacheDir})
		},
	}
	cmd.Flags().String("cache", domain.DefaultCachePath(), "Directory of the report cache")
	return cmd
}
