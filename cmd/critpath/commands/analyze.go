package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/critpath/internal/app"
	"go.trai.ch/critpath/internal/core/domain"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [schedule files...]",
		Short: "Compute the critical path of schedule files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			format, _ := cmd.Flags().GetString("format")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			cacheDir, _ := cmd.Flags().GetString("cache")
			all, _ := cmd.Flags().GetBool("all")

			return c.app.Analyze(cmd.Context(), args, app.AnalyzeOptions{
				Format:   format,
				NoCache:  noCache,
				CacheDir: cacheDir,
				All:      all,
				Out:      cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the report cache and recompute every schedule")
	cmd.Flags().String("cache", domain.DefaultCachePath(), "Directory of the report cache")
	cmd.Flags().BoolP("all", "a", false, "List every task, not only the critical ones")
	return cmd
}
