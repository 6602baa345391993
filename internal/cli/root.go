// Package cli provides the command-line interface for domcol.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/domcol/internal/logging"
	"github.com/jmylchreest/domcol/internal/version"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose  bool
	logLevel string
	logJSON  bool
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "domcol",
		Short: "Find the dominant colours of an image",
		Long: `domcol finds the dominant colours of an image.

Two algorithms are available. k-means partitions every pixel into a fixed
number of clusters and reports each cluster's colour with the share of the
image it covers. Mean-shift repeatedly moves a sphere in RGB space to the
mean of the pixels it encloses and reports where each run settles.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// logger returns the stderr logger for cmd. An explicit --log-level wins,
// then --verbose, then the configured level.
func (o *rootOptions) logger(cmd *cobra.Command, configured string) (hclog.Logger, error) {
	level := configured
	switch {
	case cmd.Flags().Changed("log-level"):
		level = o.logLevel
	case o.verbose:
		level = hclog.Debug.String()
	}

	if _, err := logging.ParseLevel(level); err != nil {
		return nil, err
	}

	return logging.New(logging.Options{
		Level:  level,
		Output: cmd.ErrOrStderr(),
		JSON:   o.logJSON,
	}), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
