package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/keggview/internal/config"
	"github.com/ziadkadry99/keggview/internal/logging"
)

var (
	cfgFile       string
	verbose       bool
	logFormat     string
	pathwaysFlag  string
	abundanceFlag string
)

var rootCmd = &cobra.Command{
	Use:   "keggview",
	Short: "Browse KEGG pathways coloured by gene abundance",
	Long: `keggview loads a KEGG pathway hierarchy and a table of gene abundance
scores, prunes the hierarchy to what can be shown, and colours every gene on
a red-blue heatmap. It builds KEGG show_pathway links that colour genes on
the pathway maps, from the terminal, a local web page or an MCP client.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging("")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&pathwaysFlag, "pathways", "", "pathway hierarchy file or URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&abundanceFlag, "abundance", "", "abundance scores file or URL (overrides config)")
}

// initLogging sets the default logger. --verbose wins over the configured level.
func initLogging(level string) {
	lvl := logging.ParseLevel(level)
	if level == "" {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	logging.Init(logFormat, lvl)
}
