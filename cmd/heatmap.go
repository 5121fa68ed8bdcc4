package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/keggview/internal/site"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap <mapId>",
	Short: "Build the heatmap link for a pathway",
	Long: `Colours every gene of the pathway that has an abundance score with its
heatmap colour and prints the KEGG link.`,
	Args: cobra.ExactArgs(1),
	RunE: runHeatmap,
}

func init() {
	heatmapCmd.Flags().Bool("open", false, "open the link in the browser")
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	open, _ := cmd.Flags().GetBool("open")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := loadSession(context.Background(), cfg, false)
	if err != nil {
		return err
	}

	u, err := sess.HeatmapURL(args[0], nil)
	if err != nil {
		return err
	}
	fmt.Println(u)

	if open {
		if err := site.OpenBrowser(u); err != nil {
			slog.Warn("could not open browser", "error", err)
		}
	}
	return nil
}
