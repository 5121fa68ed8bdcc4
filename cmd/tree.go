package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/keggview/internal/pathway"
	"github.com/ziadkadry99/keggview/internal/termview"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the pruned pathway tree with heatmap colours",
	Long: `Loads both documents, prunes the pathway hierarchy and prints it as a tree.
Every gene is shown with its heatmap colour. Use --include to keep only the
pathways whose path matches a glob, e.g. "Metabolism/**".`,
	Args: cobra.NoArgs,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().Bool("json", false, "output the forest as JSON")
	treeCmd.Flags().StringSlice("include", nil, "glob patterns over category/pathway paths (overrides config)")
	treeCmd.Flags().Int("max-genes", 0, "list at most this many genes per pathway (0 = all)")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	include, _ := cmd.Flags().GetStringSlice("include")
	maxGenes, _ := cmd.Flags().GetInt("max-genes")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(include) > 0 {
		cfg.Include = include
	}

	sess, err := loadSession(context.Background(), cfg, jsonOutput)
	if err != nil {
		return err
	}

	forest := sess.Forest()
	if jsonOutput {
		if forest == nil {
			forest = []pathway.Node{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(forest)
	}
	return termview.Render(os.Stdout, forest, termview.Options{MaxGenes: maxGenes})
}
