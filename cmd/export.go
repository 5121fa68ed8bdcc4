package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/keggview/internal/pathway"
	"github.com/ziadkadry99/keggview/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the coloured tree as Markdown and static HTML",
	Long: `Writes tree.md and tree.html into the output directory. Every pathway
links to its heatmap on KEGG.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "export", "output directory")
	exportCmd.Flags().String("title", "KEGG pathways", "document title")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := loadSession(context.Background(), cfg, false)
	if err != nil {
		return err
	}

	link := func(n *pathway.Node) string {
		p, err := sess.PathwayNode(n.Key, n.PathwayID)
		if err != nil {
			return ""
		}
		u, err := sess.HeatmapURL(p.ID, p.Identifiers)
		if err != nil {
			return ""
		}
		return u
	}
	paths, err := site.Export(outDir, title, sess.Forest(), link)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Wrote %s\n", p)
	}
	return nil
}
