package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var colorCmd = &cobra.Command{
	Use:   "color <identifier>...",
	Short: "Print the heatmap colour of gene identifiers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runColor,
}

func init() {
	rootCmd.AddCommand(colorCmd)
}

func runColor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := loadSession(context.Background(), cfg, false)
	if err != nil {
		return err
	}

	idx := sess.Index()
	if lo, hi, err := idx.Bounds(); err == nil {
		fmt.Printf("%d scores, range %g to %g\n\n", idx.Len(), lo, hi)
	} else {
		fmt.Println("No abundance scores loaded; every gene is neutral.")
		fmt.Println()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IDENTIFIER\tCOLOUR\tSCORE")
	for _, id := range args {
		score := "-"
		if v, ok := idx.Value(id); ok {
			score = fmt.Sprintf("%g", v)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", id, sess.ColorFor(id), score)
	}
	return tw.Flush()
}
