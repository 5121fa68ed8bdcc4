package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/keggview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize keggview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that locates your pathway and abundance documents and writes a .keggview.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
