package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/keggview/internal/config"
	"github.com/ziadkadry99/keggview/internal/keggurl"
	"github.com/ziadkadry99/keggview/internal/selection"
)

var urlCmd = &cobra.Command{
	Use:   "url [identifier[=#bg[,#fg]]]...",
	Short: "Build a KEGG link that colours genes on a pathway map",
	Long: `Builds a show_pathway link for --pathway with each identifier coloured.
Colours default to the configured background and foreground.

  keggview url --pathway map00010 K00844 K12407=#00ff00 K00001=#ffff00,#000000

With --interactive the selection is edited at a prompt: type an identifier
to add it, -ID to remove it, a map id to switch pathway, and an empty line
to print the link.`,
	RunE: runURL,
}

func init() {
	urlCmd.Flags().String("pathway", "", "pathway map id, e.g. map00010")
	urlCmd.Flags().BoolP("interactive", "i", false, "edit the selection at a prompt")
	rootCmd.AddCommand(urlCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	mapID, _ := cmd.Flags().GetString("pathway")
	interactive, _ := cmd.Flags().GetBool("interactive")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries := make([]selection.Entry, 0, len(args))
	for _, a := range args {
		e, err := selection.ParseEntry(a)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}

	if interactive {
		return runURLPrompt(cfg, mapID, entries)
	}
	u, err := selection.Build(mapID, entries, selectionOptions(cfg)...)
	if err != nil {
		return err
	}
	fmt.Println(u)
	return nil
}

func selectionOptions(cfg *config.Config) []selection.Option {
	return []selection.Option{
		selection.WithBase(cfg.ServiceURL),
		selection.WithDefaults(cfg.DefaultBackground, cfg.DefaultForeground),
	}
}

func runURLPrompt(cfg *config.Config, mapID string, entries []selection.Entry) error {
	m := selection.New(selectionOptions(cfg)...)
	if mapID != "" {
		if err := m.SetPathway(mapID); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if _, err := m.AddEntry(e.Identifier, e.Background, e.Foreground); err != nil {
			return err
		}
	}

	for {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("%s [%d genes]", orDash(m.PathwayID()), m.Len()),
		}
		line, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		link, err := editLine(m, line, confirmSwitch)
		if err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		if link != "" {
			fmt.Println(link)
			return nil
		}
	}
}

// editLine applies one prompt line to m: an identifier (with optional
// colours) adds or recolours it, -ID removes it, a map id switches pathway
// and an empty line builds the link, which is returned.
func editLine(m *selection.Model, line string, confirm func(*selection.Pending) bool) (string, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return m.BuildURL()

	case strings.HasPrefix(line, "-"):
		id := strings.TrimSpace(line[1:])
		if !m.RemoveEntry(id) {
			return "", fmt.Errorf("%w: %q", selection.ErrUnknownEntry, id)
		}
		return "", nil

	case strings.HasPrefix(strings.ToLower(line), "map"):
		if !keggurl.ValidMapID(line) {
			return "", fmt.Errorf("%w: %q", selection.ErrInvalidPathway, line)
		}
		return "", switchPathway(m, line, confirm)
	}

	e, err := selection.ParseEntry(line)
	if err != nil {
		return "", err
	}
	added, err := m.AddEntry(e.Identifier, e.Background, e.Foreground)
	switch {
	case err != nil:
		return "", err
	case added:
		return "", nil
	case e.Background != "" || e.Foreground != "":
		return "", m.SetColors(e.Identifier, e.Background, e.Foreground)
	default:
		return "", fmt.Errorf("%s is already selected", e.Identifier)
	}
}

// switchPathway asks confirm before a switch discards the current genes.
func switchPathway(m *selection.Model, mapID string, confirm func(*selection.Pending) bool) error {
	pending, err := m.RequestOverwrite(mapID, nil)
	if err != nil || pending == nil {
		return err
	}
	if !confirm(pending) {
		return m.Cancel(pending.Token)
	}
	return m.Confirm(pending.Token)
}

func confirmSwitch(p *selection.Pending) bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Switching to %s discards %d selected genes. Continue", p.PathwayID, p.Discards),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
