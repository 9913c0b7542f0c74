package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sfclint/internal/diag"
	"sfclint/internal/fix"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List rule codes, names and fixability",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Title         string `json:"title"`
	Fixable       bool   `json:"fixable"`
	Applicability string `json:"applicability,omitempty"`
	Enabled       bool   `json:"enabled"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(cmd, ".")
	if err != nil {
		return err
	}

	codes := diag.AllCodes()
	rules := make([]ruleInfo, 0, len(codes))
	for _, c := range codes {
		info := ruleInfo{
			ID:      c.ID(),
			Name:    c.Name(),
			Title:   c.Title(),
			Fixable: c.Fixable(),
			Enabled: cfg.Enabled(c),
		}
		if info.Fixable {
			info.Applicability = fix.ApplicabilityOf(c).String()
		}
		rules = append(rules, info)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	case "pretty":
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tFIX\tSTATE\tDESCRIPTION")
		for _, r := range rules {
			fixCol := "-"
			if r.Fixable {
				fixCol = r.Applicability
			}
			state := "on"
			if !r.Enabled {
				state = "off"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, fixCol, state, r.Title)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
