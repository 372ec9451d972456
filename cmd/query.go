package cmd

import (
	"strings"

	"github.com/giygas/interactions-api/engine"
	"github.com/spf13/cobra"
)

var searchLimit int

// checkCmd checks two drugs for a known interaction
var checkCmd = &cobra.Command{
	Use:   "check <drug1> <drug2>",
	Short: "Check two drugs for a known interaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := queryEngine()
		if err != nil {
			return err
		}
		result := eng.CheckInteraction(args[0], args[1])
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		renderInteraction(cmd.OutOrStdout(), args[0], args[1], result)
		return nil
	},
}

// infoCmd shows the catalog record of a drug
var infoCmd = &cobra.Command{
	Use:   "info <drug>",
	Short: "Show what the catalog knows about a drug",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := queryEngine()
		if err != nil {
			return err
		}
		name := strings.Join(args, " ")
		result := eng.GetDrugInfo(name)
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		renderDrugInfo(cmd.OutOrStdout(), name, result)
		return nil
	},
}

// suggestCmd suggests medications for a symptom
var suggestCmd = &cobra.Command{
	Use:   "suggest <symptom>",
	Short: "Suggest medications for a symptom",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := queryEngine()
		if err != nil {
			return err
		}
		symptom := strings.Join(args, " ")
		result := eng.SuggestForSymptom(symptom)
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		renderSuggestions(cmd.OutOrStdout(), symptom, result)
		return nil
	},
}

// searchCmd lists catalog drugs loosely matching a partial name
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "List catalog drugs matching a partial name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := queryEngine()
		if err != nil {
			return err
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		names := eng.SearchDrugs(query, searchLimit)
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), names)
		}
		renderNames(cmd.OutOrStdout(), names)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum number of results (0 for no limit)")
}

// queryEngine builds an engine for a one-shot command
func queryEngine() (*engine.InteractionEngine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	initQueryLogging(cfg)

	eng, _, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}
	return eng, nil
}
