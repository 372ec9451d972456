package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var strict bool

// validateCmd loads the configured catalog and prints its quality report
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and report consistency issues",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		initQueryLogging(cfg)

		eng, report, err := buildEngine(cfg)
		if err != nil {
			return err
		}

		c := eng.Catalog()
		if jsonOutput {
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
		} else {
			renderQualityReport(cmd.OutOrStdout(), c.DrugCount(), c.SymptomCount(), report)
		}

		if strict && report.DanglingSymptomDrugs > 0 {
			return fmt.Errorf("catalog has %d symptom drugs missing from the catalog", report.DanglingSymptomDrugs)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&strict, "strict", false, "fail when symptoms reference drugs missing from the catalog")
}
