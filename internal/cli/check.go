package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/BartekS5/odevalidator/internal/validator"
)

type ruleSummary struct {
	Section     string   `yaml:"section"`
	Path        string   `yaml:"path"`
	Type        string   `yaml:"type"`
	Constraints []string `yaml:"constraints,omitempty"`
	UpperLimit  string   `yaml:"upperLimit,omitempty"`
	LowerLimit  string   `yaml:"lowerLimit,omitempty"`
	Values      []string `yaml:"values,omitempty"`
	EqualsValue *string  `yaml:"equalsValue,omitempty"`
	Increment   *int64   `yaml:"increment,omitempty"`
}

// NewCheckCmd loads a rule file and prints the parsed rules without reading records.
func NewCheckCmd() *cobra.Command {
	var rulesFile string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse a rule file and print the resulting rules",
		RunE: func(c *cobra.Command, args []string) error {
			tc, err := validator.LoadTestCase(rulesFile)
			if err != nil {
				return err
			}
			return printRules(c, tc)
		},
	}

	cmd.Flags().StringVarP(&rulesFile, "config", "c", "", "Path to the INI rule file")
	cmd.MarkFlagRequired("config")
	return cmd
}

func printRules(cmd *cobra.Command, tc *validator.TestCase) error {
	fields := tc.Fields()
	rules := make([]ruleSummary, 0, len(fields))
	for _, f := range fields {
		c := f.Constraints()
		r := ruleSummary{
			Section:     f.Name(),
			Path:        f.Path(),
			Type:        string(f.Type()),
			Constraints: c.Enabled(),
			EqualsValue: c.EqualsValue,
			Increment:   c.Increment,
		}
		if c.UpperLimit != nil {
			r.UpperLimit = c.UpperLimit.String()
		}
		if c.LowerLimit != nil {
			r.LowerLimit = c.LowerLimit.String()
		}
		if c.Values != nil {
			r.Values = c.Values.Items()
		}
		rules = append(rules, r)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(map[string]interface{}{"fields": rules}); err != nil {
		return fmt.Errorf("failed to print rules: %w", err)
	}
	return enc.Close()
}
