package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/pagination"
)

// NewFactorsListCmd creates the factors list command.
func NewFactorsListCmd() *cobra.Command {
	var (
		category, output, sortExpr string
		params                     pagination.Params
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List emission factors, optionally for one category",
		Example: `  ecotrack factors list
  ecotrack factors list --category food --output json

  # The ten most carbon-intensive factors
  ecotrack factors list --sort value:desc --limit 10

  # Page through transport factors five at a time
  ecotrack factors list --category transport --page 2 --page-size 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := factorCategory(category)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, output)
			if err != nil {
				return err
			}
			parser, err := newParser(config.GetGlobalConfig())
			if err != nil {
				return err
			}

			reg := parser.Registry()
			factors := reg.Factors()
			if c != "" {
				factors = reg.FactorsByCategory(c)
			}

			params.SortField, params.SortOrder, err = pagination.ParseSort(sortExpr)
			if err != nil {
				return err
			}
			factors, _, err = pagination.NewFactorSorter().Page(factors, params)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case config.FormatJSON:
				return writeJSON(w, factors, true)
			case config.FormatNDJSON:
				for _, f := range factors {
					if err = writeJSON(w, f, false); err != nil {
						return err
					}
				}
				return nil
			default:
				return renderFactors(w, factors)
			}
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list factors of this category")
	cmd.Flags().StringVarP(&output, "output", "o", config.FormatTable, "output format: table, json or ndjson")
	cmd.Flags().StringVar(&sortExpr, "sort", "", "sort by name, category, value or unit, as field or field:order")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum factors to list (0 = all)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "factors to skip")
	cmd.Flags().IntVar(&params.Page, "page", 0, "1-based page number (requires --page-size)")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "factors per page")
	return cmd
}

// NewFactorsGetCmd creates the factors get command. Lookup tries an exact
// name first and then substring matches, as the extractors do.
func NewFactorsGetCmd() *cobra.Command {
	var category, output string

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Look up one emission factor by name",
		Args:  cobra.ExactArgs(1),
		Example: `  ecotrack factors get car_gasoline
  ecotrack factors get beef --category food`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factorCategory(category)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, output)
			if err != nil {
				return err
			}
			parser, err := newParser(config.GetGlobalConfig())
			if err != nil {
				return err
			}

			factor, ok := parser.Registry().FindFactor(args[0], c)
			if !ok {
				return fmt.Errorf("no emission factor matches %q", args[0])
			}

			w := cmd.OutOrStdout()
			if format != config.FormatTable {
				return writeJSON(w, factor, format == config.FormatJSON)
			}
			_, err = fmt.Fprintf(w, "%s (%s): %g kg CO2e per %s [%s]\n",
				factor.Name, factor.Category, factor.Value, factor.Unit, factor.Source)
			return err
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "restrict the lookup to one category")
	cmd.Flags().StringVarP(&output, "output", "o", config.FormatTable, "output format: table, json or ndjson")
	return cmd
}
