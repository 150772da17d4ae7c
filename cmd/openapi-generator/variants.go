package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/edgar1992/openapi-generator/internal/feature"
	"github.com/edgar1992/openapi-generator/internal/variant"
)

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the supported library variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := pterm.TableData{{"Variant", "Managed container", "Specification copy", "Description"}}

			for _, v := range variant.All() {
				fs, _ := feature.Resolve(v, nil)
				p := v.Profile()

				data = append(data, []string{
					v.String(),
					strconv.FormatBool(p.ManagedContainer),
					fs.SpecFileLocation(),
					p.Description,
				})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Wrap(err, "rendering table")
			}

			pterm.Fprintln(cmd.OutOrStdout(), table)

			return nil
		},
	}
}
