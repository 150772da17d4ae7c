package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/edgar1992/openapi-generator/internal/plan"
)

// Output formats of the plan command.
const (
	formatTable = "table"
	formatYAML  = "yaml"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the artifacts a generation run would produce",
		Args:  cobra.NoArgs,
		RunE:  runPlan,
	}

	addRunFlags(cmd)
	cmd.Flags().StringP(flagFormat, "f", formatTable, "output format: table or yaml")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString(flagFormat)
	if format != formatTable && format != formatYAML {
		return errors.WithHint(errors.Newf("unknown format %q", format), "use table or yaml")
	}

	r, err := prepare(cmd, false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if format == formatYAML {
		data, err := plan.ExportYAML(r.result.Manifest)
		if err != nil {
			return err
		}

		_, err = out.Write(data)

		return err
	}

	data := pterm.TableData{{"Path", "Kind", "Template", "Write if absent"}}
	for _, a := range r.result.Manifest.Artifacts() {
		data = append(data, []string{a.OutputPath(), a.Kind.String(), a.TemplateID, strconv.FormatBool(a.WriteIfAbsent)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "rendering table")
	}

	pterm.Fprintln(out, table)

	return nil
}
