package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/edgar1992/openapi-generator/internal/logger"
	"github.com/edgar1992/openapi-generator/internal/render"
	"github.com/edgar1992/openapi-generator/internal/writer"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a JAX-RS server project",
		Long: `Generate renders every planned artifact and writes it below the output
directory. README, build file, application class and variant files are kept
when they already exist; paths listed in .openapi-generator-ignore are never
written.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	addRunFlags(cmd)
	cmd.Flags().StringP(flagOutput, "o", "", "output directory")
	cmd.Flags().Bool(flagDryRun, false, "report what would be written without writing")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	r, err := prepare(cmd, true)
	if err != nil {
		return err
	}

	spec, err := r.doc.YAML()
	if err != nil {
		return err
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}

	files, err := renderer.Render(r.result.Manifest, r.result.Features, spec)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool(flagDryRun)

	report, err := writer.Write(files, r.cfg.OutputDir, writer.Options{DryRun: dryRun})
	if err != nil {
		return err
	}

	logger.Infow("generation finished",
		"output", r.cfg.OutputDir,
		"written", len(report.Written),
		"skipped", len(report.Skipped),
		"ignored", len(report.Ignored))

	pterm.Fprintln(cmd.OutOrStdout(), pterm.Sprintf("%d written, %d kept, %d ignored in %s",
		len(report.Written), len(report.Skipped), len(report.Ignored), r.cfg.OutputDir))

	return nil
}
