package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/preflight"
	"marquee/internal/textutil"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the catalog API and local directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(requestContext(cmd), cfg)

			failed := 0
			for _, r := range results {
				if !r.Passed {
					failed++
				}
			}

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, doctorReport(results)); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.Name, textutil.Ternary(r.Passed, "ok", "FAIL"), r.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil, colorize))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
}

type doctorCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

func doctorReport(results []preflight.Result) []doctorCheck {
	checks := make([]doctorCheck, 0, len(results))
	for _, r := range results {
		checks = append(checks, doctorCheck(r))
	}
	return checks
}
