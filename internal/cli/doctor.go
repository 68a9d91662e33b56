package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/forgecut/forgecut/internal/store"
)

// CheckResult is one doctor check outcome.
type CheckResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "doctor",
		Short:         "Check the environment forgecut depends on",
		Long:          "Verify that ffprobe is reachable, the config parses, and the project catalog opens.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(rootOpts, cmd)
		},
	}

	return cmd
}

func runDoctor(opts *RootOptions, cmd *cobra.Command) error {
	formatter := formatterFor(opts, cmd)

	var checks []CheckResult

	cfg, err := loadConfig(opts)
	if err != nil {
		checks = append(checks, CheckResult{Name: "config", OK: false, Detail: err.Error()})
	} else {
		checks = append(checks, CheckResult{Name: "config", OK: true})
	}

	bin := cfg.FFProbeBinary
	if bin == "" {
		bin = "ffprobe"
	}
	if path, err := exec.LookPath(bin); err != nil {
		checks = append(checks, CheckResult{Name: "ffprobe", OK: false, Detail: err.Error()})
	} else {
		checks = append(checks, CheckResult{Name: "ffprobe", OK: true, Detail: path})
	}

	if cfg.CatalogPath == "" {
		checks = append(checks, CheckResult{Name: "catalog", OK: true, Detail: "not configured"})
	} else if s, err := store.Open(cfg.CatalogPath); err != nil {
		checks = append(checks, CheckResult{Name: "catalog", OK: false, Detail: err.Error()})
	} else {
		s.Close()
		checks = append(checks, CheckResult{Name: "catalog", OK: true, Detail: cfg.CatalogPath})
	}

	failed := 0
	for _, c := range checks {
		if !c.OK {
			failed++
		}
	}

	if formatter.Format == "json" {
		if err := formatter.Success(checks); err != nil {
			return err
		}
	} else {
		for _, c := range checks {
			mark := "✓"
			if !c.OK {
				mark = "✗"
			}
			if c.Detail != "" {
				fmt.Fprintf(formatter.Writer, "%s %s: %s\n", mark, c.Name, c.Detail)
			} else {
				fmt.Fprintf(formatter.Writer, "%s %s\n", mark, c.Name)
			}
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d check(s) failed", failed))
	}
	return nil
}
