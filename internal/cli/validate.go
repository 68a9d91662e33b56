package cli

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	"github.com/spf13/cobra"

	"github.com/forgecut/forgecut/internal/persist"
)

//go:embed schema.cue
var schemaCUE string

// ValidationIssue is one problem found in a project file.
type ValidationIssue struct {
	Source  string `json:"source"` // "schema" or "semantic"
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <project-file>",
		Short: "Validate a project file",
		Long: `Validate a project file against the structural schema and the
semantic rules (id uniqueness, item ordering, collision freedom,
reference integrity, source ranges).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := formatterFor(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		_ = formatter.Error("E_READ", err.Error(), nil)
		return WrapExitError(ExitCommandError, "read project file", err)
	}

	var issues []ValidationIssue

	formatter.VerboseLog("Checking structural schema")
	issues = append(issues, validateSchema(path, data)...)

	// Structural breakage makes the semantic pass report the same
	// faults less precisely, so it still runs but only adds issues.
	formatter.VerboseLog("Checking semantic rules")
	if _, err := persist.Decode(data); err != nil {
		issues = append(issues, ValidationIssue{Source: "semantic", Message: err.Error()})
	}

	if len(issues) > 0 {
		return outputValidationIssues(formatter, issues)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintln(formatter.Writer, "✓ Project file valid")
	return nil
}

// validateSchema unifies the project file JSON with the embedded CUE
// schema and collects any conflicts.
func validateSchema(path string, data []byte) []ValidationIssue {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.ImportPath("forgecut/schema"))
	if err := schema.Err(); err != nil {
		return []ValidationIssue{{Source: "schema", Message: fmt.Sprintf("internal schema error: %v", err)}}
	}

	expr, err := cuejson.Extract(path, data)
	if err != nil {
		return []ValidationIssue{{Source: "schema", Message: err.Error()}}
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return []ValidationIssue{{Source: "schema", Message: err.Error()}}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(); err != nil {
		var issues []ValidationIssue
		for _, e := range cueerrors.Errors(err) {
			issue := ValidationIssue{Source: "schema", Message: e.Error()}
			if pos := e.Position(); pos.IsValid() {
				issue.Line = pos.Line()
			}
			issues = append(issues, issue)
		}
		return issues
	}
	return nil
}

// outputValidationIssues reports issues and maps them to exit code 1.
func outputValidationIssues(formatter *OutputFormatter, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		response := Response{
			Status: "error",
			Data:   ValidationResult{Valid: false, Issues: issues},
			Error:  &ResponseError{Code: "E_INVALID", Message: issues[0].Message},
		}
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "  [%s] line %d: %s\n", issue.Source, issue.Line, issue.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "  [%s] %s\n", issue.Source, issue.Message)
		}
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
}
