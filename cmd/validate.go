package cmd

import (
	"github.com/spf13/cobra"

	"github.com/webrun/webrun/internal/output"
	"github.com/webrun/webrun/internal/script"
)

// ValidationReport is the output for one script in validate-only mode.
type ValidationReport struct {
	Path   string   `yaml:"path"             json:"path"`
	Valid  bool     `yaml:"valid"            json:"valid"`
	Script string   `yaml:"script,omitempty" json:"script,omitempty"`
	Steps  int      `yaml:"steps,omitempty"  json:"steps,omitempty"`
	Errors []string `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// runValidate checks each script structurally without launching a browser.
func runValidate(cmd *cobra.Command, args []string) error {
	allValid := true

	for _, path := range args {
		report := validateScript(path)
		if !report.Valid {
			allValid = false
		}
		if err := output.Print(report); err != nil {
			return err
		}
	}

	if !allValid {
		return errInvalidScript
	}
	return nil
}

func validateScript(path string) ValidationReport {
	s, err := script.ParseFile(path)
	if err != nil {
		return ValidationReport{Path: path, Errors: []string{err.Error()}}
	}

	if errs := script.Validate(s); len(errs) > 0 {
		return ValidationReport{Path: path, Script: s.Name, Errors: errs}
	}

	return ValidationReport{
		Path:   path,
		Valid:  true,
		Script: s.Name,
		Steps:  len(s.Steps),
	}
}
