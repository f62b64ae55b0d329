package output

import "fmt"

// ScriptReport is the printable form of one script's result.
type ScriptReport struct {
	Script      string   `yaml:"script"                json:"script"`
	Status      string   `yaml:"status"                json:"status"`
	Duration    string   `yaml:"duration"              json:"duration"`
	Steps       string   `yaml:"steps"                 json:"steps"`
	Error       string   `yaml:"error,omitempty"       json:"error,omitempty"`
	Screenshots []string `yaml:"screenshots,omitempty" json:"screenshots,omitempty"`
}

// RunSummary is the batch-level tail of a run.
type RunSummary struct {
	Passed int `yaml:"passed" json:"passed"`
	Failed int `yaml:"failed" json:"failed"`
	Total  int `yaml:"total"  json:"total"`
}

// StatusString renders a pass/fail flag the way the reports expect it.
func StatusString(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

// StepsString renders an "executed/total" step counter.
func StepsString(executed, total int) string {
	return fmt.Sprintf("%d/%d", executed, total)
}

// DurationString renders a duration in seconds with two decimals.
func DurationString(seconds float64) string {
	return fmt.Sprintf("%.2fs", seconds)
}
