package engine

import "time"

// Result is the aggregate outcome of running one script. Created at the start
// of ExecuteScript, mutated through step iteration, never reused.
type Result struct {
	ScriptName    string    `yaml:"script_name"               json:"script_name"`
	Passed        bool      `yaml:"passed"                    json:"passed"`
	Error         string    `yaml:"error,omitempty"           json:"error,omitempty"`
	StartTime     time.Time `yaml:"-"                         json:"-"`
	EndTime       time.Time `yaml:"-"                         json:"-"`
	StepsExecuted int       `yaml:"steps_executed"            json:"steps_executed"`
	StepsTotal    int       `yaml:"steps_total"               json:"steps_total"`
	Screenshots   []string  `yaml:"screenshots,omitempty"     json:"screenshots,omitempty"`
}

// Duration returns the run duration in seconds, 0 if either timestamp is unset.
func (r *Result) Duration() float64 {
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return 0.0
	}
	return r.EndTime.Sub(r.StartTime).Seconds()
}

// setError records the first failure message; later calls are ignored.
func (r *Result) setError(msg string) {
	if r.Error == "" {
		r.Error = msg
	}
}
