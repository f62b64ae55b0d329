package script

import (
	"fmt"
	"sort"
)

// requiredParams maps every known action to its required parameter names.
// Extending the runner means adding an entry here and a case in the engine's
// dispatcher.
var requiredParams = map[string][]string{
	"navigate":          {"url"},
	"click":             {"selector"},
	"type":              {"selector", "text"},
	"wait_for_selector": {"selector"},
	"assert_text":       {"selector", "expected"},
	"assert_visible":    {"selector"},
	"upload_file":       {"selector", "file_path"},
	"screenshot":        {"filename"},
	"wait":              {"ms"},
	"select_option":     {"selector", "value"},
	"check":             {"selector"},
	"uncheck":           {"selector"},
	"hover":             {"selector"},
	"press":             {"selector", "key"},
	"evaluate_js":       {"script"},
	"count_elements":    {"selector"},
	"assert_count":      {"selector", "expected"},
	"assert_min_count":  {"selector", "minimum"},
	"get_text":          {"selector"},
}

// KnownActions returns the sorted names of all registered actions.
func KnownActions() []string {
	names := make([]string, 0, len(requiredParams))
	for name := range requiredParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a parsed script for structural correctness and returns all
// problems found (empty means valid). It never short-circuits: every check
// runs independently so a script author sees the full list at once.
func Validate(s *Script) []string {
	var errs []string

	if s.Name == "" {
		errs = append(errs, "Script must have a name")
	}

	if len(s.Steps) == 0 {
		errs = append(errs, "Script must have at least one step")
	}

	for i, step := range s.Steps {
		required, ok := requiredParams[step.Action]
		if !ok {
			errs = append(errs, fmt.Sprintf("Step %d: Unknown action '%s'", i+1, step.Action))
			continue
		}

		var missing []string
		for _, p := range required {
			if _, present := step.Params[p]; !present {
				missing = append(missing, p)
			}
		}
		if len(missing) > 0 {
			errs = append(errs, fmt.Sprintf(
				"Step %d: Action '%s' missing required parameters: %v",
				i+1, step.Action, missing,
			))
		}
	}

	return errs
}
