package script

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Step is one action invocation within a script. Params holds every key from
// the step mapping except "action"; required keys are checked by Validate,
// unknown extra keys are tolerated.
type Step struct {
	Action string
	Params map[string]interface{}
}

// UnmarshalYAML decodes a step from its flat YAML form, where "action" names
// the operation and all sibling keys become parameters.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	action, ok := raw["action"].(string)
	if !ok {
		return fmt.Errorf("step is missing an 'action' key")
	}
	delete(raw, "action")

	s.Action = action
	s.Params = raw
	return nil
}

// Script is a parsed test script. Immutable once parsed.
type Script struct {
	Name                string `yaml:"name"`
	Description         string `yaml:"description"`
	BaseURL             string `yaml:"base_url"`
	Headless            bool   `yaml:"headless"`
	Timeout             int    `yaml:"timeout"` // step timeout in milliseconds
	ScreenshotOnFailure bool   `yaml:"screenshot_on_failure"`
	Steps               []Step `yaml:"steps"`
}

// Defaults for optional script fields.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 30000
)

// New returns a Script with all optional fields set to their defaults.
// Unmarshalling YAML over it overrides only the keys present in the document.
// Name has no default: a script without one fails validation.
func New() Script {
	return Script{
		BaseURL:             DefaultBaseURL,
		Headless:            true,
		Timeout:             DefaultTimeout,
		ScreenshotOnFailure: true,
	}
}
