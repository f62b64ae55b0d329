package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/webrun/webrun/internal/browser"
	"github.com/webrun/webrun/internal/logger"
)

// Actions dispatches named script actions against the active page. It borrows
// the page from the engine's session and owns no state of its own.
type Actions struct {
	page browser.Page
	log  logger.Logger
}

// NewActions binds a dispatcher to a page.
func NewActions(page browser.Page, log logger.Logger) *Actions {
	return &Actions{page: page, log: log}
}

// Execute runs one action by name. The validator should have rejected unknown
// actions already, but dispatch does not trust that.
func (a *Actions) Execute(action string, params map[string]interface{}) error {
	switch action {
	case "navigate":
		return a.page.Navigate(stringParam(params, "url", ""))
	case "click":
		return a.page.Click(stringParam(params, "selector", ""))
	case "type":
		return a.page.Fill(stringParam(params, "selector", ""), stringParam(params, "text", ""))
	case "wait_for_selector":
		return a.page.WaitForSelector(stringParam(params, "selector", ""))
	case "assert_text":
		return a.assertText(stringParam(params, "selector", ""), stringParam(params, "expected", ""))
	case "assert_visible":
		return a.assertVisible(stringParam(params, "selector", ""))
	case "upload_file":
		return a.uploadFile(stringParam(params, "selector", ""), stringParam(params, "file_path", ""))
	case "screenshot":
		return a.page.Screenshot(stringParam(params, "filename", ""))
	case "wait":
		a.page.WaitTimeout(float64(intParam(params, "ms", 0)))
		return nil
	case "select_option":
		return a.page.SelectOption(stringParam(params, "selector", ""), stringParam(params, "value", ""))
	case "check":
		return a.page.Check(stringParam(params, "selector", ""))
	case "uncheck":
		return a.page.Uncheck(stringParam(params, "selector", ""))
	case "hover":
		return a.page.Hover(stringParam(params, "selector", ""))
	case "press":
		return a.page.Press(stringParam(params, "selector", ""), stringParam(params, "key", ""))
	case "evaluate_js":
		return a.evaluateJS(stringParam(params, "script", ""))
	case "count_elements":
		return a.countElements(stringParam(params, "selector", ""))
	case "assert_count":
		return a.assertCount(stringParam(params, "selector", ""), intParam(params, "expected", 0))
	case "assert_min_count":
		return a.assertMinCount(stringParam(params, "selector", ""), intParam(params, "minimum", 0))
	case "get_text":
		return a.getText(stringParam(params, "selector", ""))
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func (a *Actions) assertText(selector, expected string) error {
	text, err := a.page.TextContent(selector)
	if err != nil {
		return err
	}
	if !strings.Contains(text, expected) {
		return fmt.Errorf("expected element '%s' to contain text %q, got %q", selector, expected, text)
	}
	return nil
}

func (a *Actions) assertVisible(selector string) error {
	visible, err := a.page.IsVisible(selector)
	if err != nil {
		return err
	}
	if !visible {
		return fmt.Errorf("expected element '%s' to be visible", selector)
	}
	return nil
}

// uploadFile resolves the path before touching the browser: user-home
// shorthand is expanded and a missing file fails without a driver call.
func (a *Actions) uploadFile(selector, filePath string) error {
	path := filePath
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot expand %q: %w", filePath, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}
	return a.page.SetInputFiles(selector, abs)
}

func (a *Actions) evaluateJS(expression string) error {
	result, err := a.page.Evaluate(expression)
	if err != nil {
		return err
	}
	a.log.Info("javascript result", map[string]interface{}{"result": result})
	return nil
}

// countElements logs the count but still fails on zero matches.
func (a *Actions) countElements(selector string) error {
	count, err := a.page.Count(selector)
	if err != nil {
		return err
	}
	a.log.Info("counted elements", map[string]interface{}{"selector": selector, "count": count})
	if count == 0 {
		return fmt.Errorf("expected at least 1 element matching '%s', found 0", selector)
	}
	return nil
}

func (a *Actions) assertCount(selector string, expected int) error {
	count, err := a.page.Count(selector)
	if err != nil {
		return err
	}
	a.log.Info("counted elements", map[string]interface{}{"selector": selector, "count": count, "expected": expected})
	if count != expected {
		return fmt.Errorf("expected %d elements matching '%s', found %d", expected, selector, count)
	}
	return nil
}

func (a *Actions) assertMinCount(selector string, minimum int) error {
	count, err := a.page.Count(selector)
	if err != nil {
		return err
	}
	a.log.Info("counted elements", map[string]interface{}{"selector": selector, "count": count, "minimum": minimum})
	if count < minimum {
		return fmt.Errorf("expected at least %d elements matching '%s', found %d", minimum, selector, count)
	}
	return nil
}

func (a *Actions) getText(selector string) error {
	text, err := a.page.TextContent(selector)
	if err != nil {
		return err
	}
	a.log.Info("element text", map[string]interface{}{"selector": selector, "text": text})
	return nil
}

// Parameter extraction helpers for step maps

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numeric values that YAML may parse as int/float
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}
