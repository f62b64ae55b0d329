package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/webrun/webrun/internal/artifact"
	"github.com/webrun/webrun/internal/browser"
	"github.com/webrun/webrun/internal/logger"
	"github.com/webrun/webrun/internal/script"
)

// Config holds engine settings.
type Config struct {
	Headless    bool
	Browser     browser.BrowserType
	ArtifactDir string // directory for failure screenshots ("" = working dir)
	Annotate    bool   // stamp a failure banner onto failure screenshots
	Logger      logger.Logger
	Driver      browser.Driver // nil = default driver, injectable for tests
}

// Engine owns the browser session and executes scripts against it, one step
// at a time. One session is live at most; consecutive scripts that disagree
// on headless mode each get a fresh session.
type Engine struct {
	headless    bool
	browserType browser.BrowserType
	artifactDir string
	annotate    bool

	driver  browser.Driver
	session browser.Session
	actions *Actions
	log     logger.Logger
}

// New creates an engine. Start must be called before executing scripts.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.NewLogrusLogger("info")
	}
	return &Engine{
		headless:    cfg.Headless,
		browserType: cfg.Browser,
		artifactDir: cfg.ArtifactDir,
		annotate:    cfg.Annotate,
		driver:      cfg.Driver,
		log:         log,
	}
}

// Start launches the browser process and opens the page the dispatcher will
// drive. An unrecognized browser type fails here, before any script runs.
func (e *Engine) Start() error {
	if e.driver == nil {
		d, err := browser.NewDriver()
		if err != nil {
			return err
		}
		e.driver = d
	}

	sess, err := e.driver.Launch(browser.LaunchOptions{
		Type:     e.browserType,
		Headless: e.headless,
	})
	if err != nil {
		return err
	}

	e.session = sess
	e.actions = NewActions(sess.Page(), e.log)
	e.log.Debug("browser session started", map[string]interface{}{
		"browser":  string(e.browserType),
		"headless": e.headless,
	})
	return nil
}

// Stop releases the session and the driver. Each release is attempted even
// when an earlier one fails; the first error is reported. Safe to call twice.
func (e *Engine) Stop() error {
	var firstErr error

	if e.session != nil {
		if err := e.session.Close(); err != nil {
			firstErr = err
			e.log.Warn("failed to close browser session", map[string]interface{}{"error": err.Error()})
		}
		e.session = nil
		e.actions = nil
	}

	if e.driver != nil {
		if err := e.driver.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		e.driver = nil
	}

	return firstErr
}

// ExecuteScript runs every step of a script in order, failing fast on the
// first error. The returned Result always carries the total step count and
// both timestamps, whatever path execution took.
func (e *Engine) ExecuteScript(ctx context.Context, s *script.Script) *Result {
	result := &Result{
		ScriptName: s.Name,
		StepsTotal: len(s.Steps),
		StartTime:  time.Now(),
	}
	defer func() {
		result.EndTime = time.Now()
	}()

	if e.session == nil {
		result.setError("browser session is not started")
		return result
	}

	e.session.Page().SetDefaultTimeout(float64(s.Timeout))

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			result.setError(fmt.Sprintf("Step %d aborted (%s): %v", i+1, step.Action, err))
			return result
		}

		e.log.Info(fmt.Sprintf("step %d/%d", i+1, len(s.Steps)), map[string]interface{}{
			"action": step.Action,
			"params": step.Params,
		})

		if err := e.actions.Execute(step.Action, step.Params); err != nil {
			msg := fmt.Sprintf("Step %d failed (%s): %v", i+1, step.Action, err)
			e.log.Error(msg, nil)
			result.setError(msg)

			if s.ScreenshotOnFailure {
				e.captureFailure(s, i+1, step.Action, result)
			}
			return result
		}

		result.StepsExecuted++
	}

	result.Passed = true
	e.log.Info("test passed", map[string]interface{}{"script": s.Name})
	return result
}

// captureFailure takes a screenshot of the failing page. Capture problems are
// logged but never mask the step error that got us here.
func (e *Engine) captureFailure(s *script.Script, stepNum int, action string, result *Result) {
	name := fmt.Sprintf("failure_%s_%d.png", strings.ReplaceAll(s.Name, " ", "_"), stepNum)
	path := filepath.Join(e.artifactDir, name)

	if err := e.session.Page().Screenshot(path); err != nil {
		e.log.Warn("failed to capture failure screenshot", map[string]interface{}{"error": err.Error()})
		return
	}

	if e.annotate {
		label := fmt.Sprintf("%s - step %d (%s) failed", s.Name, stepNum, action)
		if err := artifact.AnnotateFailure(path, label); err != nil {
			e.log.Warn("failed to annotate screenshot", map[string]interface{}{"error": err.Error()})
		}
	}

	result.Screenshots = append(result.Screenshots, path)
	e.log.Info("screenshot saved", map[string]interface{}{"path": path})
}

// RunScriptFile loads, validates, and executes one script file. Load and
// validation failures are returned as errors so the batch orchestrator can
// record a failed Result without touching the browser.
func (e *Engine) RunScriptFile(ctx context.Context, path string) (*Result, error) {
	e.log.Info("loading test script", map[string]interface{}{"path": path})
	s, err := script.ParseFile(path)
	if err != nil {
		return nil, err
	}

	if errs := script.Validate(s); len(errs) > 0 {
		return nil, fmt.Errorf("script validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	e.log.Info("running test", map[string]interface{}{
		"script":      s.Name,
		"description": s.Description,
		"steps":       len(s.Steps),
	})

	// Restart the session when the script needs a different headless mode
	// than the one currently live.
	if e.session == nil || s.Headless != e.headless {
		if e.session != nil {
			if err := e.session.Close(); err != nil {
				e.log.Warn("failed to close browser session", map[string]interface{}{"error": err.Error()})
			}
			e.session = nil
		}
		e.headless = s.Headless
		if err := e.Start(); err != nil {
			return nil, err
		}
	}

	return e.ExecuteScript(ctx, s), nil
}
