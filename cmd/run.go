package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/webrun/webrun/internal/browser"
	"github.com/webrun/webrun/internal/engine"
	"github.com/webrun/webrun/internal/history"
	"github.com/webrun/webrun/internal/logger"
	"github.com/webrun/webrun/internal/output"
)

// runScripts executes every script path in order against one engine. A load,
// validation, or session failure for one script becomes a failed Result and
// the batch keeps going; only an interrupt stops it early.
func runScripts(cmd *cobra.Command, args []string) error {
	headless, _ := cmd.Flags().GetBool("headless")
	headed, _ := cmd.Flags().GetBool("headed")
	if headed {
		headless = false
	}
	browserName, _ := cmd.Flags().GetString("browser")
	artifactDir, _ := cmd.Flags().GetString("artifact-dir")
	annotate, _ := cmd.Flags().GetBool("annotate")
	historyDB, _ := cmd.Flags().GetString("history-db")
	logLevel, _ := cmd.Flags().GetString("log-level")

	browserType, err := browser.ParseBrowserType(browserName)
	if err != nil {
		return err
	}

	log := logger.NewLogrusLogger(logLevel)

	var store *history.Store
	if historyDB != "" {
		store, err = history.Open(historyDB, log)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(engine.Config{
		Headless:    headless,
		Browser:     browserType,
		ArtifactDir: artifactDir,
		Annotate:    annotate,
		Logger:      log,
	})
	if err := eng.Start(); err != nil {
		return err
	}
	defer func() {
		if err := eng.Stop(); err != nil {
			log.Warn("failed to stop browser", map[string]interface{}{"error": err.Error()})
		}
	}()

	var results []*engine.Result
	for _, path := range args {
		if ctx.Err() != nil {
			break
		}

		result, err := eng.RunScriptFile(ctx, path)
		if err != nil {
			log.Error("failed to run script", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			result = &engine.Result{ScriptName: path, Error: err.Error()}
		}
		results = append(results, result)

		if err := printResult(result); err != nil {
			return err
		}
		if store != nil {
			recordResult(store, result)
		}
	}

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	if err := output.Print(output.RunSummary{
		Passed: passed,
		Failed: len(results) - passed,
		Total:  len(results),
	}); err != nil {
		return err
	}

	if ctx.Err() != nil {
		return errInterrupted
	}
	if passed != len(results) {
		return errTestsFailed
	}
	return nil
}

func printResult(r *engine.Result) error {
	return output.Print(output.ScriptReport{
		Script:      r.ScriptName,
		Status:      output.StatusString(r.Passed),
		Duration:    output.DurationString(r.Duration()),
		Steps:       output.StepsString(r.StepsExecuted, r.StepsTotal),
		Error:       r.Error,
		Screenshots: r.Screenshots,
	})
}

func recordResult(store *history.Store, r *engine.Result) {
	status := history.StatusFailed
	if r.Passed {
		status = history.StatusPassed
	}
	// History is best-effort; Append already logs its own failures.
	_ = store.Append(history.Record{
		ScriptName:    r.ScriptName,
		Status:        status,
		Error:         r.Error,
		StepsExecuted: r.StepsExecuted,
		StepsTotal:    r.StepsTotal,
		StartedAt:     r.StartTime,
		CompletedAt:   r.EndTime,
		DurationSecs:  r.Duration(),
	})
}
