package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webrun/webrun/internal/logger"
)

func newTestActions() (*Actions, *fakePage, *logger.TestLogger) {
	page := newFakePage()
	log := logger.NewTestLogger()
	return NewActions(page, log), page, log
}

func TestExecute_MutatingActions(t *testing.T) {
	tests := []struct {
		action string
		params map[string]interface{}
		want   string
	}{
		{"navigate", map[string]interface{}{"url": "http://x"}, "navigate http://x"},
		{"click", map[string]interface{}{"selector": "#a"}, "click #a"},
		{"type", map[string]interface{}{"selector": "#a", "text": "hi"}, "fill #a hi"},
		{"wait_for_selector", map[string]interface{}{"selector": "#a"}, "wait_for_selector #a"},
		{"screenshot", map[string]interface{}{"filename": "out.png"}, "screenshot out.png"},
		{"select_option", map[string]interface{}{"selector": "#s", "value": "v1"}, "select_option #s v1"},
		{"check", map[string]interface{}{"selector": "#c"}, "check #c"},
		{"uncheck", map[string]interface{}{"selector": "#c"}, "uncheck #c"},
		{"hover", map[string]interface{}{"selector": "#h"}, "hover #h"},
		{"press", map[string]interface{}{"selector": "#i", "key": "Enter"}, "press #i Enter"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			a, page, _ := newTestActions()
			require.NoError(t, a.Execute(tt.action, tt.params))
			require.Len(t, page.calls, 1)
			assert.Equal(t, tt.want, page.calls[0])
		})
	}
}

func TestExecute_UnknownAction(t *testing.T) {
	a, page, _ := newTestActions()
	err := a.Execute("teleport", nil)
	require.Error(t, err)
	assert.Equal(t, "unknown action: teleport", err.Error())
	assert.Empty(t, page.calls)
}

func TestExecute_DriverErrorPropagates(t *testing.T) {
	a, page, _ := newTestActions()
	page.failOn["click #a"] = errors.New("element not found")

	err := a.Execute("click", map[string]interface{}{"selector": "#a"})
	require.Error(t, err)
	assert.Equal(t, "element not found", err.Error())
}

func TestExecute_Wait(t *testing.T) {
	a, page, _ := newTestActions()
	require.NoError(t, a.Execute("wait", map[string]interface{}{"ms": 250}))
	assert.Equal(t, []string{"wait 250"}, page.calls)
}

func TestAssertText(t *testing.T) {
	a, page, _ := newTestActions()
	page.texts["#msg"] = "operation successful"

	require.NoError(t, a.Execute("assert_text", map[string]interface{}{
		"selector": "#msg", "expected": "successful",
	}))

	err := a.Execute("assert_text", map[string]interface{}{
		"selector": "#msg", "expected": "failure",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"failure"`)
	assert.Contains(t, err.Error(), `"operation successful"`)
}

func TestAssertVisible(t *testing.T) {
	a, page, _ := newTestActions()
	page.visible["#shown"] = true

	require.NoError(t, a.Execute("assert_visible", map[string]interface{}{"selector": "#shown"}))

	err := a.Execute("assert_visible", map[string]interface{}{"selector": "#hidden"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to be visible")
}

func TestCountElements_FailsOnZero(t *testing.T) {
	a, page, log := newTestActions()
	page.counts[".row"] = 4

	require.NoError(t, a.Execute("count_elements", map[string]interface{}{"selector": ".row"}))

	entries := log.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, 4, entries[len(entries)-1].Fields["count"])

	err := a.Execute("count_elements", map[string]interface{}{"selector": ".missing"})
	require.Error(t, err)
	assert.Equal(t, "expected at least 1 element matching '.missing', found 0", err.Error())
}

func TestAssertCount(t *testing.T) {
	a, page, _ := newTestActions()
	page.counts[".row"] = 3

	require.NoError(t, a.Execute("assert_count", map[string]interface{}{"selector": ".row", "expected": 3}))

	err := a.Execute("assert_count", map[string]interface{}{"selector": ".row", "expected": 5})
	require.Error(t, err)
	assert.Equal(t, "expected 5 elements matching '.row', found 3", err.Error())
}

func TestAssertMinCount(t *testing.T) {
	a, page, _ := newTestActions()
	page.counts[".item"] = 2

	require.NoError(t, a.Execute("assert_min_count", map[string]interface{}{"selector": ".item", "minimum": 2}))

	err := a.Execute("assert_min_count", map[string]interface{}{"selector": ".item", "minimum": 3})
	require.Error(t, err)
	assert.Equal(t, "expected at least 3 elements matching '.item', found 2", err.Error())
}

func TestGetText_LogsOnly(t *testing.T) {
	a, page, log := newTestActions()
	page.texts["#title"] = "Dashboard"

	require.NoError(t, a.Execute("get_text", map[string]interface{}{"selector": "#title"}))

	entries := log.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Dashboard", entries[len(entries)-1].Fields["text"])
}

func TestEvaluateJS_LogsResult(t *testing.T) {
	a, page, log := newTestActions()
	page.evalRes = 42

	require.NoError(t, a.Execute("evaluate_js", map[string]interface{}{"script": "6*7"}))

	entries := log.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, 42, entries[len(entries)-1].Fields["result"])
}

func TestUploadFile(t *testing.T) {
	a, page, _ := newTestActions()

	dir := t.TempDir()
	path := filepath.Join(dir, "upload.txt")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	require.NoError(t, a.Execute("upload_file", map[string]interface{}{
		"selector": "#file", "file_path": path,
	}))
	require.Len(t, page.calls, 1)
	assert.Contains(t, page.calls[0], "set_input_files #file")
	assert.Contains(t, page.calls[0], "upload.txt")
}

// A missing file must fail before any driver call happens.
func TestUploadFile_NotFound(t *testing.T) {
	a, page, _ := newTestActions()

	err := a.Execute("upload_file", map[string]interface{}{
		"selector": "#file", "file_path": filepath.Join(t.TempDir(), "nope.txt"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.Empty(t, page.calls)
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"s":     "text",
		"n":     7,
		"f":     float64(8),
		"i64":   int64(9),
		"mixed": 12,
	}

	assert.Equal(t, "text", stringParam(params, "s", ""))
	assert.Equal(t, "fallback", stringParam(params, "absent", "fallback"))
	// Numeric values coerce to their string form
	assert.Equal(t, "12", stringParam(params, "mixed", ""))

	assert.Equal(t, 7, intParam(params, "n", 0))
	assert.Equal(t, 8, intParam(params, "f", 0))
	assert.Equal(t, 9, intParam(params, "i64", 0))
	assert.Equal(t, 5, intParam(params, "absent", 5))
	// Non-numeric values fall back to the default
	assert.Equal(t, 5, intParam(params, "s", 5))
}
