package browser

import "fmt"

// BrowserType identifies which browser engine to launch.
type BrowserType string

const (
	Chromium BrowserType = "chromium"
	Firefox  BrowserType = "firefox"
	WebKit   BrowserType = "webkit"
)

// ParseBrowserType converts a flag value to a BrowserType.
func ParseBrowserType(s string) (BrowserType, error) {
	switch BrowserType(s) {
	case Chromium, Firefox, WebKit:
		return BrowserType(s), nil
	default:
		return Chromium, fmt.Errorf("unknown browser type: %q (expected chromium, firefox, or webkit)", s)
	}
}

// LaunchOptions configures a browser session.
type LaunchOptions struct {
	Type     BrowserType
	Headless bool
}

// Driver launches browser sessions. Implementations own the underlying
// automation runtime and must be stopped when no longer needed.
type Driver interface {
	Launch(opts LaunchOptions) (Session, error)
	Stop() error
}

// Session is one live browser process with a single open page. Owned
// exclusively by the execution engine; Close releases the page's context and
// the browser process.
type Session interface {
	Page() Page
	Close() error
}

// Page is the capability surface the action dispatcher drives. Every method
// blocks until the browser round trip completes.
type Page interface {
	Navigate(url string) error
	Click(selector string) error
	Fill(selector, text string) error
	WaitForSelector(selector string) error
	TextContent(selector string) (string, error)
	IsVisible(selector string) (bool, error)
	Count(selector string) (int, error)
	SetInputFiles(selector, path string) error
	Screenshot(path string) error
	WaitTimeout(ms float64)
	SelectOption(selector, value string) error
	Check(selector string) error
	Uncheck(selector string) error
	Hover(selector string) error
	Press(selector, key string) error
	Evaluate(expression string) (interface{}, error)
	SetDefaultTimeout(ms float64)
}

// NewDriverFunc creates the default Driver. Overridable in tests.
var NewDriverFunc = func() (Driver, error) {
	return newPlaywrightDriver()
}

// NewDriver returns a Driver backed by the default automation runtime.
func NewDriver() (Driver, error) {
	return NewDriverFunc()
}
