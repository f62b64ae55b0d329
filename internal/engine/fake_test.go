package engine

import (
	"fmt"

	"github.com/webrun/webrun/internal/browser"
)

// fakePage records every call and fails on demand. Query results are seeded
// through the maps.
type fakePage struct {
	calls   []string
	failOn  map[string]error
	texts   map[string]string
	visible map[string]bool
	counts  map[string]int
	evalRes interface{}

	screenshots []string
	timeout     float64
}

func newFakePage() *fakePage {
	return &fakePage{
		failOn:  map[string]error{},
		texts:   map[string]string{},
		visible: map[string]bool{},
		counts:  map[string]int{},
	}
}

func (p *fakePage) record(call string) error {
	p.calls = append(p.calls, call)
	return p.failOn[call]
}

func (p *fakePage) Navigate(url string) error { return p.record("navigate " + url) }
func (p *fakePage) Click(sel string) error    { return p.record("click " + sel) }
func (p *fakePage) Fill(sel, text string) error {
	return p.record(fmt.Sprintf("fill %s %s", sel, text))
}
func (p *fakePage) WaitForSelector(sel string) error { return p.record("wait_for_selector " + sel) }

func (p *fakePage) TextContent(sel string) (string, error) {
	if err := p.record("text_content " + sel); err != nil {
		return "", err
	}
	return p.texts[sel], nil
}

func (p *fakePage) IsVisible(sel string) (bool, error) {
	if err := p.record("is_visible " + sel); err != nil {
		return false, err
	}
	return p.visible[sel], nil
}

func (p *fakePage) Count(sel string) (int, error) {
	if err := p.record("count " + sel); err != nil {
		return 0, err
	}
	return p.counts[sel], nil
}

func (p *fakePage) SetInputFiles(sel, path string) error {
	return p.record(fmt.Sprintf("set_input_files %s %s", sel, path))
}

func (p *fakePage) Screenshot(path string) error {
	if err := p.record("screenshot " + path); err != nil {
		return err
	}
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (p *fakePage) WaitTimeout(ms float64) { p.record(fmt.Sprintf("wait %v", ms)) }

func (p *fakePage) SelectOption(sel, value string) error {
	return p.record(fmt.Sprintf("select_option %s %s", sel, value))
}

func (p *fakePage) Check(sel string) error   { return p.record("check " + sel) }
func (p *fakePage) Uncheck(sel string) error { return p.record("uncheck " + sel) }
func (p *fakePage) Hover(sel string) error   { return p.record("hover " + sel) }
func (p *fakePage) Press(sel, key string) error {
	return p.record(fmt.Sprintf("press %s %s", sel, key))
}

func (p *fakePage) Evaluate(expr string) (interface{}, error) {
	if err := p.record("evaluate " + expr); err != nil {
		return nil, err
	}
	return p.evalRes, nil
}

func (p *fakePage) SetDefaultTimeout(ms float64) { p.timeout = ms }

type fakeSession struct {
	page     *fakePage
	closed   int
	closeErr error
}

func (s *fakeSession) Page() browser.Page { return s.page }
func (s *fakeSession) Close() error {
	s.closed++
	return s.closeErr
}

type fakeDriver struct {
	launches  []browser.LaunchOptions
	sessions  []*fakeSession
	launchErr error
	stopped   int
	stopErr   error
}

func (d *fakeDriver) Launch(opts browser.LaunchOptions) (browser.Session, error) {
	d.launches = append(d.launches, opts)
	if d.launchErr != nil {
		return nil, d.launchErr
	}
	sess := &fakeSession{page: newFakePage()}
	d.sessions = append(d.sessions, sess)
	return sess, nil
}

func (d *fakeDriver) Stop() error {
	d.stopped++
	return d.stopErr
}
