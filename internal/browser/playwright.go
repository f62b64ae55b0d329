package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// playwrightDriver implements Driver on top of playwright-go.
type playwrightDriver struct {
	pw *playwright.Playwright
}

func newPlaywrightDriver() (Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	return &playwrightDriver{pw: pw}, nil
}

func (d *playwrightDriver) Launch(opts LaunchOptions) (Session, error) {
	var bt playwright.BrowserType
	switch opts.Type {
	case Chromium:
		bt = d.pw.Chromium
	case Firefox:
		bt = d.pw.Firefox
	case WebKit:
		bt = d.pw.WebKit
	default:
		return nil, fmt.Errorf("unknown browser type: %q", opts.Type)
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", opts.Type, err)
	}

	ctx, err := b.NewContext()
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to open browser context: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		b.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &playwrightSession{
		browser: b,
		ctx:     ctx,
		page:    &playwrightPage{page: page},
	}, nil
}

func (d *playwrightDriver) Stop() error {
	return d.pw.Stop()
}

type playwrightSession struct {
	browser playwright.Browser
	ctx     playwright.BrowserContext
	page    *playwrightPage
}

func (s *playwrightSession) Page() Page {
	return s.page
}

// Close releases the context then the browser process. Each release is
// guarded independently so a failure on one does not skip the other.
func (s *playwrightSession) Close() error {
	var firstErr error
	if s.ctx != nil {
		if err := s.ctx.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// playwrightPage adapts a playwright page to the Page interface.
type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Navigate(url string) error {
	_, err := p.page.Goto(url)
	return err
}

func (p *playwrightPage) Click(selector string) error {
	return p.page.Click(selector)
}

func (p *playwrightPage) Fill(selector, text string) error {
	return p.page.Fill(selector, text)
}

func (p *playwrightPage) WaitForSelector(selector string) error {
	_, err := p.page.WaitForSelector(selector)
	return err
}

func (p *playwrightPage) TextContent(selector string) (string, error) {
	return p.page.Locator(selector).TextContent()
}

func (p *playwrightPage) IsVisible(selector string) (bool, error) {
	return p.page.Locator(selector).IsVisible()
}

func (p *playwrightPage) Count(selector string) (int, error) {
	return p.page.Locator(selector).Count()
}

func (p *playwrightPage) SetInputFiles(selector, path string) error {
	return p.page.Locator(selector).SetInputFiles(path)
}

func (p *playwrightPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	})
	return err
}

func (p *playwrightPage) WaitTimeout(ms float64) {
	p.page.WaitForTimeout(ms)
}

func (p *playwrightPage) SelectOption(selector, value string) error {
	_, err := p.page.Locator(selector).SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	})
	return err
}

func (p *playwrightPage) Check(selector string) error {
	return p.page.Check(selector)
}

func (p *playwrightPage) Uncheck(selector string) error {
	return p.page.Uncheck(selector)
}

func (p *playwrightPage) Hover(selector string) error {
	return p.page.Hover(selector)
}

func (p *playwrightPage) Press(selector, key string) error {
	return p.page.Press(selector, key)
}

func (p *playwrightPage) Evaluate(expression string) (interface{}, error) {
	return p.page.Evaluate(expression)
}

func (p *playwrightPage) SetDefaultTimeout(ms float64) {
	p.page.SetDefaultTimeout(ms)
}
