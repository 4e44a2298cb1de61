package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"slices"
)

// DefaultBrowser names the system default browser.
const DefaultBrowser = "default"

// ErrBrowserUnavailable is returned when the requested browser is not
// installed or not supported on this platform.
var ErrBrowserUnavailable = errors.New("browser unavailable")

// BrowserNames returns the accepted browser names.
func BrowserNames() []string {
	return []string{DefaultBrowser, "chrome", "firefox", "edge", "safari", "opera"}
}

// ValidBrowser reports whether name is one of BrowserNames.
func ValidBrowser(name string) bool {
	return slices.Contains(BrowserNames(), name)
}

// linuxBinaries lists the executables tried for each browser, in order.
var linuxBinaries = map[string][]string{
	"chrome":  {"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"},
	"firefox": {"firefox"},
	"edge":    {"microsoft-edge", "microsoft-edge-stable"},
	"opera":   {"opera"},
}

// macApplications maps browsers to their macOS application names.
var macApplications = map[string]string{
	"chrome":  "Google Chrome",
	"firefox": "Firefox",
	"edge":    "Microsoft Edge",
	"safari":  "Safari",
	"opera":   "Opera",
}

// windowsCommands maps browsers to the names understood by "start".
var windowsCommands = map[string]string{
	"chrome":  "chrome",
	"firefox": "firefox",
	"edge":    "msedge",
	"opera":   "opera",
}

// SystemLauncher opens URLs with the platform's browser commands: open on
// macOS, xdg-open or the browser binary on Linux, and start on Windows.
type SystemLauncher struct{}

// Launch starts the browser without waiting for it to exit.
func (SystemLauncher) Launch(ctx context.Context, browser, url string) error {
	name, args, err := command(runtime.GOOS, browser, url, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(context.WithoutCancel(ctx), name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// command builds the command line that opens url in browser on goos.
func command(goos, browser, url string, lookPath func(string) (string, error)) (string, []string, error) {
	if browser == DefaultBrowser {
		browser = ""
	}

	switch goos {
	case "darwin":
		if browser == "" {
			return "open", []string{url}, nil
		}
		app, ok := macApplications[browser]
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrBrowserUnavailable, browser)
		}
		return "open", []string{"-a", app, url}, nil

	case "windows":
		if browser == "" {
			return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
		}
		exe, ok := windowsCommands[browser]
		if !ok {
			return "", nil, fmt.Errorf("%w: %s on windows", ErrBrowserUnavailable, browser)
		}
		return "cmd", []string{"/c", "start", "", exe, url}, nil

	default:
		if browser == "" {
			return "xdg-open", []string{url}, nil
		}
		for _, bin := range linuxBinaries[browser] {
			if path, err := lookPath(bin); err == nil {
				return path, []string{url}, nil
			}
		}
		return "", nil, fmt.Errorf("%w: %s", ErrBrowserUnavailable, browser)
	}
}
