// Package browser opens summary links in a web browser.
//
// Select picks the entries to open, and an Opener hands them to a Launcher
// with a short pause between links:
//
//	items, err := browser.Select(summary, "bandcamp", 0, 20)
//	if err != nil {
//	    return err
//	}
//	report := browser.NewOpener(browser.SystemLauncher{}, "firefox", logger).Open(ctx, items)
package browser
