// Package ioutils provides file system utilities for soundcloud-digger.
//
// This package contains functions for:
//   - Reading saved HTML pages with an encoding fallback
//   - Writing export files, creating parent directories as needed
//
// # Reading Saved Pages
//
// Browsers usually save pages as UTF-8, but older saves may be Latin-1.
// ReadText tries UTF-8 first and falls back to ISO-8859-1:
//
//	html, err := ioutils.ReadText("playlist.html")
//	if errors.Is(err, ioutils.ErrNotFound) {
//	    // report the missing input
//	}
//
// # Writing Files
//
//	err := ioutils.WriteFile(ctx, "out/soundcloud_links.json", data)
//	// creates out/ if it does not exist
package ioutils
