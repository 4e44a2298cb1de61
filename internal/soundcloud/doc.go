// Package soundcloud extracts track lists and store links from SoundCloud
// pages.
//
// The package handles two main use cases:
//
//  1. Recovering the track URLs of a saved playlist page
//  2. Classifying the download/purchase links of a single track page
//
// # Playlist Extraction
//
// Use the Extractor on a page saved from the browser after scrolling through
// the whole playlist:
//
//	extractor := soundcloud.NewExtractor(logger)
//	playlist, err := extractor.ExtractFile("playlist.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d tracks\n", len(playlist.TrackURLs))
//
// Track URLs come from anchors and from the window.__sc_hydration data
// island. The data island is located with a bounded bracket scanner; the
// script is never executed.
//
// # Link Classification
//
// Use the Classifier on the HTML of a track page:
//
//	links := soundcloud.NewClassifier().Classify(trackURL, pageHTML)
//	for _, c := range links.Categories() {
//	    fmt.Println(c)
//	}
//
// # Canonical URLs
//
// Clean strips fragments and the "in=" playlist-context parameter so the
// same track reached from different playlists compares equal.
package soundcloud
