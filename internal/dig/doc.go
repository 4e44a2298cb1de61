// Package dig drives the fetch and classify loop over a playlist's tracks.
//
// # Manager
//
// The Manager processes tracks sequentially:
//
//  1. Truncate the URL list to Options.MaxTracks
//  2. Fetch each track page through the injected Fetcher
//  3. Classify the page links with soundcloud.Classifier
//  4. Hold the next request until Options.Delay has passed since the last one started
//
// A failed fetch never aborts the run; the track is recorded in the
// catch-all category instead.
//
// # Basic Usage
//
//	manager, err := dig.NewManager(http.NewClient(), dig.DefaultOptions(), func(event dig.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := manager.Run(ctx, playlist.TrackURLs)
//	s := summary.Aggregate(results)
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message    string
//	    Level      ProgressLevel // Info, Verbose, Warning, Error, Success
//	    Index      int
//	    Total      int
//	    TrackURL   string
//	    Categories []model.Category
//	}
//
// # Caching
//
// Classified pages are kept in an LRU cache owned by the Manager and
// cleared at the start of every run, so a URL listed twice in one run is
// fetched once.
package dig
