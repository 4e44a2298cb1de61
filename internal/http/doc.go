// Package http fetches SoundCloud track pages.
//
// Two fetchers share the same method set and can be used interchangeably:
//   - Client issues plain GET requests with a browser User-Agent, retries
//     transient failures with exponential backoff, and can honour robots.txt
//   - BrowserFetcher renders the page in headless Chrome via chromedp
//
// # Basic Usage
//
//	client := http.NewClient(
//	    http.WithRetries(5, 500*time.Millisecond),
//	    http.WithRobots(true),
//	)
//
//	page, err := client.Fetch(ctx, "https://soundcloud.com/artist/track", 15*time.Second)
//	if err != nil {
//	    return err
//	}
//	if !page.OK() {
//	    fmt.Println("HTTP", page.StatusCode)
//	}
//
// # Retries
//
// Transport errors and 429, 500, 502, 503 and 504 responses are retried.
// The delay before retry n (counting from zero) is backoff * 2^n. After the
// last retry a status-code failure is returned as a Page, while a transport
// failure is returned as an *Error.
package http
