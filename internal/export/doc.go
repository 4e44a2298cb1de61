// Package export writes category summaries to disk.
//
// # Structured Formats
//
// JSON is the canonical format: it is what the open command loads back.
// Keys appear in the fixed category order and every category is present:
//
//	{
//	  "hypeddit": [],
//	  "bandcamp": [
//	    {
//	      "title": "Track",
//	      "track_url": "https://soundcloud.com/artist/track",
//	      "shop_link": "https://artist.bandcamp.com/track/track"
//	    }
//	  ],
//	  ...
//	}
//
// YAML carries the same structure in the same order.
//
// # Playlist Formats
//
// M3U, PLS and WPL list the link to open for every entry (the shop link, or
// the track URL when there is none), grouped by category:
//
//	path, err := export.Write(ctx, summary, export.FormatM3U, "links.m3u")
package export
