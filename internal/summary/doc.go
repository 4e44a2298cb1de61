// Package summary builds, merges and loads category summaries.
//
// A summary partitions tracks by the storefront their download or purchase
// link points at. The Aggregator resolves per-track classification results
// into a summary in which every track appears under exactly one category:
//
//	a := summary.NewAggregator()
//	for _, links := range results {
//	    a.Add(links)
//	}
//	s := a.Summary()
//
// Summaries written by earlier runs can be read back with LoadFile and
// combined with Merge, which applies the same exclusivity rules across runs.
package summary
