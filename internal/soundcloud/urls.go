package soundcloud

import (
	"net/url"
	"regexp"
	"strings"
)

// SiteRoot is the origin relative playlist links are resolved against.
const SiteRoot = "https://soundcloud.com"

// trackingParamPrefix marks the playlist-context parameter SoundCloud appends
// to track links (?in=owner/sets/name). It carries no track identity.
const trackingParamPrefix = "in="

// reservedPathPrefix catches the /pages/... family of editorial pages.
const reservedPathPrefix = "pages"

var trackURLPattern = regexp.MustCompile(`(?i)^https://soundcloud\.com/([^/]+)/([^/?#]+)(?:[/?#]|$)`)

// reservedTrackSlugs are second segments that name a user's collection or
// social page rather than a track.
var reservedTrackSlugs = map[string]struct{}{
	"sets":           {},
	"albums":         {},
	"tracks":         {},
	"followers":      {},
	"following":      {},
	"likes":          {},
	"reposts":        {},
	"library":        {},
	"popular-tracks": {},
	"groups":         {},
	"comments":       {},
	"events":         {},
}

// reservedFirstSegments are top-level site sections that reuse the
// /owner/item shape (e.g. /company/jobs).
var reservedFirstSegments = map[string]struct{}{
	"about":        {},
	"contributors": {},
	"discover":     {},
	"popular":      {},
	"charts":       {},
	"company":      {},
	"jobs":         {},
	"press":        {},
	"legal":        {},
	"advertisers":  {},
	"terms-of-use": {},
	"privacy":      {},
	"pages":        {},
	"stream":       {},
	"stations":     {},
	"getstarted":   {},
	"the-upload":   {},
	"you":          {},
}

// reservedSecondSegments are collection pages under a user namespace.
var reservedSecondSegments = map[string]struct{}{
	"sets":           {},
	"albums":         {},
	"tracks":         {},
	"followers":      {},
	"following":      {},
	"library":        {},
	"likes":          {},
	"comments":       {},
	"reposts":        {},
	"popular-tracks": {},
}

// Clean canonicalizes a track URL.
//
// The host is lower-cased, the fragment is dropped, every query parameter
// starting with "in=" is removed, and a trailing bare "?" is stripped. Clean
// is idempotent:
//
//	Clean("https://SoundCloud.com/a/b?in=a/sets/x&si=1#t=0") // "https://soundcloud.com/a/b?si=1"
//
// Text that does not parse as a URL keeps its case but still loses the
// fragment and the "in=" parameters.
func Clean(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			if query := filterQuery(raw[i+1:]); query != "" {
				raw = raw[:i+1] + query
			} else {
				raw = raw[:i]
			}
		}
		return strings.TrimRight(raw, "?")
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	u.ForceQuery = false
	u.RawQuery = filterQuery(u.RawQuery)

	return strings.TrimRight(u.String(), "?")
}

// filterQuery drops tracking parameters from a raw query string, keeping the
// remaining parameters in their original order and encoding.
func filterQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	params := strings.Split(rawQuery, "&")
	kept := params[:0]
	for _, p := range params {
		if strings.HasPrefix(p, trackingParamPrefix) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "&")
}

// NormalizeRelative resolves an anchor href against baseURL.
//
// Scheme-relative hrefs ("//host/path") inherit the base scheme, absolute
// paths ("/path") inherit the base scheme and host, http(s) URLs pass through
// unchanged, and anything else is resolved as a relative reference.
func NormalizeRelative(baseURL, href string) string {
	switch {
	case strings.HasPrefix(href, "//"):
		if base, err := url.Parse(baseURL); err == nil {
			return base.Scheme + ":" + href
		}
		return href
	case strings.HasPrefix(href, "/"):
		if base, err := url.Parse(baseURL); err == nil {
			return base.Scheme + "://" + base.Host + href
		}
		return href
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// IsCandidateTrackURL reports whether raw points at a SoundCloud track page.
//
// The URL must have the https://soundcloud.com/<owner>/<track> shape, the
// track segment must not be a collection slug such as "sets" or "likes",
// and the cleaned path must pass IsReservedPath.
func IsCandidateTrackURL(raw string) bool {
	m := trackURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return false
	}
	if _, reserved := reservedTrackSlugs[strings.ToLower(m[2])]; reserved {
		return false
	}

	u, err := url.Parse(Clean(raw))
	if err != nil {
		return false
	}
	segments := PathSegments(u.Path)
	if len(segments) < 2 {
		return false
	}
	return !IsReservedPath(segments)
}

// IsReservedPath reports whether the path segments name a non-track page.
//
// An empty path, a reserved top-level section (about, charts, company, ...),
// a reserved collection page under a user (likes, sets, ...), and any
// /pages* section are all reserved.
func IsReservedPath(segments []string) bool {
	if len(segments) == 0 {
		return true
	}
	first := strings.ToLower(segments[0])
	if _, ok := reservedFirstSegments[first]; ok {
		return true
	}
	if len(segments) >= 2 {
		if _, ok := reservedSecondSegments[strings.ToLower(segments[1])]; ok {
			return true
		}
	}
	return strings.HasPrefix(first, reservedPathPrefix)
}

// PathSegments splits a URL path into its non-empty segments.
func PathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
