package export

import (
	"fmt"
	"strings"

	"github.com/handiism/soundcloud-digger/internal/model"
)

// playlistItem is one line of a generated playlist.
type playlistItem struct {
	category model.Category
	title    string
	link     string
}

// playlistItems flattens a summary in category order, using the link a user
// would open for each entry. Entries without any link are left out.
func playlistItems(s *model.Summary) []playlistItem {
	var items []playlistItem
	for _, c := range model.Categories() {
		for _, e := range s.Entries(c) {
			link, _ := e.LinkToOpen()
			if link == "" {
				continue
			}
			items = append(items, playlistItem{category: c, title: e.Title, link: link})
		}
	}
	return items
}

// label is the display name of an item: "[category] title".
func (it playlistItem) label() string {
	title := it.title
	if title == "" {
		title = model.UnknownTitle
	}
	return fmt.Sprintf("[%s] %s", it.category, title)
}

// encodeM3U generates an extended M3U playlist.
//
//	#EXTM3U
//	#EXTINF:-1,[bandcamp] Track Title
//	https://artist.bandcamp.com/track/title
func encodeM3U(s *model.Summary) []byte {
	var sb strings.Builder

	sb.WriteString("#EXTM3U\n")
	for _, it := range playlistItems(s) {
		fmt.Fprintf(&sb, "#EXTINF:-1,%s\n", oneLine(it.label()))
		sb.WriteString(it.link + "\n")
	}

	return []byte(sb.String())
}

// encodePLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=https://artist.bandcamp.com/track/title
//	Title1=[bandcamp] Track Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func encodePLS(s *model.Summary) []byte {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	items := playlistItems(s)
	for i, it := range items {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, it.link)
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, oneLine(it.label()))
		fmt.Fprintf(&sb, "Length%d=-1\n", idx)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(items))
	sb.WriteString("Version=2\n")

	return []byte(sb.String())
}

// encodeWPL generates a Windows Media Player playlist.
//
// WPL is an XML-based SMIL format; every link becomes a <media> element.
func encodeWPL(s *model.Summary) []byte {
	var sb strings.Builder

	items := playlistItems(s)

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString("    <meta name=\"Generator\" content=\"soundcloud-digger\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(items))
	sb.WriteString("    <title>SoundCloud links</title>\n")
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, it := range items {
		fmt.Fprintf(&sb, "      <media src=\"%s\" trackTitle=\"%s\"/>\n", escapeXML(it.link), escapeXML(it.label()))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return []byte(sb.String())
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// oneLine keeps line-based formats intact when a title has line breaks.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
