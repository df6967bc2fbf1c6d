// File: services/channel/markdown.go
package channel

import (
	"regexp"
	"strings"
)

var (
	mdLink    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdHeading = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBold    = regexp.MustCompile(`(\*\*|__)(.*?)(\*\*|__)`)
	mdEmph    = regexp.MustCompile(`(\*|_)([^*_]+)(\*|_)`)
	mdCode    = regexp.MustCompile("`+([^`]*)`+")
)

// StripMarkdown flattens the markdown the model tends to produce into plain
// text. Messages go out without a parse mode, so leftover markers would
// render literally in the chat client.
func StripMarkdown(text string) string {
	out := mdLink.ReplaceAllString(text, "$1")
	out = mdHeading.ReplaceAllString(out, "")
	out = mdBold.ReplaceAllString(out, "$2")
	out = mdEmph.ReplaceAllString(out, "$2")
	out = mdCode.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}
