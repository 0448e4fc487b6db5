// Copyright Veritas Press, 2026. All rights reserved.

// Package refs builds passage lookup links and splits compound citation
// strings. Citations stay human-readable text throughout the pipeline; this
// package only derives URLs from them.
package refs

import "strings"

// DefaultTranslation is the Bible translation used for passage links when
// none is configured.
const DefaultTranslation = "ESV"

// gatewayReplacer percent-encodes the characters BibleGateway's search
// parameter cares about. Spaces become "+" per its query convention.
var gatewayReplacer = strings.NewReplacer(
	" ", "+",
	":", "%3A",
	";", "%3B",
	",", "%2C",
)

// GatewayURL returns a BibleGateway passage-search URL for the citation in
// the given translation. An empty translation falls back to
// DefaultTranslation.
func GatewayURL(citation, translation string) string {
	if translation == "" {
		translation = DefaultTranslation
	}
	return "https://www.biblegateway.com/passage/?search=" +
		gatewayReplacer.Replace(citation) + "&version=" + translation
}

// SplitCitations splits a compound citation string on semicolons, trimming
// whitespace and dropping empty parts. "Jn 4:24; Ps 90:2" yields two
// citations.
func SplitCitations(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
