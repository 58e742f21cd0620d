package coda

import (
	"regexp"
	"strings"
)

var docIDPattern = regexp.MustCompile(`_d([A-Za-z0-9_-]+)`)

// ExtractDocID accepts a doc ID, an ID carrying the "_d" prefix, or a browser
// URL such as https://coda.io/d/Roadmap_dAbC123, and returns the bare ID.
// Input that matches none of these is returned unchanged.
func ExtractDocID(urlOrID string) string {
	if strings.HasPrefix(urlOrID, "_d") {
		return urlOrID[2:]
	}
	if m := docIDPattern.FindStringSubmatch(urlOrID); m != nil {
		return m[1]
	}
	return urlOrID
}
