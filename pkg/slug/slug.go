// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns tag names into URL path segments ("Café Culture" → "cafe-culture").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented letters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}))

// From lowercases s, strips accents, and joins the remaining ASCII letter and
// digit runs with single hyphens. Anything else is a separator. The result is
// empty when s has no ASCII letters or digits after accent removal.
func From(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var out strings.Builder
	out.Grow(len(folded))
	separate := false
	for _, r := range strings.ToLower(folded) {
		if !isSlugRune(r) {
			separate = out.Len() > 0
			continue
		}
		if separate {
			out.WriteByte('-')
			separate = false
		}
		out.WriteRune(r)
	}
	return out.String()
}

// Valid reports whether s is already in the form [From] produces.
func Valid(s string) bool {
	return s != "" && From(s) == s
}

func isSlugRune(r rune) bool {
	return ('a' <= r && r <= 'z') || ('0' <= r && r <= '9')
}
