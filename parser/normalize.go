package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// aliasReplacer maps ASCII spellings and look-alike code points onto the
// canonical glyphs. Multi-character aliases come first.
var aliasReplacer = strings.NewReplacer(
	"->", GlyphImplies,
	"<>", GlyphPossible,
	"[]", GlyphNecessary,
	"→", GlyphImplies,
	"~", GlyphNot,
	"!", GlyphNot,
	"&", GlyphAnd,
	"∧", GlyphAnd,
	"|", GlyphOr,
	"∨", GlyphOr,
	"□", GlyphNecessary,
	"◊", GlyphPossible,
	"⋄", GlyphPossible,
)

// Normalize converts formula to NFC and replaces operator aliases with the
// canonical glyphs.
func Normalize(formula string) string {
	return strings.TrimSpace(aliasReplacer.Replace(norm.NFC.String(formula)))
}
