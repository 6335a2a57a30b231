package insider

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// htmlEntityReplacements maps the named entities that routinely show up
// in EDGAR documents to their plain equivalents.
var htmlEntityReplacements = map[string]string{
	"&nbsp;":   " ",
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   "\"",
	"&apos;":   "'",
	"&mdash;":  "—",
	"&ndash;":  "–",
	"&ldquo;":  "“",
	"&rdquo;":  "”",
	"&lsquo;":  "‘",
	"&rsquo;":  "’",
	"&hellip;": "...",
	"&bull;":   "•",
	"&sect;":   "§",
	"&reg;":    "®",
	"&copy;":   "©",
	"&trade;":  "™",
}

var (
	numericEntityPattern = regexp.MustCompile(`&#(\d+);`)
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
	pageMarkerPattern    = regexp.MustCompile(`Page \d+ of \d+`)
)

// NormalizeText cleans up the Unicode and entity noise that raw filings
// carry: named and numeric HTML entities, exotic Unicode spaces,
// zero-width characters, and CRLF line endings. Call it early, before
// any text-level matching.
func NormalizeText(data []byte) []byte {
	text := string(data)

	text = normalizeHTMLEntities(text)
	text = normalizeWhitespace(text)
	text = removeInvisibleChars(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return []byte(text)
}

// normalizeHTMLEntities resolves named entities from the replacement
// table, then decodes any remaining numeric entity to its rune.
func normalizeHTMLEntities(text string) string {
	for entity, replacement := range htmlEntityReplacements {
		text = strings.ReplaceAll(text, entity, replacement)
	}

	return numericEntityPattern.ReplaceAllStringFunc(text, func(match string) string {
		code, err := strconv.Atoi(match[2 : len(match)-1])
		if err != nil || code < 0 || code > 0x10FFFF {
			return match
		}
		if code == 160 {
			return " "
		}
		return string(rune(code))
	})
}

// normalizeWhitespace maps the Unicode space variants to a plain space.
// NBSP is by far the most common in EDGAR HTML.
func normalizeWhitespace(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == ' ' || r == ' ' || r == ' ' || r == '　':
			result.WriteRune(' ')
		case r >= ' ' && r <= ' ':
			result.WriteRune(' ')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// removeInvisibleChars drops zero-width and Unicode format characters
// while keeping tabs and newlines intact.
func removeInvisibleChars(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '​', '‌', '‍', '\ufeff', '᠎':
			continue
		}
		if unicode.Is(unicode.Cf, r) && r != '\t' && r != '\n' && r != '\r' {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// NormalizeXMLText prepares ownership XML for lenient parsing. It is
// more conservative than NormalizeText: entities stay encoded except
// &nbsp;, but control characters are stripped outright since real-world
// filings embed them and they break tree parsers.
func NormalizeXMLText(data []byte) []byte {
	text := string(data)

	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, " ", " ")
	text = strings.ReplaceAll(text, "​", "")
	text = strings.ReplaceAll(text, "\ufeff", "")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = stripControlChars(text)

	return []byte(text)
}

// stripControlChars removes control characters other than tab and
// newline.
func stripControlChars(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		if unicode.IsControl(r) && r != '\t' && r != '\n' {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// CleanExtractedText tidies text pulled out of a parsed document:
// whitespace runs collapse to single spaces and page markers vanish.
func CleanExtractedText(text string) string {
	text = whitespaceRunPattern.ReplaceAllString(text, " ")
	text = pageMarkerPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
