package insider

import (
	"strings"
)

// ContentClass tags raw filing content with the document family it most
// resembles. The tag picks which extraction strategies get a chance to run;
// it never causes a hard rejection on its own.
type ContentClass string

const (
	// ClassXMLOwnership is a structured Form 3/4/5 ownership document.
	ClassXMLOwnership ContentClass = "xmlOwnership"
	// ClassSECIndex is an EDGAR filing-index HTML page.
	ClassSECIndex ContentClass = "secIndex"
	// ClassGenericHTML is any other HTML with table markup.
	ClassGenericHTML ContentClass = "genericHtml"
	// ClassText is everything else; it still flows through the cascade.
	ClassText ContentClass = "text"
)

// minContentLength is the shortest content that could plausibly hold
// transaction data. Anything shorter is a broken or empty fetch and goes
// straight to the failure path without burning cascade attempts.
const minContentLength = 50

// ClassifyContent sniffs raw content and returns its ContentClass.
// Detection is pure substring matching: no parse is attempted here, so
// malformed documents still classify by whatever markers they carry.
func ClassifyContent(content string) ContentClass {
	lower := strings.ToLower(content)

	// Ownership documents: the root element is the authoritative marker.
	// An XML declaration plus ownership wording covers docs whose root got
	// mangled in transit.
	if strings.Contains(lower, "<ownershipdocument") {
		return ClassXMLOwnership
	}
	if strings.Contains(lower, "<?xml") && strings.Contains(lower, "ownership") {
		return ClassXMLOwnership
	}

	// EDGAR index pages carry fixed boilerplate headings.
	if strings.Contains(lower, "document format files") ||
		strings.Contains(lower, "complete submission text file") ||
		strings.Contains(lower, "edgar filing documents for") {
		return ClassSECIndex
	}

	if strings.Contains(lower, "<table") || strings.Contains(lower, "<tr") {
		return ClassGenericHTML
	}

	return ClassText
}

// contentTooShort reports whether content is below the minimum usable
// length after trimming whitespace.
func contentTooShort(content string) bool {
	return len(strings.TrimSpace(content)) < minContentLength
}
