package entities

// Suffix tags a table snapshot written during washing.
type Suffix string

const (
	SuffixReplaced Suffix = "replaced" // sanitized and decomposed
	SuffixExcluded Suffix = "excluded" // after the exclusion filter
	SuffixTop      Suffix = "100"      // after truncation
	SuffixFinal    Suffix = "FINAL"    // with attention checks
	SuffixFake     Suffix = "fake"     // alternative name for the final snapshot
)

// IsFinal reports whether s names the final snapshot.
func (s Suffix) IsFinal() bool {
	return s == SuffixFinal || s == SuffixFake
}

// GeneratedMarker distinguishes generated artifacts from source files.
const GeneratedMarker = "[gen]"
