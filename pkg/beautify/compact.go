package beautify

import "regexp"

var (
	compactSelect = regexp.MustCompile(`(?im)^([ \t]*)(select(?:[ \t]+(?:distinct|all))?)[ \t]*\n\s*`)
	compactClause = regexp.MustCompile(`(?im)^([ \t]*)(from|where|having|group[ \t]+by|order[ \t]+by|limit|offset)[ \t]*\n\s*`)

	// "with\n    x as (" and "with x\n    as (" both become "with x as (".
	compactWithName = regexp.MustCompile(`(?im)^([ \t]*)(with(?:[ \t]+recursive)?)[ \t]*\n\s*(\w+)[ \t]+(as)\b`)
	compactWithAs   = regexp.MustCompile(`(?im)^([ \t]*)(with(?:[ \t]+recursive)?)[ \t]+(\w+)[ \t]*\n\s*(as)\b`)

	cteFollows          = regexp.MustCompile(`(?im)^([ \t]*\),)[ \t]*\n[ \t]*(\w+[ \t]+as\b)`)
	cteThenMarkedSelect = regexp.MustCompile(`(?im)^([ \t]*\))[ \t]*\n[ \t]*(select(?:[ \t]+(?:distinct|all))?  )`)
	cteThenSelect       = regexp.MustCompile(`(?im)^([ \t]*\))[ \t]*\n[ \t]+(select\b)`)
)

// CompactClauses pulls the first token of a clause onto its header line. SELECT
// is followed by two spaces, which later stages use as the mark of a column
// list; every other header by one. Keyword case is kept as printed.
func CompactClauses(d Document) Document {
	return rewriteText(d, func(s string) string {
		s = compactSelect.ReplaceAllString(s, "${1}${2}  ")
		s = compactClause.ReplaceAllString(s, "${1}${2} ")
		s = compactWithName.ReplaceAllString(s, "${1}${2} ${3} ${4}")
		return compactWithAs.ReplaceAllString(s, "${1}${2} ${3} ${4}")
	})
}

// SeparateCTEs puts a blank line between CTE definitions and before the query
// that follows the last one, moving that query to column 0.
func SeparateCTEs(d Document) Document {
	return rewriteText(d, func(s string) string {
		s = cteFollows.ReplaceAllString(s, "${1}\n\n${2}")
		s = cteThenMarkedSelect.ReplaceAllString(s, "${1}\n\n${2}")
		return cteThenSelect.ReplaceAllString(s, "${1}\n\n${2}")
	})
}
