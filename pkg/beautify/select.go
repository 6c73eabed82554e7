package beautify

import "regexp"

var selectMarker = regexp.MustCompile(`(?i)^select(?:[ \t]+(?:distinct|all))?  \S`)

// AlignSelectBlocks re-bases the column list of every SELECT carrying the
// two-space marker so its shallowest continuation line sits at the SELECT's
// indent + 8. The block runs until the next non-blank line indented at or
// before the SELECT itself (its FROM, closing paren or a sibling clause).
// Nested lines keep their depth relative to each other. Lines that continue a
// multi-line string are neither moved nor allowed to end the block.
func AlignSelectBlocks(d Document) Document {
	out := make(Document, len(d))
	copy(out, d)
	inside := openQuotes(d)

	for i := range out {
		if inside[i] || !selectMarker.MatchString(out[i].Trimmed()) {
			continue
		}

		base := out[i].Indent()
		end := selectBlockEnd(out, inside, i, base)
		if end-i < 2 {
			continue
		}

		var (
			at    []int
			block []Line
		)
		for j := i + 1; j < end; j++ {
			if !inside[j] {
				at = append(at, j)
				block = append(block, out[j])
			}
		}

		for k, l := range shiftTo(block, base+fieldOffset) {
			out[at[k]] = l
		}
	}

	return out
}

func selectBlockEnd(d Document, inside []bool, start, base int) int {
	for j := start + 1; j < len(d); j++ {
		if d[j].Blank() || inside[j] {
			continue
		}

		if d[j].Indent() <= base {
			return j
		}
	}

	return len(d)
}
