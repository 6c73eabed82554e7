package beautify

import (
	"regexp"
	"strings"
)

var listBreak = regexp.MustCompile(`,[ \t]*\n\s*`)

var groupByTerminators = []string{
	"having", "order by", "limit", "offset", "fetch", "window", "qualify",
	"union", "intersect", "except", "minus",
}

// CollapseGroupBy joins a GROUP BY list that spans several lines into one. The
// span ends before HAVING, ORDER BY, LIMIT and the like, a closing paren, a
// blank line or the end of the statement.
func CollapseGroupBy(d Document) Document {
	out := make(Document, 0, len(d))

	for i := 0; i < len(d); {
		if !d[i].HasKeyword("group by") {
			out = append(out, d[i])
			i++
			continue
		}

		end := i + 1
		for end < len(d) && !endsGroupBy(d[end]) && !strings.HasSuffix(d[end-1].Trimmed(), ";") {
			end++
		}

		out = append(out, NewDocument(listBreak.ReplaceAllString(d[i:end].String(), ", "))...)
		i = end
	}

	return out
}

func endsGroupBy(l Line) bool {
	return l.Blank() || l.HasKeyword(groupByTerminators...) || strings.HasPrefix(l.Trimmed(), ")")
}
