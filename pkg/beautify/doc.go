// Package beautify rewrites the output of the baseline printer into the house
// layout: compact one-line clause headers, SELECT columns at a fixed offset,
// JOINs anchored to their FROM, clamped WHERE predicates, stack-indented CASE
// expressions and single-line GROUP BY lists.
//
// Nothing here parses SQL. Every stage works on a Document, a slice of lines,
// and recovers structure from indentation and keyword prefixes alone. The
// stages run in a fixed order, each a pure Document -> Document function that
// assumes the shape left by the ones before it:
//
//	compact-clauses      select/from/where/... joined with their first token
//	separate-ctes        CTE definitions and the final query start at column 0
//	align-select-blocks  SELECT columns re-based to select + 8
//	anchor-joins         JOINs aligned to their FROM, inline ON split off
//	align-predicates     AND/OR under WHERE clamped, paren groups re-indented
//	rewrite-case-stack   CASE/WHEN/THEN/ELSE/END indented from a CASE stack
//	sweep-on-blocks      AND lines under ON aligned to the ON
//	collapse-group-by    GROUP BY lists joined onto one line
//
// User substitution rules run last, on the final text. A request the baseline
// printer rejects returns its input unchanged.
//
//	out := beautify.FormatLogic(sql, beautify.Options{
//		Dialect:   "postgresql",
//		Uppercase: true,
//		Indent:    "    ",
//	})
package beautify
