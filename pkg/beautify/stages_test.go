package beautify_test

import (
	"testing"

	. "github.com/pseudomuto/sqlbeautify/pkg/beautify"
	"github.com/stretchr/testify/require"
)

func doc(lines ...string) Document {
	d := make(Document, len(lines))
	for i, l := range lines {
		d[i] = Line(l)
	}

	return d
}

type stageTest struct {
	name  string
	input Document
	want  Document
}

func runStage(t *testing.T, stage func(Document) Document, tests []stageTest) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stage(tt.input)
			require.Equal(t, tt.want.String(), got.String())
			require.Equal(t, got.String(), stage(got).String(), "stage is not idempotent")
		})
	}
}

func TestLine(t *testing.T) {
	l := Line("    group by a")
	require.Equal(t, 4, l.Indent())
	require.Equal(t, "group by a", l.Trimmed())
	require.True(t, l.HasKeyword("group by"))
	require.True(t, l.HasKeyword("from", "group by"))
	require.False(t, l.HasKeyword("groups"))
	require.Equal(t, Line("  group by a"), l.WithIndent(2))
	require.Equal(t, Line("group by a"), l.WithIndent(-3))

	require.True(t, Line("END").HasKeyword("end"))
	require.True(t, Line("end)").HasKeyword("end"))
	require.False(t, Line("end_date").HasKeyword("end"))
	require.True(t, Line("   ").Blank())
}

func TestDocument(t *testing.T) {
	text := "select  a\n\nfrom t"
	d := NewDocument(text)
	require.Len(t, d, 3)
	require.Equal(t, text, d.String())
}

func TestCompactClauses(t *testing.T) {
	runStage(t, CompactClauses, []stageTest{
		{
			name: "clause headers",
			input: doc(
				"select",
				"    a,",
				"    b",
				"from",
				"    t",
				"where",
				"    x = 1",
				"group by",
				"    a",
				"having",
				"    count(*) > 1",
				"order by",
				"    b",
				"limit",
				"    10",
				"offset",
				"    5",
			),
			want: doc(
				"select  a,",
				"    b",
				"from t",
				"where x = 1",
				"group by a",
				"having count(*) > 1",
				"order by b",
				"limit 10",
				"offset 5",
			),
		},
		{
			name:  "keyword case is kept",
			input: doc("SELECT DISTINCT", "    a", "FROM", "    t"),
			want:  doc("SELECT DISTINCT  a", "FROM t"),
		},
		{
			name:  "nested clauses keep their indent",
			input: doc("    select", "        a", "    from", "        u"),
			want:  doc("    select  a", "    from u"),
		},
		{
			name:  "with before the name",
			input: doc("with", "    x as (", "        select", "            1", "    )"),
			want:  doc("with x as (", "        select  1", "    )"),
		},
		{
			name:  "with after the name",
			input: doc("with recursive x", "    as ("),
			want:  doc("with recursive x as ("),
		},
		{
			name:  "already compact",
			input: doc("select  a,", "    b", "from t"),
			want:  doc("select  a,", "    b", "from t"),
		},
	})
}

func TestSeparateCTEs(t *testing.T) {
	runStage(t, SeparateCTEs, []stageTest{
		{
			name: "definitions and final query",
			input: doc(
				"with a as (",
				"        select  1",
				"    ),",
				"    b as (",
				"        select  2",
				"    )",
				"select  *",
				"from a",
			),
			want: doc(
				"with a as (",
				"        select  1",
				"    ),",
				"",
				"b as (",
				"        select  2",
				"    )",
				"",
				"select  *",
				"from a",
			),
		},
		{
			name:  "indented select without the marker",
			input: doc(")", "    select *"),
			want:  doc(")", "", "select *"),
		},
		{
			name:  "already separated",
			input: doc("),", "", "b as (", ")", "", "select  1"),
			want:  doc("),", "", "b as (", ")", "", "select  1"),
		},
	})
}

func TestAlignSelectBlocks(t *testing.T) {
	runStage(t, AlignSelectBlocks, []stageTest{
		{
			name:  "columns move to select + 8",
			input: doc("select  a,", "    b,", "    c", "from t"),
			want:  doc("select  a,", "        b,", "        c", "from t"),
		},
		{
			name: "relative nesting is kept",
			input: doc(
				"select  a,",
				"    case",
				"        when x then 1",
				"    end as y",
				"from t",
			),
			want: doc(
				"select  a,",
				"        case",
				"            when x then 1",
				"        end as y",
				"from t",
			),
		},
		{
			name:  "nested select",
			input: doc("    select  a,", "        b", "    from t"),
			want:  doc("    select  a,", "            b", "    from t"),
		},
		{
			name:  "over-indented columns move left",
			input: doc("select  a,", "                b", "from t"),
			want:  doc("select  a,", "        b", "from t"),
		},
		{
			name:  "blank lines are kept",
			input: doc("select  a,", "", "    b", "from t"),
			want:  doc("select  a,", "", "        b", "from t"),
		},
		{
			name:  "single line block",
			input: doc("select  a", "from t"),
			want:  doc("select  a", "from t"),
		},
		{
			name:  "without the marker",
			input: doc("select a,", "    b"),
			want:  doc("select a,", "    b"),
		},
		{
			name:  "multi-line string",
			input: doc("select  'a", "b' as s,", "    \"from\"", "from t"),
			want:  doc("select  'a", "b' as s,", "        \"from\"", "from t"),
		},
		{
			name: "multi-line comment",
			input: doc(
				"select  a, /* first",
				"select  x",
				"*/",
				"    b",
				"from t",
			),
			want: doc(
				"select  a, /* first",
				"select  x",
				"*/",
				"        b",
				"from t",
			),
		},
	})
}

func TestAlignSelectBlocks_MinimumIndent(t *testing.T) {
	got := AlignSelectBlocks(doc(
		"  select  a,",
		"              b,",
		"                  c,",
		"           d",
		"  from t",
	))

	require.Equal(t, 10, got[3].Indent())
	require.Equal(t, 13, got[1].Indent())
	require.Equal(t, 17, got[2].Indent())
}

func TestAnchorJoins(t *testing.T) {
	runStage(t, AnchorJoins, []stageTest{
		{
			name: "joins anchor to from",
			input: doc(
				"from t",
				"    left join u on t.id = u.id",
				"        inner join v using (id)",
				"    and x = 1",
			),
			want: doc(
				"from t",
				"left join u",
				"    on t.id = u.id",
				"inner join v using (id)",
				"    and x = 1",
			),
		},
		{
			name:  "case is kept",
			input: doc("FROM t", "    LEFT OUTER JOIN u ON a = b"),
			want:  doc("FROM t", "LEFT OUTER JOIN u", "    ON a = b"),
		},
		{
			name:  "on inside parentheses or quotes",
			input: doc("from t", "    join u on (a = 'on')", "    join v using (on_id)"),
			want:  doc("from t", "join u", "    on (a = 'on')", "join v using (on_id)"),
		},
		{
			name: "nested from",
			input: doc(
				"from t",
				"    join (",
				"        select  a",
				"        from u",
				"            join w on w.a = u.a",
				"    ) x on x.a = t.a",
				"    cross join z",
			),
			want: doc(
				"from t",
				"join (",
				"        select  a",
				"        from u",
				"        join w",
				"            on w.a = u.a",
				") x",
				"    on x.a = t.a",
				"cross join z",
			),
		},
		{
			name: "subquery join closed without on",
			input: doc(
				"from t",
				"    left join lateral (",
				"        select  1",
				"    ) x",
				"    where a = 1",
			),
			want: doc(
				"from t",
				"left join lateral (",
				"        select  1",
				") x",
				"    where a = 1",
			),
		},
		{
			name:  "join without from",
			input: doc("    join u on a = b"),
			want:  doc("join u", "    on a = b"),
		},
		{
			name: "join shallower than every from",
			input: doc(
				"    from t",
				"join u on a = b",
				"        join v",
			),
			want: doc(
				"    from t",
				"    join u",
				"        on a = b",
				"    join v",
			),
		},
	})
}

func TestAlignPredicates(t *testing.T) {
	runStage(t, AlignPredicates, []stageTest{
		{
			name: "and/or clamp to where + 4",
			input: doc(
				"where x = 1",
				"        and y = 2",
				"            or z = 3",
				"  and w = 4",
				"group by a",
				"        and q",
			),
			want: doc(
				"where x = 1",
				"    and y = 2",
				"    or z = 3",
				"  and w = 4",
				"group by a",
				"        and q",
			),
		},
		{
			name:  "other continuations",
			input: doc("    where x =", "                1"),
			want:  doc("    where x =", "        1"),
		},
		{
			name:  "case lines are left alone",
			input: doc("where x = case", "            when a then 1", "        end"),
			want:  doc("where x = case", "            when a then 1", "        end"),
		},
		{
			name:  "closing paren ends the clause",
			input: doc("    where a = 1", "            and b = 2", "    )", "        and c"),
			want:  doc("    where a = 1", "        and b = 2", "    )", "        and c"),
		},
		{
			name: "parenthesis group",
			input: doc(
				"where x = 1",
				"    and (",
				"            a = 1",
				"            or b = 2",
				"        )",
			),
			want: doc(
				"where x = 1",
				"    and (",
				"        a = 1",
				"        or b = 2",
				"    )",
			),
		},
		{
			name: "nested groups",
			input: doc(
				"where (",
				"  a = 1",
				"  or (",
				"      b = 2",
				"  )",
				")",
			),
			want: doc(
				"where (",
				"    a = 1",
				"    or (",
				"        b = 2",
				"    )",
				")",
			),
		},
		{
			name: "subquery",
			input: doc(
				"where id in (",
				"        select  id",
				"        from u",
				"        where z = 1",
				"            and y = 2",
				"    )",
			),
			want: doc(
				"where id in (",
				"    select  id",
				"    from u",
				"    where z = 1",
				"        and y = 2",
				")",
			),
		},
		{
			name: "common table expression",
			input: doc(
				"with a as (",
				"        select  1",
				"    ),",
			),
			want: doc(
				"with a as (",
				"    select  1",
				"),",
			),
		},
	})
}

func TestAlignPredicates_Clamp(t *testing.T) {
	got := AlignPredicates(doc(
		"  where a",
		"                  and b",
		"          or c",
		"      and d",
		"  order by a",
	))

	for _, l := range got[1:4] {
		require.LessOrEqual(t, l.Indent(), 6)
	}
}

func TestRewriteCaseStack(t *testing.T) {
	runStage(t, RewriteCaseStack, []stageTest{
		{
			name:  "single case",
			input: doc("case", "  when a then 1", "      else 2", "   end"),
			want:  doc("case", "    when a then 1", "    else 2", "end"),
		},
		{
			name: "nested case and body lines",
			input: doc(
				"    case",
				"when a then",
				"x + 1",
				"else case",
				"when b then 2",
				"end",
				"end as c",
			),
			want: doc(
				"    case",
				"        when a then",
				"            x + 1",
				"        else case",
				"                 when b then 2",
				"             end",
				"    end as c",
			),
		},
		{
			name:  "case opened at the end of a line",
			input: doc("select  case", "when a then 1", "end as c"),
			want:  doc("select  case", "            when a then 1", "        end as c"),
		},
		{
			name:  "inline case",
			input: doc("case when a then 1 end", "  x"),
			want:  doc("case when a then 1 end", "  x"),
		},
		{
			name:  "unmatched end",
			input: doc("select  a", "  end", "x"),
			want:  doc("select  a", "  end", "x"),
		},
	})
}

func TestSweepOnBlocks(t *testing.T) {
	runStage(t, SweepOnBlocks, []stageTest{
		{
			name: "and lines follow on",
			input: doc(
				"left join u",
				"    on a = b",
				"        and c = d",
				"  and e = f",
				"where x",
				"        and y",
			),
			want: doc(
				"left join u",
				"    on a = b",
				"    and c = d",
				"    and e = f",
				"where x",
				"        and y",
			),
		},
		{
			name: "groups move with their head",
			input: doc(
				"    on a = b",
				"            and (",
				"                c = 1",
				"            )",
			),
			want: doc(
				"    on a = b",
				"    and (",
				"        c = 1",
				"    )",
			),
		},
		{
			name:  "closing paren ends the block",
			input: doc("    on a = b", ") x", "        and c"),
			want:  doc("    on a = b", ") x", "        and c"),
		},
	})
}

func TestCollapseGroupBy(t *testing.T) {
	runStage(t, CollapseGroupBy, []stageTest{
		{
			name:  "list collapses",
			input: doc("group by a,", "    b,", "        c", "having count(*) > 1"),
			want:  doc("group by a, b, c", "having count(*) > 1"),
		},
		{
			name:  "closing paren ends the list",
			input: doc("    group by a,", "        b", ")"),
			want:  doc("    group by a, b", ")"),
		},
		{
			name:  "statement end",
			input: doc("group by a;", "select  x,", "        y"),
			want:  doc("group by a;", "select  x,", "        y"),
		},
		{
			name:  "outside group by",
			input: doc("select  a,", "        b", "from t"),
			want:  doc("select  a,", "        b", "from t"),
		},
	})
}
