package dialect

// Patterns shared by several dialects.
const (
	singleQuoted        = `'(?:[^']|'')*'`
	singleQuotedEscaped = `'(?:[^'\\]|\\.|'')*'`
	doubleQuoted        = `"(?:[^"]|"")*"`
	doubleQuotedEscaped = `"(?:[^"\\]|\\.|"")*"`
	backticked          = "`(?:[^`]|``)*`"
	bracketed           = `\[[^\]\n]*\]`
	dollarQuoted        = `\$\$[\s\S]*?\$\$`
	positionalParam     = `\?`
	numberedParam       = `\$\d+`
	colonParam          = `:[\p{L}_][\p{L}\p{N}_]*`
	atParam             = `@[\p{L}_][\p{L}\p{N}_]*`
)

var standardKeywords = []string{
	"all", "and", "any", "array", "as", "asc", "between", "both", "by", "case",
	"collate", "column", "constraint", "create", "cross", "current", "current_date",
	"current_time", "current_timestamp", "current_user", "default", "delete",
	"desc", "distinct", "drop", "else", "end", "escape", "exists", "false",
	"fetch", "filter", "first", "following", "for", "foreign", "from", "full",
	"group", "having", "if", "ilike", "in", "index", "inner", "insert", "interval",
	"into", "is", "join", "key", "last", "lateral", "leading", "left", "like",
	"limit", "natural", "next", "not", "null", "nulls", "offset", "on", "only",
	"or", "order", "outer", "over", "partition", "preceding", "primary",
	"range", "recursive", "references", "replace", "right", "row", "rows",
	"select", "set", "similar", "some", "table", "then", "ties", "to", "trailing",
	"true", "unbounded", "union", "unique", "update", "using", "values", "view",
	"when", "where", "window", "with", "within", "without",
}

var standardFunctions = []string{
	"array", "cast", "extract", "trim", "substring", "position", "overlay", "try_cast",
}

var standardClauses = []string{
	"select", "select distinct", "select all", "from", "where", "group by",
	"having", "window", "order by", "limit", "offset", "fetch", "with",
	"with recursive", "insert into", "values", "update", "set", "delete from",
	"partition by",
}

var standardSetOperators = []string{
	"union", "union all", "union distinct", "intersect", "intersect all",
	"intersect distinct", "except", "except all", "except distinct",
}

var standardJoins = []string{
	"join", "inner join", "cross join", "left join", "left outer join",
	"right join", "right outer join", "full join", "full outer join",
	"natural join", "natural inner join", "natural left join",
	"natural left outer join", "natural right join", "natural right outer join",
	"natural full join", "natural full outer join",
}

var standardPhrases = []string{
	"is not", "is null", "is not null", "not in", "not like", "not between",
	"not exists", "is distinct from", "is not distinct from", "nulls first",
	"nulls last", "with time zone", "without time zone", "with ordinality",
	"for update", "on conflict", "do nothing", "do update", "order siblings by",
	"rows between", "range between", "unbounded preceding",
	"unbounded following", "current row", "primary key", "foreign key",
	"create table", "create view", "create or replace view", "if not exists",
	"if exists", "drop table", "within group",
}
