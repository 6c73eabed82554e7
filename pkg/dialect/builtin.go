package dialect

func init() {
	for _, d := range []*Dialect{
		Standard, PostgreSQL, Redshift, MySQL, MariaDB, SQLite, BigQuery,
		Snowflake, TransactSQL, PLSQL, Spark, Hive, Trino, DuckDB, ClickHouse,
	} {
		Register(d)
	}
}

// Standard is ANSI SQL. Every other dialect extends it.
var Standard = NewDialect("sql").
	Aliases("ansi", "standard").
	Strings(singleQuoted).
	QuotedIdents(doubleQuoted).
	Params(positionalParam).
	Operators("<>", "!=", "<=", ">=", "||").
	Keywords(standardKeywords...).
	Functions(standardFunctions...).
	Clauses(standardClauses...).
	SetOperators(standardSetOperators...).
	Joins(standardJoins...).
	Phrases(standardPhrases...).
	Build()

var PostgreSQL = NewDialect("postgresql").
	Extends(Standard).
	Aliases("postgres", "pg").
	Strings(`[eE]`+singleQuotedEscaped, dollarQuoted).
	Params(numberedParam).
	Operators("::", "->>", "->", "#>>", "#>", "@>", "<@", "?|", "?&", "~~*", "!~~*", "~~", "!~~", "~*", "!~*", "&&", "-|-", "<<", ">>").
	Keywords("returning", "analyse", "analyze", "verbose", "lateral", "materialized").
	Clauses("returning", "on conflict do update set").
	Build()

var Redshift = NewDialect("redshift").
	Extends(PostgreSQL).
	Keywords("qualify", "top", "diststyle", "distkey", "sortkey").
	Clauses("qualify").
	Build()

var MySQL = NewDialect("mysql").
	Extends(Standard).
	LineComments("#").
	Strings(singleQuotedEscaped, doubleQuotedEscaped).
	QuotedIdents(backticked).
	Operators(":=", "<=>", "->>", "->", "&&", "<<", ">>").
	Keywords("straight_join", "regexp", "rlike", "div", "mod", "xor", "duplicate", "ignore").
	Joins("straight_join").
	Phrases("on duplicate key update", "insert ignore into", "lock in share mode").
	Build()

var MariaDB = NewDialect("mariadb").
	Extends(MySQL).
	Keywords("returning").
	Clauses("returning").
	Build()

var SQLite = NewDialect("sqlite").
	Extends(Standard).
	QuotedIdents(backticked, bracketed).
	Params(`\?\d*`, colonParam, atParam, `\$[\p{L}_][\p{L}\p{N}_]*`).
	Operators("==", "->>", "->", "<<", ">>").
	Keywords("returning", "glob", "regexp", "match", "pragma").
	Clauses("returning").
	Phrases("insert or replace into", "insert or ignore into").
	Build()

var BigQuery = NewDialect("bigquery").
	Extends(Standard).
	LineComments("#").
	Strings(`[rRbB]{0,2}'''[\s\S]*?'''`, `[rRbB]{0,2}"""[\s\S]*?"""`, `[rRbB]{1,2}`+singleQuotedEscaped, `[rRbB]{1,2}`+doubleQuotedEscaped, singleQuotedEscaped, doubleQuotedEscaped).
	QuotedIdents(backticked).
	Params(atParam).
	Keywords("qualify", "struct", "unnest", "safe_cast", "pivot", "unpivot").
	Functions("safe_cast").
	Clauses("qualify").
	Build()

var Snowflake = NewDialect("snowflake").
	Extends(Standard).
	Strings(singleQuotedEscaped, dollarQuoted).
	Params(colonParam, numberedParam).
	Operators("::", "=>", "->").
	Keywords("qualify", "minus", "sample", "tablesample", "pivot", "unpivot", "match_recognize", "flatten").
	Clauses("qualify").
	SetOperators("minus").
	Phrases("lateral flatten").
	Build()

var TransactSQL = NewDialect("transactsql").
	Extends(Standard).
	Aliases("tsql", "sqlserver", "mssql").
	Strings(`[nN]` + singleQuoted).
	QuotedIdents(bracketed).
	Params(`@@?[\p{L}_][\p{L}\p{N}_]*`).
	Operators("+=", "-=", "*=", "/=", "%=", "!<", "!>").
	Keywords("top", "output", "merge", "apply", "pivot", "unpivot", "nolock", "go").
	Clauses("output", "merge into").
	Joins("cross apply", "outer apply").
	Build()

var PLSQL = NewDialect("plsql").
	Aliases("oracle").
	Extends(Standard).
	Strings(`[nN]` + singleQuoted).
	Params(colonParam, `:\d+`).
	Operators("=>", ":=", "**").
	Keywords("minus", "connect", "start", "prior", "rownum", "sysdate", "returning").
	Clauses("connect by", "start with", "returning").
	SetOperators("minus").
	Build()

var Spark = NewDialect("spark").
	Extends(Standard).
	Aliases("sparksql", "databricks").
	Strings(singleQuotedEscaped, doubleQuotedEscaped).
	QuotedIdents(backticked).
	Operators("<=>", "==", "->").
	Keywords("semi", "anti", "cluster", "distribute", "sort", "lateral", "pivot", "qualify").
	Clauses("cluster by", "distribute by", "sort by", "lateral view", "qualify").
	Joins("semi join", "anti join", "left semi join", "left anti join").
	SetOperators("minus").
	Build()

var Hive = NewDialect("hive").
	Extends(Standard).
	Strings(singleQuotedEscaped, doubleQuotedEscaped).
	QuotedIdents(backticked).
	Operators("<=>", "==").
	Keywords("semi", "cluster", "distribute", "sort", "overwrite").
	Clauses("cluster by", "distribute by", "sort by", "lateral view", "insert overwrite table").
	Joins("left semi join").
	Build()

var Trino = NewDialect("trino").
	Extends(Standard).
	Aliases("presto", "athena").
	Operators("->", "=>").
	Keywords("unnest", "tablesample", "match_recognize").
	Build()

var DuckDB = NewDialect("duckdb").
	Extends(Standard).
	Strings(`[eE]`+singleQuotedEscaped, dollarQuoted).
	Params(numberedParam, `\$[\p{L}_][\p{L}\p{N}_]*`).
	Operators("::", "->>", "->", "//", "**", "^@", "@>", "<@", "&&", "==", "<<", ">>").
	Keywords("qualify", "pivot", "unpivot", "asof", "positional", "anti", "semi", "exclude", "struct").
	Clauses("qualify", "returning").
	Joins("asof join", "asof left join", "positional join", "anti join", "semi join").
	Build()

var ClickHouse = NewDialect("clickhouse").
	Extends(Standard).
	Strings(singleQuotedEscaped).
	QuotedIdents(backticked).
	Params(`\{[\p{L}_][\p{L}\p{N}_]*:[^}\n]+\}`).
	Operators("::", "->", "==").
	Keywords("prewhere", "final", "sample", "settings", "format", "global", "array", "asof", "any").
	Clauses("prewhere", "settings", "format", "limit by").
	Joins("array join", "left array join", "global join", "global left join", "any join", "any left join", "asof join", "asof left join", "semi left join", "anti left join").
	Build()
