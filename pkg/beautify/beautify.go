package beautify

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/consts"
	"github.com/pseudomuto/sqlbeautify/pkg/format"
	"github.com/pseudomuto/sqlbeautify/pkg/rules"
)

type (
	// Options configures a Beautifier.
	Options struct {
		// Dialect names the SQL dialect handed to the baseline printer. Empty
		// means standard SQL.
		Dialect string

		// Uppercase prints keywords in upper case. Otherwise their case is kept.
		Uppercase bool

		// Indent is either a single tab or a run of spaces whose length is the
		// indent width. Empty means four spaces.
		Indent string

		// LinesBetweenQueries is the number of blank lines between statements.
		// Zero means the default of one.
		LinesBetweenQueries int

		// CustomRules run in order over the final text.
		CustomRules []rules.Rule

		// Logger receives stage traces and skipped rules. Nil means
		// slog.Default().
		Logger *slog.Logger
	}

	// Stage is one named step of the pipeline.
	Stage struct {
		Name string
		Run  func(Document) Document
	}

	// Beautifier formats SQL into the house layout. It holds no state between
	// calls and is safe for concurrent use.
	Beautifier struct {
		printer *format.Formatter
		stages  []Stage
		rules   *rules.Engine
		logger  *slog.Logger
	}
)

// Stages lists the layout stages in the order they run. Each one assumes the
// shape left by those before it.
var Stages = []Stage{
	{Name: "compact-clauses", Run: CompactClauses},
	{Name: "separate-ctes", Run: SeparateCTEs},
	{Name: "align-select-blocks", Run: AlignSelectBlocks},
	{Name: "anchor-joins", Run: AnchorJoins},
	{Name: "align-predicates", Run: AlignPredicates},
	{Name: "rewrite-case-stack", Run: RewriteCaseStack},
	{Name: "sweep-on-blocks", Run: SweepOnBlocks},
	{Name: "collapse-group-by", Run: CollapseGroupBy},
}

// New creates a Beautifier for the given options.
func New(options Options) *Beautifier {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	width, tabs := indentWidth(options.Indent)

	lines := options.LinesBetweenQueries
	if lines == 0 {
		lines = consts.DefaultLinesBetweenQueries
	}

	stages := Stages
	if tabs {
		stages = append(append([]Stage{}, Stages...), Stage{
			Name: "retab",
			Run:  func(d Document) Document { return retab(d, width) },
		})
	}

	return &Beautifier{
		printer: format.New(format.FormatterOptions{
			Dialect:             options.Dialect,
			IndentSize:          width,
			UppercaseKeywords:   options.Uppercase,
			LinesBetweenQueries: lines,
		}),
		stages: stages,
		rules:  rules.New(options.CustomRules, logger),
		logger: logger,
	}
}

// FormatLogic formats text with a one-off Beautifier. Text the baseline printer
// rejects comes back unchanged.
func FormatLogic(text string, options Options) string {
	return New(options).Format(text)
}

// Format formats text, returning it unchanged if the baseline printer rejects
// it.
func (b *Beautifier) Format(text string) string {
	out, err := b.TryFormat(text)
	if err != nil {
		b.logger.Warn("leaving input unformatted", "error", err)
		return text
	}

	return out
}

// TryFormat formats text and reports a baseline printer failure instead of
// hiding it. On error the returned text is the input.
func (b *Beautifier) TryFormat(text string) (string, error) {
	printed, err := b.printer.FormatString(text)
	if err != nil {
		return text, errors.Wrap(err, "baseline printer failed")
	}

	doc := NewDocument(printed)
	for _, stage := range b.stages {
		doc = stage.Run(doc)
		b.logger.Debug("stage complete", "stage", stage.Name, "lines", len(doc))
	}

	out := doc.String()
	if strings.HasSuffix(text, "\n") && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	return b.rules.Apply(out), nil
}

// Stages returns the stages this Beautifier runs, excluding user rules.
func (b *Beautifier) Stages() []Stage {
	return append([]Stage{}, b.stages...)
}

func indentWidth(indent string) (int, bool) {
	switch {
	case indent == "\t":
		return 4, true
	case indent == "":
		return 4, false
	default:
		return len(indent), false
	}
}
