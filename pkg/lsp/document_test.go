package lsp_test

import (
	"testing"

	. "github.com/pseudomuto/sqlbeautify/pkg/lsp"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.Nil(t, store.Get("file:///a.sql"))

	store.Open("file:///a.sql", "select 1", 1)
	doc := store.Get("file:///a.sql")
	require.NotNil(t, doc)
	require.Equal(t, "select 1", doc.Content)
	require.Equal(t, 1, doc.Version)

	store.Update("file:///a.sql", "select 2", 2)
	require.Equal(t, "select 2", store.Get("file:///a.sql").Content)
	require.Equal(t, "select 1", doc.Content, "snapshots are not modified")

	// updates to documents that are not open are dropped
	store.Update("file:///b.sql", "select 3", 1)
	require.Nil(t, store.Get("file:///b.sql"))
	require.Equal(t, []string{"file:///a.sql"}, store.List())

	store.Close("file:///a.sql")
	require.Nil(t, store.Get("file:///a.sql"))
	require.Empty(t, store.List())
}

func TestDocument_Positions(t *testing.T) {
	store := NewDocumentStore()
	store.Open("file:///a.sql", "select a\nfrom t\n", 1)
	doc := store.Get("file:///a.sql")

	require.Equal(t, []int{0, 9, 16}, doc.Lines)

	tests := []struct {
		pos    Position
		offset int
	}{
		{Position{Line: 0, Character: 0}, 0},
		{Position{Line: 0, Character: 7}, 7},
		{Position{Line: 1, Character: 0}, 9},
		{Position{Line: 1, Character: 4}, 13},
		{Position{Line: 2, Character: 0}, 16},
	}

	for _, tt := range tests {
		require.Equal(t, tt.offset, doc.PositionToOffset(tt.pos))
		require.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset))
	}

	// out of range positions clamp to the document
	require.Equal(t, 16, doc.PositionToOffset(Position{Line: 7}))
	require.Equal(t, 15, doc.PositionToOffset(Position{Line: 1, Character: 40}))
	require.Equal(t, Position{Line: 2}, doc.OffsetToPosition(100))
	require.Equal(t, Position{}, doc.OffsetToPosition(-1))

	require.Equal(t, Range{End: Position{Line: 2}}, doc.FullRange())
}

func TestDocument_PositionsCountUTF16(t *testing.T) {
	store := NewDocumentStore()
	store.Open("file:///a.sql", "select '中文' as x, a from t\nselect '😀'\r\n", 1)
	doc := store.Get("file:///a.sql")

	tests := []struct {
		pos    Position
		offset int
	}{
		{Position{Line: 0, Character: 8}, 8},
		{Position{Line: 0, Character: 9}, 11},
		{Position{Line: 0, Character: 10}, 14},
		{Position{Line: 0, Character: 26}, 30},
		{Position{Line: 1, Character: 8}, 39},
		{Position{Line: 1, Character: 10}, 43},
		{Position{Line: 1, Character: 11}, 44},
	}

	for _, tt := range tests {
		require.Equal(t, tt.offset, doc.PositionToOffset(tt.pos))
		require.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset))
	}

	// the middle of a surrogate pair stays before the rune
	require.Equal(t, 39, doc.PositionToOffset(Position{Line: 1, Character: 9}))

	// characters past the end of a line stop before its terminator
	require.Equal(t, 30, doc.PositionToOffset(Position{Line: 0, Character: 40}))
	require.Equal(t, 44, doc.PositionToOffset(Position{Line: 1, Character: 40}))

	require.Equal(t, "select '中文' as x, a from t", doc.GetTextInRange(Range{
		End: Position{Line: 0, Character: 26},
	}))
}

func TestDocument_GetTextInRange(t *testing.T) {
	store := NewDocumentStore()
	store.Open("file:///a.sql", "select a\nfrom t\n", 1)
	doc := store.Get("file:///a.sql")

	require.Equal(t, "from t", doc.GetTextInRange(Range{
		Start: Position{Line: 1},
		End:   Position{Line: 1, Character: 6},
	}))
	require.Equal(t, "a\nfrom", doc.GetTextInRange(Range{
		Start: Position{Line: 0, Character: 7},
		End:   Position{Line: 1, Character: 4},
	}))
	require.Empty(t, doc.GetTextInRange(Range{
		Start: Position{Line: 1, Character: 4},
		End:   Position{Line: 1, Character: 2},
	}))
}

func TestURIToPath(t *testing.T) {
	require.Equal(t, "/tmp/project", URIToPath("file:///tmp/project"))
	require.Equal(t, "/tmp/my project", URIToPath("file:///tmp/my%20project"))
	require.Equal(t, "relative/path", URIToPath("relative/path"))
	require.Empty(t, URIToPath(""))
}
