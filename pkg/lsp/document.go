package lsp

import (
	"net/url"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/file.sql)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or updates a document in the store.
func (s *DocumentStore) Open(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = newDocument(uri, content, version)
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get returns a snapshot of the document, or nil if it is not open. Later
// updates do not affect the snapshot.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces an open document's content.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[uri]; ok {
		s.documents[uri] = newDocument(uri, content, version)
	}
}

// List returns all open document URIs.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	return uris
}

func newDocument(uri, content string, version int) *Document {
	return &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0} // First line starts at offset 0

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// PositionToOffset converts a Position to a byte offset in the document.
// Characters are counted in UTF-16 code units and clamp to the end of the line.
func (d *Document) PositionToOffset(pos Position) int {
	if d == nil || len(d.Lines) == 0 {
		return 0
	}

	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.Content)
	}

	offset, end := d.Lines[line], d.lineEnd(line)
	for units := 0; offset < end; {
		r, size := utf8.DecodeRuneInString(d.Content[offset:end])
		if units+utf16Len(r) > int(pos.Character) {
			break
		}
		units += utf16Len(r)
		offset += size
	}

	return offset
}

// OffsetToPosition converts a byte offset to a Position.
func (d *Document) OffsetToPosition(offset int) Position {
	if d == nil || len(d.Lines) == 0 {
		return Position{}
	}

	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Content) {
		offset = len(d.Content)
	}

	line := 0
	for i, lineOffset := range d.Lines {
		if lineOffset > offset {
			break
		}
		line = i
	}

	units := 0
	for _, r := range d.Content[d.Lines[line]:min(offset, d.lineEnd(line))] {
		units += utf16Len(r)
	}

	return Position{
		Line:      uint32(line),
		Character: uint32(units),
	}
}

// lineEnd is the byte offset of the end of a line, excluding its terminator.
func (d *Document) lineEnd(line int) int {
	end := len(d.Content)
	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1
	}
	if end > d.Lines[line] && d.Content[end-1] == '\r' {
		end--
	}
	return end
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// FullRange is the range covering the whole document.
func (d *Document) FullRange() Range {
	return Range{End: d.OffsetToPosition(len(d.Content))}
}

// GetTextInRange returns the text within a range.
func (d *Document) GetTextInRange(r Range) string {
	start := d.PositionToOffset(r.Start)
	end := d.PositionToOffset(r.End)
	if start >= end || start >= len(d.Content) {
		return ""
	}
	return d.Content[start:end]
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if !strings.HasPrefix(uri, prefix) {
		return uri
	}

	path := uri[len(prefix):]
	if unescaped, err := url.PathUnescape(path); err == nil {
		return unescaped
	}

	return path
}
