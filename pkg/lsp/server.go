package lsp

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/config"
	"github.com/pseudomuto/sqlbeautify/pkg/consts"
)

// JSON-RPC error codes.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeNotInitialized = -32002
	codeInvalidRequest = -32600
)

// Server implements the Language Server Protocol for sqlbeautify. It answers
// formatting requests for open documents, reading configuration afresh for
// each one.
type Server struct {
	documents *DocumentStore

	// Configuration used when the workspace has no sqlbeautify.yaml
	base *config.Config

	// Project context
	root        string
	settings    json.RawMessage
	initialized bool
	stateMu     sync.RWMutex

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	// Shutdown state
	shutdown bool
	exited   bool
}

// NewServer creates a new LSP server instance. A nil base means the default
// configuration and a nil logger means slog.Default().
func NewServer(reader io.Reader, writer io.Writer, base *config.Config, logger *slog.Logger) *Server {
	if base == nil {
		base = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		documents: NewDocumentStore(),
		base:      base,
		reader:    bufio.NewReader(reader),
		writer:    writer,
		logger:    logger,
	}
}

// Run processes JSON-RPC messages until the client sends exit or closes the
// stream.
func (s *Server) Run() error {
	s.logger.Info("sqlbeautify LSP server starting")

	for !s.exited {
		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("Client disconnected")
				return nil
			}
			s.logger.Error("Error reading message", "error", err)
			continue
		}

		if err := s.handleMessage(msg); err != nil {
			s.logger.Error("Error handling message", "method", msg.Method, "error", err)
		}
	}

	return nil
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// readMessage reads a JSON-RPC message from the input stream.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}

		if lengthStr, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			contentLength, err = strconv.Atoi(lengthStr)
			if err != nil {
				return nil, errors.Wrap(err, "invalid Content-Length")
			}
		}
	}

	if contentLength == 0 {
		return nil, errors.New("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, errors.Wrap(err, "error reading body")
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, errors.Wrap(err, "error parsing message")
	}

	return &msg, nil
}

// sendResponse sends a JSON-RPC response.
func (s *Server) sendResponse(id *json.RawMessage, result any, err *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}

	if err != nil {
		msg.Error = err
	} else {
		resultBytes, _ := json.Marshal(result)
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a JSON-RPC notification (no ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, _ := json.Marshal(params)
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage writes a JSON-RPC message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Error marshaling message", "error", err)
		return
	}

	header := "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n"
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	s.logger.Debug("Received", "method", msg.Method)

	if s.shutdown && msg.Method != "exit" {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidRequest, Message: "server is shutting down"})
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		return s.handleExit(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	case "textDocument/rangeFormatting":
		return s.handleRangeFormatting(msg)
	default:
		if msg.ID != nil {
			// Unknown method with ID - respond with method not found
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	s.stateMu.Lock()
	s.root = URIToPath(params.RootURI)
	if len(params.InitializationOptions) > 0 {
		s.settings = params.InitializationOptions
	}
	s.stateMu.Unlock()
	s.logger.Info("Project root", "path", s.root)

	s.sendResponse(msg.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			DocumentFormattingProvider:      true,
			DocumentRangeFormattingProvider: true,
		},
		ServerInfo: &ServerInfo{Name: "sqlbeautify"},
	}, nil)
	return nil
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.stateMu.Lock()
	s.initialized = true
	s.stateMu.Unlock()
	s.logger.Info("Server initialized")

	if _, err := s.config(); err != nil {
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeWarning,
			Message: "sqlbeautify: " + err.Error(),
		})
	}

	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.shutdown = true
	s.sendResponse(msg.ID, nil, nil)
	s.logger.Info("Server shutdown")
	return nil
}

func (s *Server) handleExit(_ *JSONRPCMessage) error {
	s.exited = true
	s.logger.Info("Server exit")
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("Opened", "uri", params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.logger.Debug("Closed", "uri", params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// Full sync: the last change holds the whole document.
	if n := len(params.ContentChanges); n > 0 {
		s.documents.Update(params.TextDocument.URI, params.ContentChanges[n-1].Text, params.TextDocument.Version)
	}

	return nil
}

func (s *Server) handleDidChangeConfiguration(msg *JSONRPCMessage) error {
	var params DidChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// Settings arrive either nested under our section or bare.
	settings := params.Settings
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(params.Settings, &sections); err == nil {
		if section, ok := sections[consts.SettingsSection]; ok {
			settings = section
		}
	}

	s.stateMu.Lock()
	s.settings = settings
	s.stateMu.Unlock()
	s.logger.Info("Configuration changed")
	return nil
}

// --- Formatting handlers ---

func (s *Server) handleFormatting(msg *JSONRPCMessage) error {
	var params DocumentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	doc, ok := s.openDocument(msg, params.TextDocument.URI)
	if !ok {
		return nil
	}

	s.logger.Debug("Formatting", "uri", doc.URI, "tabSize", params.Options.TabSize, "insertSpaces", params.Options.InsertSpaces)
	edits := s.format(doc.Content, doc.FullRange())
	s.sendResponse(msg.ID, edits, nil)
	return nil
}

func (s *Server) handleRangeFormatting(msg *JSONRPCMessage) error {
	var params DocumentRangeFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	doc, ok := s.openDocument(msg, params.TextDocument.URI)
	if !ok {
		return nil
	}

	edits := s.format(doc.GetTextInRange(params.Range), params.Range)
	s.sendResponse(msg.ID, edits, nil)
	return nil
}

// openDocument fetches an open document for a request, answering the request
// with an error when it cannot be served.
func (s *Server) openDocument(msg *JSONRPCMessage, uri string) (*Document, bool) {
	s.stateMu.RLock()
	initialized := s.initialized
	s.stateMu.RUnlock()

	if !initialized {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeNotInitialized, Message: "server not initialized"})
		return nil, false
	}

	doc := s.documents.Get(uri)
	if doc == nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: "document not open: " + uri})
		return nil, false
	}

	return doc, true
}

// format formats text and returns the edits replacing r. Text that is already
// formatted, or that the formatter leaves alone, yields no edits.
func (s *Server) format(text string, r Range) []TextEdit {
	cfg, err := s.config()
	if err != nil {
		s.logger.Warn("Using base configuration", "error", err)
		cfg = s.base
	}

	formatted := cfg.Beautifier(s.logger).Format(text)
	if formatted == text {
		return []TextEdit{}
	}

	return []TextEdit{{Range: r, NewText: formatted}}
}

// config loads the configuration for a request: sqlbeautify.yaml from the
// workspace root (or the base configuration without one), overlaid with any
// settings the client sent.
func (s *Server) config() (*config.Config, error) {
	s.stateMu.RLock()
	root, settings := s.root, s.settings
	s.stateMu.RUnlock()

	cfg := *s.base
	if root != "" {
		if _, err := os.Stat(filepath.Join(root, consts.DefaultConfigFile)); err == nil {
			loaded, err := config.Resolve(root, "")
			if err != nil {
				return nil, err
			}
			cfg = *loaded
		}
	}

	if len(settings) > 0 && string(settings) != "null" {
		if err := json.Unmarshal(settings, &cfg); err != nil {
			return nil, errors.Wrap(err, "invalid client settings")
		}
	}

	return &cfg, nil
}
