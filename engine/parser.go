// Package engine provides the cursor, token buffer and frame stack used to write
// scannerless recursive-descent parsers.
//
// A grammar implements a single entry procedure (Grammar.ParseSource) that drives
// the Parser primitives. Stepping primitives record consumed text into the token
// buffer, skipping primitives discard it, and frames turn the recursion of the
// grammar into a nested tree of Tokens. Any mismatch aborts the whole parse with a
// *SyntaxError.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

var (
	// ErrParserBusy is returned when Parse is called while the same Parser is still parsing.
	ErrParserBusy = errors.New("parser is already running")
	// ErrUnbalancedFrames is returned when the entry procedure returns with frames still open.
	ErrUnbalancedFrames = errors.New("entry procedure left frames open")
	// ErrFrameUnderflow is panicked when a grammar pops the root frame.
	ErrFrameUnderflow = errors.New("cannot pop the root frame")
)

// Grammar is implemented by hand-written grammars. ParseSource is invoked once per
// Parse call and must consume the whole input through the Parser primitives.
type Grammar interface {
	ParseSource(p *Parser)
}

// GrammarFunc adapts a plain function to the Grammar interface.
type GrammarFunc func(p *Parser)

// ParseSource calls f(p).
func (f GrammarFunc) ParseSource(p *Parser) {
	f(p)
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for parse tracing.
// Parse start and end are logged at V(1), frame operations at V(2).
func WithLogger(logger logr.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithMaxDepth bounds the number of frames that may be open on top of the root frame.
// Zero means unbounded.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth < 0 {
			depth = 0
		}

		p.maxDepth = depth
	}
}

// Parser holds the state of one parse: the source, the read position, the token
// buffer and the frame stack. A Parser may be reused for sequential Parse calls
// but is not safe for concurrent use.
type Parser struct {
	grammar  Grammar
	logger   logr.Logger
	maxDepth int

	source  string
	pos     int
	buffer  strings.Builder
	frames  [][]Token
	running bool
}

// New creates a Parser that runs g on every Parse call.
func New(g Grammar, opts ...Option) *Parser {
	p := &Parser{
		grammar: g,
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.reset("")

	return p
}

// abort is panicked by primitives and recovered by Parse.
type abort struct {
	err *SyntaxError
}

// Parse resets the parser state, runs the grammar entry procedure on source,
// flushes the buffer and returns the root frame. On failure no partial tree is
// returned.
func (p *Parser) Parse(source string) (tokens []Token, err error) {
	if p.running {
		return nil, ErrParserBusy
	}

	p.reset(source)
	p.running = true
	p.logger.V(1).Info("parse started", "bytes", len(source))

	defer func() {
		p.running = false

		if r := recover(); r != nil {
			p.reset("")

			a, ok := r.(abort)
			if !ok {
				panic(r)
			}

			p.logger.V(1).Info("parse failed", "error", a.err.Error())
			tokens, err = nil, a.err
		}
	}()

	p.grammar.ParseSource(p)
	p.Flush()

	if p.HasNext() {
		p.raise("end of input")
	}

	if len(p.frames) != 1 {
		depth := len(p.frames) - 1
		p.reset("")

		return nil, fmt.Errorf("%w: %d frame(s) still open", ErrUnbalancedFrames, depth)
	}

	tokens = p.frames[0]
	p.logger.V(1).Info("parse finished", "tokens", len(tokens))
	p.reset("")

	return tokens, nil
}

func (p *Parser) reset(source string) {
	p.source = source
	p.pos = 0
	p.buffer.Reset()
	p.frames = [][]Token{nil}
}

// Fail aborts the parse with a SyntaxError at the current position. It is meant for
// grammar dispatch points that meet a character no rule handles.
func (p *Parser) Fail(expected string) {
	p.raise(expected)
}

// Expect aborts the parse with a SyntaxError reporting expected and found at the
// current position.
func (p *Parser) Expect(expected, found string) {
	p.raiseAt(p.pos, expected, found)
}

func (p *Parser) raise(expected string) {
	p.raiseAt(p.pos, expected, p.Peek(1))
}

func (p *Parser) raiseAt(offset int, expected, found string) {
	line, column := lineColumn(p.source, offset)

	panic(abort{err: &SyntaxError{
		Expected: expected,
		Found:    found,
		Offset:   offset,
		Line:     line,
		Column:   column,
	}})
}
