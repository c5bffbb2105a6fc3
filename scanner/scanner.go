// Package scanner implements a streaming lexical scanner for a C-family
// scripting language with template literals, regular-expression literals,
// and a division/regexp ambiguity resolvable only by parser context.
//
// The scanner is one object, created from an immutable byte buffer and
// consumed one token at a time via Next. It never mutates the buffer and
// never does I/O; the only external collaborator it talks to is the Oracle
// supplied to each Next call.
package scanner

import (
	"github.com/sirupsen/logrus"

	"github.com/aledsdavies/blepscan/internal/suggest"
)

// flag bits: at most one is ever set at a time, and both are cleared by the
// next token emission.
const (
	flagNone uint8 = iota
	flagPendingSubOpen
	flagResumeTemplate
)

// Option configures a Scanner at construction time.
type Option func(*Scanner)

// WithStackCapacity overrides the default 256-entry bracket stack. Useful
// for exercising ErrStackOverflow without a pathologically deep real buffer.
func WithStackCapacity(capacity int) Option {
	return func(s *Scanner) {
		s.stack = newBracketStack(capacity)
	}
}

// WithLogger attaches a structured logger that receives one Warn-level
// entry per hard failure a Next call returns. The scanner's token-producing
// path never logs; this is purely diagnostic and additive. nil (the
// default) disables logging entirely.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// Scanner holds all scanning state for one buffer. Zero value is not
// usable; construct with New.
type Scanner struct {
	buf  []byte
	curr int
	line int

	stack bracketStack
	flag  uint8

	logger logrus.FieldLogger

	// seenIdentifiers feeds diagnostic suggestion enrichment only; it is
	// never consulted by the dispatcher. Capped so a pathological buffer
	// full of unique identifiers can't turn it into unbounded memory.
	seenIdentifiers []string
}

const maxSeenIdentifiers = 256

func (s *Scanner) recordIdentifier(text string) {
	if len(s.seenIdentifiers) >= maxSeenIdentifiers {
		return
	}
	s.seenIdentifiers = append(s.seenIdentifiers, text)
}

// New constructs a Scanner over buf. buf is borrowed, not copied, and must
// outlive every Token produced from it; the Scanner never mutates it.
func New(buf []byte, opts ...Option) *Scanner {
	s := &Scanner{
		buf:   buf,
		curr:  0,
		line:  1,
		stack: newBracketStack(defaultStackCapacity),
		flag:  flagNone,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Depth reports the current bracket-nesting depth.
func (s *Scanner) Depth() int { return s.stack.depth }

// Offset reports the scanner's current byte offset into the buffer.
func (s *Scanner) Offset() int { return s.curr }

// Line reports the scanner's current 1-based source line.
func (s *Scanner) Line() int { return s.line }

func (s *Scanner) fail(kind ErrKind, offset, line int) error {
	s.curr = offset // leave the cursor on the offending byte
	err := &ScanError{Kind: kind, Offset: offset, Line: line}
	s.logFailure(err)
	return err
}

func (s *Scanner) logFailure(err *ScanError) {
	if s.logger == nil {
		return
	}
	fields := logrus.Fields{
		"kind":   err.Kind.String(),
		"offset": err.Offset,
		"line":   err.Line,
	}
	if err.Suggestion != "" {
		fields["suggestion"] = err.Suggestion
	}
	s.logger.WithFields(fields).Warn("scan error")
}

// Next advances the scanner and returns the next token. oracle is consulted
// exactly once per unconsumed '/' that is not part of a comment; it must
// have no side effects on buf and must not reenter the scanner.
//
// The returned error is nil on success. A *ScanError with Soft() true
// (ErrUnterminatedInput) still comes with a valid EOF token. Any other
// *ScanError is a hard failure: the cursor is left at Offset for diagnostic
// use and the scanner does not attempt recovery.
func (s *Scanner) Next(oracle Oracle) (Token, error) {
	// Flag-forced paths bypass whitespace skipping: both transitions land
	// the cursor exactly where the next token must start.
	switch s.flag {
	case flagPendingSubOpen:
		s.flag = flagNone
		return s.emitSubstitutionOpen()
	case flagResumeTemplate:
		s.flag = flagNone
		return s.scanTemplateResume()
	}

	s.skipWhitespace()

	line := s.line
	start := s.curr

	if s.curr >= len(s.buf) {
		return s.emitEOF(line)
	}
	c := s.buf[s.curr]

	switch {
	case c == '/' && s.peek(1) == '/':
		return s.scanLineComment(start, line), nil
	case c == '/' && s.peek(1) == '*':
		return s.scanBlockComment(start, line), nil
	}

	switch c {
	case ';':
		s.curr++
		return Token{Kind: SEMICOLON, Offset: start, Length: 1, Line: line}, nil
	case '?':
		s.curr++
		return Token{Kind: TERNARY, Offset: start, Length: 1, Line: line}, nil
	case ':':
		s.curr++
		return Token{Kind: COLON, Offset: start, Length: 1, Line: line}, nil
	case ',':
		s.curr++
		return Token{Kind: COMMA, Offset: start, Length: 1, Line: line}, nil
	case '(':
		s.curr++
		if err := s.stack.push(false); err != nil {
			return Token{Kind: PAREN, Offset: start, Length: 1, Line: line}, s.fail(err.(ErrKind), start, line)
		}
		return Token{Kind: PAREN, Offset: start, Length: 1, Line: line}, nil
	case '[':
		s.curr++
		if err := s.stack.push(false); err != nil {
			return Token{Kind: ARRAY, Offset: start, Length: 1, Line: line}, s.fail(err.(ErrKind), start, line)
		}
		return Token{Kind: ARRAY, Offset: start, Length: 1, Line: line}, nil
	case '{':
		s.curr++
		if err := s.stack.push(false); err != nil {
			return Token{Kind: BRACE, Offset: start, Length: 1, Line: line}, s.fail(err.(ErrKind), start, line)
		}
		return Token{Kind: BRACE, Offset: start, Length: 1, Line: line}, nil
	case ')', ']':
		s.curr++
		if _, err := s.stack.pop(); err != nil {
			return Token{Kind: CLOSE, Offset: start, Length: 1, Line: line}, s.fail(err.(ErrKind), start, line)
		}
		return Token{Kind: CLOSE, Offset: start, Length: 1, Line: line}, nil
	case '}':
		s.curr++
		wasTemplate, err := s.stack.pop()
		if err != nil {
			return Token{Kind: CLOSE, Offset: start, Length: 1, Line: line}, s.fail(err.(ErrKind), start, line)
		}
		if wasTemplate {
			s.flag = flagResumeTemplate
		}
		return Token{Kind: CLOSE, Offset: start, Length: 1, Line: line}, nil
	}

	if c == '/' {
		code := oracle.Check()
		switch {
		case code < 0:
			return Token{Kind: ILLEGAL, Offset: start, Length: 0, Line: line}, s.fail2(ErrOracleFailure, start, line, code)
		case code == OracleNoValue:
			return s.scanRegexp(start, line), nil
		default:
			return s.scanOperator(start, line), nil
		}
	}

	switch c {
	case '=', '&', '|', '^', '~', '!', '%', '*', '<', '>', '+', '-':
		return s.scanOperator(start, line), nil
	}

	if c == '\'' || c == '"' || c == '`' {
		return s.scanStringStart(start, line, c), nil
	}

	if isDigit[c] || (c == '.' && s.peek(1) < 128 && isDigit[s.peek(1)]) {
		return s.scanNumber(start, line), nil
	}

	if c == '.' {
		if s.peek(1) == '.' && s.peek(2) == '.' {
			s.curr += 3
			return Token{Kind: SPREAD, Offset: start, Length: 3, Line: line}, nil
		}
		s.curr++
		return Token{Kind: DOT, Offset: start, Length: 1, Line: line}, nil
	}

	if identStartByte(c) {
		return s.scanIdentifier(start, line), nil
	}

	// No rule matched: unrecognized byte. Cursor is left at start.
	return Token{Kind: ILLEGAL, Offset: start, Length: 0, Line: line}, s.failUnrecognized(c, start, line)
}

func (s *Scanner) failUnrecognized(offending byte, offset, line int) error {
	err := &ScanError{
		Kind:       ErrUnrecognizedByte,
		Offset:     offset,
		Line:       line,
		Suggestion: suggest.ForUnrecognizedByte(offending, s.seenIdentifiers),
	}
	s.logFailure(err)
	return err
}

func (s *Scanner) fail2(kind ErrKind, offset, line, oracleCode int) error {
	err := &ScanError{Kind: kind, Offset: offset, Line: line, OracleCode: oracleCode}
	s.logFailure(err)
	return err
}

func (s *Scanner) emitEOF(line int) (Token, error) {
	tok := Token{Kind: EOF, Offset: s.curr, Length: 0, Line: line}
	if s.stack.depth > 0 {
		// Soft error: returned but not logged.
		return tok, &ScanError{Kind: ErrUnterminatedInput, Offset: s.curr, Line: line}
	}
	return tok, nil
}

func (s *Scanner) emitSubstitutionOpen() (Token, error) {
	start := s.curr
	line := s.line
	// s.curr is known to stand on '$' with '{' immediately following; this
	// is only reached right after a string scan armed flagPendingSubOpen.
	s.curr += 2
	if err := s.stack.push(true); err != nil {
		return Token{Kind: T_BRACE, Offset: start, Length: 2, Line: line}, s.fail(err.(ErrKind), start, line)
	}
	return Token{Kind: T_BRACE, Offset: start, Length: 2, Line: line}, nil
}

// peek returns the byte at curr+n, or 0 past the end of the buffer.
func (s *Scanner) peek(n int) byte {
	i := s.curr + n
	if i < 0 || i >= len(s.buf) {
		return 0
	}
	return s.buf[i]
}

// skipWhitespace advances curr over whitespace, counting newlines into
// line.
func (s *Scanner) skipWhitespace() {
	for s.curr < len(s.buf) {
		ch := s.buf[s.curr]
		if ch >= 128 || !isWhitespace[ch] {
			break
		}
		if ch == '\n' {
			s.line++
		}
		s.curr++
	}
}
