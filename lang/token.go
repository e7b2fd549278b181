package lang

import (
	"strings"
	"unicode"
)

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	// KindEOF marks the end of a statement's token stream.
	KindEOF Kind = iota

	// KindIdentifier is a name: any maximal run of characters that is not
	// whitespace, not reserved punctuation, and does not begin with a digit.
	// Operator spellings like + - = < > are ordinary identifiers.
	KindIdentifier

	// KindNumber is a numeric literal with an optional sign and fraction.
	KindNumber

	// KindString is a double-quoted string literal with escapes resolved.
	KindString

	// KindLambda is the backslash introducing a lambda abstraction.
	KindLambda

	// KindDot separates a lambda parameter from its body.
	KindDot

	// KindAssign is the := binding operator.
	KindAssign

	// KindLParen and friends are grouping and list punctuation.
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindComma
)

// String returns a human-readable name for the token kind, used in
// diagnostics.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of line"
	case KindIdentifier:
		return "identifier"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindLambda:
		return `\`
	case KindDot:
		return "."
	case KindAssign:
		return ":="
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindLBracket:
		return "["
	case KindRBracket:
		return "]"
	case KindComma:
		return ","
	default:
		return "unknown"
	}
}

// Token is a single lexeme produced by [Tokenize]. Text holds the
// identifier spelling, the number spelling, or the unescaped string
// contents; it is empty for punctuation.
type Token struct {
	Text string
	Kind Kind
	Line int
	Col  int
}

// escapeCodes maps the character after a backslash inside a string literal
// to its replacement.
var escapeCodes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'b':  '\b',
	's':  ' ',
	'v':  '\v',
	'f':  '\f',
	'r':  '\r',
	'\\': '\\',
	'"':  '"',
}

// simpleTokens maps single-rune punctuation to its kind.
var simpleTokens = map[rune]Kind{
	'.':  KindDot,
	',':  KindComma,
	'(':  KindLParen,
	')':  KindRParen,
	'[':  KindLBracket,
	']':  KindRBracket,
	'\\': KindLambda,
}

const whitespace = " \t\v\f\r"

// Tokenize converts one physical source line into its token sequence,
// terminated by a KindEOF token. A ';' begins a comment extending to the
// end of the line. The line number is recorded in every produced token for
// diagnostics.
func Tokenize(line string, lineNum int) ([]Token, error) {
	s := scanner{src: []rune(line), line: lineNum, col: 1}

	var toks []Token

	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == KindEOF {
			return toks, nil
		}
	}
}

// scanner holds lexing state for a single line.
type scanner struct {
	src  []rune
	pos  int
	line int
	col  int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune { return s.src[s.pos] }

func (s *scanner) advance() rune {
	r := s.src[s.pos]
	s.pos++
	s.col++

	return r
}

// next scans and returns the next token on the line.
func (s *scanner) next() (Token, error) {
	for !s.eof() && strings.ContainsRune(whitespace, s.peek()) {
		s.advance()
	}

	if s.eof() || s.peek() == ';' {
		return Token{Kind: KindEOF, Line: s.line, Col: s.col}, nil
	}

	start := s.col
	r := s.peek()

	switch {
	case r == ':':
		s.advance()

		if s.eof() || s.peek() != '=' {
			return Token{}, ErrMalformedToken.
				at(s.line, start).
				detail("expected `=` after `:`")
		}

		s.advance()

		return Token{Kind: KindAssign, Text: ":=", Line: s.line, Col: start}, nil

	case r == '"':
		return s.scanString()

	case unicode.IsDigit(r):
		return s.scanNumber(false)

	case (r == '-' || r == '+') && s.pos+1 < len(s.src) &&
		unicode.IsDigit(s.src[s.pos+1]):
		return s.scanNumber(true)

	default:
		if kind, ok := simpleTokens[r]; ok {
			s.advance()

			return Token{Kind: kind, Text: string(r), Line: s.line, Col: start}, nil
		}

		return s.scanIdentifier()
	}
}

// scanString consumes a double-quoted literal, resolving escape codes.
// The opening quote is at the current position.
func (s *scanner) scanString() (Token, error) {
	start := s.col
	s.advance() // opening quote

	var b strings.Builder

	for {
		if s.eof() {
			return Token{}, ErrUnterminatedString.at(s.line, s.col)
		}

		r := s.advance()

		switch r {
		case '"':
			return Token{
				Kind: KindString,
				Text: b.String(),
				Line: s.line,
				Col:  start,
			}, nil

		case '\\':
			if s.eof() {
				return Token{}, ErrUnterminatedString.at(s.line, s.col)
			}

			esc := s.advance()

			rep, ok := escapeCodes[esc]
			if !ok {
				return Token{}, ErrInvalidEscape.
					at(s.line, s.col-1).
					detail("invalid escape code `\\" + string(esc) + "`")
			}

			b.WriteRune(rep)

		default:
			b.WriteRune(r)
		}
	}
}

// scanNumber consumes digits with an optional single fraction. A decimal
// point must be followed by at least one digit.
func (s *scanner) scanNumber(signed bool) (Token, error) {
	start := s.col

	var b strings.Builder

	if signed {
		b.WriteRune(s.advance())
	}

	hitDot := false
	needDigit := false

	for !s.eof() {
		r := s.peek()

		switch {
		case unicode.IsDigit(r):
			b.WriteRune(s.advance())

			needDigit = false

		case r == '.' && !hitDot:
			b.WriteRune(s.advance())

			hitDot = true
			needDigit = true

		default:
			if needDigit {
				return Token{}, ErrMalformedNumber.
					at(s.line, s.col).
					detail("expected digit after decimal point")
			}

			return Token{
				Kind: KindNumber,
				Text: b.String(),
				Line: s.line,
				Col:  start,
			}, nil
		}
	}

	if needDigit {
		return Token{}, ErrMalformedNumber.
			at(s.line, s.col).
			detail("expected digit after decimal point")
	}

	return Token{Kind: KindNumber, Text: b.String(), Line: s.line, Col: start}, nil
}

// scanIdentifier consumes the maximal run of non-reserved characters.
func (s *scanner) scanIdentifier() (Token, error) {
	start := s.col

	var b strings.Builder

	for !s.eof() {
		r := s.peek()

		_, reserved := simpleTokens[r]
		if reserved || r == '"' || r == ';' || r == ':' ||
			strings.ContainsRune(whitespace, r) {
			break
		}

		b.WriteRune(s.advance())
	}

	return Token{
		Kind: KindIdentifier,
		Text: b.String(),
		Line: s.line,
		Col:  start,
	}, nil
}
