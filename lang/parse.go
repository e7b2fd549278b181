package lang

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// ParseLine tokenizes and parses one physical source line into a statement.
// It returns (nil, nil) for blank and comment-only lines.
func ParseLine(line string, lineNum int) (Stmt, error) {
	toks, err := Tokenize(line, lineNum)
	if err != nil {
		return nil, err
	}

	return ParseStatement(toks)
}

// ParseStatement consumes exactly one line's tokens and produces either a
// [*Bind] or a bare [Expr]. An empty line yields (nil, nil).
func ParseStatement(toks []Token) (Stmt, error) {
	p := parser{toks: toks}

	if p.peek().Kind == KindEOF {
		return nil, nil
	}

	// A line is either `Identifier := Expr` or a bare Expr.
	if p.peek().Kind == KindIdentifier && p.peekAt(1).Kind == KindAssign {
		name := p.advance()
		p.advance() // :=

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if expr == nil {
			return nil, p.unexpected(p.peek())
		}

		if err := p.expectEOF(); err != nil {
			return nil, err
		}

		return &Bind{
			Name: name.Text,
			Expr: expr,
			pos:  Position{Line: name.Line, Col: name.Col},
		}, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if expr == nil {
		return nil, p.unexpected(p.peek())
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return expr, nil
}

// parser consumes one statement's tokens with a stack of open grouping
// contexts deciding whether `)`, `]`, and `,` terminate the current
// expression or violate the grammar.
type parser struct {
	toks    []Token
	pos     int
	nesting []byte // '(' or '['
}

func (p *parser) peek() Token { return p.peekAt(0) }

func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF terminates every line
	}

	return p.toks[p.pos+n]
}

func (p *parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return tok
}

func (p *parser) unexpected(tok Token) error {
	if tok.Kind == KindEOF {
		return ErrUnexpectedEndOfLine.at(tok.Line, tok.Col)
	}

	return ErrUnexpectedToken.
		at(tok.Line, tok.Col).
		detail("`" + tok.Text + "`").
		With(slog.String("token", tok.Kind.String()))
}

func (p *parser) expectEOF() error {
	if tok := p.peek(); tok.Kind != KindEOF {
		return p.unexpected(tok)
	}

	return nil
}

func (p *parser) innermost() byte {
	if len(p.nesting) == 0 {
		return 0
	}

	return p.nesting[len(p.nesting)-1]
}

// parseExpr parses a left-associative application chain of atoms:
// `a1 a2 a3` desugars to Apply(Apply(a1, a2), a3). It stops at end of line
// or at the punctuation closing the innermost grouping context, leaving
// that token unconsumed. It returns nil for an empty chain.
func (p *parser) parseExpr() (Expr, error) {
	var expr Expr

	attach := func(atom Expr) {
		if expr == nil {
			expr = atom
		} else {
			expr = &Apply{Fn: expr, Arg: atom}
		}
	}

	for {
		tok := p.peek()

		switch tok.Kind {
		case KindIdentifier:
			p.advance()
			attach(&Ident{
				Name: tok.Text,
				pos:  Position{Line: tok.Line, Col: tok.Col},
			})

		case KindNumber:
			p.advance()

			f, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil {
				return nil, ErrMalformedNumber.
					at(tok.Line, tok.Col).
					Wrap(err)
			}

			attach(&Lit{
				Val: Number(f),
				pos: Position{Line: tok.Line, Col: tok.Col},
			})

		case KindString:
			p.advance()
			attach(&Lit{
				Val: String(tok.Text),
				pos: Position{Line: tok.Line, Col: tok.Col},
			})

		case KindLParen:
			atom, err := p.parseGroup(tok)
			if err != nil {
				return nil, err
			}

			attach(atom)

		case KindLBracket:
			atom, err := p.parseList(tok)
			if err != nil {
				return nil, err
			}

			attach(atom)

		case KindLambda:
			atom, err := p.parseLambda(tok)
			if err != nil {
				return nil, err
			}

			attach(atom)

		case KindRParen:
			if p.innermost() != '(' {
				return nil, p.unexpected(tok)
			}

			return expr, nil

		case KindComma, KindRBracket:
			if p.innermost() != '[' || expr == nil {
				return nil, p.unexpected(tok)
			}

			return expr, nil

		case KindEOF:
			if len(p.nesting) > 0 {
				return nil, ErrUnexpectedEndOfLine.at(tok.Line, tok.Col)
			}

			return expr, nil

		default:
			return nil, p.unexpected(tok)
		}
	}
}

// parseGroup parses a parenthesized expression or the None literal ().
func (p *parser) parseGroup(open Token) (Expr, error) {
	p.advance() // (

	if p.peek().Kind == KindRParen {
		p.advance()

		return &Lit{
			Val: None{},
			pos: Position{Line: open.Line, Col: open.Col},
		}, nil
	}

	p.nesting = append(p.nesting, '(')

	inner, err := p.parseExpr()

	p.nesting = p.nesting[:len(p.nesting)-1]

	if err != nil {
		return nil, err
	}

	if inner == nil {
		return nil, p.unexpected(p.peek())
	}

	if tok := p.peek(); tok.Kind != KindRParen {
		return nil, p.unexpected(tok)
	}

	p.advance() // )

	return inner, nil
}

// parseList parses a bracketed list literal, possibly empty.
func (p *parser) parseList(open Token) (Expr, error) {
	p.advance() // [

	pos := Position{Line: open.Line, Col: open.Col}

	if p.peek().Kind == KindRBracket {
		p.advance()

		return &ListLit{pos: pos}, nil
	}

	p.nesting = append(p.nesting, '[')
	defer func() { p.nesting = p.nesting[:len(p.nesting)-1] }()

	var elems []Expr

	for {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if elem == nil {
			return nil, p.unexpected(p.peek())
		}

		elems = append(elems, elem)

		tok := p.peek()

		switch tok.Kind {
		case KindComma:
			p.advance()

		case KindRBracket:
			p.advance()

			return &ListLit{Elems: elems, pos: pos}, nil

		default:
			return nil, p.unexpected(tok)
		}
	}
}

// parseLambda parses `\param.body` where the body extends to the end of the
// line or the enclosing grouping. A missing parameter name (`\.body`) binds
// nothing.
func (p *parser) parseLambda(slash Token) (Expr, error) {
	p.advance() // backslash

	var param string

	switch tok := p.peek(); tok.Kind {
	case KindIdentifier:
		param = tok.Text

		p.advance()

		if dot := p.peek(); dot.Kind != KindDot {
			return nil, p.unexpected(dot)
		}

		p.advance() // .

	case KindDot:
		p.advance() // parameterless lambda

	default:
		return nil, p.unexpected(tok)
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if body == nil {
		return nil, p.unexpected(p.peek())
	}

	return &Lambda{
		Param: param,
		Body:  body,
		pos:   Position{Line: slash.Line, Col: slash.Col},
	}, nil
}

// Program is a parsed source file: its statements in order, paired with the
// original source text for diagnostics and re-formatting.
type Program struct {
	Stmts  []Stmt
	Source string
}

// ParseReader parses a complete source from r, one statement per physical
// line. Blank and comment-only lines are skipped.
func ParseReader(r io.Reader) (*Program, error) {
	prog := &Program{}

	var src strings.Builder

	scan := bufio.NewScanner(r)
	lineNum := 0

	for scan.Scan() {
		lineNum++

		line := scan.Text()
		src.WriteString(line)
		src.WriteByte('\n')

		stmt, err := ParseLine(line, lineNum)
		if err != nil {
			return nil, err
		}

		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}

	if err := scan.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	prog.Source = src.String()

	return prog, nil
}
