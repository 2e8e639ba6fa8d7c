// Package token implements the Tokenizer (spec §4.A): a hand-written
// character-at-a-time lexer that walks a shell line, tracking quote state,
// and emits (separator, word) pairs mirroring internal/pipeline.Token.
package token

import (
	"unicode"
	"unicode/utf8"

	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/posherr"
)

// ASCII lookup tables for fast classification, mirroring the teacher
// lexer's init-time tables.
var isWhitespace [128]bool

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f'
	}
}

// operators recognized outside any quote, longest match first.
var operators = []string{"2>&1", "&&", "||", "<<", ">>", "2>", "|", "&", ";", "<", ">"}

// Lexer walks one line of input producing pipeline.Tokens.
type Lexer struct {
	input   string
	pos     int // current byte offset
	readPos int // next byte offset to read
	ch      rune
}

// New creates a Lexer over line.
func New(line string) *Lexer {
	l := &Lexer{input: line}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0
		return
	}
	ch, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	if ch == utf8.RuneError {
		ch = rune(l.input[l.readPos])
		size = 1
	}
	l.ch = ch
	l.readPos += size
}

func (l *Lexer) peekString(n int) string {
	end := l.pos + n
	if end > len(l.input) {
		end = len(l.input)
	}
	return l.input[l.pos:end]
}

func (l *Lexer) skipWhitespace() {
	for l.ch != 0 {
		if l.ch < 128 && isWhitespace[l.ch] {
			l.readChar()
			continue
		}
		if l.ch >= 128 && unicode.IsSpace(l.ch) {
			l.readChar()
			continue
		}
		break
	}
}

// Tokenize lexes the entire line into Tokens. A malformed quote is reported
// as a *pipeline.SyntaxErr; the partial result is still returned so callers
// that want best-effort recovery may use it.
func Tokenize(line string) (pipeline.Tokens, error) {
	l := New(line)
	var out pipeline.Tokens
	var err error

	for l.ch != 0 {
		l.skipWhitespace()
		if l.ch == 0 {
			break
		}

		switch {
		case l.ch == '\'':
			tok, e := l.lexQuoted('\'', pipeline.SepSingle, false)
			if e != nil && err == nil {
				err = e
			}
			out = append(out, tok)

		case l.ch == '"':
			tok, e := l.lexQuoted('"', pipeline.SepDouble, true)
			if e != nil && err == nil {
				err = e
			}
			out = append(out, tok)

		case l.ch == '`':
			tok, e := l.lexQuoted('`', pipeline.SepBacktick, true)
			if e != nil && err == nil {
				err = e
			}
			out = append(out, tok)

		case l.ch == '\\':
			l.readChar() // consume backslash
			if l.ch == 0 {
				break
			}
			out = append(out, pipeline.Token{Sep: pipeline.SepEscaped, Word: string(l.ch)})
			l.readChar()

		case l.isOperatorStart():
			out = append(out, l.lexOperator())

		default:
			out = append(out, l.lexWord())
		}
	}

	return out, err
}

func (l *Lexer) isOperatorStart() bool {
	for _, op := range operators {
		if l.peekString(len(op)) == op {
			return true
		}
	}
	return false
}

func (l *Lexer) lexOperator() pipeline.Token {
	for _, op := range operators {
		if l.peekString(len(op)) == op {
			for range op {
				l.readChar()
			}
			return pipeline.Token{Sep: pipeline.SepNone, Word: op}
		}
	}
	posherr.Assert(false, "lexOperator called without a matching operator")
	return pipeline.Token{}
}

// lexQuoted reads a run delimited by close. When escapable is true
// (double-quote and backtick runs) a backslash is dropped and the character
// after it is kept literally, whether or not it is the close character;
// single-quote runs never honor escapes (spec §4.A).
func (l *Lexer) lexQuoted(close rune, sep pipeline.Sep, escapable bool) (pipeline.Token, error) {
	l.readChar() // consume opening quote
	var sb []rune
	for {
		if l.ch == 0 {
			return pipeline.Token{Sep: sep, Word: string(sb)},
				&pipeline.SyntaxErr{Detail: "unbalanced quote " + string(close)}
		}
		if l.ch == '\\' && escapable {
			l.readChar()
			if l.ch == 0 {
				break
			}
			sb = append(sb, l.ch)
			l.readChar()
			continue
		}
		if l.ch == close {
			l.readChar()
			break
		}
		sb = append(sb, l.ch)
		l.readChar()
	}
	return pipeline.Token{Sep: sep, Word: string(sb)}, nil
}

// lexWord reads an unquoted run up to the next whitespace, quote, or
// operator start, so that `$NAME`, `${NAME}`, `$?`, `$$`, and `$(...)`
// stay embedded verbatim inside the host word for the Expander to resolve
// (spec §4.A).
func (l *Lexer) lexWord() pipeline.Token {
	var sb []rune
	for l.ch != 0 {
		if (l.ch < 128 && isWhitespace[l.ch]) || (l.ch >= 128 && unicode.IsSpace(l.ch)) {
			break
		}
		if l.ch == '\'' || l.ch == '"' || l.ch == '`' {
			break
		}
		if l.isOperatorStart() {
			break
		}
		sb = append(sb, l.ch)
		l.readChar()
	}
	return pipeline.Token{Sep: pipeline.SepNone, Word: string(sb)}
}
