package scanner

import (
	"strconv"

	"github.com/sphennings/Hakarl/pkg/config"
	"github.com/sphennings/Hakarl/pkg/diag"
	"github.com/sphennings/Hakarl/pkg/token"
)

// Scanner walks the source text once, left to right, and produces the
// ordered token sequence. Lexical faults go to the reporter and never
// stop the pass; scanning resumes at the next unconsumed character.
type Scanner struct {
	source    []rune
	start     int
	startLine int
	pos       int
	line      int
	cfg       *config.Config
	rep       diag.Reporter
	tokens    []token.Token
}

func New(source string, cfg *config.Config, rep diag.Reporter) *Scanner {
	return &Scanner{source: []rune(source), line: 1, cfg: cfg, rep: rep}
}

// ScanTokens consumes the whole input. The returned sequence always ends
// with exactly one EOF token carrying the final line number.
func (s *Scanner) ScanTokens() []token.Token {
	for !s.isAtEnd() {
		s.start, s.startLine = s.pos, s.line
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Type: token.EOF, Line: s.line})
	return s.tokens
}

func (s *Scanner) scanToken() {
	ch := s.advance()
	switch ch {
	case '(':
		s.addToken(token.LParen)
	case ')':
		s.addToken(token.RParen)
	case '{':
		s.addToken(token.LBrace)
	case '}':
		s.addToken(token.RBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semi)
	case '*':
		s.addToken(token.Star)
	case '!':
		s.matchThen('=', token.Neq, token.Not)
	case '=':
		s.matchThen('=', token.EqEq, token.Eq)
	case '<':
		s.matchThen('=', token.Lte, token.Lt)
	case '>':
		s.matchThen('=', token.Gte, token.Gt)
	case '/':
		s.slash()
	case ' ', '\r', '\t':
		// discard
	case '\n':
		// line counted by advance
	case '"':
		s.stringLiteral()
	default:
		switch {
		case isDigit(ch):
			s.numberLiteral()
		case isAlpha(ch):
			s.identifierOrKeyword()
		default:
			s.rep.Error(s.line, "Unexpected character")
		}
	}
}

func (s *Scanner) slash() {
	switch {
	case s.peek() == '/' && s.cfg.IsFeatureEnabled(config.FeatLineComments):
		s.lineComment()
	case s.peek() == '*' && s.cfg.IsFeatureEnabled(config.FeatBlockComments):
		s.blockComment()
	default:
		s.addToken(token.Slash)
	}
}

func (s *Scanner) lineComment() {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
}

func (s *Scanner) blockComment() {
	s.advance() // opening '*'
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
	s.rep.Error(s.line, "Unterminated multiline comment")
}

// stringLiteral consumes through the closing quote. Strings may span
// multiple lines; backslashes are taken literally.
func (s *Scanner) stringLiteral() {
	multiline := s.cfg.IsFeatureEnabled(config.FeatMultilineStrings)
	for !s.isAtEnd() {
		c := s.peek()
		if c == '"' {
			s.advance()
			s.addLiteral(token.String, string(s.source[s.start+1:s.pos-1]))
			return
		}
		if c == '\n' && !multiline {
			break
		}
		if c == '\\' && s.cfg.IsWarningEnabled(config.WarnStringEscape) {
			s.rep.Warnf(s.line, "escape sequences are not interpreted; '\\' is taken literally")
		}
		s.advance()
	}
	s.rep.Error(s.line, "Unterminated string")
}

func (s *Scanner) numberLiteral() {
	for isDigit(s.peek()) {
		s.advance()
	}
	// A '.' is part of the number only when a digit follows it.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	lexeme := string(s.source[s.start:s.pos])
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && s.cfg.IsWarningEnabled(config.WarnOverflow) {
		s.rep.Warnf(s.startLine, "number literal out of range: %s", lexeme)
	}
	s.addLiteral(token.Number, value)
}

func (s *Scanner) identifierOrKeyword() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	if typ, isKeyword := token.KeywordMap[string(s.source[s.start:s.pos])]; isKeyword {
		s.addToken(typ)
		return
	}
	s.addToken(token.Ident)
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *Scanner) peekNext() rune {
	if s.pos+1 >= len(s.source) {
		return 0
	}
	return s.source[s.pos+1]
}

func (s *Scanner) advance() rune {
	if s.isAtEnd() {
		return 0
	}
	ch := s.source[s.pos]
	if ch == '\n' {
		s.line++
	}
	s.pos++
	return ch
}

func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() || s.source[s.pos] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) matchThen(expected rune, thenType, elseType token.Type) {
	if s.match(expected) {
		s.addToken(thenType)
		return
	}
	s.addToken(elseType)
}

func (s *Scanner) isAtEnd() bool { return s.pos >= len(s.source) }

func (s *Scanner) addToken(typ token.Type) { s.addLiteral(typ, nil) }

func (s *Scanner) addLiteral(typ token.Type, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Type:    typ,
		Lexeme:  string(s.source[s.start:s.pos]),
		Literal: literal,
		Line:    s.startLine,
	})
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
