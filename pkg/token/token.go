package token

import (
	"fmt"
	"strconv"
)

type Type int

const (
	EOF Type = iota
	Ident
	Number
	String
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While
	LParen
	RParen
	LBrace
	RBrace
	Comma
	Dot
	Minus
	Plus
	Semi
	Star
	Slash
	Not
	Neq
	Eq
	EqEq
	Lt
	Lte
	Gt
	Gte
)

var KeywordMap = map[string]Type{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

var typeNames = map[Type]string{
	EOF:    "EOF",
	Ident:  "IDENTIFIER",
	Number: "NUMBER",
	String: "STRING",
	And:    "AND",
	Class:  "CLASS",
	Else:   "ELSE",
	False:  "FALSE",
	For:    "FOR",
	Fun:    "FUN",
	If:     "IF",
	Nil:    "NIL",
	Or:     "OR",
	Print:  "PRINT",
	Return: "RETURN",
	Super:  "SUPER",
	This:   "THIS",
	True:   "TRUE",
	Var:    "VAR",
	While:  "WHILE",
	LParen: "LEFT_PAREN",
	RParen: "RIGHT_PAREN",
	LBrace: "LEFT_BRACE",
	RBrace: "RIGHT_BRACE",
	Comma:  "COMMA",
	Dot:    "DOT",
	Minus:  "MINUS",
	Plus:   "PLUS",
	Semi:   "SEMICOLON",
	Star:   "STAR",
	Slash:  "SLASH",
	Not:    "BANG",
	Neq:    "BANG_EQUAL",
	Eq:     "EQUAL",
	EqEq:   "EQUAL_EQUAL",
	Lt:     "LESS",
	Lte:    "LESS_EQUAL",
	Gt:     "GREATER",
	Gte:    "GREATER_EQUAL",
}

// Reverse mapping from Type to the keyword string
var TypeStrings = make(map[Type]string)

func init() {
	for str, typ := range KeywordMap {
		TypeStrings[typ] = str
	}
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Token is one lexical unit. Literal is nil except for String tokens,
// which carry the unquoted content, and Number tokens, which carry a
// float64. Values are immutable once constructed.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Line    int
}

func (t Token) String() string {
	if t.Literal == nil {
		if t.Lexeme == "" {
			return t.Type.String()
		}
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, FormatLiteral(t.Literal))
}

// FormatLiteral renders a literal value the way the token dump expects:
// numbers without a trailing fractional part when they are whole.
func FormatLiteral(lit any) string {
	if f, ok := lit.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", lit)
}
