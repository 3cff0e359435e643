package main

type TokenKind uint8

const (
	LeftParen TokenKind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Semicolon
	Star

	Identifier
	String

	Export
	Import
	From
	As
	Type

	// Eof is honored by the parser but never produced by Lex.
	Eof
)

var tokenKindNames = map[TokenKind]string{
	LeftParen:  "(",
	RightParen: ")",
	LeftBrace:  "{",
	RightBrace: "}",
	Comma:      ",",
	Semicolon:  ";",
	Star:       "*",
	Identifier: "Identifier",
	String:     "String",
	Export:     "export",
	Import:     "import",
	From:       "from",
	As:         "as",
	Type:       "type",
	Eof:        "EOF",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var keywords = map[string]TokenKind{
	"import": Import,
	"export": Export,
	"from":   From,
	"as":     As,
	"type":   Type,
}

func tokenKindForText(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Identifier
}

// Span is a half-open [Start, End) range of code point offsets.
type Span struct {
	Start int
	End   int
}

type Token struct {
	Kind   TokenKind
	Span   Span
	Line   int
	Source *Source
	// Lexeme is set for String tokens only and holds the unquoted content.
	Lexeme string
}

// Text returns the raw source text covered by the token.
func (t Token) Text() string {
	return t.Source.CharsWithin(t.Span)
}
