package main

// Lex scans source into tokens. It never fails: characters outside the
// import/export surface are dropped.
func Lex(source *Source) []Token {
	l := &lexer{
		source: source,
		tokens: make([]Token, 0, source.Len()/8),
		line:   1,
	}
	return l.lex()
}

type lexer struct {
	source  *Source
	tokens  []Token
	start   int
	current int
	line    int
}

func (l *lexer) lex() []Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	return l.tokens
}

func (l *lexer) scanToken() {
	c := l.advance()
	switch c {
	case ' ', '\t', '\r':
		return
	case '\n':
		l.line++
	case '(':
		l.addToken(LeftParen)
	case ')':
		l.addToken(RightParen)
	case '{':
		l.addToken(LeftBrace)
	case '}':
		l.addToken(RightBrace)
	case ',':
		l.addToken(Comma)
	case ';':
		l.addToken(Semicolon)
	case '*':
		l.addToken(Star)
	case '"', '\'', '`':
		l.string(c)
	default:
		if isAlphabetic(c) {
			l.identifier()
		}
	}
}

// string consumes up to and including the next matching quote. Escapes are
// not interpreted, so `\'` still terminates a single quoted literal.
func (l *lexer) string(quote rune) {
	line := l.line
	for !l.isAtEnd() && l.peek() != quote {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	contentEnd := l.current
	if !l.isAtEnd() {
		l.advance()
	}

	l.tokens = append(l.tokens, Token{
		Kind:   String,
		Span:   Span{Start: l.start, End: l.current},
		Line:   line,
		Source: l.source,
		Lexeme: l.source.CharsWithin(Span{Start: l.start + 1, End: contentEnd}),
	})
}

func (l *lexer) identifier() {
	for !l.isAtEnd() && isAlphaNumeric(l.peek()) {
		l.advance()
	}
	text := l.source.CharsWithin(Span{Start: l.start, End: l.current})
	l.addToken(tokenKindForText(text))
}

func (l *lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Span:   Span{Start: l.start, End: l.current},
		Line:   l.line,
		Source: l.source,
	})
}

func (l *lexer) peek() rune {
	return l.source.CharAt(l.current)
}

func (l *lexer) advance() rune {
	c := l.source.CharAt(l.current)
	l.current++
	return c
}

func (l *lexer) isAtEnd() bool {
	return l.current >= l.source.Len()
}

func isAlphabetic(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c rune) bool {
	return isAlphabetic(c) || (c >= '0' && c <= '9')
}
