package main

import "fmt"

// Dependency is one statically detected module reference. Path is always a
// String token.
type Dependency struct {
	Path Token
}

func (d Dependency) Request() string {
	return d.Path.Lexeme
}

// Parse extracts dependencies from tokens in order of appearance. Statements
// that fail to parse are dropped and scanning resumes wherever the failed
// attempt stopped.
func Parse(tokens []Token) []Dependency {
	p := &parser{tokens: tokens}
	return p.parse()
}

// ParseWithFailures behaves like Parse and additionally reports every
// discarded statement to onFailure. Used by the tokens debug command.
func ParseWithFailures(tokens []Token, onFailure func(line int, err error)) []Dependency {
	p := &parser{tokens: tokens, onFailure: onFailure}
	return p.parse()
}

type statementStatus uint8

const (
	statementNone statementStatus = iota
	statementFound
	statementFailed
)

type statementResult struct {
	status statementStatus
	dep    Dependency
	err    error
}

func found(path Token) statementResult {
	return statementResult{status: statementFound, dep: Dependency{Path: path}}
}

func none() statementResult {
	return statementResult{status: statementNone}
}

func failed(format string, args ...any) statementResult {
	return statementResult{status: statementFailed, err: fmt.Errorf(format, args...)}
}

type parser struct {
	tokens    []Token
	current   int
	onFailure func(line int, err error)
}

func (p *parser) parse() []Dependency {
	deps := []Dependency{}
	for !p.isAtEnd() {
		result := p.importOrExport()
		switch result.status {
		case statementFound:
			deps = append(deps, result.dep)
		case statementFailed:
			if p.onFailure != nil {
				p.onFailure(p.line(), result.err)
			}
		}
	}
	return deps
}

func (p *parser) importOrExport() statementResult {
	if p.didEat(Import) {
		return p.importStatement()
	}
	if p.didEat(Export) {
		return p.exportStatement()
	}
	p.advance()
	return none()
}

func (p *parser) importStatement() statementResult {
	switch {
	case p.didEat(LeftParen):
		// import('path')
		path, ok := p.expect(String)
		if !ok {
			return failed("expected string in dynamic import")
		}
		if _, ok := p.expect(RightParen); !ok {
			return failed("expected ) after dynamic import path")
		}
		return found(path)
	case p.didEat(Identifier):
		// import name from 'path'
		return p.fromClause()
	case p.didEat(LeftBrace):
		// import { a, b as c } from 'path'
		return p.bracedClause()
	case p.didEat(Star):
		// import * as name from 'path'
		return p.namespaceClause()
	}
	return failed("expected dynamic, default, destructured, or namespace import after `import` keyword")
}

func (p *parser) exportStatement() statementResult {
	switch {
	case p.didEat(LeftBrace):
		return p.bracedClause()
	case p.didEat(Star):
		return p.namespaceClause()
	}
	// export const, export default, export type ... carry no source
	p.advance()
	return none()
}

// bracedClause skips to the first `}` without tracking nesting, then reads
// `from 'path'`.
func (p *parser) bracedClause() statementResult {
	for !p.nextIs(RightBrace) && !p.isAtEnd() {
		p.advance()
	}
	if _, ok := p.expect(RightBrace); !ok {
		return failed("expected } to close specifier list")
	}
	return p.fromClause()
}

func (p *parser) namespaceClause() statementResult {
	if _, ok := p.expect(As); !ok {
		return failed("expected `as` after *")
	}
	if _, ok := p.expect(Identifier); !ok {
		return failed("expected namespace name after `as`")
	}
	return p.fromClause()
}

func (p *parser) fromClause() statementResult {
	if _, ok := p.expect(From); !ok {
		return failed("expected `from`")
	}
	path, ok := p.expect(String)
	if !ok {
		return failed("expected module path after `from`")
	}
	return found(path)
}

func (p *parser) expect(kind TokenKind) (Token, bool) {
	if !p.nextIs(kind) {
		return Token{}, false
	}
	return p.advance(), true
}

func (p *parser) didEat(kind TokenKind) bool {
	if p.nextIs(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) nextIs(kind TokenKind) bool {
	if p.current >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current].Kind == kind
}

func (p *parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.tokens[p.current-1]
}

func (p *parser) line() int {
	if len(p.tokens) == 0 {
		return 0
	}
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1].Line
	}
	return p.tokens[p.current].Line
}

func (p *parser) isAtEnd() bool {
	if p.current >= len(p.tokens) {
		return true
	}
	return p.tokens[p.current].Kind == Eof
}
