package main

import "fmt"

// Source is the immutable text of one file, addressed by code point offset.
type Source struct {
	Name  string
	chars []rune
}

func NewSource(name string, text string) *Source {
	return &Source{
		Name:  name,
		chars: []rune(text),
	}
}

func (s *Source) Len() int {
	return len(s.chars)
}

// CharAt panics when i is out of range.
func (s *Source) CharAt(i int) rune {
	if i < 0 || i >= len(s.chars) {
		panic(fmt.Sprintf("source %s: offset %d out of range [0, %d)", s.Name, i, len(s.chars)))
	}
	return s.chars[i]
}

func (s *Source) CharsWithin(span Span) string {
	if span.Start < 0 || span.End > len(s.chars) || span.Start > span.End {
		panic(fmt.Sprintf("source %s: span [%d, %d) out of range [0, %d)", s.Name, span.Start, span.End, len(s.chars)))
	}
	return string(s.chars[span.Start:span.End])
}
