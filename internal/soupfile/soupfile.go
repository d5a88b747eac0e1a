// Package soupfile parses the metadata comment header of a soup snapshot
// file (spec §6): `// LAMB_SOUP_V1` or `// LAMB_GRID_SOUP_V1` followed by
// `key=value` comment lines. The header is metadata only — the
// `soup_i = <expr> ;` bindings beneath it are ordinary source bindings
// parsed by internal/parser.
//
// Grounded in the teacher's grammar package: a participle/v2 stateful
// lexer plus participle.Build, generalised from Kanso source syntax to
// this small header micro-grammar so the dependency the teacher's main
// grammar used keeps a concrete home even though the lambda-calculus
// grammar itself is hand-written (spec §4.4's parser is direct-to-arena,
// with no convenient AST node type for participle to populate).
package soupfile

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Kind identifies which soup header was parsed.
type Kind string

const (
	KindGas  Kind = "LAMB_SOUP_V1"
	KindGrid Kind = "LAMB_GRID_SOUP_V1"
)

var headerLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Slash", `//`, nil},
		{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Equals", `=`, nil},
		{"Int", `[0-9]+`, nil},
		{"Newline", `\r?\n`, nil},
		{"Whitespace", `[ \t]+`, nil},
	},
})

type field struct {
	Key   string `parser:"Slash @Ident Equals"`
	Value int    `parser:"@Int"`
}

type headerGrammar struct {
	Kind   string   `parser:"Slash @Ident Newline"`
	Fields []*field `parser:"(@@ Newline?)*"`
}

// Header is the parsed result: Kind plus the key=value fields it carried.
type Header struct {
	Kind   Kind
	Fields map[string]int
}

// Step returns the `step=<N>` field, or 0 if absent.
func (h Header) Step() int { return h.Fields["step"] }

// ParseHeader parses a soup file's metadata header, the bytes up to (but
// not including) the first `name = expr ;` binding line.
func ParseHeader(source string) (Header, error) {
	parser, err := participle.Build[headerGrammar](
		participle.Lexer(headerLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return Header{}, fmt.Errorf("soupfile: building header parser: %w", err)
	}

	g, err := parser.ParseString("", source)
	if err != nil {
		return Header{}, fmt.Errorf("soupfile: parsing header: %w", err)
	}

	kind := Kind(g.Kind)
	if kind != KindGas && kind != KindGrid {
		return Header{}, fmt.Errorf("soupfile: unrecognised header kind %q", g.Kind)
	}

	fields := make(map[string]int, len(g.Fields))
	for _, f := range g.Fields {
		fields[f.Key] = f.Value
	}
	return Header{Kind: kind, Fields: fields}, nil
}
