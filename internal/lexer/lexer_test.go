package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lambdasoup/internal/lexer"
	"lambdasoup/token"
)

func allTokens(l *lexer.Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.END {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexBasicPunctuation(t *testing.T) {
	l := lexer.New("<test>", `(\x.y):;=`)
	toks := allTokens(l)
	assert.Equal(t, []token.Kind{
		token.OPAREN, token.LAMBDA, token.NAME, token.DOT, token.NAME,
		token.CPAREN, token.COLON, token.SEMICOLON, token.EQUALS, token.END,
	}, kinds(toks))
}

func TestLexNameAndMagic(t *testing.T) {
	l := lexer.New("<test>", `foo_1 #trace`)
	toks := allTokens(l)
	assert.Equal(t, token.NAME, toks[0].Kind)
	assert.Equal(t, "foo_1", toks[0].Text)
	assert.Equal(t, token.MAGIC, toks[1].Kind)
	assert.Equal(t, "trace", toks[1].Text)
}

func TestLexSkipsLineComments(t *testing.T) {
	l := lexer.New("<test>", "x // this is dropped\ny")
	toks := allTokens(l)
	assert.Equal(t, []token.Kind{token.NAME, token.NAME, token.END}, kinds(toks))
	assert.Equal(t, "x", toks[0].Text)
	assert.Equal(t, "y", toks[1].Text)
	assert.Equal(t, 2, toks[1].Position.Row)
}

func TestLexInvalidByte(t *testing.T) {
	l := lexer.New("<test>", `@`)
	tok := l.Next()
	assert.Equal(t, token.INVALID, tok.Kind)
	assert.Equal(t, "@", tok.Text)
}

func TestLexPositionsTrackRowCol(t *testing.T) {
	l := lexer.New("f.lamb", "x\n  y")
	first := l.Next()
	assert.Equal(t, 1, first.Position.Row)
	assert.Equal(t, 1, first.Position.Col)

	second := l.Next()
	assert.Equal(t, 2, second.Position.Row)
	assert.Equal(t, 3, second.Position.Col)
	assert.Equal(t, "f.lamb", second.Position.File)
}
