package oker

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func TestTokenizeReportsPosition(t *testing.T) {
	toks, err := Tokenize([]byte("let x = 5"))
	be.Err(t, err, nil)
	be.Equal(t, toks[0].Kind, Let)
	be.Equal(t, toks[0].Line, 1)
	be.Equal(t, toks[0].Column, 1)
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	toks, err := Tokenize([]byte("say 1"))
	be.Err(t, err, nil)
	be.Equal(t, toks[len(toks)-1].Kind, EOF)
	count := 0
	for _, tok := range toks {
		if tok.Kind == EOF {
			count++
		}
	}
	be.Equal(t, count, 1)
}

func TestStringEscapes(t *testing.T) {
	cases := map[string]string{
		`"\n"`:  "\n",
		`"\t"`:  "\t",
		`"\r"`:  "\r",
		`"\\"`:  "\\",
		`"\""`:  "\"",
	}
	for src, want := range cases {
		toks, err := Tokenize([]byte(src))
		be.Err(t, err, nil)
		be.Equal(t, toks[0].Kind, String)
		be.Equal(t, toks[0].Literal, want)
	}
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	_, err := Tokenize([]byte(`"unterminated`))
	be.True(t, err != nil)
	var lexErr *LexError
	be.True(t, errors.As(err, &lexErr))
}

func TestNumberLiteral(t *testing.T) {
	toks, err := Tokenize([]byte("3.14"))
	be.Err(t, err, nil)
	be.Equal(t, toks[0].Kind, Number)
	be.Equal(t, toks[0].Literal, "3.14")
}

func TestKeywordsVersusIdentifiers(t *testing.T) {
	toks, err := Tokenize([]byte("let letter"))
	be.Err(t, err, nil)
	be.Equal(t, toks[0].Kind, Let)
	be.Equal(t, toks[1].Kind, Ident)
	be.Equal(t, toks[1].Literal, "letter")
}
