// Package lexer implements the Lexer/Normalizer (spec §4.1): raw
// code-page-1252 lines become logical lines with comments stripped and
// `>`-continuations joined, then each logical line is split into a
// (command, [args]) tuple on the first `=`, with comma-separated
// arguments that respect double-quoted strings.
//
// The quote-aware comma split is delegated to a small lexmachine
// scanner, the same tool and architecture the teacher's scriptlang
// package uses to tokenize its own directive dialect: a STRING token
// whose regex consumes an entire quoted run (escapes included) always
// wins the longest-match race against the single-byte bare token, so
// commas embedded in a quoted argument never reach the COMMA token.
package lexer

import (
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	tokComma = iota
	tokString
	tokBare
)

var argLexer *lexmachine.Lexer

func init() {
	argLexer = lexmachine.NewLexer()
	argLexer.Add([]byte(`,`), tok(tokComma))
	argLexer.Add([]byte(`"(\\.|[^"])*"`), tok(tokString))
	argLexer.Add([]byte(`[^,]`), tok(tokBare))
	if err := argLexer.Compile(); err != nil {
		panic(err)
	}
}

func tok(kind int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(kind, string(m.Bytes), m), nil
	}
}

// SplitArgs comma-splits s, treating commas inside a matching pair of
// double quotes as literal content rather than separators. Each
// returned argument is trimmed of outer spaces; surrounding quotes are
// left in place -- they are stripped only at the point a string-typed
// NG argument is consumed (spec §4.1).
func SplitArgs(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	scanner, err := argLexer.Scanner([]byte(s))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create argument scanner")
	}

	var args []string
	var current []byte
	flush := func() {
		args = append(args, trimSpaces(string(current)))
		current = current[:0]
	}

	for tk, err, eos := scanner.Next(); !eos; tk, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "failed to tokenize argument list %q", s)
		}
		t := tk.(*lexmachine.Token)
		switch t.Type {
		case tokComma:
			flush()
		default:
			current = append(current, t.Lexeme...)
		}
	}
	flush()

	return args, nil
}

func trimSpaces(s string) string {
	start, end := 0, len(s)
	for start < end && s[start] == ' ' {
		start++
	}
	for end > start && s[end-1] == ' ' {
		end--
	}
	return s[start:end]
}
