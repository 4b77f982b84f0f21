package lexer

import (
	"strings"

	"github.com/pkg/errors"
)

// CommandLine is a split (command, [args]) tuple.
type CommandLine struct {
	// Command is the directive name, without the trailing `=`.
	Command string
	Args    []string
}

// SplitCommandLine locates the first `=` in text and returns the
// command token (sans `=`) plus the comma-split, quote-aware argument
// list of the suffix (spec §4.1). A line with no `=` is a Parse error.
func SplitCommandLine(text string) (CommandLine, error) {
	i := strings.IndexByte(text, '=')
	if i < 0 {
		return CommandLine{}, errors.Errorf("missing '=' in directive %q", text)
	}

	command := strings.TrimFunc(text[:i], func(r rune) bool { return r == ' ' })
	if command == "" {
		return CommandLine{}, errors.Errorf("empty command name in directive %q", text)
	}

	args, err := SplitArgs(text[i+1:])
	if err != nil {
		return CommandLine{}, errors.Wrapf(err, "splitting arguments of %q", command)
	}

	return CommandLine{Command: command, Args: args}, nil
}

// Unquote strips one matching pair of outer double quotes from s, if
// present. Used only where an argument is actually consumed as a
// string-typed NG argument (spec §4.1) -- callers that need the raw
// quoted token (e.g. to detect whether quoting was present at all)
// should inspect the argument before calling this.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
