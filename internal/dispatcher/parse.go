package dispatcher

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Tokenize splits a command line into words.
//
// Words are separated by whitespace. A double-quoted section may contain
// whitespace and the escapes \", \\, \n and \t; any other backslash is
// kept as is. Quoted and bare text written next to each other form one
// word, and "" is an empty word.
func Tokenize(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quoted  bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quoted {
			switch {
			case r == '"':
				quoted = false
			case r == '\\' && i+1 < len(runes):
				if esc, ok := unescape(runes[i+1]); ok {
					current.WriteRune(esc)
					i++
				} else {
					current.WriteRune(r)
				}
			default:
				current.WriteRune(r)
			}
			continue
		}

		switch {
		case r == '"':
			quoted = true
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote", ErrSyntax)
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}

func unescape(r rune) (rune, bool) {
	switch r {
	case '"', '\\':
		return r, true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// Parse splits a command line into the command name and its arguments.
// An empty or blank line yields an empty name.
func Parse(line string) (string, []string, error) {
	words, err := Tokenize(line)
	if err != nil {
		return "", nil, err
	}
	if len(words) == 0 {
		return "", nil, nil
	}
	return words[0], words[1:], nil
}

// ParseLineCol parses a "line:col" position.
func ParseLineCol(s string) (line, col int, err error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, argError("position %q is not line:col", s)
	}
	if line, err = strconv.Atoi(l); err != nil {
		return 0, 0, argError("bad line in %q", s)
	}
	if col, err = strconv.Atoi(c); err != nil {
		return 0, 0, argError("bad column in %q", s)
	}
	return line, col, nil
}

// ParseRange parses "start:end" or a single line number n, which is the
// range n:n.
func ParseRange(s string) (start, end int, err error) {
	a, b, ok := strings.Cut(s, ":")
	if start, err = strconv.Atoi(a); err != nil {
		return 0, 0, argError("bad range %q", s)
	}
	if !ok {
		return start, start, nil
	}
	if end, err = strconv.Atoi(b); err != nil {
		return 0, 0, argError("bad range %q", s)
	}
	return start, end, nil
}

// parseLength parses a length argument. Range checks are left to the buffer.
func parseLength(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, argError("bad length %q", s)
	}
	return n, nil
}

// argError reports a malformed argument. Execute fills in the command.
func argError(format string, args ...any) *UsageError {
	return &UsageError{Reason: fmt.Sprintf(format, args...)}
}
