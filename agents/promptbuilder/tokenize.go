/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

type resolveFunc func(name string) (string, error)

// walkTemplate copies template to the output, replacing every {{name}} with
// resolve(name). Replacement text is never rescanned.
func walkTemplate(template string, resolve resolveFunc) (string, error) {
	var out strings.Builder
	out.Grow(len(template))

	for rest := template; len(rest) > 0; {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			break
		}
		// Extra opening braces before a placeholder are literal text.
		for start+2 < len(rest) && rest[start+2] == '{' {
			start++
		}
		out.WriteString(rest[:start])

		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			return "", errors.New("unclosed binding: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(rest[start+2 : end-2])
		if !isValidIdentifier(name) {
			return "", fmt.Errorf("invalid binding identifier %q", name)
		}
		repl, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(repl)
		rest = rest[end:]
	}

	return out.String(), nil
}

// isValidIdentifier accepts a letter followed by letters, digits or underscores.
func isValidIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}
