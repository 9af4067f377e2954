// rewrite.go — the slang preprocessing step.
//
// A Rewriter turns informal vocabulary into canonical jive keywords before
// the lexer ever sees the text: `bet x > 2 { spit("big") }` becomes
// `if x > 2 { print("big") }`. It is a pure text-to-text function; the rest
// of the pipeline makes no assumption about what was substituted.
//
// Only whole identifier words ([A-Za-z_]+ runs) outside string literals are
// replaced, so slang inside strings survives untouched. Extra dialects can be
// merged from a TOML file:
//
//	[words]
//	lowkey = "let"
//	deadass = "const"
package jive

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DefaultDialect returns the built-in slang vocabulary.
func DefaultDialect() map[string]string {
	return map[string]string{
		"finna": "let",
		"fr":    "const",
		"vibe":  "fn",
		"bet":   "if",
		"nocap": "else",
		"grind": "for",
		"facts": "true",
		"cap":   "false",
		"ghost": "null",
		"spit":  "print",
	}
}

// Rewriter holds a word substitution table.
type Rewriter struct {
	words map[string]string
}

// NewRewriter creates a Rewriter seeded with the default dialect.
func NewRewriter() *Rewriter {
	return &Rewriter{words: DefaultDialect()}
}

// AddWords merges extra substitutions, overriding existing ones.
func (rw *Rewriter) AddWords(words map[string]string) {
	for from, to := range words {
		rw.words[from] = to
	}
}

type dialectFile struct {
	Words map[string]string `toml:"words"`
}

// LoadDialect merges the [words] table of a TOML dialect file.
func (rw *Rewriter) LoadDialect(path string) error {
	var df dialectFile
	if _, err := toml.DecodeFile(path, &df); err != nil {
		return fmt.Errorf("dialect %s: %w", path, err)
	}
	rw.AddWords(df.Words)
	return nil
}

// Rewrite replaces every mapped whole word outside string literals and
// returns the canonical text. Everything else passes through byte for byte,
// so token positions in diagnostics stay close to what the user typed.
func (rw *Rewriter) Rewrite(raw string) string {
	var out []byte
	for i := 0; i < len(raw); {
		c := raw[i]

		// Copy string literals verbatim, including an unterminated tail.
		if c == '"' {
			j := i + 1
			for j < len(raw) && raw[j] != '"' {
				j++
			}
			if j < len(raw) {
				j++
			}
			out = append(out, raw[i:j]...)
			i = j
			continue
		}

		if isAlpha(c) {
			j := i + 1
			for j < len(raw) && isAlpha(raw[j]) {
				j++
			}
			word := raw[i:j]
			if to, ok := rw.words[word]; ok {
				out = append(out, to...)
			} else {
				out = append(out, word...)
			}
			i = j
			continue
		}

		out = append(out, c)
		i++
	}
	return string(out)
}
