// Package config implements the §6 configuration grammar — a sequence of
// named blocks `name { key value; key value; ... }` plus a top-level
// `general` block — and the process-wide Context threaded explicitly into
// every operator and driver call (Design Notes §9), replacing the source's
// file-scope Util::ParamList/Controls singletons.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Block is one parsed `name { ... }` section. Values are stored as their
// raw whitespace-split tokens so a single key can hold a scalar ("1.0"),
// a vector ("0 0 -9.81"), or an enumeration keyword ("STEADY").
type Block struct {
	Name    string
	entries map[string][]string
	order   []string // preserves source order for Print-style diagnostics
}

func newBlock(name string) *Block {
	return &Block{Name: name, entries: make(map[string][]string)}
}

func (b *Block) set(key string, tokens []string) {
	if _, exists := b.entries[key]; !exists {
		b.order = append(b.order, key)
	}
	b.entries[key] = tokens
}

func (b *Block) Has(key string) bool {
	_, ok := b.entries[key]
	return ok
}

func (b *Block) String(key, def string) string {
	if v, ok := b.entries[key]; ok && len(v) > 0 {
		return strings.Join(v, " ")
	}
	return def
}

func (b *Block) Int(key string, def int) int {
	if v, ok := b.entries[key]; ok && len(v) > 0 {
		if n, err := strconv.Atoi(v[0]); err == nil {
			return n
		}
	}
	return def
}

func (b *Block) Float(key string, def float64) float64 {
	if v, ok := b.entries[key]; ok && len(v) > 0 {
		if f, err := strconv.ParseFloat(v[0], 64); err == nil {
			return f
		}
	}
	return def
}

// Bool mirrors Util::BoolOption: "YES"/"NO" matched case-insensitively.
func (b *Block) Bool(key string, def bool) bool {
	if v, ok := b.entries[key]; ok && len(v) > 0 {
		switch strings.ToUpper(v[0]) {
		case "YES", "TRUE", "1":
			return true
		case "NO", "FALSE", "0":
			return false
		}
	}
	return def
}

// Vec3 parses a 3-component token group ("x y z"), e.g. gravity.
func (b *Block) Vec3(key string, def [3]float64) [3]float64 {
	v, ok := b.entries[key]
	if !ok || len(v) < 3 {
		return def
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(v[i], 64)
		if err != nil {
			return def
		}
		out[i] = f
	}
	return out
}

// Option matches a keyword case-insensitively against a fixed enumeration,
// mirroring Util::Option::getID. An unrecognized keyword is a fatal
// configuration error (§7), unlike the source which merely warned and
// defaulted to index 0.
func (b *Block) Option(key string, def int, names ...string) (int, error) {
	v, ok := b.entries[key]
	if !ok || len(v) == 0 {
		return def, nil
	}
	tok := strings.ToUpper(v[0])
	for i, name := range names {
		if strings.ToUpper(name) == tok {
			return i, nil
		}
	}
	return 0, fmt.Errorf("config: unknown value %q for key %q in block %q (expected one of %v)", v[0], key, b.Name, names)
}

// Parse scans the block-grammar text into a name-indexed set of Blocks.
// Comments starting with // run to end of line, matching the teacher's C++
// source's own comment style, and a convenience this format's original
// inspiration does not offer structurally.
func Parse(text string) (map[string]*Block, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	blocks := make(map[string]*Block)
	i := 0
	for i < len(toks) {
		name := toks[i]
		i++
		if i >= len(toks) || toks[i] != "{" {
			return nil, fmt.Errorf("config: expected '{' after block name %q", name)
		}
		i++
		blk := newBlock(name)
		for i < len(toks) && toks[i] != "}" {
			key := toks[i]
			i++
			var vals []string
			for i < len(toks) && toks[i] != ";" {
				vals = append(vals, toks[i])
				i++
			}
			if i >= len(toks) {
				return nil, fmt.Errorf("config: missing ';' terminating key %q in block %q", key, name)
			}
			i++ // consume ';'
			blk.set(key, vals)
		}
		if i >= len(toks) {
			return nil, fmt.Errorf("config: missing '}' closing block %q", name)
		}
		i++ // consume '}'
		blocks[name] = blk
	}
	return blocks, nil
}

func tokenize(text string) ([]string, error) {
	var toks []string
	n := len(text)
	for i := 0; i < n; {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/' && i+1 < n && text[i+1] == '/':
			for i < n && text[i] != '\n' {
				i++
			}
		case c == '{' || c == '}' || c == ';':
			toks = append(toks, string(c))
			i++
		default:
			start := i
			for i < n && !isDelim(text[i]) {
				i++
			}
			toks = append(toks, text[start:i])
		}
	}
	return toks, nil
}

func isDelim(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '{' || c == '}' || c == ';'
}
