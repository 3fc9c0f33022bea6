package config

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
)

// Context is the process-wide, read-after-init state object constructed at
// startup and threaded explicitly into every operator and driver (Design
// Notes §9). It replaces the source's file-scope Mesh/Controls/ParamList
// globals while keeping the same "mutated only during configuration
// parsing, read-only thereafter" lifecycle (§5).
type Context struct {
	General  General
	Controls Controls
	blocks   map[string]*Block
}

// Load reads and parses a case configuration file, expanding a leading "~"
// in the path the way a CLI tool conventionally does (mitchellh/go-homedir,
// the same dependency the teacher's own module vendors).
func Load(path string) (*Context, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("config: configuration error reading %s: %w", expanded, err)
	}
	blocks, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("config: configuration error: %w", err)
	}
	general := parseGeneral(blocks)
	controls, err := parseControls(blocks)
	if err != nil {
		return nil, err
	}
	return &Context{General: general, Controls: controls, blocks: blocks}, nil
}

// Block returns the named solver-specific block (e.g. "piso", "diffusion"),
// or an empty block if the case file omitted it — every solver-specific key
// has a sensible zero-config default, matching the source's ParamList
// pattern of enrolling a key with an in-code default before reading.
func (c *Context) Block(name string) *Block {
	if b, ok := c.blocks[name]; ok {
		return b
	}
	return newBlock(name)
}
