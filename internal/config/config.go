// Package config loads the optional undex.toml file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"undex/internal/bytecode"
)

// ConfigFileName is the config file looked up next to the input.
const ConfigFileName = "undex.toml"

// Config is the full undex.toml layout.
type Config struct {
	Decode DecodeConfig `toml:"decode"`
	Output OutputConfig `toml:"output"`
}

// DecodeConfig tunes parsing and synthesis.
type DecodeConfig struct {
	// Opaque lists extra opcodes to render as annotated placeholders
	// instead of decoded statements, by mnemonic ("const/4") or by
	// number ("0x12"). Payload tables are always rendered opaque.
	Opaque []string `toml:"opaque"`

	// Strict makes structural faults fatal and verifies the header
	// checksum.
	Strict bool `toml:"strict"`

	// MaxSteps caps the decode loop of a single method. 0 keeps the
	// built-in default.
	MaxSteps int `toml:"max-steps"`
}

// OutputConfig controls where and what the decompile command writes.
type OutputConfig struct {
	Dir  string `toml:"dir"`
	DOT  bool   `toml:"dot"`  // call graph and CFG DOT files
	JSON bool   `toml:"json"` // machine-readable summary
}

// Default returns the configuration used when no undex.toml exists.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Dir: "dex_output"},
	}
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default
// when it does not. A file that exists but fails to parse is an error.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// OpaqueSet resolves the configured opaque opcode list against the
// instruction table.
func (c *Config) OpaqueSet() (map[byte]bool, error) {
	if len(c.Decode.Opaque) == 0 {
		return nil, nil
	}
	set := make(map[byte]bool, len(c.Decode.Opaque))
	for _, name := range c.Decode.Opaque {
		if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
			v, err := strconv.ParseUint(name[2:], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("opaque opcode %q: %w", name, err)
			}
			set[byte(v)] = true
			continue
		}
		op, ok := lookupMnemonic(name)
		if !ok {
			return nil, fmt.Errorf("opaque opcode %q: unknown mnemonic", name)
		}
		set[op] = true
	}
	return set, nil
}

func lookupMnemonic(name string) (byte, bool) {
	for op := 0; op < 256; op++ {
		if bytecode.Lookup(byte(op)).Name == name {
			return byte(op), true
		}
	}
	return 0, false
}
