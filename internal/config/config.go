// Package config holds the command-line-driven settings shared by the
// osmcore CLI's subcommands.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/osmium-go/osmcore/internal/header"
)

// Config holds the settings a CLI invocation gathers from flags before
// dispatching to the decode pipeline or a Location Index backend.
type Config struct {
	// InputFile is the path of the OSM PBF or OPL file to read. It is
	// always opened as a file; "-" is not treated as stdin.
	InputFile string
	// Format is "pbf", "opl", or "auto" (detected from InputFile's
	// extension).
	Format string
	// Workers bounds how many PBF data blobs may be decoded
	// concurrently.
	Workers int
	// QueueCapacity bounds the PBF ordering queue's depth.
	QueueCapacity int
	// Synchronous mirrors pbf.Options.Synchronous. The decode command
	// does not read this field: it takes the setting from its --sync flag
	// or OSMCORE_PBF_SYNC=1.
	Synchronous bool
	// MapType names a registered Location Index backend (e.g.
	// "sparse_mem_array", "flex_mem").
	MapType string
	// MapDir is the backing directory a file- or mmap-based Location
	// Index backend writes into.
	MapDir string
	// Verbose enables debug-level logging.
	Verbose bool
	// LogFile, if set, additionally writes JSON logs there via
	// lumberjack-rotated files.
	LogFile string
	// BBox holds a region in the same form as a PBF header's bounding
	// box. No command reads it; Header.Contains uses the header's own box.
	BBox header.Box
}

// DefaultConfig returns a Config with one PBF decode worker per CPU and
// the same queue capacity (8) as pbf.DefaultOptions.
func DefaultConfig() *Config {
	return &Config{
		Format:        "auto",
		Workers:       runtime.NumCPU(),
		QueueCapacity: 8,
		MapType:       "flex_mem",
	}
}

// Validate checks that the configuration is usable before a subcommand
// starts work.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	switch c.Format {
	case "auto", "pbf", "opl":
	default:
		return fmt.Errorf("unknown format %q: want auto, pbf, or opl", c.Format)
	}
	return nil
}

// ResolvedFormat returns Format, resolving "auto" by inspecting
// InputFile's extension (".opl"/".txt" => opl, anything else => pbf).
func (c *Config) ResolvedFormat() string {
	if c.Format != "auto" {
		return c.Format
	}
	switch strings.ToLower(filepath.Ext(c.InputFile)) {
	case ".opl", ".txt":
		return "opl"
	default:
		return "pbf"
	}
}
