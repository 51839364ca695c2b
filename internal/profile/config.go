// Package profile implements a throughput harness for the specjson parsers.
package profile

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/goccy/go-yaml"
)

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrHelp             = errors.New("help requested")
	ErrNoFiles          = errors.New("at least one input file is required")
	ErrInvalidBlockSize = errors.New("--block must be positive")
	ErrInvalidWorkers   = errors.New("--workers must be positive")
	ErrInvalidRate      = errors.New("--rate must not be negative")
	ErrInvalidPrefetch  = errors.New("--prefetch must not be negative")
	ErrInvalidGenerate  = errors.New("--generate must not be negative")
)

// DefaultBlockSize is the size of the blocks read from each input file.
const DefaultBlockSize = 1 << 20

// Config defines the options for a profiling run.
type Config struct {
	Files     []string `yaml:"files"`
	BlockSize int      `yaml:"block_size"`
	Workers   int      `yaml:"workers"`
	Prefetch  int      `yaml:"prefetch"` // blocks read ahead of the parser
	Rate      float64  `yaml:"rate"`     // input bytes per second, 0 for no limit
	HuJSON    bool     `yaml:"hujson"`
	Verbose   bool     `yaml:"verbose"`

	// If Generate > 0, the harness writes that many sample records to
	// standard output instead of parsing files.
	Generate int    `yaml:"generate"`
	Seed     uint64 `yaml:"seed"`
}

// DefaultConfig returns the configuration used for options that are not set
// by a file or a flag.
func DefaultConfig() Config {
	return Config{
		BlockSize: DefaultBlockSize,
		Workers:   runtime.NumCPU(),
		Prefetch:  2,
		Seed:      1,
	}
}

// Parse parses and validates command-line arguments. Options from a YAML file
// named by --config are applied first, and flags override them. The
// remaining arguments name input files, in addition to any the file lists.
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	configPath := fs.String("config", "", "Path to a YAML configuration file")
	blockSize := fs.Int("block", DefaultBlockSize, "Input block size in bytes")
	workers := fs.Int("workers", runtime.NumCPU(), "Number of files parsed concurrently")
	prefetch := fs.Int("prefetch", 2, "Number of blocks read ahead of the parser")
	rate := fs.Float64("rate", 0, "Input rate limit in bytes per second")
	huJSON := fs.Bool("hujson", false, "Standardize HuJSON input before parsing")
	verbose := fs.Bool("v", false, "Enable verbose logging")
	generate := fs.Int("generate", 0, "Write N sample records to stdout and exit")
	seed := fs.Uint64("seed", 1, "Random seed for --generate")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		if err := cfg.Load(*configPath); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "block":
			cfg.BlockSize = *blockSize
		case "workers":
			cfg.Workers = *workers
		case "prefetch":
			cfg.Prefetch = *prefetch
		case "rate":
			cfg.Rate = *rate
		case "hujson":
			cfg.HuJSON = *huJSON
		case "v":
			cfg.Verbose = *verbose
		case "generate":
			cfg.Generate = *generate
		case "seed":
			cfg.Seed = *seed
		}
	})
	cfg.Files = append(cfg.Files, fs.Args()...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load applies the options from the YAML file at path to c. Options the file
// does not mention are unchanged.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	return nil
}

// Validate reports whether c is a usable configuration.
func (c *Config) Validate() error {
	switch {
	case c.Generate < 0:
		return ErrInvalidGenerate
	case c.Generate == 0 && len(c.Files) == 0:
		return ErrNoFiles
	case c.BlockSize <= 0:
		return ErrInvalidBlockSize
	case c.Workers <= 0:
		return ErrInvalidWorkers
	case c.Prefetch < 0:
		return ErrInvalidPrefetch
	case c.Rate < 0:
		return ErrInvalidRate
	}
	for _, path := range c.Files {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("input file not accessible: %w", err)
		}
	}
	return nil
}

// Usage returns command usage text.
func Usage() string {
	return `specprof - measure the throughput of the specjson parsers

Usage:
  specprof [options] FILE...
  specprof --generate N [--seed S] > FILE

Each FILE holds a sequence of sample records. Files are parsed concurrently,
each in blocks of the configured size.

Options:
  --config FILE     YAML configuration file (flags take precedence)
  --block N         Input block size in bytes (default: 1048576)
  --workers N       Number of files parsed concurrently (default: number of CPUs)
  --prefetch N      Number of blocks read ahead of the parser (default: 2)
  --rate N          Limit input to N bytes per second (default: no limit)
  --hujson          Each FILE is a HuJSON array of records (comments and
                    trailing commas allowed)
  --generate N      Write N sample records to stdout instead of parsing
  --seed S          Random seed for --generate (default: 1)
  -v                Enable verbose logging
  -h, --help        Show this help message`
}
