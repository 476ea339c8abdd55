// Package cli holds what dm-send and dm-poll share: flag parsing, logging to
// stderr, dependency wiring and the one-JSON-object result contract.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrsteele09/go-bsky-dm/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// Command is one entry point.
type Command struct {
	Name string
	// Usage is printed as the error of a Failure when ValidArgs rejects the
	// positional arguments.
	Usage     string
	ValidArgs func(args []string) bool
	Run       func(ctx context.Context, deps *Deps, args []string) (any, error)

	// LoadConfig and NewDeps default to config.Load and NewDeps.
	LoadConfig func() (config.Config, error)
	NewDeps    func(cfg config.Config) (*Deps, error)
}

// Main parses args (without the program name), runs the command and returns
// the process exit code. stdout receives exactly one JSON object; logs go to
// stderr.
func (c Command) Main(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	// Flags come before the first positional argument; everything after it,
	// including text starting with "-", is passed through.
	flags.SetInterspersed(false)
	logLevel := flags.String("log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")

	if err := flags.Parse(args); err != nil {
		SetupLogger(stderr, c.Name, "")
		return Fail(stdout, errors.New(c.Usage))
	}
	positional := flags.Args()
	if c.ValidArgs != nil && !c.ValidArgs(positional) {
		SetupLogger(stderr, c.Name, "")
		return Fail(stdout, errors.New(c.Usage))
	}

	loadConfig := c.LoadConfig
	if loadConfig == nil {
		loadConfig = config.Load
	}
	cfg, err := loadConfig()
	if err != nil {
		SetupLogger(stderr, c.Name, *logLevel)
		return Fail(stdout, err)
	}

	level := cfg.GetLogLevel()
	if *logLevel != "" {
		level = *logLevel
	}
	SetupLogger(stderr, c.Name, level)

	newDeps := c.NewDeps
	if newDeps == nil {
		newDeps = NewDeps
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Execute(stdout, func() (any, error) {
		deps, err := newDeps(cfg)
		if err != nil {
			return nil, err
		}
		log.Debug().Strs("args", positional).Msg("running")
		return c.Run(ctx, deps, positional)
	})
}
