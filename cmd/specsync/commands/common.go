// Package commands provides the specsync subcommand handlers.
//
// Every handler takes the raw argument tokens of its subcommand, parses them
// with argparse, prints GitHub Actions style key=value lines to stdout and
// returns an error for main to report.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/avalik-ee/riigikogu-openapi/internal/argparse"
	"github.com/avalik-ee/riigikogu-openapi/internal/cliutil"
	"github.com/avalik-ee/riigikogu-openapi/internal/config"
	"github.com/avalik-ee/riigikogu-openapi/internal/gitutil"
)

// Env is what a command needs from its surroundings.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config
	Logger *slog.Logger
	Git    *gitutil.Repo
	// Now returns the current time; used for DATE in rendered templates.
	Now func() time.Time
	// GitHubOutput is the step output file, or "" outside GitHub Actions.
	GitHubOutput string
}

// NewEnv builds the process environment: configuration from cfgPath (or the
// default lookup), a text logger on stderr and git in the working directory.
func NewEnv(cfgPath string, stdout, stderr io.Writer) (*Env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return &Env{
		Stdout:       stdout,
		Stderr:       stderr,
		Config:       cfg,
		Logger:       NewLogger(stderr, cfg.LogLevel),
		Git:          gitutil.Open(""),
		Now:          time.Now,
		GitHubOutput: os.Getenv(cliutil.GitHubOutputEnv),
	}, nil
}

// NewLogger returns a text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Handler runs one subcommand.
type Handler func(ctx context.Context, env *Env, args []string) error

// Command describes a subcommand.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     Handler
}

// All returns the subcommands in help order.
func All() []Command {
	return []Command{
		{"fetch", "Fetch the upstream spec and update the stored copy", fetchUsage, HandleFetch},
		{"read-version", "Print info.version of the stored spec", readVersionUsage, HandleReadVersion},
		{"check-version", "Compare a new spec version with the committed one", checkVersionUsage, HandleCheckVersion},
		{"sync-version", "Bump the package version for a new spec", syncVersionUsage, HandleSyncVersion},
		{"render", "Render template files", renderUsage, HandleRender},
		{"stage", "Stage files and report whether anything changed", stageUsage, HandleStage},
	}
}

// Lookup returns the subcommand named name.
func Lookup(name string) (Command, bool) {
	for _, c := range All() {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// parse parses args and handles --help. It returns ok=false when help was
// printed and the command should stop. Unknown keys are logged.
func parse(env *Env, name, usage string, args []string, known ...string) (argparse.Args, bool) {
	a := argparse.Parse(args)
	if a.Has("help") || a.Has("h") {
		cliutil.Writef(env.Stderr, "%s", usage)
		return a, false
	}
	for _, k := range a.Unknown(append(known, "verbose", "help", "h")...) {
		env.Logger.Warn("ignoring unknown argument", "command", name, "argument", "--"+k)
	}
	if a.Bool("verbose") {
		env.Logger = NewLogger(env.Stderr, slog.LevelDebug)
	}
	return a, true
}

// emit writes step outputs to stdout and the GitHub output file.
func (e *Env) emit(outputs ...cliutil.Output) error {
	return cliutil.Emit(e.Stdout, e.GitHubOutput, outputs...)
}

// splitList splits a comma-separated list, trimming entries and dropping
// empty ones.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func usageText(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func requireValue(a argparse.Args, key string) (string, error) {
	if err := a.Require(key); err != nil {
		return "", err
	}
	return a.Get(key), nil
}
