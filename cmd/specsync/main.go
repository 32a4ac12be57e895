package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	riigikogu "github.com/avalik-ee/riigikogu-openapi"
	"github.com/avalik-ee/riigikogu-openapi/cmd/specsync/commands"
	"github.com/avalik-ee/riigikogu-openapi/internal/mcpserver"
	"github.com/avalik-ee/riigikogu-openapi/internal/stringutil"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfgPath, args := splitConfigFlag(args)
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := args[0]
	switch command {
	case "version", "-v", "--version":
		_, _ = fmt.Fprintf(stdout, "specsync %s (commit %s, built %s)\n",
			riigikogu.Version(), riigikogu.Commit(), riigikogu.BuildTime())
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "mcp":
		if err := mcpserver.Run(ctx); err != nil {
			return fail(stderr, err)
		}
		return 0
	}

	cmd, ok := commands.Lookup(command)
	if !ok {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			_, _ = fmt.Fprintf(stderr, "Did you mean: %s?\n", s)
		}
		_, _ = fmt.Fprintln(stderr)
		printUsage(stderr)
		return 1
	}

	env, err := commands.NewEnv(cfgPath, stdout, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	if err := cmd.Run(ctx, env, args[1:]); err != nil {
		return fail(stderr, err)
	}
	return 0
}

func fail(w io.Writer, err error) int {
	_, _ = fmt.Fprintf(w, "error: %v\n", err)
	return 1
}

// splitConfigFlag removes a leading "--config FILE" or "--config=FILE".
func splitConfigFlag(args []string) (string, []string) {
	if len(args) == 0 {
		return "", args
	}
	if args[0] == "--config" && len(args) > 1 {
		return args[1], args[2:]
	}
	if path, ok := strings.CutPrefix(args[0], "--config="); ok {
		return path, args[1:]
	}
	return "", args
}

// commandNames returns every name accepted as the first argument.
func commandNames() []string {
	names := []string{"version", "help", "mcp"}
	for _, c := range commands.All() {
		names = append(names, c.Name)
	}
	return names
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	return stringutil.Closest(input, commandNames(), 2)
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, `specsync - Riigikogu OpenAPI release pipeline

Usage:
  specsync [--config FILE] <command> [--key value ...]

Commands:
`)
	for _, c := range commands.All() {
		_, _ = fmt.Fprintf(w, "  %-14s%s\n", c.Name, c.Summary)
	}
	_, _ = fmt.Fprintf(w, `  %-14sServe the spec tools over MCP on stdio
  %-14sShow version information
  %-14sShow this help message

Every command prints key=value lines on stdout; they are also appended to
$GITHUB_OUTPUT when it is set.

Examples:
  specsync fetch
  specsync check-version --new-version 2.21.4
  specsync sync-version --set-version 2.21.4 --increment-revision
  specsync stage --files riigikogu-openapi.json,riigikogu-openapi.json.sha256,info.go

Run 'specsync <command> --help' for more information on a command.
`, "mcp", "version", "help")
}
