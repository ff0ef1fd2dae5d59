// Package commands is a small registry of console subcommands, each with its own flag set.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrHelp is returned by Execute when a command was asked for -h; its usage is in the error text.
var ErrHelp = errors.New("help requested")

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state and FlagSet.Args().
type Command struct {
	Name    string
	Summary string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a flag set suitable for Register: errors are returned, not printed.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. fs may be nil for commands without flags; run is called
// after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, summary string, fs *flag.FlagSet, run func() error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Summary: summary, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse tokenizes a console line by spaces. A leading '/' is accepted and dropped.
func Parse(line string) []string {
	return strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Flags are reset to their defaults first so values do not leak between invocations.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s (try help)", name)
	}
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
	})
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return fmt.Errorf("%w: %s", ErrHelp, r.Usage(name))
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run()
}

// Usage describes one command: its summary followed by its flags with defaults.
func (r *Registry) Usage(name string) string {
	cmd, ok := r.cmds[name]
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(name)
	if cmd.Summary != "" {
		b.WriteString(" - ")
		b.WriteString(cmd.Summary)
	}
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(&b, " [-%s=%s]", f.Name, f.DefValue)
	})
	return b.String()
}

// Help returns one Usage line per command, sorted by name.
func (r *Registry) Help() []string {
	names := r.Names()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = r.Usage(name)
	}
	return out
}
