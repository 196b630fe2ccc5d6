package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Command is a console command with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Summary string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds console commands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a command. name is the first token of the console line (e.g. "grid").
// fs is that command's FlagSet; run is called with the remaining positional
// arguments after fs.Parse succeeds. fs output is silenced so parse errors go
// to the console log instead of stderr.
func (r *Registry) Register(name, summary string, fs *flag.FlagSet, run func(args []string) error) {
	fs.SetOutput(io.Discard)
	r.cmds[name] = &Command{Name: name, Summary: summary, FlagSet: fs, Run: run}
}

// Parse tokenizes a console line by spaces. Empty lines return nil, false.
func Parse(line string) (args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

// Execute runs the command in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// Summaries returns one "name - summary" line per registered command, sorted by name.
func (r *Registry) Summaries() []string {
	out := make([]string, 0, len(r.cmds))
	for _, c := range r.cmds {
		out = append(out, c.Name+" - "+c.Summary)
	}
	sort.Strings(out)
	return out
}
