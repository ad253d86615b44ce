package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/TPGamesNL/Skript/internal/cli/output"
	"github.com/TPGamesNL/Skript/internal/registry"
	"github.com/TPGamesNL/Skript/pkg/aliases"
	"github.com/TPGamesNL/Skript/pkg/core"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const replPrompt = "aliases> "

var dotCommands = []string{
	".help", ".names", ".match", ".count",
	".scope", ".scopes", ".define", ".drop",
	".reload", ".quit", ".exit",
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive alias lookup shell",
		Long: `Start an interactive shell for resolving aliases.

Type an alias name to resolve it. Tab completes alias names. Scratch scopes
created with .define shadow the loaded aliases without modifying them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
	return cmd
}

func runREPL(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cmdCtx := NewCommandContext(cmd)
	reg, _, err := cmdCtx.LoadRegistry(ctx)
	if err != nil {
		return err
	}

	session := &replSession{
		reg: reg,
		r:   cmdCtx.Renderer,
		reload: func(ctx context.Context) error {
			provider, _, err := cmdCtx.LoadAliases(ctx)
			if err != nil {
				return err
			}
			reg.Swap(provider)
			return nil
		},
	}

	historyFile := ""
	if cmdCtx.Cfg.Catalog.Path != "" {
		historyFile = filepath.Join(filepath.Dir(cmdCtx.Cfg.Catalog.Path), "repl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    &aliasCompleter{names: session.completions},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skaliases REPL (%d aliases)\n", reg.Count())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if session.handle(ctx, line) {
			break
		}
		rl.SetPrompt(session.prompt())
	}
	return nil
}

// replSession holds the state of one REPL.
type replSession struct {
	reg    *registry.Registry
	r      *output.Renderer
	scope  string
	reload func(context.Context) error
}

func (s *replSession) prompt() string {
	if s.scope == "" {
		return replPrompt
	}
	return "aliases[" + s.scope + "]> "
}

func (s *replSession) completions() []string {
	return append(s.reg.Names(s.scope), dotCommands...)
}

// handle runs one input line and reports whether the session should end.
func (s *replSession) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ".") {
		s.lookup(line)
		return false
	}

	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(s.r.Writer())
	case ".names":
		for _, e := range listAliases(s.reg, s.scope, rest) {
			s.r.Println(e.Name)
		}
	case ".count":
		s.r.Printf("%d aliases (generation %d)\n", s.reg.Count(), s.reg.Generation())
	case ".match":
		left, right, ok := strings.Cut(rest, "|")
		if !ok {
			s.r.Error("Usage: .match <alias> | <alias>")
			return false
		}
		quality, err := matchAliases(s.reg, s.scope, strings.TrimSpace(left), strings.TrimSpace(right))
		if err != nil {
			s.r.Error(err.Error())
			return false
		}
		s.r.Println(quality.String())
	case ".scope":
		s.scope = rest
		if rest == "" {
			s.r.Muted("using global aliases")
		} else {
			s.r.Muted("using scope " + rest)
		}
	case ".scopes":
		for _, name := range s.reg.Scopes() {
			s.r.Println(name)
		}
	case ".define":
		s.define(rest)
	case ".drop":
		name := rest
		if name == "" {
			name = s.scope
		}
		if name == "" {
			s.r.Error("Usage: .drop <scope>")
			return false
		}
		s.reg.DropScope(name)
		if name == s.scope {
			s.scope = ""
		}
	case ".reload":
		if err := s.reload(ctx); err != nil {
			s.r.Error(err.Error())
			return false
		}
		s.scope = ""
		s.r.Success(fmt.Sprintf("reloaded %d aliases", s.reg.Count()))
	default:
		s.r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

func (s *replSession) lookup(name string) {
	results, unknown := lookupNames(s.reg, s.scope, []string{name})
	if len(unknown) > 0 {
		s.r.Error(fmt.Sprintf("unknown alias %q", name))
		return
	}
	if err := renderLookup(s.r, results); err != nil {
		s.r.Error(err.Error())
	}
}

// define handles ".define <name> = <id> [key=value ...]".
func (s *replSession) define(args string) {
	if s.scope == "" {
		s.r.Error("select a scope first: .scope <name>")
		return
	}
	name, def, ok := strings.Cut(args, "=")
	fields := strings.Fields(def)
	if !ok || strings.TrimSpace(name) == "" || len(fields) == 0 {
		s.r.Error("Usage: .define <name> = <id> [state=value ...]")
		return
	}

	states := make(map[string]string)
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			s.r.Error(fmt.Sprintf("invalid block state %q, expected key=value", f))
			return
		}
		states[k] = v
	}

	name = strings.TrimSpace(name)
	err := s.reg.Define(s.scope, func(p *aliases.Provider) error {
		return p.AddAlias(core.NewAliasName(name, name+"s", 0), fields[0], nil, states)
	})
	if err != nil {
		s.r.Error(err.Error())
		return
	}
	s.r.Success(fmt.Sprintf("defined %q in scope %s", name, s.scope))
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help                          Show this help message
  .names [prefix]                List alias names
  .match <alias> | <alias>       Compare the items of two aliases
  .count                         Show the number of loaded aliases
  .scope [name]                  Switch to a scratch scope (empty for global)
  .scopes                        List scratch scopes
  .define <name> = <id> [k=v]    Define an alias in the current scope
  .drop [scope]                  Remove a scratch scope
  .reload                        Reload definitions from disk
  .quit / .exit                  Exit the REPL

Anything else is resolved as an alias name.
`
	_, _ = fmt.Fprintln(w, help)
}

// aliasCompleter completes alias names and dot-commands by prefix.
type aliasCompleter struct {
	names func() []string
}

// Do implements readline.AutoCompleter.
func (c *aliasCompleter) Do(line []rune, pos int) ([][]rune, int) {
	prefix := string(line[:pos])
	var out [][]rune
	for _, name := range c.names() {
		if len(name) > len(prefix) && strings.HasPrefix(name, prefix) {
			out = append(out, []rune(name[len(prefix):]))
		}
	}
	return out, len([]rune(prefix))
}
