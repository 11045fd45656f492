// Package interactive implements the regview browse shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/regview/regview-go/cmd/regview/commands"
	"github.com/regview/regview-go/pkg/browse"
	"github.com/regview/regview-go/pkg/nav"
)

// Browser is an interactive shell over one loaded dataset. All movement goes
// through nav.Apply, so the shell can never reach a state the other
// front-ends could not.
type Browser struct {
	env   *commands.Env
	state nav.State
	out   io.Writer
	rl    *readline.Instance
}

// New creates a browse shell reading from the terminal.
func New(env *commands.Env) (*Browser, error) {
	b := &Browser{env: env, state: nav.Dashboard()}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          b.prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    b.completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	b.rl = rl
	b.out = rl.Stdout()
	return b, nil
}

// newBrowser creates a shell without a terminal, for scripted input.
func newBrowser(env *commands.Env, out io.Writer) *Browser {
	return &Browser{env: env, state: nav.Dashboard(), out: out}
}

// State returns the current navigation state.
func (b *Browser) State() nav.State { return b.state }

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is cancelled.
func (b *Browser) Run(ctx context.Context) {
	defer b.rl.Close()

	b.printHelp()
	b.show()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		b.rl.SetPrompt(b.prompt())
		line, err := b.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return
		}
		if quit := b.Exec(line); quit {
			return
		}
	}
}

func (b *Browser) prompt() string {
	if b.state.View() == nav.ViewDashboard {
		return "regview> "
	}
	return "regview:" + b.state.Path() + "> "
}

// Exec runs one command line and reports whether the shell should exit.
func (b *Browser) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		b.printHelp()

	case "ls", "show", "l":
		b.show()

	case "cd", "open", "o":
		b.cmdOpen(args)

	case "back", "up", "..":
		b.apply(nav.Back())

	case "home", "/":
		b.apply(nav.Home())

	case "jump", "j":
		b.cmdJump(args)

	case "goto", "g":
		b.cmdGoto(args)

	case "pwd", "where":
		fmt.Fprintln(b.out, nav.BreadcrumbText(b.state))

	case "quit", "exit", "q":
		fmt.Fprintln(b.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(b.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (b *Browser) printHelp() {
	fmt.Fprintln(b.out, `
regview browse commands:
  ls                 - Show the current view
  cd <name>          - Open a group, peripheral or register from the current view
  cd ..  | back      - Go up one level
  cd /   | home      - Return to the dashboard
  jump <view>        - Jump to an ancestor view (dashboard, instances, registers)
  goto <path>        - Open GROUP/PERIPHERAL/REGISTER (or PERIPHERAL/REGISTER)
  pwd                - Print the breadcrumb
  quit               - Exit`)
}

func (b *Browser) show() {
	if err := b.env.Show(b.out, b.state); err != nil {
		fmt.Fprint(b.out, b.env.Formatter.FormatError(err))
	}
}

func (b *Browser) cmdOpen(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(b.out, "Usage: cd <name>")
		return
	}
	name := args[0]

	switch {
	case name == "..":
		b.apply(nav.Back())
		return
	case name == "/":
		b.apply(nav.Home())
		return
	case strings.Contains(name, "/"):
		b.cmdGoto(args)
		return
	}

	action, err := b.selectAction(name)
	if err != nil {
		fmt.Fprintf(b.out, "Error: %v\n", err)
		return
	}
	b.apply(action)
}

// selectAction resolves name against the children of the current view.
func (b *Browser) selectAction(name string) (nav.Action, error) {
	r := b.env.Viewer.Resolver
	switch b.state.View() {
	case nav.ViewDashboard:
		g, err := r.Group(name)
		return nav.SelectGroup(g), err
	case nav.ViewInstances:
		p, err := r.Peripheral(name)
		if err != nil {
			return nav.Action{}, err
		}
		return nav.SelectPeripheral(p.Name), nil
	case nav.ViewRegisters:
		p, err := r.Peripheral(b.state.Peripheral())
		if err != nil {
			return nav.Action{}, err
		}
		reg, err := r.Register(p, name)
		return nav.SelectRegister(reg), err
	default:
		return nav.Action{}, fmt.Errorf("%s has no children; use back or goto", b.state.View())
	}
}

func (b *Browser) cmdJump(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(b.out, "Usage: jump <dashboard|instances|registers>")
		return
	}
	v, err := nav.ParseView(args[0])
	if err != nil {
		fmt.Fprintf(b.out, "Error: %v\n", err)
		return
	}
	b.apply(nav.JumpTo(v))
}

func (b *Browser) cmdGoto(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(b.out, "Usage: goto <path>")
		return
	}
	next, err := b.env.Viewer.Resolver.State(args[0])
	if err != nil {
		fmt.Fprintf(b.out, "Error: %v\n", err)
		return
	}
	b.move("goto", next)
}

func (b *Browser) apply(a nav.Action) {
	next, err := nav.Apply(b.state, a)
	if err != nil {
		fmt.Fprintf(b.out, "Error: %v\n", err)
		return
	}
	b.move(a.Kind.String(), next)
}

// move switches to next and shows it. Unknown names leave the state
// unchanged; a register that cannot be laid out is still entered and its
// error shown in place of the diagram.
func (b *Browser) move(action string, next nav.State) {
	if _, err := b.env.Viewer.Browser.Render(next); errors.Is(err, browse.ErrNotFound) {
		fmt.Fprintf(b.out, "Error: %v\n", err)
		return
	}

	prev := b.state
	b.state = next
	b.env.Trace.Navigate(action, prev.View().String(), prev.Path(), next.View().String(), next.Path())
	b.show()
}

// children lists the names selectable from the current view.
func (b *Browser) children() []string {
	br := b.env.Viewer.Browser
	switch b.state.View() {
	case nav.ViewDashboard:
		return br.Index().GroupNames()
	case nav.ViewInstances:
		ps, _ := br.Index().Instances(b.state.Group())
		names := make([]string, len(ps))
		for i, p := range ps {
			names[i] = p.Name
		}
		return names
	case nav.ViewRegisters:
		p, ok := br.Dataset().Peripheral(b.state.Peripheral())
		if !ok {
			return nil
		}
		names := make([]string, len(p.Registers))
		for i, r := range p.Registers {
			names[i] = r.Name
		}
		return names
	default:
		return nil
	}
}

func (b *Browser) completer() *readline.PrefixCompleter {
	dynamic := readline.PcItemDynamic(func(string) []string { return b.children() })
	return readline.NewPrefixCompleter(
		readline.PcItem("cd", dynamic),
		readline.PcItem("open", dynamic),
		readline.PcItem("goto", readline.PcItemDynamic(func(string) []string {
			return b.env.Viewer.Browser.Dataset().Names()
		})),
		readline.PcItem("jump",
			readline.PcItem(nav.ViewDashboard.String()),
			readline.PcItem(nav.ViewInstances.String()),
			readline.PcItem(nav.ViewRegisters.String()),
		),
		readline.PcItem("ls"),
		readline.PcItem("back"),
		readline.PcItem("home"),
		readline.PcItem("pwd"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
