// Package commands implements the regview CLI commands.
package commands

import (
	"io"

	"github.com/regview/regview-go/internal/viewer"
	"github.com/regview/regview-go/pkg/classify"
	"github.com/regview/regview-go/pkg/inspect"
	"github.com/regview/regview-go/pkg/log"
	"github.com/regview/regview-go/pkg/nav"
)

// Env bundles the loaded dataset with output and tracing.
type Env struct {
	Viewer    *viewer.Viewer
	Formatter *inspect.Formatter
	Trace     *log.Session
}

// NewEnv creates an Env with the default formatter. A nil trace discards
// events.
func NewEnv(v *viewer.Viewer, trace *log.Session) *Env {
	if trace == nil {
		trace = log.NewSession(nil, "cli")
	}
	return &Env{Viewer: v, Formatter: inspect.NewFormatter(), Trace: trace}
}

// Show renders the page for s to w and records it in the trace.
func (e *Env) Show(w io.Writer, s nav.State) error {
	page, err := e.Viewer.Browser.Render(s)
	if err != nil {
		e.Trace.Error("render", s.Path(), err)
		return err
	}

	var segments, fields int
	if page.Detail != nil {
		segments, fields = len(page.Detail.Segments), len(page.Detail.Rows)
	}
	e.Trace.Render(s.View().String(), s.Path(), segments, fields)

	_, err = io.WriteString(w, e.Formatter.FormatPage(page))
	return err
}

// RunCategories prints the dashboard.
func RunCategories(env *Env, w io.Writer) error {
	return env.Show(w, nav.Dashboard())
}

// RunInstances prints the instances of a group.
func RunInstances(env *Env, group string, w io.Writer) error {
	g, err := env.Viewer.Resolver.Group(group)
	if err != nil {
		return err
	}
	return env.Show(w, nav.Instances(g))
}

// RunRegisters prints the register list of a peripheral.
func RunRegisters(env *Env, peripheral string, w io.Writer) error {
	p, err := env.Viewer.Resolver.Peripheral(peripheral)
	if err != nil {
		return err
	}
	return env.Show(w, nav.Registers(classify.GroupName(p), p.Name))
}

// RunDetail prints the bit diagram and field table of a register.
func RunDetail(env *Env, peripheral, register string, w io.Writer) error {
	p, err := env.Viewer.Resolver.Peripheral(peripheral)
	if err != nil {
		return err
	}
	reg, err := env.Viewer.Resolver.Register(p, register)
	if err != nil {
		return err
	}
	return env.Show(w, nav.Detail(classify.GroupName(p), p.Name, reg))
}
