package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/regview/regview-go/pkg/classify"
	"github.com/regview/regview-go/pkg/nav"
	"github.com/regview/regview-go/pkg/periph"
)

// Resolver errors.
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrPeripheralNotFound = errors.New("peripheral not found")
	ErrRegisterNotFound   = errors.New("register not found")
)

// Resolver maps typed names to the canonical spelling in a dataset.
type Resolver struct {
	ds    *periph.Dataset
	index *classify.Index
}

// NewResolver creates a Resolver over a dataset and its group index.
func NewResolver(ds *periph.Dataset, index *classify.Index) *Resolver {
	return &Resolver{ds: ds, index: index}
}

// resolve returns the exact match if present, otherwise the unique
// case-insensitive match.
func resolve(name string, candidates []string) (string, bool) {
	var found []string
	for _, c := range candidates {
		if c == name {
			return c, true
		}
		if strings.EqualFold(c, name) {
			found = append(found, c)
		}
	}
	if len(found) == 1 {
		return found[0], true
	}
	return "", false
}

// Group resolves a group name.
func (r *Resolver) Group(name string) (string, error) {
	if g, ok := resolve(name, r.index.GroupNames()); ok {
		return g, nil
	}
	return "", fmt.Errorf("%w: %s", ErrGroupNotFound, name)
}

// Peripheral resolves a peripheral instance name.
func (r *Resolver) Peripheral(name string) (*periph.Peripheral, error) {
	if n, ok := resolve(name, r.ds.Names()); ok {
		p, _ := r.ds.Peripheral(n)
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrPeripheralNotFound, name)
}

// Register resolves a register name within a peripheral.
func (r *Resolver) Register(p *periph.Peripheral, name string) (string, error) {
	names := make([]string, len(p.Registers))
	for i, reg := range p.Registers {
		names[i] = reg.Name
	}
	if n, ok := resolve(name, names); ok {
		return n, nil
	}
	return "", fmt.Errorf("%w: %s.%s", ErrRegisterNotFound, p.Name, name)
}

// State resolves a "GROUP/PERIPHERAL/REGISTER" path into a navigation
// state. The group may be omitted when the first component names a
// peripheral ("gpio1/dr").
func (r *Resolver) State(path string) (nav.State, error) {
	s, err := nav.ParsePath(path)
	if err != nil {
		return nav.State{}, err
	}
	if s.View() == nav.ViewDashboard {
		return s, nil
	}

	group, gerr := r.Group(s.Group())
	if gerr != nil {
		// Shorthand without the group component.
		p, perr := r.Peripheral(s.Group())
		if perr != nil || s.View() == nav.ViewDetail {
			return nav.State{}, gerr
		}
		return r.fromPeripheral(p, s.Peripheral())
	}

	if s.View() == nav.ViewInstances {
		return nav.Instances(group), nil
	}

	p, err := r.Peripheral(s.Peripheral())
	if err != nil {
		return nav.State{}, err
	}
	if classify.GroupName(p) != group {
		return nav.State{}, fmt.Errorf("%w: %s in group %s", ErrPeripheralNotFound, p.Name, group)
	}
	return r.fromPeripheral(p, s.Register())
}

func (r *Resolver) fromPeripheral(p *periph.Peripheral, register string) (nav.State, error) {
	group := classify.GroupName(p)
	if register == "" {
		return nav.Registers(group, p.Name), nil
	}
	reg, err := r.Register(p, register)
	if err != nil {
		return nav.State{}, err
	}
	return nav.Detail(group, p.Name, reg), nil
}
