package periph

import "sort"

// Peripheral is one memory-mapped hardware module instance (e.g. LPUART1).
type Peripheral struct {
	Name         string        `json:"name" yaml:"name"`
	GroupName    string        `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	BaseAddress  string        `json:"baseAddress,omitempty" yaml:"baseAddress,omitempty"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	AddressBlock *AddressBlock `json:"addressBlock,omitempty" yaml:"addressBlock,omitempty"`
	Registers    []Register    `json:"registers,omitempty" yaml:"registers,omitempty"`
}

// AddressBlock describes the address window of a peripheral.
// Values are kept as the source strings.
type AddressBlock struct {
	Offset string `json:"offset,omitempty" yaml:"offset,omitempty"`
	Size   string `json:"size,omitempty" yaml:"size,omitempty"`
	Usage  string `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// Register is a named, offset-addressed word within a peripheral.
type Register struct {
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
	AddressOffset uint32  `json:"addressOffset" yaml:"addressOffset"`
	Size          uint32  `json:"size,omitempty" yaml:"size,omitempty"` // bits, 0 = default word width
	Access        string  `json:"access,omitempty" yaml:"access,omitempty"`
	ResetValue    string  `json:"resetValue,omitempty" yaml:"resetValue,omitempty"`
	ResetMask     string  `json:"resetMask,omitempty" yaml:"resetMask,omitempty"`
	Fields        []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field is a named bit range within a register.
type Field struct {
	Name             string            `json:"name" yaml:"name"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	BitOffset        int               `json:"bitOffset" yaml:"bitOffset"`
	BitWidth         int               `json:"bitWidth" yaml:"bitWidth"`
	Access           string            `json:"access,omitempty" yaml:"access,omitempty"`
	ReadAction       string            `json:"readAction,omitempty" yaml:"readAction,omitempty"`
	EnumeratedValues []EnumeratedValue `json:"enumeratedValues,omitempty" yaml:"enumeratedValues,omitempty"`
}

// MSB returns the most significant bit index of the field.
func (f Field) MSB() int {
	return f.BitOffset + f.BitWidth - 1
}

// EnumeratedValue names one value of a field. Value is nil when the source
// did not declare a parsable value.
type EnumeratedValue struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Value       *int64 `json:"value" yaml:"value"`
}

// Dataset is the full set of peripherals of one device, keyed by name.
type Dataset struct {
	byName map[string]*Peripheral
}

// NewDataset builds a dataset from the given peripherals.
// A later peripheral with the same name replaces an earlier one.
func NewDataset(peripherals ...*Peripheral) *Dataset {
	ds := &Dataset{byName: make(map[string]*Peripheral, len(peripherals))}
	for _, p := range peripherals {
		if p == nil {
			continue
		}
		ds.byName[p.Name] = p
	}
	return ds
}

// Len returns the number of peripherals.
func (d *Dataset) Len() int {
	return len(d.byName)
}

// Peripheral looks up a peripheral by name.
func (d *Dataset) Peripheral(name string) (*Peripheral, bool) {
	p, ok := d.byName[name]
	return p, ok
}

// Names returns all peripheral names in ordinal order.
func (d *Dataset) Names() []string {
	names := make([]string, 0, len(d.byName))
	for name := range d.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Peripherals returns all peripherals ordered by name.
func (d *Dataset) Peripherals() []*Peripheral {
	names := d.Names()
	out := make([]*Peripheral, len(names))
	for i, name := range names {
		out[i] = d.byName[name]
	}
	return out
}

// Register looks up a register of the peripheral by name.
func (p *Peripheral) Register(name string) (*Register, bool) {
	for i := range p.Registers {
		if p.Registers[i].Name == name {
			return &p.Registers[i], true
		}
	}
	return nil, false
}
