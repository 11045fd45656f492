package classify

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCategories is returned for malformed category tables.
var ErrInvalidCategories = errors.New("invalid category table")

// Category is a named display bucket with the group-name patterns it claims.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// DefaultCategories returns the category table for the i.MX RT106x family.
// Each call returns a fresh copy.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Core", Patterns: []string{"SystemControl", "NVIC", "MPU", "STIR", "SCB", "FPU"}},
		{Name: "System", Patterns: []string{"CCM", "CCM_ANALOG", "IOMUXC", "IOMUXC_GPR", "SNVS", "SRC", "GPC", "PMU", "TEMPMON", "XTALOSC24M", "OCOTP", "BEE", "DCP", "TRNG"}},
		{Name: "Memory", Patterns: []string{"SEMC", "FLEXSPI", "FLEXSPI2", "FLEXRAM", "ROMC"}},
		{Name: "DMA", Patterns: []string{"DMA0", "DMAMUX"}},
		{Name: "Analog", Patterns: []string{"ADC", "ADC_ETC", "CMP", "AOI", "XBARA", "XBARB", "ACMP"}},
		{Name: "Timers", Patterns: []string{"GPT", "PIT", "TMR", "PWM", "ENC", "EWM", "WDOG", "RTWDOG"}},
		{Name: "Display & Graphics", Patterns: []string{"LCDIF", "PXP", "CSI"}},
		{Name: "Connectivity", Patterns: []string{"LPUART", "LPI2C", "LPSPI", "FLEXIO", "USDHC", "ENET", "USB", "USBPHY", "USBNC", "CAN"}},
		{Name: "IO", Patterns: []string{"GPIO", "KPP"}},
		{Name: "Audio", Patterns: []string{"SAI", "SPDIF", "MQS"}},
	}
}

// ParseCategories parses an ordered YAML list of categories:
//
//	- name: Connectivity
//	  patterns: [LPUART, LPI2C]
func ParseCategories(data []byte) ([]Category, error) {
	var cats []Category
	if err := yaml.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}
	if err := validateCategories(cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// LoadCategories loads and parses a category table from a YAML file.
func LoadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCategories(data)
}

func validateCategories(cats []Category) error {
	seen := make(map[string]bool, len(cats))
	for i, c := range cats {
		if c.Name == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidCategories, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidCategories, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}
