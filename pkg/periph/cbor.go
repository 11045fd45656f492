package periph

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// bundleEncMode encodes bundles deterministically so identical datasets
// produce identical files.
var bundleEncMode cbor.EncMode

var bundleDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	bundleEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create bundle CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	bundleDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create bundle CBOR decoder mode: %v", err))
	}
}

// WriteCBOR writes the dataset as a CBOR map keyed by peripheral name.
func WriteCBOR(w io.Writer, ds *Dataset) error {
	return bundleEncMode.NewEncoder(w).Encode(ds.byName)
}

// LoadCBOR reads a bundle written by WriteCBOR.
func LoadCBOR(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCBOR(data)
}

// ParseCBOR decodes a CBOR bundle.
func ParseCBOR(data []byte) (*Dataset, error) {
	var bundle map[string]*Peripheral
	if err := bundleDecMode.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing cbor bundle: %w", err)
	}
	return fromBundle(bundle)
}
