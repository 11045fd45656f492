// Package periph defines the peripheral data model shared by the classifier,
// the layout engine and the front-ends.
//
// A Dataset is the fully parsed description of one microcontroller: a mapping
// from peripheral name to Peripheral. Each Peripheral owns its registers and
// each Register owns its bit fields. The data is read-only once loaded.
//
// # Input Formats
//
// Datasets are loaded from:
//   - a directory of per-peripheral JSON files (one object per file)
//   - a JSON bundle keyed by peripheral name, optionally wrapped in the
//     "window.MCU_DATA = ...;" assignment emitted by browser bundlers
//   - the same bundle encoded as YAML
//   - a compact CBOR bundle written by WriteCBOR
//
// Use Load to dispatch on the path type.
package periph
