package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/regview/regview-go/pkg/periph"
)

// RunBundle converts a dataset into a single JSON or CBOR bundle. The
// format follows the output extension; "-" writes JSON to stdout. Unlike
// browsing, bundling fails on any file that does not parse.
func RunBundle(src, output string, stdout io.Writer) error {
	ds, err := periph.Load(src)
	if err != nil {
		return err
	}

	write := periph.WriteJSON
	switch strings.ToLower(filepath.Ext(output)) {
	case ".json":
	case ".cbor":
		write = periph.WriteCBOR
	default:
		if output != "-" {
			return fmt.Errorf("%w: %s (use .json or .cbor)", periph.ErrUnsupportedFormat, output)
		}
	}

	if output == "-" {
		return write(stdout, ds)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw, ds); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
