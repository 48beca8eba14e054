package frames

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

var npyMagic = []byte("\x93NUMPY\x01\x00")

// writeNPY writes values as a NumPy format 1.0 file: little-endian
// float32, C order, shape (rows, cols). The total header is padded to
// a multiple of 64 bytes per the format spec.
func writeNPY(path string, rows, cols int, values []float64) error {
	if rows*cols != len(values) {
		return fmt.Errorf("npy shape (%d, %d) does not match %d values", rows, cols, len(values))
	}

	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", rows, cols)
	pad := 64 - (len(npyMagic)+2+len(header)+1)%64
	if pad == 64 {
		pad = 0
	}
	header += strings.Repeat(" ", pad) + "\n"

	buf := &bytes.Buffer{}
	buf.Write(npyMagic)
	if err := binary.Write(buf, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	buf.WriteString(header)

	data := make([]float32, len(values))
	for i, v := range values {
		data[i] = float32(v)
	}
	if err := binary.Write(buf, binary.LittleEndian, data); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), imageFileMode)
}
