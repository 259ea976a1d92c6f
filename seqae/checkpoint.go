// SPDX-License-Identifier: EPL-2.0

package seqae

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Checkpoint file layout, all little-endian:
//
//	magic "ASAE" | uint32 version | uint32 coeffs | uint32 hidden |
//	float64 parameters in the model's fixed order
const (
	checkpointMagic   = "ASAE"
	checkpointVersion = 1
)

// Save writes the model's parameters to w.
func (m *Model) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(checkpointMagic); err != nil {
		return fmt.Errorf("writing checkpoint header: %w", err)
	}
	for _, v := range []uint32{checkpointVersion, uint32(m.coeffs), uint32(m.hidden)} {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("writing checkpoint header: %w", err)
		}
	}
	for _, p := range m.params() {
		if err := binary.Write(bw, binary.LittleEndian, p); err != nil {
			return fmt.Errorf("writing checkpoint parameters: %w", err)
		}
	}

	return bw.Flush()
}

// SaveFile writes the model to path, truncating any existing file.
func (m *Model) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating checkpoint: %w", err)
	}
	if err := m.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadModel reconstructs a model from a checkpoint written by Save.
func LoadModel(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(checkpointMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("reading checkpoint header: %w", err)
	}
	if string(magic) != checkpointMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadCheckpoint, magic)
	}

	var version, coeffs, hidden uint32
	for _, dst := range []*uint32{&version, &coeffs, &hidden} {
		if err := binary.Read(br, binary.LittleEndian, dst); err != nil {
			return nil, fmt.Errorf("reading checkpoint header: %w", err)
		}
	}
	if version != checkpointVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadCheckpoint, version)
	}
	if coeffs == 0 || hidden == 0 {
		return nil, fmt.Errorf("%w: zero dimensions", ErrBadCheckpoint)
	}

	m := NewModel(int(coeffs), int(hidden), 0)
	for _, p := range m.params() {
		if err := binary.Read(br, binary.LittleEndian, p); err != nil {
			return nil, fmt.Errorf("%w: truncated parameters", ErrBadCheckpoint)
		}
	}

	return m, nil
}

// LoadModelFile reads a checkpoint from path.
func LoadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening checkpoint: %w", err)
	}
	defer f.Close()

	return LoadModel(f)
}
