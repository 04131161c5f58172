package lattice

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned by Load when there is no lattice file.
var ErrNotFound = errors.New("lattice file not found")

const fieldsPerSample = 4

// Save writes every sample as four little-endian float32s (Entropy,
// MaxIntensity, Roll, Yaw) in index order. There is no header.
func (l *Lattice) Save(filename string) error {
	vals := make([]float32, 0, Size*fieldsPerSample)
	for _, m := range l.samples {
		vals = append(vals, m.Entropy, m.MaxIntensity, m.Roll, m.Yaw)
	}

	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer writer.Close()

	bw := bufio.NewWriter(writer)
	if err := binary.Write(bw, binary.LittleEndian, vals); err != nil {
		return fmt.Errorf("write '%s': %v", filename, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write '%s': %v", filename, err)
	}
	return writer.Close()
}

// Load reads a lattice written by Save.
func Load(filename string) (*Lattice, error) {
	reader, err := os.Open(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load '%s': %w", filename, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	vals := make([]float32, Size*fieldsPerSample)
	if err := binary.Read(bufio.NewReader(reader), binary.LittleEndian, vals); err != nil {
		return nil, fmt.Errorf("read '%s': %v", filename, err)
	}

	l := New()
	for i := range l.samples {
		v := vals[i*fieldsPerSample:]
		l.samples[i].Entropy = v[0]
		l.samples[i].MaxIntensity = v[1]
		l.samples[i].Roll = v[2]
		l.samples[i].Yaw = v[3]
	}
	return l, nil
}
