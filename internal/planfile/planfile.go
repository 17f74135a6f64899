// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package planfile stores read and write plans as YAML so that a failing
// generated plan can be saved and replayed.
//
// Format:
//
//	seed: 42
//	read: [limited(3), wouldblock, unlimited]
//	write: [interrupted, limited(1)]
//
// Ops use the text form of partial.ParseOp.
package planfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"code.hybscloud.com/partial"
)

// File is one saved scenario.
type File struct {
	// Seed records the generator seed the plans came from, if any.
	Seed  uint64       `yaml:"seed,omitempty"`
	Read  []partial.Op `yaml:"read,flow"`
	Write []partial.Op `yaml:"write,flow"`
}

// Decode reads one File from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("planfile: %w", err)
	}
	return &f, nil
}

// Encode writes f to w.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("planfile: %w", err)
	}
	return enc.Close()
}

// Load reads the File at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(b))
}

// Save writes f to path, replacing it.
func Save(path string, f *File) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
