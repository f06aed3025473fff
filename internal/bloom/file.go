package bloom

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FormatVersion identifies the hash functions, multipliers and bit order
// a persisted filter was built with.
const FormatVersion = 1

// HashName documents FormatVersion inside the persisted file.
const HashName = "crc32-ieee*13/adler32*11"

// Data is the persisted triple for one filter.
type Data struct {
	NumBins   int    `yaml:"num_bins" json:"num_bins"`
	NumProbes int    `yaml:"num_probes" json:"num_probes"`
	Bits      string `yaml:"bits" json:"bits"`
}

// File is the on-disk layout holding both correction filters.
type File struct {
	Version    int    `yaml:"version" json:"version"`
	Hash       string `yaml:"hash,omitempty" json:"hash,omitempty"`
	Undercount Data   `yaml:"undercount" json:"undercount"`
	Overcount  Data   `yaml:"overcount" json:"overcount"`
}

// Set is the pair of loaded correction filters. Undercount holds words
// the heuristic counts one syllable short; Overcount holds words it counts
// one syllable long.
type Set struct {
	Undercount *Filter
	Overcount  *Filter
}

// Data returns the persisted triple for f.
func (f *Filter) Data() Data {
	return Data{NumBins: f.numBins, NumProbes: f.numProbes, Bits: f.Base64()}
}

// Filter decodes d.
func (d Data) Filter() (*Filter, error) {
	return LoadBase64(d.NumBins, d.NumProbes, d.Bits)
}

// Decode parses a persisted filter file.
func Decode(data []byte) (*Set, error) {
	var fl File
	if err := yaml.Unmarshal(data, &fl); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrFilterDataCorrupt, err)
	}
	if fl.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFilterDataCorrupt, fl.Version)
	}
	under, err := fl.Undercount.Filter()
	if err != nil {
		return nil, fmt.Errorf("undercount: %w", err)
	}
	over, err := fl.Overcount.Filter()
	if err != nil {
		return nil, fmt.Errorf("overcount: %w", err)
	}
	return &Set{Undercount: under, Overcount: over}, nil
}

// Encode serializes s in the persisted layout.
func (s *Set) Encode() ([]byte, error) {
	if s == nil || s.Undercount == nil || s.Overcount == nil {
		return nil, fmt.Errorf("encode filters: both filters are required")
	}
	fl := File{
		Version:    FormatVersion,
		Hash:       HashName,
		Undercount: s.Undercount.Data(),
		Overcount:  s.Overcount.Data(),
	}
	b, err := yaml.Marshal(&fl)
	if err != nil {
		return nil, fmt.Errorf("encode filters: %w", err)
	}
	return b, nil
}

// LoadFile reads and decodes a persisted filter file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter file: %w", err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile encodes s to path.
func (s *Set) WriteFile(path string) error {
	b, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing filter file: %w", err)
	}
	return nil
}
