// Package bloom implements the approximate-membership filter used to
// correct syllable estimates. Probe positions come from double hashing
// with CRC-32 (IEEE) and Adler-32 so a filter built in one process can be
// queried bit-for-bit identically in another.
package bloom

import (
	"encoding/base64"
	"errors"
	"fmt"
	"hash/adler32"
	"hash/crc32"
	"math/bits"
	"strings"
)

// Multipliers applied to the two hashes before reducing modulo the bin
// count. Changing them invalidates every serialized filter.
const (
	Prime1 = 13
	Prime2 = 11
)

// ErrFilterDataCorrupt reports filter parameters or bit data that cannot
// describe a valid filter.
var ErrFilterDataCorrupt = errors.New("filter data corrupt")

// Filter is a fixed-size Bloom filter. A loaded filter is read-only and
// safe for concurrent Contains calls.
type Filter struct {
	numBins   int
	numProbes int
	array     []byte
}

// New returns an empty filter with numBins bits and numProbes probes per key.
func New(numBins, numProbes int) (*Filter, error) {
	if numBins <= 0 || numProbes <= 0 {
		return nil, fmt.Errorf("%w: num_bins=%d num_probes=%d", ErrFilterDataCorrupt, numBins, numProbes)
	}
	return &Filter{
		numBins:   numBins,
		numProbes: numProbes,
		array:     make([]byte, (numBins+7)/8),
	}, nil
}

// Load builds a filter from its persisted triple. The bit array must
// cover at least numBins bits; extra trailing bytes are ignored.
func Load(numBins, numProbes int, array []byte) (*Filter, error) {
	if numBins <= 0 || numProbes <= 0 {
		return nil, fmt.Errorf("%w: num_bins=%d num_probes=%d", ErrFilterDataCorrupt, numBins, numProbes)
	}
	if len(array)*8 < numBins {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d bins", ErrFilterDataCorrupt, len(array), numBins)
	}
	buf := make([]byte, len(array))
	copy(buf, array)
	return &Filter{numBins: numBins, numProbes: numProbes, array: buf}, nil
}

// LoadBase64 is Load with the bit array given in standard base64.
func LoadBase64(numBins, numProbes int, encoded string) (*Filter, error) {
	array, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: decode bits: %v", ErrFilterDataCorrupt, err)
	}
	return Load(numBins, numProbes, array)
}

// NumBins returns the size of the bit array in bits.
func (f *Filter) NumBins() int { return f.numBins }

// NumProbes returns the number of bits tested per key.
func (f *Filter) NumProbes() int { return f.numProbes }

// Bytes returns a copy of the bit array.
func (f *Filter) Bytes() []byte {
	out := make([]byte, len(f.array))
	copy(out, f.array)
	return out
}

// Base64 returns the bit array in standard padded base64.
func (f *Filter) Base64() string {
	return base64.StdEncoding.EncodeToString(f.array)
}

// Add inserts key. Only offline builders call it.
func (f *Filter) Add(key string) {
	f.probe(key, func(i int) bool {
		f.array[i>>3] |= 1 << (i & 7)
		return true
	})
}

// AddAll inserts every key.
func (f *Filter) AddAll(keys []string) {
	for _, k := range keys {
		f.Add(k)
	}
}

// Contains reports whether key may be in the set. It never returns false
// for an inserted key.
func (f *Filter) Contains(key string) bool {
	if f == nil {
		return false
	}
	found := true
	f.probe(key, func(i int) bool {
		if f.array[i>>3]&(1<<(i&7)) == 0 {
			found = false
		}
		return found
	})
	return found
}

// Probes returns the bit positions tested for key, in probe order.
func (f *Filter) Probes(key string) []int {
	out := make([]int, 0, f.numProbes)
	f.probe(key, func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// probe walks the probe sequence h, h-step, h-2*step, ... and stops early
// when visit returns false.
func (f *Filter) probe(key string, visit func(int) bool) {
	b := []byte(strings.ToLower(key))
	n := uint64(f.numBins)
	h := int64(uint64(crc32.ChecksumIEEE(b)) * Prime1 % n)
	step := int64(uint64(adler32.Checksum(b)) * Prime2 % n)
	for range f.numProbes {
		if !visit(int(h)) {
			return
		}
		h -= step
		if h < 0 {
			h += int64(n)
		}
	}
}

// BinsSet returns the number of set bits.
func (f *Filter) BinsSet() int {
	total := 0
	for _, b := range f.array {
		total += bits.OnesCount8(b)
	}
	return total
}

// Density returns the fraction of bins set, in [0, 1].
func (f *Filter) Density() float64 {
	return float64(f.BinsSet()) / float64(f.numBins)
}
