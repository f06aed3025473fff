package bloom

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
)

func TestProbes_MatchReferenceVectors(t *testing.T) {
	// Vectors computed with zlib crc32/adler32 so that filters built by
	// other runtimes probe identical bits.
	tests := []struct {
		key    string
		bins   int
		probes int
		want   []int
	}{
		{"hello", 101, 4, []int{1, 100, 98, 96}},
		{"Syllable", 97, 3, []int{55, 14, 70}},
		{"area", 64, 3, []int{8, 42, 12}},
		{"idea", 64, 3, []int{1, 37, 9}},
		{"poem", 64, 3, []int{18, 44, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f, err := New(tt.bins, tt.probes)
			if err != nil {
				t.Fatal(err)
			}
			got := f.Probes(tt.key)
			if len(got) != len(tt.want) {
				t.Fatalf("Probes(%q) = %v, want %v", tt.key, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Probes(%q) = %v, want %v", tt.key, got, tt.want)
				}
			}
		})
	}
}

func TestLoadBase64_ReferenceFilter(t *testing.T) {
	// Built offline from {"area", "idea", "poem"} with 64 bins, 3 probes.
	f, err := LoadBase64(64, 3, "QhMEACAUAAA=")
	if err != nil {
		t.Fatalf("LoadBase64: %v", err)
	}
	for _, w := range []string{"area", "idea", "poem", "AREA", "Poem"} {
		if !f.Contains(w) {
			t.Errorf("Contains(%q) = false, want true", w)
		}
	}

	built, _ := New(64, 3)
	built.AddAll([]string{"area", "idea", "poem"})
	if built.Base64() != "QhMEACAUAAA=" {
		t.Errorf("Base64() = %q, want %q", built.Base64(), "QhMEACAUAAA=")
	}
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name   string
		bins   int
		probes int
		bits   string
	}{
		{"zero bins", 0, 3, "AAAA"},
		{"negative probes", 16, -1, "AAAA"},
		{"short array", 64, 3, "AAAA"},
		{"bad base64", 8, 1, "not base64!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBase64(tt.bins, tt.probes, tt.bits)
			if !errors.Is(err, ErrFilterDataCorrupt) {
				t.Fatalf("err = %v, want ErrFilterDataCorrupt", err)
			}
		})
	}
}

func TestLoad_CopiesInput(t *testing.T) {
	raw := make([]byte, 2)
	f, err := Load(16, 2, raw)
	if err != nil {
		t.Fatal(err)
	}
	raw[0] = 0xff
	if f.BinsSet() != 0 {
		t.Errorf("filter changed after caller mutated its slice")
	}
}

func TestContains_NilFilter(t *testing.T) {
	var f *Filter
	if f.Contains("anything") {
		t.Error("nil filter should contain nothing")
	}
}

func randomWord(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + r.Intn(26))
	}
	return string(b)
}

func TestBuild_NoFalseNegatives(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	keys := make([]string, 500)
	for i := range keys {
		keys[i] = randomWord(r, 3+r.Intn(8))
	}
	f, err := Build(keys, 0.001)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, k := range keys {
		if !f.Contains(k) {
			t.Fatalf("inserted key %q not found", k)
		}
	}
}

func TestBuild_FalsePositiveRate(t *testing.T) {
	const (
		numKeys = 2000
		trials  = 20000
		p       = 0.01
	)
	r := rand.New(rand.NewSource(42))
	keys := make([]string, numKeys)
	for i := range keys {
		keys[i] = randomWord(r, 8)
	}
	f, err := Build(keys, p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Nine-letter strings can never be one of the eight-letter keys.
	hits := 0
	for range trials {
		if f.Contains(randomWord(r, 9)) {
			hits++
		}
	}
	rate := float64(hits) / trials
	if rate > 3*p {
		t.Errorf("false positive rate %.4f exceeds 3x target %.4f", rate, p)
	}
}

func TestParams(t *testing.T) {
	bins, probes := Params(2000, 0.01)
	// round(2000 * ln(100) / ln(2)^2) = 19170; next prime is 19181.
	if bins != 19181 {
		t.Errorf("bins = %d, want 19181", bins)
	}
	if probes != 7 {
		t.Errorf("probes = %d, want 7", probes)
	}
	if !isPrime(bins) {
		t.Errorf("bins %d is not prime", bins)
	}
}

func TestNextPrime(t *testing.T) {
	tests := map[int]int{0: 3, 2: 3, 3: 5, 13: 17, 14: 17, 100: 101}
	for in, want := range tests {
		if got := nextPrime(in); got != want {
			t.Errorf("nextPrime(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestOptimalProbes_AtLeastOne(t *testing.T) {
	if got := OptimalProbes(10, 1000); got != 1 {
		t.Errorf("OptimalProbes(10, 1000) = %d, want 1", got)
	}
}

func TestDensity(t *testing.T) {
	f, _ := New(16, 1)
	f.array[0] = 0x0f
	if f.BinsSet() != 4 {
		t.Errorf("BinsSet = %d, want 4", f.BinsSet())
	}
	if f.Density() != 0.25 {
		t.Errorf("Density = %f, want 0.25", f.Density())
	}
}

func TestFile_RoundTrip(t *testing.T) {
	under, _ := Build([]string{"area", "idea"}, 0.01)
	over, _ := Build([]string{"phoebe"}, 0.01)
	path := filepath.Join(t.TempDir(), "filters.yml")

	if err := (&Set{Undercount: under, Overcount: over}).WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !s.Undercount.Contains("idea") || !s.Overcount.Contains("phoebe") {
		t.Error("loaded filters lost keys")
	}
	if s.Undercount.NumBins() != under.NumBins() || s.Overcount.NumProbes() != over.NumProbes() {
		t.Error("loaded filters changed shape")
	}
}

func TestDecode_RejectsUnknownVersion(t *testing.T) {
	data := []byte("version: 2\nundercount: {num_bins: 8, num_probes: 1, bits: AA==}\novercount: {num_bins: 8, num_probes: 1, bits: AA==}\n")
	if _, err := Decode(data); !errors.Is(err, ErrFilterDataCorrupt) {
		t.Fatalf("err = %v, want ErrFilterDataCorrupt", err)
	}
}

func TestDecode_CorruptFilter(t *testing.T) {
	data := []byte("version: 1\nundercount: {num_bins: 64, num_probes: 1, bits: AA==}\novercount: {num_bins: 8, num_probes: 1, bits: AA==}\n")
	if _, err := Decode(data); !errors.Is(err, ErrFilterDataCorrupt) {
		t.Fatalf("err = %v, want ErrFilterDataCorrupt", err)
	}
}
