package bloom

import "math"

// Params returns the bin and probe counts for a filter holding numKeys
// keys with false-positive probability near p. The bin count is moved up
// to the next prime, which spreads the double-hashing step better.
func Params(numKeys int, p float64) (numBins, numProbes int) {
	if numKeys < 1 {
		numKeys = 1
	}
	ln2 := math.Ln2
	numBins = int(math.Round(-float64(numKeys) * math.Log(p) / (ln2 * ln2)))
	numBins = nextPrime(numBins)
	numProbes = OptimalProbes(numBins, numKeys)
	return numBins, numProbes
}

// OptimalProbes returns round(ln2 * numBins / numKeys), at least 1.
func OptimalProbes(numBins, numKeys int) int {
	if numKeys < 1 {
		numKeys = 1
	}
	k := int(math.Round(math.Ln2 * float64(numBins) / float64(numKeys)))
	if k < 1 {
		k = 1
	}
	return k
}

// Build sizes a filter for keys and inserts all of them.
func Build(keys []string, p float64) (*Filter, error) {
	numBins, numProbes := Params(len(keys), p)
	f, err := New(numBins, numProbes)
	if err != nil {
		return nil, err
	}
	f.AddAll(keys)
	return f, nil
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for k := 3; k*k <= n; k += 2 {
		if n%k == 0 {
			return false
		}
	}
	return true
}

// nextPrime returns the smallest prime strictly greater than n.
func nextPrime(n int) int {
	if n < 2 {
		n = 2
	}
	n++
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}
