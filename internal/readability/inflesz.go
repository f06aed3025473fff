package readability

import "fmt"

// Inflesz is a grade on the Inflesz scale for Spanish text.
type Inflesz int

const (
	InfleszUndefined Inflesz = iota
	InfleszVeryDifficult
	InfleszSomewhatDifficult
	InfleszNormal
	InfleszQuiteEasy
	InfleszVeryEasy
)

var infleszNames = [...]string{
	InfleszUndefined:         "UNDEFINED",
	InfleszVeryDifficult:     "very difficult",
	InfleszSomewhatDifficult: "somewhat difficult",
	InfleszNormal:            "normal",
	InfleszQuiteEasy:         "quite easy",
	InfleszVeryEasy:          "very easy",
}

// GradeInflesz maps an IFSZ score to its band: below 40 very difficult,
// up to 55 somewhat difficult, up to 65 normal, up to 80 quite easy,
// above that very easy.
func GradeInflesz(ifsz float64) Inflesz {
	switch {
	case ifsz < 40:
		return InfleszVeryDifficult
	case ifsz <= 55:
		return InfleszSomewhatDifficult
	case ifsz <= 65:
		return InfleszNormal
	case ifsz <= 80:
		return InfleszQuiteEasy
	}
	return InfleszVeryEasy
}

func (g Inflesz) String() string {
	if g < 0 || int(g) >= len(infleszNames) {
		return fmt.Sprintf("Inflesz(%d)", int(g))
	}
	return infleszNames[g]
}

// MarshalText encodes the grade by name.
func (g Inflesz) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText accepts the names produced by String.
func (g *Inflesz) UnmarshalText(b []byte) error {
	for i, name := range infleszNames {
		if name == string(b) {
			*g = Inflesz(i)
			return nil
		}
	}
	return fmt.Errorf("unknown inflesz grade %q", b)
}
