// Package readability counts sentences, words and syllables in text and
// derives readability scores from the counts: Flesch, Flesch-Kincaid, Fog
// and SMOG for English; Fernández Huerta, Flesch-Szigriszt and the Inflesz
// scale for Spanish.
package readability

import "math"

// Accumulator holds the running counts for one document or run. A word is
// counted only when it has at least one syllable, and a sentence only when
// it contains a counted word, so every score is defined whenever
// Syllables > 0.
type Accumulator struct {
	Sentences int `json:"sentences"`
	Words     int `json:"words"`
	Syllables int `json:"syllables"`
	HardWords int `json:"hard_words"` // words of more than two syllables
}

func (a Accumulator) empty() bool { return a.Syllables == 0 }

func (a Accumulator) syllablesPerWord() float64 {
	return float64(a.Syllables) / float64(a.Words)
}

func (a Accumulator) wordsPerSentence() float64 {
	return float64(a.Words) / float64(a.Sentences)
}

// FleschReadingEase returns 206.835 - 84.6*syl/word - 1.015*word/sentence.
func (a Accumulator) FleschReadingEase() float64 {
	if a.empty() {
		return 0
	}
	return 206.835 - 84.6*a.syllablesPerWord() - 1.015*a.wordsPerSentence()
}

// FleschKincaidGrade returns 0.39*word/sentence + 11.8*syl/word - 15.59.
func (a Accumulator) FleschKincaidGrade() float64 {
	if a.empty() {
		return 0
	}
	return 0.39*a.wordsPerSentence() + 11.8*a.syllablesPerWord() - 15.59
}

// GunningFog returns 0.4*(word/sentence + 100*hard/word).
func (a Accumulator) GunningFog() float64 {
	if a.empty() {
		return 0
	}
	return 0.4 * (a.wordsPerSentence() + 100*float64(a.HardWords)/float64(a.Words))
}

// SMOG returns 1.043*sqrt(30*hard/sentence) + 3.1291, or -1 when there are
// fewer than 30 sentences to sample.
func (a Accumulator) SMOG() float64 {
	if a.empty() {
		return 0
	}
	if a.Sentences < 30 {
		return -1
	}
	return 1.043*math.Sqrt(30*float64(a.HardWords)/float64(a.Sentences)) + 3.1291
}

// HuertaEase is Fernández Huerta's formula as published:
// 206.84 - 60*syl/word - 102*sentence/word.
func (a Accumulator) HuertaEase() float64 {
	if a.empty() {
		return 0
	}
	return 206.84 - 60*a.syllablesPerWord() - 102*float64(a.Sentences)/float64(a.Words)
}

// HuertaCorrected is Huerta's formula with the sentence term read as words
// per sentence, as in Flesch: 206.84 - 60*syl/word - 1.02*word/sentence.
func (a Accumulator) HuertaCorrected() float64 {
	if a.empty() {
		return 0
	}
	return 206.84 - 60*a.syllablesPerWord() - 1.02*a.wordsPerSentence()
}

// FleschSzigriszt returns the IFSZ clarity index:
// 206.835 - 62.3*syl/word - word/sentence.
func (a Accumulator) FleschSzigriszt() float64 {
	if a.empty() {
		return 0
	}
	return 206.835 - 62.3*a.syllablesPerWord() - a.wordsPerSentence()
}

// InfleszScale grades FleschSzigriszt on the Inflesz scale.
func (a Accumulator) InfleszScale() Inflesz {
	if a.empty() {
		return InfleszUndefined
	}
	return GradeInflesz(a.FleschSzigriszt())
}

// Scores is a snapshot of the counts and every score.
type Scores struct {
	Accumulator
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	GunningFog         float64 `json:"gunning_fog"`
	SMOG               float64 `json:"smog"`
	HuertaEase         float64 `json:"huerta_ease"`
	HuertaCorrected    float64 `json:"huerta_corrected"`
	FleschSzigriszt    float64 `json:"ifsz"`
	Inflesz            Inflesz `json:"inflesz"`
}

// Scores computes every score from a.
func (a Accumulator) Scores() Scores {
	return Scores{
		Accumulator:        a,
		FleschReadingEase:  a.FleschReadingEase(),
		FleschKincaidGrade: a.FleschKincaidGrade(),
		GunningFog:         a.GunningFog(),
		SMOG:               a.SMOG(),
		HuertaEase:         a.HuertaEase(),
		HuertaCorrected:    a.HuertaCorrected(),
		FleschSzigriszt:    a.FleschSzigriszt(),
		Inflesz:            a.InfleszScale(),
	}
}
