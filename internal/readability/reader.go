package readability

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/rcliao/readability/internal/bloom"
	"github.com/rcliao/readability/internal/sentence"
	"github.com/rcliao/readability/internal/syllable"
	"github.com/rcliao/readability/internal/tokenize"
)

// ErrInvalidInput is returned for input that is not Unicode text.
var ErrInvalidInput = errors.New("readability: invalid input")

// Options configures a Reader.
type Options struct {
	Language syllable.Language
	// CountSyllables enables the syllable estimator. Without it every
	// word-slot token counts as a word and no scores are available.
	CountSyllables bool
	// Annotate rewrites each counted word in the returned sentences using
	// Annotation (DefaultAnnotation when empty).
	Annotate   bool
	Annotation string
	// Sentences makes Read return the sentences it found.
	Sentences bool
	// Normalize converts input to NFC before tokenizing, so decomposed
	// accents count as letters. Returned sentences reproduce the
	// normalized text.
	Normalize bool
	// Filters corrects the estimator; nil leaves counts uncorrected.
	Filters *bloom.Set
	// Estimator replaces the language's built-in estimator.
	Estimator syllable.Estimator
	// Abbreviations replaces the detector's built-in tables.
	Abbreviations *sentence.Abbreviations
	// Tally, when set, receives every word-slot and separator token.
	Tally *Tally
}

// DefaultOptions returns English with syllable counting and normalization.
func DefaultOptions() Options {
	return Options{
		Language:       syllable.English,
		CountSyllables: true,
		Normalize:      true,
	}
}

// Reader reads text into an Accumulator. Counts accumulate across calls
// to Read; use a new Reader per document. A Reader is not safe for
// concurrent use.
type Reader struct {
	opts     Options
	acc      Accumulator
	detector *sentence.Detector
	est      syllable.Estimator
	annotate annotator
}

// NewReader returns a Reader for opts.
func NewReader(opts Options) *Reader {
	r := &Reader{
		opts:     opts,
		detector: sentence.NewDetector(opts.Abbreviations),
	}
	if opts.CountSyllables {
		r.est = opts.Estimator
		if r.est == nil {
			r.est = syllable.NewCounter(opts.Language, opts.Filters)
		}
		if opts.Annotate {
			r.annotate = newAnnotator(opts.Annotation)
		}
	}
	return r
}

// Stats returns the counts so far.
func (r *Reader) Stats() Accumulator { return r.acc }

// Scores returns every score for the counts so far.
func (r *Reader) Scores() Scores { return r.acc.Scores() }

// ReadValue reads a string or a slice of strings. Any other type,
// including raw bytes, is rejected with ErrInvalidInput.
func (r *Reader) ReadValue(v any) ([]sentence.Sentence, error) {
	switch v := v.(type) {
	case string:
		return r.Read([]string{v})
	case []string:
		return r.Read(v)
	}
	return nil, fmt.Errorf("%w: expected string or []string, got %T", ErrInvalidInput, v)
}

// Read processes each text chunk in turn, typically one per paragraph.
// Sentences are returned only when Options.Sentences is set.
func (r *Reader) Read(texts []string) ([]sentence.Sentence, error) {
	var all []sentence.Sentence
	for i, text := range texts {
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("%w: chunk %d is not valid UTF-8", ErrInvalidInput, i)
		}
		if r.opts.Normalize {
			text = norm.NFC.String(text)
		}
		sentences, err := r.detector.Split(tokenize.Split(text))
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		for _, s := range sentences {
			r.count(s)
		}
		if r.opts.Sentences {
			all = append(all, sentences...)
		}
	}
	return all, nil
}

func (r *Reader) count(s sentence.Sentence) {
	before := r.acc.Words
	for k, tok := range s {
		if k%2 == 0 {
			r.opts.Tally.AddSeparator(tok)
			continue
		}
		r.opts.Tally.AddWord(tok)
		if r.est == nil {
			r.acc.Words++
			continue
		}
		n := r.est.Count(tok)
		if n == 0 {
			continue
		}
		r.acc.Syllables += n
		r.acc.Words++
		if n > 2 {
			r.acc.HardWords++
		}
		if r.annotate != nil {
			s[k] = r.annotate(tok, n)
		}
	}
	if r.acc.Words > before {
		r.acc.Sentences++
	}
}
