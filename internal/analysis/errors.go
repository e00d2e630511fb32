package analysis

import (
	"errors"
	"fmt"

	"github.com/labelwise/eatability/internal/completion"
	"github.com/labelwise/eatability/internal/images"
)

var (
	// ErrMalformed marks a response that is not the JSON shape asked for
	ErrMalformed = errors.New("malformed payload")
	// ErrNoInput marks a stage called with nothing to work on
	ErrNoInput = errors.New("no input")
)

// Kind tells callers whether a failure is worth retrying
type Kind int

const (
	KindUnknown Kind = iota
	KindInputMissing
	KindTransport
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindInputMissing:
		return "input_missing"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Stage names a pipeline step
type Stage string

const (
	StageExtract    Stage = "extract"
	StageAnalyze    Stage = "analyze"
	StageSynthesize Stage = "synthesize"
)

// StageError is returned by every stage
type StageError struct {
	Stage      Stage
	Ingredient Ingredient
	Kind       Kind
	Err        error
}

func (e *StageError) Error() string {
	if e.Ingredient != "" {
		return fmt.Sprintf("%s %q: %v", e.Stage, e.Ingredient, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func newStageError(stage Stage, ingredient Ingredient, err error) *StageError {
	return &StageError{
		Stage:      stage,
		Ingredient: ingredient,
		Kind:       KindOf(err),
		Err:        err,
	}
}

// KindOf classifies err
func KindOf(err error) Kind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	switch {
	case errors.Is(err, images.ErrInputMissing), errors.Is(err, ErrNoInput):
		return KindInputMissing
	case errors.Is(err, completion.ErrTransport):
		return KindTransport
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	default:
		return KindUnknown
	}
}

// Failure records an item the pipeline had to drop
type Failure struct {
	Stage      Stage      `json:"stage" yaml:"stage"`
	Ingredient Ingredient `json:"ingredient,omitempty" yaml:"ingredient,omitempty"`
	Kind       string     `json:"kind" yaml:"kind"`
	Error      string     `json:"error" yaml:"error"`
}

func failureFrom(err error) Failure {
	f := Failure{Kind: KindOf(err).String(), Error: err.Error()}
	var se *StageError
	if errors.As(err, &se) {
		f.Stage = se.Stage
		f.Ingredient = se.Ingredient
		f.Error = se.Err.Error()
	}
	return f
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
