package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/labelwise/eatability/internal/completion"
	"github.com/labelwise/eatability/internal/images"
)

type call struct {
	prompt string
	image  *images.Encoded
}

// fakeCompleter answers by prompt kind. Per-ingredient responses are looked
// up by the quoted ingredient name in the analysis prompt.
type fakeCompleter struct {
	mu sync.Mutex

	extraction  string
	analyses    map[string]string
	analysisErr map[string]error
	summary     string
	summaryErr  error

	calls []call
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, image *images.Encoded) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{prompt: prompt, image: image})

	switch {
	case image != nil:
		return f.extraction, nil
	case strings.Contains(prompt, "eatability"):
		return f.summary, f.summaryErr
	default:
		for name, err := range f.analysisErr {
			if strings.Contains(prompt, `Ingredient: "`+name+`"`) {
				return "", err
			}
		}
		for name, response := range f.analyses {
			if strings.Contains(prompt, `Ingredient: "`+name+`"`) {
				return response, nil
			}
		}
		return "", completion.ErrEmptyResponse
	}
}

// analysisPrompts returns the prompts of the per-ingredient calls in order
func (f *fakeCompleter) analysisPrompts() []string {
	var prompts []string
	for _, c := range f.calls {
		if c.image == nil && !strings.Contains(c.prompt, "eatability") {
			prompts = append(prompts, c.prompt)
		}
	}
	return prompts
}

func (f *fakeCompleter) summaryPrompt() string {
	for _, c := range f.calls {
		if strings.Contains(c.prompt, "eatability") {
			return c.prompt
		}
	}
	return ""
}

// countingPacer records how often it was waited on and the number of
// completion calls made before each wait
type countingPacer struct {
	client *fakeCompleter
	waits  int
	seen   []int
	err    error
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	if p.client != nil {
		p.seen = append(p.seen, len(p.client.calls))
	}
	if p.err != nil {
		return p.err
	}
	return ctx.Err()
}

var errServiceDown = errors.New("service down")

func analysisJSON(classification string) string {
	return `{"summary": "A common ingredient.", "classification": "` + classification + `", "details": "Fine in moderation."}`
}
