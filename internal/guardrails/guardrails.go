package guardrails

import (
	"context"
	"fmt"
)

// Result holds the outcome of a check.
type Result struct {
	Allowed bool     `json:"allowed"`
	Flags   []string `json:"flags,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// Guardrail is a check applied to generated text.
type Guardrail interface {
	Check(ctx context.Context, text string) (*Result, error)
	Name() string
}

// Pipeline chains guardrails and merges their results.
type Pipeline struct {
	guards []Guardrail
}

func NewPipeline(guards ...Guardrail) *Pipeline {
	return &Pipeline{guards: guards}
}

func (p *Pipeline) Add(g Guardrail) {
	p.guards = append(p.guards, g)
}

// Check runs every guardrail. The text is allowed only if all of them allow it.
func (p *Pipeline) Check(ctx context.Context, text string) (*Result, error) {
	combined := &Result{Allowed: true}

	for _, g := range p.guards {
		result, err := g.Check(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("guardrail %s: %w", g.Name(), err)
		}
		if !result.Allowed {
			combined.Allowed = false
			combined.Reason = fmt.Sprintf("blocked by %s: %s", g.Name(), result.Reason)
		}
		combined.Flags = append(combined.Flags, result.Flags...)
	}

	return combined, nil
}

// SpeechPipeline flags rally speeches that drift from the delivery rules given
// to the model. None of its checks block.
func SpeechPipeline(cue string, maxStyleTags, minWords, maxWords int) *Pipeline {
	return NewPipeline(
		NewStyleTagBudget(cue, maxStyleTags),
		NewArtifactDetector(),
		NewCloserCheck(),
		NewLengthCheck(minWords, maxWords),
	)
}
