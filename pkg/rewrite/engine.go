package rewrite

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 RuleMatch records how many spans a single rule rewrote in one file
type RuleMatch struct {
	// Rule is the rule name
	Rule string

	// Count is the number of spans rewritten
	Count int
}

// 📄 Result contains the outcome of rewriting one file's content
type Result struct {
	// OriginalContent is the content before any rule ran
	OriginalContent []byte

	// FixedContent is the content after all rules ran
	FixedContent []byte

	// Changed indicates the final content differs from the original
	Changed bool

	// Matches lists per-rule rewrite counts, in rule order, for rules
	// that matched at least once
	Matches []RuleMatch
}

// 🎯 Engine applies an ordered rule pipeline to file contents
type Engine struct {
	rules []Rule
}

// 🏭 NewEngine creates an engine with the default fix pipeline
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// 🏭 NewEngineWithRules creates an engine with a custom pipeline
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the pipeline in application order
func (e *Engine) Rules() []Rule {
	return e.rules
}

// 🏃 Rewrite applies every rule in order to the content and reports
// whether the final text differs from the original
func (e *Engine) Rewrite(ctx context.Context, content io.Reader) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: original,
	}

	current := string(original)
	for _, rule := range e.rules {
		next, count := rule.apply(current)
		if count > 0 {
			result.Matches = append(result.Matches, RuleMatch{Rule: rule.Name, Count: count})
			logger.Debug().
				Str("rule", rule.Name).
				Int("count", count).
				Msg("rule matched")
		}
		current = next
	}

	result.FixedContent = []byte(current)
	result.Changed = !bytes.Equal(result.FixedContent, original)
	return result, nil
}

// ✅ ValidateRules checks that every rule in the pipeline is well-formed
func (e *Engine) ValidateRules() error {
	for i, rule := range e.rules {
		if rule.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if rule.Pattern == nil {
			return errors.Errorf("rule %d (%s): pattern is required", i, rule.Name)
		}
		if rule.Template == "" && rule.Replace == nil {
			return errors.Errorf("rule %d (%s): template or replace func is required", i, rule.Name)
		}
	}
	return nil
}
