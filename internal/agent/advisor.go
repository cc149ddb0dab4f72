// Package agent builds decision requests from pipeline output, sends them to a
// language model and decodes the structured reply.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/ambient-finance/internal/llm"
	"github.com/Dan9191/ambient-finance/internal/models"
)

// InvalidJSONError is the error text of a decision whose model output could not be decoded
const InvalidJSONError = "Model did not return valid JSON"

// RateSource supplies an optional benchmark interest rate for the prompt
type RateSource interface {
	KeyRate(ctx context.Context) (float64, error)
}

// Advisor sends one decision request per call to a Generator
type Advisor struct {
	gen   llm.Generator
	rates RateSource
	log   *logrus.Logger
}

// NewAdvisor creates an advisor. rates may be nil.
func NewAdvisor(gen llm.Generator, rates RateSource, log *logrus.Logger) *Advisor {
	return &Advisor{gen: gen, rates: rates, log: log}
}

// Decide builds the prompt from snap and question, calls the model once and decodes the reply.
// Decode failures come back as an error decision, not as an error. The question and raw reply
// are appended to session after the model answers.
func (a *Advisor) Decide(ctx context.Context, session *Session, snap models.Snapshot, question string) (models.Decision, error) {
	if session == nil {
		session = NewSession()
	}

	in := promptInput{Snapshot: snap, Question: question}
	if a.rates != nil {
		rate, err := a.rates.KeyRate(ctx)
		if err != nil {
			a.log.Warnf("Key rate unavailable, omitting from prompt: %v", err)
		} else {
			in.KeyRate = &rate
		}
	}

	messages := make([]models.Message, 0, session.Len()+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, session.History()...)
	messages = append(messages, models.Message{Role: models.RoleUser, Content: buildUserPrompt(in)})

	raw, err := a.gen.Generate(ctx, messages)
	if err != nil {
		return models.Decision{}, fmt.Errorf("failed to generate decision: %w", err)
	}

	decision := ParseDecision(raw)
	if decision.Failed() {
		a.log.Warnf("Session %s: model returned non-JSON output (%d bytes)", session.ID, len(raw))
	} else {
		a.log.Infof("Session %s: recommendation %q score %.0f", session.ID,
			decision.Assessment.Recommendation, decision.Assessment.RecommendationScore)
	}

	session.Append(
		models.Message{Role: models.RoleUser, Content: question},
		models.Message{Role: models.RoleAssistant, Content: raw},
	)
	return decision, nil
}

// ParseDecision decodes a model reply into the six-field assessment, or an error record carrying the raw text.
// Any JSON object is accepted; fields of the wrong type are left empty.
func ParseDecision(raw string) models.Decision {
	body := stripCodeFence(strings.TrimSpace(raw))
	if !strings.HasPrefix(body, "{") {
		return invalid(raw)
	}

	var assessment models.Assessment
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal([]byte(body), &assessment); err != nil && !errors.As(err, &typeErr) {
		return invalid(raw)
	}
	return models.Decision{Assessment: &assessment}
}

func invalid(raw string) models.Decision {
	return models.Decision{Error: InvalidJSONError, RawResponse: raw}
}

// stripCodeFence removes a surrounding ``` or ```json fence
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```"))
	if i := strings.IndexByte(s, '{'); i > 0 && isFenceTag(s[:i]) {
		s = s[i:]
	}
	return strings.TrimSpace(s)
}

// isFenceTag reports whether s is a json language tag, with or without a trailing newline
func isFenceTag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "json")
}
