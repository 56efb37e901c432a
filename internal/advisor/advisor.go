// Package advisor answers free-form questions about the household's finances
// by sending a snapshot of the data to Gemini. The model call is best-effort:
// any failure degrades to a fixed apology rather than an error surface.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"familywallet/internal/core"
	"familywallet/internal/log"
)

// FallbackAnswer is returned whenever the model is unreachable or
// misconfigured.
const FallbackAnswer = "Sorry, I am unable to provide advice at this moment. Please check the API configuration."

const systemInstruction = "You are a helpful financial assistant for a family. " +
	"Analyze the provided data and answer questions. Be concise and clear."

// Advisor wraps the Gemini client. A nil inner client means the advisor is
// disabled and every question gets the fallback answer.
type Advisor struct {
	client *genai.Client
	model  string
	logger *log.Logger
	group  singleflight.Group
}

// New builds an advisor backed by the Gemini API. An empty apiKey yields a
// disabled advisor rather than an error, so the rest of the service can run
// without credentials.
func New(ctx context.Context, apiKey, model string, logger *log.Logger) (*Advisor, error) {
	a := &Advisor{model: model, logger: logger.WithComponent(log.ComponentAdvisor)}
	if apiKey == "" {
		a.logger.Warn("no API key configured, assistant disabled")
		return a, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("advisor: create genai client: %w", err)
	}
	a.client = client
	return a, nil
}

// Enabled reports whether questions will actually reach the model.
func (a *Advisor) Enabled() bool {
	return a.client != nil
}

// Advise answers the question against the given household snapshot.
// Identical questions in flight at the same time share a single model call.
func (a *Advisor) Advise(ctx context.Context, members []core.FamilyMember, txs []core.Transaction, question string) string {
	if a.client == nil {
		return FallbackAnswer
	}

	answer, err, _ := a.group.Do(question, func() (any, error) {
		prompt, err := BuildPrompt(members, txs, question)
		if err != nil {
			return nil, err
		}
		contents := []*genai.Content{
			{
				Role:  "user",
				Parts: []*genai.Part{{Text: prompt}},
			},
		}
		cfg := &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction}},
			},
		}
		resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, cfg)
		if err != nil {
			return nil, fmt.Errorf("advisor: generate content: %w", err)
		}
		text := resp.Text()
		if text == "" {
			return nil, fmt.Errorf("advisor: empty response from model")
		}
		return text, nil
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "assistant call failed",
			log.FieldModel, a.model,
			log.FieldError, err)
		return FallbackAnswer
	}
	return answer.(string)
}

// memberRef is the slimmed member view included in the prompt. Roles and
// avatars are withheld; the model only needs to resolve names.
type memberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BuildPrompt assembles the model input: a short framing, the member list and
// full transaction history as JSON, then the user's question.
func BuildPrompt(members []core.FamilyMember, txs []core.Transaction, question string) (string, error) {
	refs := make([]memberRef, 0, len(members))
	for _, m := range members {
		refs = append(refs, memberRef{ID: m.ID, Name: m.Name})
	}
	memberJSON, err := json.Marshal(refs)
	if err != nil {
		return "", fmt.Errorf("advisor: marshal members: %w", err)
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	txJSON, err := json.Marshal(txs)
	if err != nil {
		return "", fmt.Errorf("advisor: marshal transactions: %w", err)
	}

	return fmt.Sprintf(
		"Here is the family's financial data.\n\nFamily members:\n%s\n\nTransactions:\n%s\n\nUser question: \"%s\"",
		memberJSON, txJSON, question), nil
}
