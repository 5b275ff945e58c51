// internal/llm/mock.go
package llm

import "context"

// Mock is a placeholder Client for local runs without an API key. It echoes a
// canned JSON payload so every pipeline stage can complete end to end.
type Mock struct{}

func (Mock) Complete(_ context.Context, p Prompt) (string, error) {
    return `{"name": "Demo Lead", "summary": "Placeholder profile generated without an external model.",
  "tone": "professional", "interests": ["automation"],
  "ideas": ["Reference a recent product launch in the opening line."],
  "subject": "Quick question", "body": "Placeholder outreach body.", "call_to_action": "Book a 15 minute call."}`, nil
}

var _ Client = Mock{}
