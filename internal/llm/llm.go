// internal/llm/llm.go
package llm

import (
    "context"
    "strings"
)

// Prompt carries one generation request.
type Prompt struct {
    System string
    User   string
}

// Client is the generative collaborator: an opaque text-in/text-out function
// with latency and failure modes. Implementations must respect ctx.
type Client interface {
    Complete(ctx context.Context, p Prompt) (string, error)
}

// ExtractJSON returns the JSON payload of a model response. Models often wrap
// JSON in markdown code fences; the fence is stripped when present.
func ExtractJSON(s string) string {
    s = strings.TrimSpace(s)
    if strings.HasPrefix(s, "```") {
        s = strings.TrimPrefix(s, "```json")
        s = strings.TrimPrefix(s, "```")
        if i := strings.Index(s, "```"); i >= 0 {
            s = s[:i]
        }
    }
    return strings.TrimSpace(s)
}
