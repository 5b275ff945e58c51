// internal/model/idea.go
package model

import "time"

// Idea is one batch of generated outreach angles for a persona. Order is the
// relevance rank from generation. PersonaID is a reference, not ownership:
// the persona may be deleted independently.
type Idea struct {
    ID        string    `json:"id,omitempty"`
    PersonaID string    `json:"persona_id"`
    Ideas     []string  `json:"ideas"`
    CreatedAt time.Time `json:"created_at"`
}
