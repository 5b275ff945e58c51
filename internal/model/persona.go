// internal/model/persona.go
package model

import "time"

// Attributes is the profile derived by the generative collaborator. Fields
// that come back absent or malformed are dropped during parsing, so any
// subset may be populated. A partially populated profile is valid.
type Attributes struct {
    Name                  string   `json:"name,omitempty"`
    Summary               string   `json:"summary,omitempty"`
    Tone                  string   `json:"tone,omitempty"`
    Interests             []string `json:"interests,omitempty"`
    PainPoints            []string `json:"pain_points,omitempty"`
    Solutions             []string `json:"solutions,omitempty"`
    CompetitiveAdvantages []string `json:"competitive_advantages,omitempty"`
    CostOfInaction        []string `json:"cost_of_inaction,omitempty"`
    Objections            []string `json:"objections,omitempty"`
}

// Empty reports whether no attribute survived parsing.
func (a Attributes) Empty() bool {
    return a.Name == "" && a.Summary == "" && a.Tone == "" &&
        len(a.Interests) == 0 && len(a.PainPoints) == 0 &&
        len(a.Solutions) == 0 && len(a.CompetitiveAdvantages) == 0 &&
        len(a.CostOfInaction) == 0 && len(a.Objections) == 0
}

// Persona is a normalized outreach profile derived from a URL/description
// pair. ExtractedText may be empty when scraping failed; that alone never
// blocks persona creation.
type Persona struct {
    ID            string     `json:"id,omitempty"`
    SourceURL     string     `json:"source_url"`
    Description   string     `json:"description"`
    ExtractedText string     `json:"extracted_text,omitempty"`
    Attributes    Attributes `json:"attributes"`
    CreatedAt     time.Time  `json:"created_at"`
}
