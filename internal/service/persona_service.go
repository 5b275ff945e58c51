// internal/service/persona_service.go
package service

import (
    "context"
    "encoding/json"
    "log"
    "strings"
    "time"

    appErrors "github.com/poornaderedla/twain-backend/internal/errors"
    "github.com/poornaderedla/twain-backend/internal/llm"
    "github.com/poornaderedla/twain-backend/internal/model"
    "github.com/poornaderedla/twain-backend/internal/prompt"
    "github.com/poornaderedla/twain-backend/internal/scraper"
    "github.com/poornaderedla/twain-backend/internal/store"
)

type PersonaService struct {
    Scraper *scraper.Scraper
    LLM     llm.Client
    Store   store.Store
}

// Build scrapes url best-effort, derives a persona profile from the page
// text plus description, and persists it. Scraping failure alone never
// aborts the build. When persistence fails the built persona is still
// returned alongside the error, so the caller can retry the write without
// re-invoking the model.
func (s *PersonaService) Build(ctx context.Context, url, description string) (*model.Persona, error) {
    if url == "" && description == "" {
        return nil, appErrors.NewValidation("url or description is required")
    }

    var text string
    if url != "" {
        text = s.Scraper.ExtractText(ctx, url)
    }

    raw, err := s.LLM.Complete(ctx, llm.Prompt{User: prompt.Persona(text, description)})
    if err != nil {
        return nil, appErrors.NewGenerationFailed(appErrors.StagePersona, err)
    }

    attrs := parseAttributes(raw)
    if attrs.Empty() {
        return nil, appErrors.NewEmptyResult(appErrors.StagePersona)
    }

    p := &model.Persona{
        SourceURL:     url,
        Description:   description,
        ExtractedText: text,
        Attributes:    attrs,
        CreatedAt:     time.Now().UTC(),
    }

    // Writes are allowed to finish even when the request is cancelled, to
    // avoid partially written documents.
    id, err := s.Store.Insert(context.WithoutCancel(ctx), store.Personas, p)
    if err != nil {
        return p, appErrors.NewPersistenceFailed(store.Personas, err)
    }
    p.ID = id
    return p, nil
}

// Get loads a persisted persona by id.
func (s *PersonaService) Get(ctx context.Context, id string) (*model.Persona, error) {
    doc, err := s.Store.FindByID(ctx, store.Personas, id)
    if err != nil {
        return nil, err
    }
    if doc == nil {
        return nil, appErrors.NewNotFound(store.Personas, id)
    }
    var p model.Persona
    if err := doc.Decode(&p); err != nil {
        return nil, err
    }
    p.ID = doc.ID
    return &p, nil
}

// parseAttributes validates the model output against the expected attribute
// shape. Absent or malformed fields are dropped, not defaulted: the persona
// ends up with whatever subset parsed cleanly.
func parseAttributes(raw string) model.Attributes {
    var m map[string]any
    if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &m); err != nil {
        log.Println("⚠️ persona output was not valid JSON:", err)
        return model.Attributes{}
    }
    return model.Attributes{
        Name:                  stringField(m, "name"),
        Summary:               stringField(m, "summary"),
        Tone:                  stringField(m, "tone"),
        Interests:             listField(m, "interests"),
        PainPoints:            listField(m, "pain_points"),
        Solutions:             listField(m, "solutions"),
        CompetitiveAdvantages: listField(m, "competitive_advantages"),
        CostOfInaction:        listField(m, "cost_of_inaction"),
        Objections:            listField(m, "objections"),
    }
}

// stringField pulls a trimmed string out of the parsed output. A list value
// yields its first string element; anything else is dropped.
func stringField(m map[string]any, key string) string {
    switch v := m[key].(type) {
    case string:
        return strings.TrimSpace(v)
    case []any:
        if len(v) > 0 {
            if s, ok := v[0].(string); ok {
                return strings.TrimSpace(s)
            }
        }
    }
    return ""
}

// listField pulls a list of non-empty strings. A bare string is split on
// commas, matching how models sometimes flatten list fields.
func listField(m map[string]any, key string) []string {
    var out []string
    switch v := m[key].(type) {
    case []any:
        for _, item := range v {
            if s, ok := item.(string); ok {
                if s = strings.TrimSpace(s); s != "" {
                    out = append(out, s)
                }
            }
        }
    case string:
        for _, part := range strings.Split(v, ",") {
            if part = strings.TrimSpace(part); part != "" {
                out = append(out, part)
            }
        }
    }
    return out
}
