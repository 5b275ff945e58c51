// internal/service/idea_service.go
package service

import (
    "context"
    "encoding/json"
    "strings"
    "time"

    appErrors "github.com/poornaderedla/twain-backend/internal/errors"
    "github.com/poornaderedla/twain-backend/internal/llm"
    "github.com/poornaderedla/twain-backend/internal/model"
    "github.com/poornaderedla/twain-backend/internal/prompt"
    "github.com/poornaderedla/twain-backend/internal/store"
)

const DefaultIdeaCount = 3

type IdeaService struct {
    LLM   llm.Client
    Store store.Store
}

// Generate prompts for n ranked outreach angles against the persona and
// persists the surviving list. Whitespace-only entries are dropped;
// duplicates within one batch are allowed. At least one idea must survive
// normalization. Same persistence contract as PersonaService.Build: the
// generated idea is returned alongside a persistence error.
func (s *IdeaService) Generate(ctx context.Context, persona *model.Persona, n int) (*model.Idea, error) {
    if n < 1 {
        n = DefaultIdeaCount
    }

    raw, err := s.LLM.Complete(ctx, llm.Prompt{User: prompt.Ideas(n, *persona)})
    if err != nil {
        return nil, appErrors.NewGenerationFailed(appErrors.StageIdeas, err)
    }

    var parsed struct {
        Ideas []string `json:"ideas"`
    }
    // Unparseable output leaves zero usable ideas, which escalates below.
    _ = json.Unmarshal([]byte(llm.ExtractJSON(raw)), &parsed)

    ideas := make([]string, 0, len(parsed.Ideas))
    for _, idea := range parsed.Ideas {
        if idea = strings.TrimSpace(idea); idea != "" {
            ideas = append(ideas, idea)
        }
    }
    if len(ideas) == 0 {
        return nil, appErrors.NewEmptyResult(appErrors.StageIdeas)
    }

    i := &model.Idea{
        PersonaID: persona.ID,
        Ideas:     ideas,
        CreatedAt: time.Now().UTC(),
    }

    id, err := s.Store.Insert(context.WithoutCancel(ctx), store.Ideas, i)
    if err != nil {
        return i, appErrors.NewPersistenceFailed(store.Ideas, err)
    }
    i.ID = id
    return i, nil
}

// Get loads a persisted idea batch by id.
func (s *IdeaService) Get(ctx context.Context, id string) (*model.Idea, error) {
    doc, err := s.Store.FindByID(ctx, store.Ideas, id)
    if err != nil {
        return nil, err
    }
    if doc == nil {
        return nil, appErrors.NewNotFound(store.Ideas, id)
    }
    var i model.Idea
    if err := doc.Decode(&i); err != nil {
        return nil, err
    }
    i.ID = doc.ID
    return &i, nil
}
