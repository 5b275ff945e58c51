// internal/service/pipeline.go
package service

import (
    "context"

    "github.com/poornaderedla/twain-backend/internal/model"
)

// Pipeline sequences persona building, optional idea generation and campaign
// assembly for one inbound request. A persona failure aborts the whole run;
// an idea failure is a reported, non-fatal enrichment miss; campaign
// partiality is carried through the campaign's own status.
type Pipeline struct {
    Personas  *PersonaService
    Ideas     *IdeaService
    Campaigns *CampaignService
}

type RunRequest struct {
    URL         string
    Description string
    Channels    []model.Channel
    // IdeaCount of 0 means idea generation was not requested; it is then
    // skipped silently rather than reported as failed.
    IdeaCount int
}

type RunResult struct {
    Persona        *model.Persona
    Idea           *model.Idea
    IdeaError      string
    Campaign       *model.Campaign
    FailedChannels []string
}

// Run executes the full pipeline. On campaign failure the returned result
// still carries the persisted persona (and idea, if any), so nothing already
// computed is lost to the caller.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
    persona, err := p.Personas.Build(ctx, req.URL, req.Description)
    if err != nil {
        if persona != nil {
            // Persist failure: the persona was built, so hand it back.
            return &RunResult{Persona: persona}, err
        }
        // No persona means nothing to build on.
        return nil, err
    }

    res := &RunResult{Persona: persona}

    var ideaStrings []string
    if req.IdeaCount > 0 {
        idea, err := p.Ideas.Generate(ctx, persona, req.IdeaCount)
        if err != nil {
            res.IdeaError = err.Error()
        }
        if idea != nil {
            res.Idea = idea
            ideaStrings = idea.Ideas
        }
    }

    ar, err := p.Campaigns.Assemble(ctx, persona, req.Channels, ideaStrings)
    if ar != nil {
        res.Campaign = ar.Campaign
        res.FailedChannels = ar.FailedChannels
    }
    return res, err
}
