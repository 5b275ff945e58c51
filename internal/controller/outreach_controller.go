// internal/controller/outreach_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/poornaderedla/twain-backend/internal/errors"
    "github.com/poornaderedla/twain-backend/internal/model"
    "github.com/poornaderedla/twain-backend/internal/service"
    "github.com/poornaderedla/twain-backend/internal/store"
)

type OutreachController struct {
    Personas  *service.PersonaService
    Ideas     *service.IdeaService
    Campaigns *service.CampaignService
    Pipeline  *service.Pipeline
    Store     store.Store
}

// statusFor maps the error taxonomy onto HTTP status codes. Callers never
// see a raw underlying error, only the classified message.
func statusFor(err error) int {
    var (
        validation *appErrors.ValidationError
        notFound   *appErrors.NotFoundError
        generation *appErrors.GenerationError
        empty      *appErrors.EmptyResultError
    )
    switch {
    case errors.As(err, &validation):
        return http.StatusBadRequest
    case errors.As(err, &notFound):
        return http.StatusNotFound
    case errors.As(err, &generation), errors.As(err, &empty):
        return http.StatusBadGateway
    default:
        return http.StatusInternalServerError
    }
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}

func (c *OutreachController) CreatePersona(w http.ResponseWriter, r *http.Request) {
    var body struct {
        URL         string `json:"url"`
        Description string `json:"description"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    persona, err := c.Personas.Build(r.Context(), body.URL, body.Description)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    writeJSON(w, http.StatusCreated, map[string]interface{}{
        "persona_id": persona.ID,
        "attributes": persona.Attributes,
    })
}

func (c *OutreachController) GetPersona(w http.ResponseWriter, r *http.Request) {
    persona, err := c.Personas.Get(r.Context(), chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }
    writeJSON(w, http.StatusOK, persona)
}

func (c *OutreachController) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
    personaID := chi.URLParam(r, "id")

    var body struct {
        Count int `json:"count"`
    }
    // An empty body means defaults.
    _ = json.NewDecoder(r.Body).Decode(&body)

    persona, err := c.Personas.Get(r.Context(), personaID)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    idea, err := c.Ideas.Generate(r.Context(), persona, body.Count)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    writeJSON(w, http.StatusCreated, map[string]interface{}{
        "idea_id": idea.ID,
        "ideas":   idea.Ideas,
    })
}

func (c *OutreachController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        PersonaID string   `json:"persona_id"`
        Channels  []string `json:"channels"`
        IdeaID    string   `json:"idea_id"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    channels := make([]model.Channel, 0, len(body.Channels))
    for _, raw := range body.Channels {
        ch, ok := model.ParseChannel(raw)
        if !ok {
            http.Error(w, "unknown channel: "+raw, http.StatusBadRequest)
            return
        }
        channels = append(channels, ch)
    }

    persona, err := c.Personas.Get(r.Context(), body.PersonaID)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    var ideas []string
    if body.IdeaID != "" {
        idea, err := c.Ideas.Get(r.Context(), body.IdeaID)
        if err != nil {
            http.Error(w, err.Error(), statusFor(err))
            return
        }
        ideas = idea.Ideas
    }

    result, err := c.Campaigns.Assemble(r.Context(), persona, channels, ideas)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    writeJSON(w, http.StatusCreated, map[string]interface{}{
        "campaign_id":     result.Campaign.ID,
        "status":          result.Campaign.Status,
        "content_blocks":  result.Campaign.Blocks,
        "failed_channels": failedList(result.FailedChannels),
    })
}

func (c *OutreachController) GetCampaign(w http.ResponseWriter, r *http.Request) {
    campaign, err := c.Campaigns.Get(r.Context(), chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }
    writeJSON(w, http.StatusOK, campaign)
}

// RunOutreach executes the full pipeline for one request: persona, optional
// ideas, campaign.
func (c *OutreachController) RunOutreach(w http.ResponseWriter, r *http.Request) {
    var body struct {
        URL         string   `json:"url"`
        Description string   `json:"description"`
        Channels    []string `json:"channels"`
        IdeaCount   int      `json:"idea_count"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    channels := make([]model.Channel, 0, len(body.Channels))
    for _, raw := range body.Channels {
        ch, ok := model.ParseChannel(raw)
        if !ok {
            http.Error(w, "unknown channel: "+raw, http.StatusBadRequest)
            return
        }
        channels = append(channels, ch)
    }

    result, err := c.Pipeline.Run(r.Context(), service.RunRequest{
        URL:         body.URL,
        Description: body.Description,
        Channels:    channels,
        IdeaCount:   body.IdeaCount,
    })
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    resp := map[string]interface{}{
        "persona_id":      result.Persona.ID,
        "attributes":      result.Persona.Attributes,
        "campaign_id":     result.Campaign.ID,
        "status":          result.Campaign.Status,
        "content_blocks":  result.Campaign.Blocks,
        "failed_channels": failedList(result.FailedChannels),
    }
    if result.Idea != nil {
        resp["idea_id"] = result.Idea.ID
        resp["ideas"] = result.Idea.Ideas
    }
    if result.IdeaError != "" {
        resp["idea_error"] = result.IdeaError
    }
    writeJSON(w, http.StatusCreated, resp)
}

func (c *OutreachController) deleteFrom(collection string) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        id := chi.URLParam(r, "id")
        found, err := c.Store.Delete(r.Context(), collection, id)
        if err != nil {
            http.Error(w, err.Error(), http.StatusInternalServerError)
            return
        }
        if !found {
            http.Error(w, appErrors.NewNotFound(collection, id).Error(), http.StatusNotFound)
            return
        }
        w.WriteHeader(http.StatusNoContent)
    }
}

func (c *OutreachController) DeletePersona(w http.ResponseWriter, r *http.Request) {
    c.deleteFrom(store.Personas)(w, r)
}

func (c *OutreachController) DeleteIdea(w http.ResponseWriter, r *http.Request) {
    c.deleteFrom(store.Ideas)(w, r)
}

func (c *OutreachController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
    c.deleteFrom(store.Campaigns)(w, r)
}

// failedList keeps the failure report an empty array rather than null in
// JSON responses.
func failedList(failed []string) []string {
    if failed == nil {
        return []string{}
    }
    return failed
}
