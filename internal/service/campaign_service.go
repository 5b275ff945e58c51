// internal/service/campaign_service.go
package service

import (
    "context"
    "encoding/json"
    "errors"
    "log"
    "strings"
    "sync"
    "time"

    appErrors "github.com/poornaderedla/twain-backend/internal/errors"
    "github.com/poornaderedla/twain-backend/internal/llm"
    "github.com/poornaderedla/twain-backend/internal/model"
    "github.com/poornaderedla/twain-backend/internal/prompt"
    "github.com/poornaderedla/twain-backend/internal/queue"
    "github.com/poornaderedla/twain-backend/internal/store"
)

type CampaignService struct {
    LLM   llm.Client
    Store store.Store
    Queue queue.Queue // optional; assembled campaign ids are published here
}

// AssembleResult pairs the campaign with the channels that failed to
// generate.
type AssembleResult struct {
    Campaign       *model.Campaign
    FailedChannels []string
}

// channelResult is one channel's settled outcome. Each generation goroutine
// owns exactly one slot, written once.
type channelResult struct {
    block model.ContentBlock
    err   error
}

// Assemble generates content for each requested channel independently and
// aggregates the results into one campaign. One channel failing never blocks
// its siblings: each channel gets its own goroutine and one retry before it
// is marked failed. Status is "complete" only when every requested channel
// succeeded. When every channel fails, nothing is persisted and the whole
// assembly reports an empty result.
func (s *CampaignService) Assemble(ctx context.Context, persona *model.Persona, channels []model.Channel, ideas []string) (*AssembleResult, error) {
    chs := dedupeChannels(channels)
    if len(chs) == 0 {
        return nil, appErrors.NewValidation("at least one channel is required")
    }

    results := make([]channelResult, len(chs))
    var wg sync.WaitGroup
    for i, ch := range chs {
        wg.Add(1)
        go func(i int, ch model.Channel) {
            defer wg.Done()
            results[i] = s.generateChannel(ctx, persona, ch, ideas)
        }(i, ch)
    }
    wg.Wait()

    var blocks []model.ContentBlock
    var failed []string
    for i, r := range results {
        if r.err != nil {
            log.Println("⚠️ channel failed:", chs[i], "-", r.err)
            failed = append(failed, string(chs[i]))
            continue
        }
        blocks = append(blocks, r.block)
    }

    if len(blocks) == 0 {
        return nil, appErrors.NewEmptyResult(appErrors.StageCampaign)
    }

    status := model.CampaignStatusComplete
    if len(failed) > 0 {
        status = model.CampaignStatusPartial
    }

    c := &model.Campaign{
        PersonaID: persona.ID,
        Blocks:    blocks,
        Status:    status,
        CreatedAt: time.Now().UTC(),
    }

    id, err := s.Store.Insert(context.WithoutCancel(ctx), store.Campaigns, c)
    if err != nil {
        return &AssembleResult{Campaign: c, FailedChannels: failed},
            appErrors.NewPersistenceFailed(store.Campaigns, err)
    }
    c.ID = id

    if s.Queue != nil {
        if err := s.Queue.Publish(queue.TopicCampaignAssembled, id); err != nil {
            log.Println("⚠️ failed to publish assembled campaign", id, ":", err)
        }
    }

    return &AssembleResult{Campaign: c, FailedChannels: failed}, nil
}

// generateChannel runs one channel's generation with a single retry on any
// failure, transient or malformed.
func (s *CampaignService) generateChannel(ctx context.Context, persona *model.Persona, ch model.Channel, ideas []string) channelResult {
    var lastErr error
    for attempt := 0; attempt < 2; attempt++ {
        raw, err := s.LLM.Complete(ctx, llm.Prompt{User: prompt.ForChannel(ch, *persona, ideas)})
        if err != nil {
            lastErr = err
            continue
        }
        block, err := parseBlock(ch, raw)
        if err != nil {
            lastErr = err
            continue
        }
        return channelResult{block: block}
    }
    return channelResult{err: appErrors.NewChannelFailed(string(ch), lastErr)}
}

func parseBlock(ch model.Channel, raw string) (model.ContentBlock, error) {
    var parsed struct {
        Subject      string `json:"subject"`
        Body         string `json:"body"`
        CallToAction string `json:"call_to_action"`
    }
    if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &parsed); err != nil {
        return model.ContentBlock{}, err
    }

    body := strings.TrimSpace(parsed.Body)
    if body == "" {
        return model.ContentBlock{}, errors.New("generated content has an empty body")
    }

    block := model.ContentBlock{
        Channel:      ch,
        Body:         body,
        CallToAction: strings.TrimSpace(parsed.CallToAction),
    }
    // Only email carries a subject line.
    if ch == model.ChannelEmail {
        block.Subject = strings.TrimSpace(parsed.Subject)
    }
    return block, nil
}

func dedupeChannels(channels []model.Channel) []model.Channel {
    seen := map[model.Channel]bool{}
    out := make([]model.Channel, 0, len(channels))
    for _, ch := range channels {
        if seen[ch] {
            continue
        }
        seen[ch] = true
        out = append(out, ch)
    }
    return out
}

// Get loads a persisted campaign by id.
func (s *CampaignService) Get(ctx context.Context, id string) (*model.Campaign, error) {
    doc, err := s.Store.FindByID(ctx, store.Campaigns, id)
    if err != nil {
        return nil, err
    }
    if doc == nil {
        return nil, appErrors.NewNotFound(store.Campaigns, id)
    }
    var c model.Campaign
    if err := doc.Decode(&c); err != nil {
        return nil, err
    }
    c.ID = doc.ID
    return &c, nil
}
