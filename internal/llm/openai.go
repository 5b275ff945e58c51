// internal/llm/openai.go
package llm

import (
    "context"
    "errors"

    openai "github.com/openai/openai-go"
    "github.com/openai/openai-go/option"
)

// OpenAI implements Client using the official openai-go SDK (chat
// completions).
type OpenAI struct {
    Model string
    Opts  []option.RequestOption
}

func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
    if apiKey == "" {
        return nil, errors.New("openai api key missing")
    }
    if model == "" {
        return nil, errors.New("openai model is required")
    }
    opts := []option.RequestOption{option.WithAPIKey(apiKey)}
    if baseURL != "" {
        opts = append(opts, option.WithBaseURL(baseURL))
    }
    return &OpenAI{Model: model, Opts: opts}, nil
}

func (o *OpenAI) Complete(ctx context.Context, p Prompt) (string, error) {
    client := openai.NewClient(o.Opts...)

    msgs := []openai.ChatCompletionMessageParamUnion{}
    if p.System != "" {
        msgs = append(msgs, openai.SystemMessage(p.System))
    }
    msgs = append(msgs, openai.UserMessage(p.User))

    resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
        Model:    openai.ChatModel(o.Model),
        Messages: msgs,
    })
    if err != nil {
        return "", err
    }
    if len(resp.Choices) == 0 {
        return "", errors.New("openai: empty choices")
    }
    return resp.Choices[0].Message.Content, nil
}

var _ Client = (*OpenAI)(nil)
