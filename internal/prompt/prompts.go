// internal/prompt/prompts.go

// Package prompt holds the templates sent to the generative collaborator for
// persona profiling, idea generation and per-channel campaign content.
package prompt

import (
    "fmt"
    "strings"

    "github.com/poornaderedla/twain-backend/internal/model"
)

// Persona asks for a structured profile derived from scraped page text plus
// the caller's free-text description. The summary must always be derivable
// from the description alone, since page content may be empty.
func Persona(webContent, description string) string {
    return fmt.Sprintf(`You are an expert B2B analyst specializing in market research and competitive analysis. Analyze the content below and extract a business persona profile.

Extraction guidelines:
- name: the role or organization the content is about (e.g. "Chief Technology Officer", "Acme Logistics")
- summary: 2-3 sentences describing who this persona is and what they care about; always derive this, using the additional context when page content is thin or missing
- tone: the communication tone that would resonate with them (e.g. "formal", "conversational")
- interests: topics and outcomes they care about
- pain_points: operational and strategic challenges, with context and impact
- solutions: offerings or capabilities that address those challenges
- competitive_advantages: differentiators worth leading with
- cost_of_inaction: what staying with the status quo costs them
- objections: reservations they are likely to raise about an offer

IMPORTANT:
- Text fields are strings; use an empty string when a value cannot be found
- List fields are arrays of strings; use an empty array when nothing applies
- Never use null values
- Be specific and business-focused

Content to analyze:
%s

Additional context:
%s

Return ONLY a JSON object matching this structure (no additional text):
{"name": "", "summary": "", "tone": "", "interests": [], "pain_points": [], "solutions": [], "competitive_advantages": [], "cost_of_inaction": [], "objections": []}`, webContent, description)
}

// Ideas asks for n ranked outreach angles for the persona.
func Ideas(n int, p model.Persona) string {
    return fmt.Sprintf(`You are a highly skilled B2B sales strategist. Generate %d compelling and creative outreach ideas for the persona below, ordered from strongest to weakest.

Each idea must be a concise, one-sentence outreach angle that:
- directly addresses one of the persona's pain points, or
- highlights a specific solution or competitive advantage, or
- connects with the persona's interests.

%s

Return ONLY a JSON object like this:
{"ideas": ["Idea 1", "Idea 2", "Idea 3"]}`, n, personaContext(p))
}

// ForChannel builds the channel-specific content prompt. Tone and length
// constraints differ per channel; the expected JSON shape is identical so
// parsing stays uniform, with subject left empty where the channel has none.
func ForChannel(ch model.Channel, p model.Persona, ideas []string) string {
    var instructions string
    switch ch {
    case model.ChannelEmail:
        instructions = `Write one cold outreach email. Professional yet engaging, 80-150 words, with a clear value proposition. Provide a compelling subject line.`
    case model.ChannelSocial:
        instructions = `Write one social/direct message. Brief, friendly and conversation-starting, at most 60 words. Do not include a subject line; leave "subject" as an empty string.`
    case model.ChannelSMS:
        instructions = `Write one SMS message. At most 160 characters including the call to action. Direct and personal. Do not include a subject line; leave "subject" as an empty string.`
    }

    var ideaBlock string
    if len(ideas) > 0 {
        ideaBlock = "\nOutreach angles to draw from:\n- " + strings.Join(ideas, "\n- ") + "\n"
    }

    return fmt.Sprintf(`You are an expert outreach copywriter. %s

%s
%s
Return ONLY a JSON object like this (no additional text):
{"subject": "", "body": "", "call_to_action": ""}`, instructions, personaContext(p), ideaBlock)
}

func personaContext(p model.Persona) string {
    a := p.Attributes
    lines := []string{
        "Persona data:",
        "- Name: " + orUnspecified(a.Name),
        "- Summary: " + orUnspecified(a.Summary),
        "- Tone: " + orUnspecified(a.Tone),
    }
    if len(a.Interests) > 0 {
        lines = append(lines, "- Interests: "+strings.Join(a.Interests, ", "))
    }
    if len(a.PainPoints) > 0 {
        lines = append(lines, "- Pain points: "+strings.Join(a.PainPoints, ", "))
    }
    if len(a.Solutions) > 0 {
        lines = append(lines, "- Solutions: "+strings.Join(a.Solutions, ", "))
    }
    if len(a.CompetitiveAdvantages) > 0 {
        lines = append(lines, "- Competitive advantages: "+strings.Join(a.CompetitiveAdvantages, ", "))
    }
    if len(a.CostOfInaction) > 0 {
        lines = append(lines, "- Cost of inaction: "+strings.Join(a.CostOfInaction, ", "))
    }
    if len(a.Objections) > 0 {
        lines = append(lines, "- Likely objections: "+strings.Join(a.Objections, ", "))
    }
    return strings.Join(lines, "\n")
}

func orUnspecified(s string) string {
    if s == "" {
        return "Not specified"
    }
    return s
}
