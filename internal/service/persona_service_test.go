package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	appErrors "github.com/poornaderedla/twain-backend/internal/errors"
	"github.com/poornaderedla/twain-backend/internal/llm"
	"github.com/poornaderedla/twain-backend/internal/scraper"
	"github.com/poornaderedla/twain-backend/internal/service"
	"github.com/poornaderedla/twain-backend/internal/store"
)

// --- Shared fakes ---

// fakeLLM dispatches on the prompt text so per-stage and per-channel
// behavior can be scripted. Safe for concurrent use.
type fakeLLM struct {
	mu    sync.Mutex
	fn    func(p llm.Prompt) (string, error)
	calls []string
}

func (f *fakeLLM) Complete(_ context.Context, p llm.Prompt) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p.User)
	f.mu.Unlock()
	return f.fn(p)
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// failingStore rejects every write but behaves normally otherwise.
type failingStore struct {
	store.Store
}

func (f *failingStore) Insert(context.Context, string, any) (string, error) {
	return "", errors.New("write rejected")
}

const personaJSON = `{"name": "SaaS Founder", "summary": "Early-stage B2B SaaS founder focused on growth.",
  "tone": "conversational", "interests": ["outbound automation"],
  "pain_points": ["low reply rates"], "solutions": ["automated research"],
  "competitive_advantages": ["10x faster onboarding"]}`

func newPersonaService(client llm.Client, st store.Store) *service.PersonaService {
	return &service.PersonaService{
		Scraper: scraper.New(time.Second),
		LLM:     client,
		Store:   st,
	}
}

// --- Tests ---

func TestBuildReturnsPersistedPersona(t *testing.T) {
	client := &fakeLLM{fn: func(llm.Prompt) (string, error) { return personaJSON, nil }}
	svc := newPersonaService(client, store.NewMemory())

	persona, err := svc.Build(context.Background(), "", "B2B SaaS founder")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if persona.ID == "" {
		t.Error("expected a non-empty id after persist")
	}
	if persona.Attributes.Empty() {
		t.Error("expected a non-empty attribute set")
	}
	if persona.Attributes.Summary == "" {
		t.Error("expected a summary derived from the description")
	}
}

func TestBuildSurvivesFetchFailure(t *testing.T) {
	client := &fakeLLM{fn: func(llm.Prompt) (string, error) { return personaJSON, nil }}
	svc := newPersonaService(client, store.NewMemory())

	// Nothing listens on this address; the fetch fails and scraping degrades
	// to empty text instead of aborting the build.
	persona, err := svc.Build(context.Background(), "http://127.0.0.1:1", "B2B SaaS founder")
	if err != nil {
		t.Fatalf("expected success despite fetch failure, got %v", err)
	}
	if persona.ExtractedText != "" {
		t.Errorf("expected empty extracted text, got %q", persona.ExtractedText)
	}
	if persona.Attributes.Summary == "" {
		t.Error("expected a summary even when the fetch yields no text")
	}
}

func TestBuildDropsMalformedFields(t *testing.T) {
	client := &fakeLLM{fn: func(llm.Prompt) (string, error) {
		return `{"name": 42, "summary": "Still useful.", "tone": null,
			"interests": [1, true, " growth "], "pain_points": "churn, slow sales"}`, nil
	}}
	svc := newPersonaService(client, store.NewMemory())

	persona, err := svc.Build(context.Background(), "", "desc")
	if err != nil {
		t.Fatalf("partial output should be valid, got %v", err)
	}
	a := persona.Attributes
	if a.Name != "" || a.Tone != "" {
		t.Errorf("malformed fields should be dropped, got name=%q tone=%q", a.Name, a.Tone)
	}
	if a.Summary != "Still useful." {
		t.Errorf("clean field lost: %q", a.Summary)
	}
	if len(a.Interests) != 1 || a.Interests[0] != "growth" {
		t.Errorf("expected surviving list entries trimmed, got %v", a.Interests)
	}
	if len(a.PainPoints) != 2 {
		t.Errorf("comma-flattened list should split, got %v", a.PainPoints)
	}
}

func TestBuildFailsWhenGenerationFails(t *testing.T) {
	client := &fakeLLM{fn: func(llm.Prompt) (string, error) { return "", errors.New("model timeout") }}
	svc := newPersonaService(client, store.NewMemory())

	persona, err := svc.Build(context.Background(), "", "desc")
	if persona != nil {
		t.Error("expected no persona on generation failure")
	}
	var genErr *appErrors.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Stage != appErrors.StagePersona {
		t.Errorf("expected persona stage, got %s", genErr.Stage)
	}
}

func TestBuildFailsWhenNoAttributesSurvive(t *testing.T) {
	client := &fakeLLM{fn: func(llm.Prompt) (string, error) { return "sorry, no json here", nil }}
	svc := newPersonaService(client, store.NewMemory())

	_, err := svc.Build(context.Background(), "", "desc")
	var emptyErr *appErrors.EmptyResultError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	svc := newPersonaService(&fakeLLM{fn: func(llm.Prompt) (string, error) { return personaJSON, nil }}, store.NewMemory())

	_, err := svc.Build(context.Background(), "", "")
	var valErr *appErrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBuildKeepsPersonaOnPersistFailure(t *testing.T) {
	client := &fakeLLM{fn: func(llm.Prompt) (string, error) { return personaJSON, nil }}
	svc := newPersonaService(client, &failingStore{Store: store.NewMemory()})

	persona, err := svc.Build(context.Background(), "", "desc")
	var persistErr *appErrors.PersistenceError
	if !errors.As(err, &persistErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if persona == nil || persona.Attributes.Empty() {
		t.Fatal("computed persona must be returned alongside the persistence error")
	}
	// A retry of the write must not re-invoke the model.
	if client.callCount() != 1 {
		t.Errorf("expected exactly one generation call, got %d", client.callCount())
	}
}

func TestBuildTwiceCreatesTwoRecords(t *testing.T) {
	client := &fakeLLM{fn: func(llm.Prompt) (string, error) { return personaJSON, nil }}
	mem := store.NewMemory()
	svc := newPersonaService(client, mem)

	p1, err := svc.Build(context.Background(), "", "same input")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := svc.Build(context.Background(), "", "same input")
	if err != nil {
		t.Fatal(err)
	}
	// No deduplication: identical inputs create distinct records.
	if p1.ID == p2.ID {
		t.Errorf("expected distinct ids, got %q twice", p1.ID)
	}
	count, err := mem.Count(context.Background(), store.Personas, nil)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 persisted personas, got %d", count)
	}
}

func TestBuildSendsDescriptionToModel(t *testing.T) {
	var captured string
	client := &fakeLLM{fn: func(p llm.Prompt) (string, error) {
		captured = p.User
		return personaJSON, nil
	}}
	svc := newPersonaService(client, store.NewMemory())

	if _, err := svc.Build(context.Background(), "", "B2B SaaS founder"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(captured, "B2B SaaS founder") {
		t.Error("description missing from generation prompt")
	}
}

func TestGetUnknownPersonaIsNotFound(t *testing.T) {
	svc := newPersonaService(&fakeLLM{fn: func(llm.Prompt) (string, error) { return personaJSON, nil }}, store.NewMemory())

	_, err := svc.Get(context.Background(), "nope")
	var nfErr *appErrors.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestBuildKeepsRiskAndObjectionFields(t *testing.T) {
	client := &fakeLLM{fn: func(llm.Prompt) (string, error) {
		return `{"summary": "Growth-focused founder.",
			"cost_of_inaction": ["pipeline stalls every quarter"],
			"objections": ["already has a tool", "no budget until Q3"]}`, nil
	}}
	svc := newPersonaService(client, store.NewMemory())

	persona, err := svc.Build(context.Background(), "", "desc")
	if err != nil {
		t.Fatal(err)
	}
	a := persona.Attributes
	if len(a.CostOfInaction) != 1 || a.CostOfInaction[0] != "pipeline stalls every quarter" {
		t.Errorf("cost_of_inaction lost: %v", a.CostOfInaction)
	}
	if len(a.Objections) != 2 {
		t.Errorf("objections lost: %v", a.Objections)
	}
}
