// cmd/server/main.go
package main

import (
    "log"
    "net/http"
    "os"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/joho/godotenv"

    "github.com/poornaderedla/twain-backend/internal/controller"
    "github.com/poornaderedla/twain-backend/internal/db"
    "github.com/poornaderedla/twain-backend/internal/llm"
    "github.com/poornaderedla/twain-backend/internal/queue"
    "github.com/poornaderedla/twain-backend/internal/scraper"
    "github.com/poornaderedla/twain-backend/internal/service"
    "github.com/poornaderedla/twain-backend/internal/store"
)

func main() {
    // Load .env
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    var st store.Store
    if os.Getenv("DB_HOST") != "" {
        db.Init()
        db.Migrate()
        st = &store.Postgres{DB: db.DB}

        // Startup probe runs before any request context exists, which is
        // exactly what the blocking variant is for.
        blocking := &store.Blocking{Store: st}
        if _, err := blocking.Count(store.Personas, nil); err != nil {
            log.Fatal("storage probe failed:", err)
        }
    } else {
        log.Println("⚠️ DB_HOST not set, using in-memory store")
        st = store.NewMemory()
    }

    var client llm.Client
    if key := os.Getenv("OPENAI_API_KEY"); key != "" {
        model := os.Getenv("OPENAI_MODEL")
        if model == "" {
            model = "gpt-4o-mini"
        }
        c, err := llm.NewOpenAI(key, model, os.Getenv("OPENAI_BASE_URL"))
        if err != nil {
            log.Fatal("llm setup failed:", err)
        }
        client = c
    } else {
        log.Println("⚠️ OPENAI_API_KEY not set, using mock model")
        client = llm.Mock{}
    }

    q := queue.NewInMemoryQueue()
    if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
        queue.StartAssembledBridge(q, amqpURL)
    } else {
        queue.LogAssembled(q)
    }

    scrapeTimeout := scraper.DefaultTimeout
    if v := os.Getenv("SCRAPE_TIMEOUT"); v != "" {
        if d, err := time.ParseDuration(v); err == nil {
            scrapeTimeout = d
        }
    }

    personaService := &service.PersonaService{
        Scraper: scraper.New(scrapeTimeout),
        LLM:     client,
        Store:   st,
    }
    ideaService := &service.IdeaService{LLM: client, Store: st}
    campaignService := &service.CampaignService{LLM: client, Store: st, Queue: q}
    pipeline := &service.Pipeline{
        Personas:  personaService,
        Ideas:     ideaService,
        Campaigns: campaignService,
    }

    outreachController := &controller.OutreachController{
        Personas:  personaService,
        Ideas:     ideaService,
        Campaigns: campaignService,
        Pipeline:  pipeline,
        Store:     st,
    }

    r := chi.NewRouter()

    r.Post("/personas", outreachController.CreatePersona)
    r.Get("/personas/{id}", outreachController.GetPersona)
    r.Delete("/personas/{id}", outreachController.DeletePersona)
    r.Post("/personas/{id}/ideas", outreachController.GenerateIdeas)
    r.Delete("/ideas/{id}", outreachController.DeleteIdea)
    r.Post("/campaigns", outreachController.CreateCampaign)
    r.Get("/campaigns/{id}", outreachController.GetCampaign)
    r.Delete("/campaigns/{id}", outreachController.DeleteCampaign)
    r.Post("/outreach", outreachController.RunOutreach)

    log.Println("🚀 Server running on :8080")
    log.Fatal(http.ListenAndServe(":8080", r))
}
