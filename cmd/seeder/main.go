// cmd/seeder/main.go
package main

import (
    "fmt"
    "log"
    "time"

    "github.com/joho/godotenv"

    "github.com/poornaderedla/twain-backend/internal/db"
    "github.com/poornaderedla/twain-backend/internal/model"
    "github.com/poornaderedla/twain-backend/internal/store"
)

// Seeds a demo persona and campaign. Runs outside any request context, so it
// uses the blocking store variant.
func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    db.Init()
    db.Migrate()

    blocking := &store.Blocking{Store: &store.Postgres{DB: db.DB}}

    persona := &model.Persona{
        SourceURL:   "https://example.com",
        Description: "B2B SaaS founder",
        Attributes: model.Attributes{
            Name:       "SaaS Founder",
            Summary:    "Early-stage B2B SaaS founder focused on pipeline growth and retention.",
            Tone:       "conversational",
            Interests:  []string{"outbound automation", "product-led growth"},
            PainPoints: []string{"low reply rates on cold outreach", "manual prospect research"},
        },
        CreatedAt: time.Now().UTC(),
    }

    personaID, err := blocking.Insert(store.Personas, persona)
    if err != nil {
        log.Fatalf("failed to seed persona: %v", err)
    }
    fmt.Println("Seeded persona:", personaID)

    campaign := &model.Campaign{
        PersonaID: personaID,
        Status:    model.CampaignStatusComplete,
        Blocks: []model.ContentBlock{
            {
                Channel:      model.ChannelEmail,
                Subject:      "Cut prospect research from hours to minutes",
                Body:         "Hi — noticed you're scaling outbound. Most founders we talk to lose hours a week to manual research before a single email goes out.",
                CallToAction: "Worth a 15 minute call this week?",
            },
        },
        CreatedAt: time.Now().UTC(),
    }

    campaignID, err := blocking.Insert(store.Campaigns, campaign)
    if err != nil {
        log.Fatalf("failed to seed campaign: %v", err)
    }
    fmt.Println("Seeded campaign:", campaignID)

    fmt.Println("Database seeding completed successfully!")
}
