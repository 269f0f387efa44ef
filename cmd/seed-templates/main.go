package main

import (
	"context"
	"fmt"
	"log"

	"github.com/inkwell-hq/inkwell-api/internal/config"
	"github.com/inkwell-hq/inkwell-api/internal/database"
)

type starterTemplate struct {
	Name        string
	Description string
	Category    string
	Content     string
	Tags        []string
}

var starters = []starterTemplate{
	{
		Name:        "Meeting Notes",
		Description: "Agenda, attendees and action items for a recurring meeting.",
		Category:    "work",
		Content:     "# Meeting Notes\n\n**Date:**\n**Attendees:**\n\n## Agenda\n\n-\n\n## Notes\n\n## Action Items\n\n- [ ] ",
		Tags:        []string{"meeting", "notes"},
	},
	{
		Name:        "Project Brief",
		Description: "One-page summary of goals, scope and timeline for a new project.",
		Category:    "work",
		Content:     "# Project Brief\n\n## Background\n\n## Goals\n\n## Scope\n\n## Timeline\n\n## Stakeholders\n",
		Tags:        []string{"project", "planning"},
	},
	{
		Name:        "Blog Post",
		Description: "A basic article layout with introduction, body and conclusion.",
		Category:    "writing",
		Content:     "# Title\n\n*Draft*\n\n## Introduction\n\n## Body\n\n## Conclusion\n",
		Tags:        []string{"blog", "article"},
	},
	{
		Name:        "Weekly Review",
		Description: "Reflect on the past week and plan the next one.",
		Category:    "personal",
		Content:     "# Weekly Review\n\n## What went well\n\n## What didn't\n\n## Next week\n\n- [ ] ",
		Tags:        []string{"review", "planning"},
	},
	{
		Name:        "Product Requirements",
		Description: "Requirements document with user stories and acceptance criteria.",
		Category:    "work",
		Content:     "# Product Requirements\n\n## Problem\n\n## User Stories\n\n## Requirements\n\n## Acceptance Criteria\n\n## Out of Scope\n",
		Tags:        []string{"product", "requirements"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seeded := 0
	for _, t := range starters {
		result, err := db.Pool.Exec(ctx, `
			INSERT INTO public_templates (name, description, content, category, is_public, tags)
			SELECT $1, $2, $3, $4, TRUE, $5
			WHERE NOT EXISTS (SELECT 1 FROM public_templates WHERE name = $1 AND creator_id IS NULL)
		`, t.Name, t.Description, t.Content, t.Category, t.Tags)
		if err != nil {
			log.Fatalf("Failed to seed template %q: %v", t.Name, err)
		}
		if result.RowsAffected() > 0 {
			seeded++
		}
	}

	fmt.Printf("Seeded %d of %d starter templates\n", seeded, len(starters))
}
