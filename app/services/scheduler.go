package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/database"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/succession"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 6:15 AM
			if now.Hour() == 6 && now.Minute() == 15 {
				log.Println("Triggering scheduled tasks [06:15]...")

				eng := succession.NewEngine(database.NewSuccessionStore(db), nil)

				// Auto-create the yearly succession cycle on January 2nd
				if now.Month() == time.January && now.Day() == 2 {
					if err := EnsureYearlyCycle(eng, now); err != nil {
						log.Printf("Error creating yearly succession cycle: %v", err)
					}
				}

				// Seed timelines for active cycles that have none
				if err := SeedActiveCycleTimelines(eng); err != nil {
					log.Printf("Error seeding succession timelines: %v", err)
				}

				if err := database.DeleteExpiredSessions(db); err != nil {
					log.Printf("Error purging expired sessions: %v", err)
				}
			}
		}
	}()
}

// systemActor is the identity scheduled jobs act under.
var systemActor = succession.Actor{MemberID: "", IsAdmin: true}

// EnsureYearlyCycle creates this year's draft cycle if it does not exist yet.
func EnsureYearlyCycle(eng *succession.Engine, now time.Time) error {
	year := now.Year()
	start := time.Date(year, time.March, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(year, time.June, 30, 0, 0, 0, 0, now.Location())

	_, err := eng.CreateCycle(systemActor, succession.Input{
		"year":        fmt.Sprintf("%d", year),
		"name":        fmt.Sprintf("Leadership Succession %d", year),
		"description": "Auto-created annual leadership succession cycle",
		"start_date":  start.Format("2006-01-02"),
		"end_date":    end.Format("2006-01-02"),
	})
	if err != nil {
		// Already having a cycle for the year is the normal case after day one
		if _, ok := err.(*succession.PreconditionError); ok {
			return nil
		}
		return err
	}
	log.Printf("Auto-created succession cycle for %d", year)
	return nil
}

// SeedActiveCycleTimelines seeds the 7-step timeline for every active cycle
// that has no steps yet. Seeded cycles are skipped by the engine's guard.
func SeedActiveCycleTimelines(eng *succession.Engine) error {
	cycles, err := eng.ListCycles()
	if err != nil {
		return err
	}
	for _, cycle := range cycles {
		if cycle.Status != models.CycleActive {
			continue
		}
		steps, err := eng.ListSteps(cycle.ID)
		if err != nil {
			return err
		}
		if len(steps) > 0 {
			continue
		}
		count, err := eng.SeedSteps(cycle.ID, cycle.StartDate)
		if err != nil {
			log.Printf("Error seeding timeline for cycle %d: %v", cycle.Year, err)
			continue
		}
		log.Printf("Seeded %d timeline steps for cycle %d", count, cycle.Year)
	}
	return nil
}
