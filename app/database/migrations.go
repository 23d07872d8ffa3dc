package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone VARCHAR(20),
			chapter TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS succession_cycles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			year INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			version INTEGER NOT NULL DEFAULT 1,
			phase_configs JSONB,
			selection_committee JSONB,
			published BOOLEAN NOT NULL DEFAULT false,
			published_at TIMESTAMPTZ,
			created_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS succession_cycles_year_key ON succession_cycles (year)`,

		`CREATE TABLE IF NOT EXISTS succession_positions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			cycle_id UUID NOT NULL REFERENCES succession_cycles(id),
			title TEXT NOT NULL,
			description TEXT,
			hierarchy_level INTEGER NOT NULL,
			number_of_openings INTEGER NOT NULL DEFAULT 1,
			eligibility_criteria JSONB,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS succession_timeline_steps (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			cycle_id UUID NOT NULL REFERENCES succession_cycles(id) ON DELETE CASCADE,
			step_number INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			start_date TIMESTAMPTZ,
			end_date TIMESTAMPTZ,
			status TEXT NOT NULL DEFAULT 'pending',
			auto_trigger_action TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS succession_nominations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			cycle_id UUID NOT NULL REFERENCES succession_cycles(id),
			position_id UUID NOT NULL REFERENCES succession_positions(id),
			nominee_member_id UUID NOT NULL,
			nominated_by UUID NOT NULL,
			statement TEXT,
			supporting_evidence JSONB,
			status TEXT NOT NULL DEFAULT 'draft',
			reviewed_by UUID,
			reviewed_at TIMESTAMPTZ,
			review_notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS succession_applications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			cycle_id UUID NOT NULL REFERENCES succession_cycles(id),
			position_id UUID NOT NULL REFERENCES succession_positions(id),
			applicant_member_id UUID NOT NULL,
			statement TEXT,
			supporting_evidence JSONB,
			status TEXT NOT NULL DEFAULT 'draft',
			reviewed_by UUID,
			reviewed_at TIMESTAMPTZ,
			review_notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS succession_evaluators (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			cycle_id UUID NOT NULL REFERENCES succession_cycles(id),
			member_id UUID NOT NULL,
			assigned_by UUID,
			scores_submitted INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS succession_evaluators_member_key
			ON succession_evaluators (cycle_id, member_id)`,

		`CREATE TABLE IF NOT EXISTS succession_evaluation_scores (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			nomination_id UUID NOT NULL REFERENCES succession_nominations(id),
			evaluator_id UUID NOT NULL REFERENCES succession_evaluators(id),
			criterion TEXT NOT NULL,
			score INTEGER NOT NULL,
			comments TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS succession_scores_criterion_key
			ON succession_evaluation_scores (nomination_id, evaluator_id, criterion)`,

		`CREATE TABLE IF NOT EXISTS succession_approaches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			cycle_id UUID NOT NULL REFERENCES succession_cycles(id),
			nomination_id UUID NOT NULL REFERENCES succession_nominations(id),
			nominee_member_id UUID NOT NULL,
			approached_by UUID NOT NULL,
			notes TEXT,
			response_status TEXT NOT NULL DEFAULT 'pending',
			response_notes TEXT,
			responded_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS succession_meetings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			cycle_id UUID NOT NULL REFERENCES succession_cycles(id),
			title TEXT NOT NULL,
			agenda TEXT,
			minutes TEXT,
			scheduled_at TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled',
			created_by UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS succession_votes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			meeting_id UUID NOT NULL REFERENCES succession_meetings(id),
			nominee_member_id UUID NOT NULL,
			voter_member_id UUID NOT NULL,
			choice TEXT NOT NULL,
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS succession_votes_voter_key
			ON succession_votes (meeting_id, nominee_member_id, voter_member_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
