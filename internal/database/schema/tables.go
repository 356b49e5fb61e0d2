// Package schema holds the table definitions applied on startup.
package schema

// TableDefinitions contains the statements creating the tables of the API.
// Don't put REFERENCES or CHECK constraints here.
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id UUID NOT NULL,
		version INTEGER NOT NULL,
		master JSONB NOT NULL,
		content JSONB NOT NULL,
		commit_message VARCHAR(255),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		deleted_at TIMESTAMP,
		PRIMARY KEY (id, version)
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		card_type VARCHAR(50) NOT NULL,
		content JSONB NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		deleted_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS visual_resources (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		file_type VARCHAR(20) NOT NULL,
		file_url TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

// IndexDefinitions run after the tables exist
var IndexDefinitions = []string{
	`CREATE INDEX IF NOT EXISTS idx_templates_updated_at ON templates (updated_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_card_type ON cards (card_type) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_visual_resources_file_type ON visual_resources (file_type)`,
}
