package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"onboard/internal/domain/wizard"
)

// Postgres reads the externally maintained directory tables. The tables are
// owned by the HR system of record; this service only ever selects from them.
type Postgres struct {
	DB *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{DB: pool}
}

// Load hydrates an in-memory snapshot from the directory tables. The rule
// set evaluates against the snapshot, so a directory outage degrades to
// stale data instead of failed validations.
func (p *Postgres) Load(ctx context.Context) (*Memory, error) {
	managers, err := p.loadManagers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load managers: %w", err)
	}
	skills, err := p.loadSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}

	snapshot := newEmptyMemory()
	snapshot.ReplaceManagers(managers)
	snapshot.ReplaceSkills(skills)
	return snapshot, nil
}

func (p *Postgres) loadManagers(ctx context.Context) (map[string][]wizard.Manager, error) {
	rows, err := p.DB.Query(ctx, `
    SELECT department, id, full_name
    FROM directory_managers
    ORDER BY department, full_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]wizard.Manager)
	for rows.Next() {
		var department string
		var manager wizard.Manager
		if err := rows.Scan(&department, &manager.ID, &manager.Name); err != nil {
			return nil, err
		}
		out[department] = append(out[department], manager)
	}
	return out, rows.Err()
}

func (p *Postgres) loadSkills(ctx context.Context) (map[string][]string, error) {
	rows, err := p.DB.Query(ctx, `
    SELECT department, skill
    FROM directory_department_skills
    ORDER BY department, skill
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var department, skill string
		if err := rows.Scan(&department, &skill); err != nil {
			return nil, err
		}
		out[department] = append(out[department], skill)
	}
	return out, rows.Err()
}
