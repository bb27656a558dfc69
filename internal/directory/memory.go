// Package directory supplies the externally-owned manager directory and
// skills catalog the wizard's rule set consults. Implementations expose pure
// in-memory snapshots so rule evaluation never performs I/O.
package directory

import (
	"sync"

	"onboard/internal/domain/wizard"
)

// Memory is a department-keyed snapshot of managers and skills. It backs the
// default deployment and every test; the Postgres loader also hydrates one of
// these.
type Memory struct {
	mu       sync.RWMutex
	managers map[string][]wizard.Manager
	skills   map[string][]string
}

func NewMemory() *Memory {
	m := &Memory{
		managers: make(map[string][]wizard.Manager),
		skills:   make(map[string][]string),
	}
	m.seed()
	return m
}

func newEmptyMemory() *Memory {
	return &Memory{
		managers: make(map[string][]wizard.Manager),
		skills:   make(map[string][]string),
	}
}

func (m *Memory) seed() {
	m.ReplaceManagers(map[string][]wizard.Manager{
		"Engineering": {
			{ID: "e1", Name: "Alice Johnson"},
			{ID: "e2", Name: "Bob Smith"},
			{ID: "e3", Name: "Grace Chen"},
		},
		"Marketing": {
			{ID: "m1", Name: "Carol White"},
			{ID: "m2", Name: "Hector Ruiz"},
		},
		"Sales": {
			{ID: "s1", Name: "David Brown"},
			{ID: "s2", Name: "Ivy Clarke"},
		},
		"HR": {
			{ID: "h1", Name: "Erin Davis"},
		},
		"Finance": {
			{ID: "f1", Name: "Frank Miller"},
		},
	})
	m.ReplaceSkills(map[string][]string{
		"Engineering": {"Go", "Python", "JavaScript", "SQL", "Docker", "Kubernetes"},
		"Marketing":   {"SEO", "Content Writing", "Analytics", "Social Media"},
		"Sales":       {"Negotiation", "CRM", "Prospecting", "Presentations"},
		"HR":          {"Recruiting", "Onboarding", "Payroll", "Compliance"},
		"Finance":     {"Accounting", "Forecasting", "Excel", "Auditing"},
	})
}

func (m *Memory) ReplaceManagers(managers map[string][]wizard.Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.managers = make(map[string][]wizard.Manager, len(managers))
	for department, list := range managers {
		copied := make([]wizard.Manager, len(list))
		copy(copied, list)
		m.managers[department] = copied
	}
}

func (m *Memory) ReplaceSkills(skills map[string][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills = make(map[string][]string, len(skills))
	for department, list := range skills {
		copied := make([]string, len(list))
		copy(copied, list)
		m.skills[department] = copied
	}
}

// Managers returns the managers for one department. Unknown departments
// yield an empty list.
func (m *Memory) Managers(department string) []wizard.Manager {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.managers[department]
	out := make([]wizard.Manager, len(list))
	copy(out, list)
	return out
}

func (m *Memory) Skills(department string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.skills[department]
	out := make([]string, len(list))
	copy(out, list)
	return out
}
