// Package seed owns the fixture data loaded at boot: the fixed user roster
// and a handful of demo reports. Seed passwords are defaults for development;
// deployments override them through SEED_PASSWORDS.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

type seedUser struct {
	id        int
	username  string
	password  string
	role      string
	name      string
	specialty string
}

var roster = []seedUser{
	{1, "admin", "admin123", domain.RoleAdmin, "Admin User", ""},
	{2, "plumber1", "plumber123", domain.RoleWorker, "John Plumber", "Plumbing"},
	{3, "electrician1", "electrician123", domain.RoleWorker, "Jane Electrician", "Electrical"},
	{4, "carpenter1", "carpenter123", domain.RoleWorker, "Carl Carpenter", "Furniture"},
	{5, "hvac1", "hvac123", domain.RoleWorker, "Harry HVAC", "HVAC"},
	{6, "handyman1", "handyman123", domain.RoleWorker, "Hank Handyman", "Other"},
}

// Users builds the seeded user set. overrides maps username to a replacement
// password (parsed from SEED_PASSWORDS); unknown usernames are rejected so a
// typo in deployment config fails loudly instead of leaving a default live.
func Users(overrides map[string]string) ([]*domain.User, error) {
	unused := make(map[string]string, len(overrides))
	for k, v := range overrides {
		unused[k] = v
	}

	users := make([]*domain.User, 0, len(roster))
	for _, su := range roster {
		password := su.password
		if p, ok := overrides[su.username]; ok {
			password = p
			delete(unused, su.username)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", su.username, err)
		}

		users = append(users, &domain.User{
			ID:           su.id,
			Username:     su.username,
			PasswordHash: string(hash),
			Role:         su.role,
			Name:         su.name,
			Specialty:    su.specialty,
		})
	}

	for username := range unused {
		return nil, fmt.Errorf("seed password override for unknown user %q", username)
	}
	return users, nil
}

// ParsePasswordOverrides parses the SEED_PASSWORDS format:
// "user:pass,user:pass". Empty input yields an empty map.
func ParsePasswordOverrides(raw string) (map[string]string, error) {
	overrides := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return overrides, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		username, password, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || username == "" || password == "" {
			return nil, fmt.Errorf("malformed seed password entry %q", pair)
		}
		overrides[username] = password
	}
	return overrides, nil
}

// Reports returns the demo reports the service boots with.
func Reports() []*domain.Report {
	now := time.Now().UTC()
	return []*domain.Report{
		{
			ID:          uuid.NewString(),
			Title:       "Cracked Wall in Building A",
			Description: "Large crack noticed in the west wall of Building A, needs structural inspection.",
			Location:    "Building A, West Wing",
			Category:    "Structural",
			Status:      domain.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
			ReportedBy:  "Admin User",
			AssignedTo:  "Civil Team",
			Priority:    domain.PriorityHigh,
			Notes:       []domain.Note{},
		},
		{
			ID:          uuid.NewString(),
			Title:       "Leaking Pipe in Restroom",
			Description: "Continuous water leakage from pipe in first floor restroom.",
			Location:    "First Floor, Men's Restroom",
			Category:    "Plumbing",
			Status:      domain.StatusInProgress,
			CreatedAt:   now,
			UpdatedAt:   now,
			ReportedBy:  "Admin User",
			AssignedTo:  "John Plumber",
			Priority:    domain.PriorityHigh,
			Notes:       []domain.Note{},
		},
		{
			ID:          uuid.NewString(),
			Title:       "Flickering Lights in Corridor",
			Description: "Lights flicker occasionally in the main corridor, possible wiring issue.",
			Location:    "Main Corridor, Second Floor",
			Category:    "Electrical",
			Status:      domain.StatusResolved,
			CreatedAt:   now,
			UpdatedAt:   now,
			ReportedBy:  "Admin User",
			AssignedTo:  "Jane Electrician",
			Priority:    domain.PriorityMedium,
			Notes:       []domain.Note{},
		},
	}
}
