// Package fixtures supplies the initial tracker snapshot.
// The built-in data stands in for a persistence-backed fetch; a YAML seed file
// with the same shape can replace it.
package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/store"
	"gopkg.in/yaml.v3"
)

// Seed is the on-disk shape of a snapshot.
type Seed struct {
	Users    []domain.User    `json:"users" yaml:"users"`
	Projects []domain.Project `json:"projects" yaml:"projects"`
	Issues   []domain.Issue   `json:"issues" yaml:"issues"`
}

// State converts the seed into a store snapshot whose current project is the first one.
func (s Seed) State() store.State {
	st := store.State{
		Users:    s.Users,
		Projects: s.Projects,
		Issues:   s.Issues,
	}
	if len(s.Projects) > 0 {
		st.CurrentProjectID = s.Projects[0].ID
	}
	return st
}

// FromState extracts the seed portion of a snapshot.
func FromState(st store.State) Seed {
	return Seed{
		Users:    st.Users,
		Projects: st.Projects,
		Issues:   st.Issues,
	}
}

// Snapshot returns the built-in data set as a fresh store snapshot.
func Snapshot() store.State {
	return Default().State()
}

// Load reads a YAML (or JSON, which is valid YAML) seed file.
func Load(path string) (store.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.State{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var seed Seed
	if err := yaml.NewDecoder(f).Decode(&seed); err != nil {
		return store.State{}, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return seed.State(), nil
}

// Format is an export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Write encodes the seed portion of st to w.
func Write(w io.Writer, st store.State, format Format) error {
	seed := FromState(st)

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(seed); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(seed); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(fmt.Sprintf("fixtures: bad timestamp %q: %v", s, err))
	}
	return t
}

// Default returns the built-in users, projects and issues.
func Default() Seed {
	return Seed{
		Users: []domain.User{
			{
				ID:        "user-1",
				Name:      "Alex Johnson",
				Email:     "alex@bugSquash.com",
				AvatarURL: "https://images.pexels.com/photos/614810/pexels-photo-614810.jpeg?auto=compress&cs=tinysrgb&w=150",
				Role:      domain.RoleAdmin,
			},
			{
				ID:        "user-2",
				Name:      "Sarah Chen",
				Email:     "sarah@bugSquash.com",
				AvatarURL: "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150",
				Role:      domain.RoleMember,
			},
			{
				ID:        "user-3",
				Name:      "Mike Rodriguez",
				Email:     "mike@bugSquash.com",
				AvatarURL: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=150",
				Role:      domain.RoleMember,
			},
		},
		Projects: []domain.Project{
			{
				ID:          "project-1",
				Name:        "Web Application",
				Key:         "WEB",
				Description: "Corporate website and customer portal",
				Lead:        "user-1",
				Statuses:    domain.DefaultStatuses(),
				CreatedAt:   ts("2023-01-15T09:00:00Z"),
			},
			{
				ID:          "project-2",
				Name:        "Mobile App",
				Key:         "MOB",
				Description: "iOS and Android applications",
				Lead:        "user-2",
				Statuses: []domain.Status{
					{ID: "status-1", Name: "Backlog", Color: "#EEEEEE"},
					{ID: "status-2", Name: "To Do", Color: "#E0E0FF"},
					{ID: "status-3", Name: "In Progress", Color: "#FFF8E0"},
					{ID: "status-5", Name: "Done", Color: "#E0FFE0"},
				},
				CreatedAt: ts("2023-02-10T11:30:00Z"),
			},
		},
		Issues: []domain.Issue{
			{
				ID:          "issue-1",
				Title:       "Login page not working on Safari",
				Description: "Users are unable to log in using Safari browser. The login button does not respond to clicks.",
				Type:        domain.TypeBug,
				Status:      "status-3",
				Priority:    domain.PriorityHigh,
				ProjectID:   "project-1",
				AssigneeID:  "user-3",
				ReporterID:  "user-1",
				Comments: []domain.Comment{
					{
						ID:        "comment-1",
						Content:   "This is affecting multiple users. Needs immediate attention.",
						AuthorID:  "user-1",
						CreatedAt: ts("2023-04-15T14:35:00Z"),
					},
				},
				CreatedAt: ts("2023-04-15T13:30:00Z"),
				UpdatedAt: ts("2023-04-16T09:15:00Z"),
			},
			{
				ID:          "issue-2",
				Title:       "Implement user profile settings",
				Description: "Create a page for users to update their profile information, including photo, name, and email preferences.",
				Type:        domain.TypeFeature,
				Status:      "status-2",
				Priority:    domain.PriorityMedium,
				ProjectID:   "project-1",
				AssigneeID:  "user-2",
				ReporterID:  "user-1",
				Comments:    []domain.Comment{},
				CreatedAt:   ts("2023-04-10T10:45:00Z"),
				UpdatedAt:   ts("2023-04-10T10:45:00Z"),
			},
			{
				ID:          "issue-3",
				Title:       "Improve loading performance",
				Description: "The dashboard takes too long to load. Optimize database queries and implement lazy loading for components.",
				Type:        domain.TypeImprovement,
				Status:      "status-4",
				Priority:    domain.PriorityMedium,
				ProjectID:   "project-1",
				AssigneeID:  "user-1",
				ReporterID:  "user-2",
				Comments: []domain.Comment{
					{
						ID:        "comment-2",
						Content:   "I've identified some slow queries that can be optimized.",
						AuthorID:  "user-1",
						CreatedAt: ts("2023-04-12T16:20:00Z"),
					},
				},
				CreatedAt: ts("2023-04-11T09:30:00Z"),
				UpdatedAt: ts("2023-04-12T16:20:00Z"),
			},
			{
				ID:          "issue-4",
				Title:       "App crashes on Android 11",
				Description: "Multiple users reported app crashes when opening notifications on Android 11 devices.",
				Type:        domain.TypeBug,
				Status:      "status-2",
				Priority:    domain.PriorityHighest,
				ProjectID:   "project-2",
				AssigneeID:  "user-3",
				ReporterID:  "user-2",
				Comments:    []domain.Comment{},
				CreatedAt:   ts("2023-04-18T15:20:00Z"),
				UpdatedAt:   ts("2023-04-18T15:20:00Z"),
			},
		},
	}
}
