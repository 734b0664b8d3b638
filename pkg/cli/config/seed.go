package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/worklane/worklane/pkg/domain/types"
)

// Seed holds CLI flags for the seed bootstrap
type Seed struct {
	file  string
	force bool
}

// Flags returns CLI flags for seed configuration
func (s *Seed) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "TOML file with bootstrap data",
			Required:    true,
			Sources:     cli.EnvVars("WORKLANE_SEED_FILE"),
			Destination: &s.file,
		},
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "Seed even when users already exist",
			Sources:     cli.EnvVars("WORKLANE_SEED_FORCE"),
			Destination: &s.force,
		},
	}
}

// Force reports whether seeding should run against a non-empty store
func (s *Seed) Force() bool {
	return s.force
}

// SeedUser is one bootstrap directory entry
type SeedUser struct {
	Email     string `toml:"email"`
	Password  string `toml:"password"`
	FirstName string `toml:"firstName"`
	LastName  string `toml:"lastName"`
	Role      string `toml:"role"`
}

// SeedWorkspace is one bootstrap workspace, owned by a seeded user
type SeedWorkspace struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	OwnerEmail  string `toml:"ownerEmail"`
}

// SeedBoard is one bootstrap board, referencing its workspace by name
type SeedBoard struct {
	Workspace   string `toml:"workspace"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// SeedGroup is one bootstrap group, referencing its board by name
type SeedGroup struct {
	Board     string `toml:"board"`
	Name      string `toml:"name"`
	Color     string `toml:"color"`
	SortOrder int    `toml:"sortOrder"`
}

// SeedTask is one bootstrap task, referencing its group by name and users
// by email
type SeedTask struct {
	Group         string `toml:"group"`
	Name          string `toml:"name"`
	Description   string `toml:"description"`
	Status        string `toml:"status"`
	Priority      string `toml:"priority"`
	CreatorEmail  string `toml:"creatorEmail"`
	AssigneeEmail string `toml:"assigneeEmail"`
}

// SeedData is the parsed bootstrap file
type SeedData struct {
	Users      []SeedUser      `toml:"users"`
	Workspaces []SeedWorkspace `toml:"workspaces"`
	Boards     []SeedBoard     `toml:"boards"`
	Groups     []SeedGroup     `toml:"groups"`
	Tasks      []SeedTask      `toml:"tasks"`
}

// Load parses and validates the seed file
func (s *Seed) Load() (*SeedData, error) {
	raw, err := os.ReadFile(s.file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", s.file))
	}

	var data SeedData
	if err := toml.Unmarshal(raw, &data); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed file", goerr.V("path", s.file))
	}

	if err := data.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid seed file", goerr.V("path", s.file))
	}

	return &data, nil
}

// Validate checks per-entry requirements and cross-entry references
func (d *SeedData) Validate() error {
	if len(d.Users) == 0 {
		return goerr.New("at least one user is required")
	}

	emails := make(map[string]bool, len(d.Users))
	for i, u := range d.Users {
		if u.Email == "" {
			return goerr.New("user email is required", goerr.V("index", i))
		}
		if u.Password == "" {
			return goerr.New("user password is required", goerr.V("email", u.Email))
		}
		if u.Role != "" {
			if _, err := types.ParseRole(u.Role); err != nil {
				return goerr.Wrap(err, "invalid user role", goerr.V("email", u.Email))
			}
		}
		if emails[u.Email] {
			return goerr.New("duplicate user email", goerr.V("email", u.Email))
		}
		emails[u.Email] = true
	}

	workspaces := make(map[string]bool, len(d.Workspaces))
	for i, w := range d.Workspaces {
		if w.Name == "" {
			return goerr.New("workspace name is required", goerr.V("index", i))
		}
		if !emails[w.OwnerEmail] {
			return goerr.New("workspace owner is not a seeded user",
				goerr.V("workspace", w.Name),
				goerr.V("ownerEmail", w.OwnerEmail))
		}
		workspaces[w.Name] = true
	}

	boards := make(map[string]bool, len(d.Boards))
	for i, b := range d.Boards {
		if b.Name == "" {
			return goerr.New("board name is required", goerr.V("index", i))
		}
		if !workspaces[b.Workspace] {
			return goerr.New("board references unknown workspace",
				goerr.V("board", b.Name),
				goerr.V("workspace", b.Workspace))
		}
		boards[b.Name] = true
	}

	groups := make(map[string]bool, len(d.Groups))
	for i, g := range d.Groups {
		if g.Name == "" {
			return goerr.New("group name is required", goerr.V("index", i))
		}
		if !boards[g.Board] {
			return goerr.New("group references unknown board",
				goerr.V("group", g.Name),
				goerr.V("board", g.Board))
		}
		groups[g.Name] = true
	}

	for i, t := range d.Tasks {
		if t.Name == "" {
			return goerr.New("task name is required", goerr.V("index", i))
		}
		if !groups[t.Group] {
			return goerr.New("task references unknown group",
				goerr.V("task", t.Name),
				goerr.V("group", t.Group))
		}
		if !emails[t.CreatorEmail] {
			return goerr.New("task creator is not a seeded user",
				goerr.V("task", t.Name),
				goerr.V("creatorEmail", t.CreatorEmail))
		}
		if t.AssigneeEmail != "" && !emails[t.AssigneeEmail] {
			return goerr.New("task assignee is not a seeded user",
				goerr.V("task", t.Name),
				goerr.V("assigneeEmail", t.AssigneeEmail))
		}
	}

	return nil
}
