package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/worklane/worklane/pkg/cli/config"
)

func validSeedData() config.SeedData {
	return config.SeedData{
		Users: []config.SeedUser{
			{Email: "owner@example.com", Password: "secret", Role: "OWNER"},
			{Email: "member@example.com", Password: "secret"},
		},
		Workspaces: []config.SeedWorkspace{
			{Name: "Acme", OwnerEmail: "owner@example.com"},
		},
		Boards: []config.SeedBoard{
			{Workspace: "Acme", Name: "Launch"},
		},
		Groups: []config.SeedGroup{
			{Board: "Launch", Name: "Sprint 1", SortOrder: 1},
		},
		Tasks: []config.SeedTask{
			{Group: "Sprint 1", Name: "Prepare deck", CreatorEmail: "owner@example.com", AssigneeEmail: "member@example.com"},
		},
	}
}

func TestSeedDataValidate(t *testing.T) {
	t.Run("valid data passes", func(t *testing.T) {
		data := validSeedData()
		gt.NoError(t, data.Validate())
	})

	t.Run("no users", func(t *testing.T) {
		data := config.SeedData{}
		gt.Error(t, data.Validate())
	})

	t.Run("duplicate email", func(t *testing.T) {
		data := validSeedData()
		data.Users = append(data.Users, config.SeedUser{Email: "owner@example.com", Password: "x"})
		gt.Error(t, data.Validate())
	})

	t.Run("unknown role", func(t *testing.T) {
		data := validSeedData()
		data.Users[0].Role = "WIZARD"
		gt.Error(t, data.Validate())
	})

	t.Run("workspace owner must be seeded", func(t *testing.T) {
		data := validSeedData()
		data.Workspaces[0].OwnerEmail = "ghost@example.com"
		gt.Error(t, data.Validate())
	})

	t.Run("board must reference a seeded workspace", func(t *testing.T) {
		data := validSeedData()
		data.Boards[0].Workspace = "Nowhere"
		gt.Error(t, data.Validate())
	})

	t.Run("group must reference a seeded board", func(t *testing.T) {
		data := validSeedData()
		data.Groups[0].Board = "Nowhere"
		gt.Error(t, data.Validate())
	})

	t.Run("task references must resolve", func(t *testing.T) {
		data := validSeedData()
		data.Tasks[0].Group = "Nowhere"
		gt.Error(t, data.Validate())

		data = validSeedData()
		data.Tasks[0].CreatorEmail = "ghost@example.com"
		gt.Error(t, data.Validate())

		data = validSeedData()
		data.Tasks[0].AssigneeEmail = "ghost@example.com"
		gt.Error(t, data.Validate())
	})

	t.Run("empty assignee is allowed", func(t *testing.T) {
		data := validSeedData()
		data.Tasks[0].AssigneeEmail = ""
		gt.NoError(t, data.Validate())
	})
}
