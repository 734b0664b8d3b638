package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/worklane/worklane/pkg/cli/config"
	"github.com/worklane/worklane/pkg/domain/types"
	"github.com/worklane/worklane/pkg/usecase"
	"github.com/worklane/worklane/pkg/utils/logging"
)

func cmdSeed() *cli.Command {
	var repoCfg config.Repository
	var seedCfg config.Seed

	flags := repoCfg.Flags()
	flags = append(flags, seedCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Populate the store with bootstrap data from a TOML file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			data, err := seedCfg.Load()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Idempotence guard: refuse to seed a populated store unless forced
			count, err := repo.User().Count(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to count existing users")
			}
			if count > 0 && !seedCfg.Force() {
				return goerr.New("store already has users, use --force to seed anyway",
					goerr.V("users", count))
			}

			uc := usecase.New(repo)
			return seed(ctx, uc, data)
		},
	}
}

func seed(ctx context.Context, uc *usecase.UseCases, data *config.SeedData) error {
	usersByEmail := make(map[string]types.UserID, len(data.Users))
	for _, u := range data.Users {
		user, err := uc.User.CreateUser(ctx, usecase.CreateUserInput{
			Email:     u.Email,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
		})
		if err != nil {
			return goerr.Wrap(err, "failed to seed user", goerr.V("email", u.Email))
		}
		usersByEmail[u.Email] = user.ID
	}

	workspacesByName := make(map[string]types.WorkspaceID, len(data.Workspaces))
	for _, w := range data.Workspaces {
		workspace, err := uc.Workspace.CreateWorkspace(ctx, w.Name, w.Description, usersByEmail[w.OwnerEmail])
		if err != nil {
			return goerr.Wrap(err, "failed to seed workspace", goerr.V("name", w.Name))
		}
		workspacesByName[w.Name] = workspace.ID
	}

	boardsByName := make(map[string]types.BoardID, len(data.Boards))
	for _, b := range data.Boards {
		board, err := uc.Board.CreateBoard(ctx, workspacesByName[b.Workspace], b.Name, b.Description)
		if err != nil {
			return goerr.Wrap(err, "failed to seed board", goerr.V("name", b.Name))
		}
		boardsByName[b.Name] = board.ID
	}

	groupsByName := make(map[string]types.GroupID, len(data.Groups))
	for _, g := range data.Groups {
		group, err := uc.Group.CreateGroup(ctx, boardsByName[g.Board], g.Name, g.Color, g.SortOrder)
		if err != nil {
			return goerr.Wrap(err, "failed to seed group", goerr.V("name", g.Name))
		}
		groupsByName[g.Name] = group.ID
	}

	for _, t := range data.Tasks {
		input := usecase.CreateTaskInput{
			GroupID:     groupsByName[t.Group],
			Name:        t.Name,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			CreatedBy:   usersByEmail[t.CreatorEmail],
		}
		if t.AssigneeEmail != "" {
			assignee := usersByEmail[t.AssigneeEmail]
			input.AssignedTo = &assignee
		}
		if _, err := uc.Task.CreateTask(ctx, input); err != nil {
			return goerr.Wrap(err, "failed to seed task", goerr.V("name", t.Name))
		}
	}

	logging.Default().Info("seed completed",
		"users", len(data.Users),
		"workspaces", len(data.Workspaces),
		"boards", len(data.Boards),
		"groups", len(data.Groups),
		"tasks", len(data.Tasks),
	)

	return nil
}
