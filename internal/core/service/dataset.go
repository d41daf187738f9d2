package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/taskflow/taskflow-api/internal/core/analytics"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// loadDataset reads users, projects and tasks concurrently. The first
// failure cancels the other reads.
func loadDataset(ctx context.Context, users ports.UserRepository, projects ports.ProjectRepository, tasks ports.TaskRepository) (analytics.Dataset, error) {
	var ds analytics.Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := users.List(gctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		ds.Users = list
		return nil
	})
	g.Go(func() error {
		list, err := projects.List(gctx)
		if err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
		ds.Projects = list
		return nil
	})
	g.Go(func() error {
		list, err := tasks.List(gctx, ports.TaskFilter{})
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		ds.Tasks = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return analytics.Dataset{}, err
	}
	return ds, nil
}
