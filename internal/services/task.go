package services

import (
	"context"
	"errors"
	"fmt"

	"tempora-backend/internal/cache"
	"tempora-backend/internal/models"
	"tempora-backend/internal/repository"
)

type TaskService struct {
	tasks TaskStore
	cache *cache.Cache
}

func NewTaskService(tasks TaskStore, c *cache.Cache) *TaskService {
	return &TaskService{tasks: tasks, cache: c}
}

func (s *TaskService) FindAll(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *TaskService) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	return findTask(ctx, s.tasks, id)
}

func (s *TaskService) Create(ctx context.Context, req models.TaskCreateRequest) (*models.Task, error) {
	exists, err := s.tasks.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ValidationError{Message: fmt.Sprintf("a task named %q already exists", req.Name)}
	}

	task := &models.Task{
		Name:        req.Name,
		Description: req.Description,
		ColorCode:   req.ColorCode,
		IsActive:    true,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ValidationError{Message: fmt.Sprintf("a task named %q already exists", req.Name)}
		}
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, req models.TaskUpdateRequest) (*models.Task, error) {
	task, err := findTask(ctx, s.tasks, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		taken, err := s.tasks.ExistsByNameExcluding(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &ValidationError{Message: fmt.Sprintf("a task named %q already exists", *req.Name)}
		}
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.ColorCode != nil {
		task.ColorCode = req.ColorCode
	}
	if req.IsActive != nil {
		task.IsActive = *req.IsActive
	}
	if req.IsFavorite != nil {
		task.IsFavorite = *req.IsFavorite
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return task, nil
}

// Delete refuses to remove a task that timer sessions or activity logs still
// reference; the history stays intact.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	err := s.tasks.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &NotFoundError{Message: fmt.Sprintf("task not found: id=%d", id)}
	case errors.Is(err, repository.ErrReferenced):
		return &ConflictError{Message: "task still has timer sessions or activity logs; delete those first"}
	case err != nil:
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func findTask(ctx context.Context, tasks TaskStore, id int64) (*models.Task, error) {
	task, err := tasks.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("task not found: id=%d", id)}
	}
	return task, err
}
