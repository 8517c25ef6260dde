package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tempora-backend/internal/models"
	"tempora-backend/internal/repository"
)

func TestTaskCreate(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store, nil)

	desc := "morning pages"
	task, err := svc.Create(context.Background(), models.TaskCreateRequest{Name: "writing", Description: &desc})
	require.NoError(t, err)
	require.NotZero(t, task.ID)
	require.Equal(t, "writing", task.Name)
	require.True(t, task.IsActive)
	require.False(t, task.IsFavorite)
}

func TestTaskCreateDuplicateName(t *testing.T) {
	store := newFakeTaskStore()
	store.addTask("writing")
	svc := NewTaskService(store, nil)

	_, err := svc.Create(context.Background(), models.TaskCreateRequest{Name: "writing"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestTaskFindAllEmpty(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore(), nil)

	tasks, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, tasks)
	require.Empty(t, tasks)
}

func TestTaskUpdatePartial(t *testing.T) {
	store := newFakeTaskStore()
	created := store.addTask("writing")
	svc := NewTaskService(store, nil)

	color := "#ff6b6b"
	favorite := true
	updated, err := svc.Update(context.Background(), created.ID, models.TaskUpdateRequest{
		ColorCode:  &color,
		IsFavorite: &favorite,
	})
	require.NoError(t, err)
	require.Equal(t, "writing", updated.Name)
	require.Equal(t, &color, updated.ColorCode)
	require.True(t, updated.IsFavorite)
	require.True(t, updated.IsActive)
}

func TestTaskUpdateNameCollision(t *testing.T) {
	store := newFakeTaskStore()
	store.addTask("writing")
	other := store.addTask("review")
	svc := NewTaskService(store, nil)

	name := "writing"
	_, err := svc.Update(context.Background(), other.ID, models.TaskUpdateRequest{Name: &name})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	// Renaming to its own current name is fine.
	name = "review"
	_, err = svc.Update(context.Background(), other.ID, models.TaskUpdateRequest{Name: &name})
	require.NoError(t, err)
}

func TestTaskUpdateNotFound(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore(), nil)

	name := "writing"
	_, err := svc.Update(context.Background(), 42, models.TaskUpdateRequest{Name: &name})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

type referencedTaskStore struct {
	*fakeTaskStore
}

func (s *referencedTaskStore) Delete(ctx context.Context, id int64) error {
	return repository.ErrReferenced
}

func TestTaskDeleteReferenced(t *testing.T) {
	store := &referencedTaskStore{newFakeTaskStore()}
	created := store.addTask("writing")
	svc := NewTaskService(store, nil)

	err := svc.Delete(context.Background(), created.ID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestTaskDelete(t *testing.T) {
	store := newFakeTaskStore()
	created := store.addTask("writing")
	svc := NewTaskService(store, nil)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	var notFound *NotFoundError
	err := svc.Delete(context.Background(), created.ID)
	require.ErrorAs(t, err, &notFound)
}
