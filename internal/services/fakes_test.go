package services

import (
	"context"
	"time"

	"tempora-backend/internal/models"
	"tempora-backend/internal/repository"
)

// In-memory stores backing the service tests.

type fakeTaskStore struct {
	tasks  map[int64]*models.Task
	nextID int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*models.Task), nextID: 1}
}

func (f *fakeTaskStore) addTask(name string) *models.Task {
	t := &models.Task{ID: f.nextID, Name: name, IsActive: true}
	f.tasks[t.ID] = t
	f.nextID++
	return t
}

func (f *fakeTaskStore) FindAll(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	for id := int64(1); id < f.nextID; id++ {
		if t, ok := f.tasks[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTaskStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, t := range f.tasks {
		if t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskStore) ExistsByNameExcluding(ctx context.Context, name string, id int64) (bool, error) {
	for _, t := range f.tasks {
		if t.Name == name && t.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskStore) Create(ctx context.Context, t *models.Task) error {
	t.ID = f.nextID
	f.nextID++
	copied := *t
	f.tasks[t.ID] = &copied
	return nil
}

func (f *fakeTaskStore) Update(ctx context.Context, t *models.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *t
	f.tasks[t.ID] = &copied
	return nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

type fakeSessionStore struct {
	sessions []models.TimerSession
	nextID   int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{nextID: 1}
}

func (f *fakeSessionStore) Create(ctx context.Context, s *models.TimerSession) error {
	s.ID = f.nextID
	f.nextID++
	f.sessions = append(f.sessions, *s)
	return nil
}

func (f *fakeSessionStore) FindByID(ctx context.Context, id int64) (*models.TimerSession, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			copied := f.sessions[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessionStore) FindByStatus(ctx context.Context, status models.TimerStatus) ([]models.TimerSession, error) {
	var out []models.TimerSession
	for _, s := range f.sessions {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) FindCompletedBetween(ctx context.Context, from, to time.Time) ([]models.TimerSession, error) {
	var out []models.TimerSession
	for _, s := range f.sessions {
		if s.Status != models.TimerCompleted || s.EndedAt == nil {
			continue
		}
		ended := s.EndedAt.Time
		if !ended.Before(from) && ended.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) FindCompletedWithoutLog(ctx context.Context) ([]models.TimerSession, error) {
	return nil, nil
}

func (f *fakeSessionStore) Update(ctx context.Context, s *models.TimerSession) error {
	for i := range f.sessions {
		if f.sessions[i].ID == s.ID {
			f.sessions[i] = *s
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeLogStore struct {
	logs   []models.ActivityLog
	nextID int64
}

func newFakeLogStore() *fakeLogStore {
	return &fakeLogStore{nextID: 1}
}

func (f *fakeLogStore) Create(ctx context.Context, l *models.ActivityLog) error {
	l.ID = f.nextID
	f.nextID++
	f.logs = append(f.logs, *l)
	return nil
}

func (f *fakeLogStore) FindByID(ctx context.Context, id int64) (*models.ActivityLog, error) {
	for i := range f.logs {
		if f.logs[i].ID == id {
			copied := f.logs[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLogStore) FindByStartedBetween(ctx context.Context, from, to time.Time) ([]models.ActivityLog, error) {
	var out []models.ActivityLog
	for _, l := range f.logs {
		started := l.StartedAt.Time
		if !started.Before(from) && started.Before(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogStore) FindByEndedBetween(ctx context.Context, from, to time.Time) ([]models.ActivityLog, error) {
	var out []models.ActivityLog
	for _, l := range f.logs {
		ended := l.EndedAt.Time
		if !ended.Before(from) && ended.Before(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogStore) CountOverlapping(ctx context.Context, start, end time.Time, excludeID *int64) (int64, error) {
	var count int64
	for _, l := range f.logs {
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		if l.StartedAt.Time.Before(end) && l.EndedAt.Time.After(start) {
			count++
		}
	}
	return count, nil
}

func (f *fakeLogStore) Update(ctx context.Context, l *models.ActivityLog) error {
	for i := range f.logs {
		if f.logs[i].ID == l.ID {
			f.logs[i] = *l
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeLogStore) Delete(ctx context.Context, id int64) error {
	for i := range f.logs {
		if f.logs[i].ID == id {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeProfileStore struct {
	profile *models.UserProfile
}

func (f *fakeProfileStore) Get(ctx context.Context) (*models.UserProfile, error) {
	if f.profile == nil {
		return nil, repository.ErrNotFound
	}
	copied := *f.profile
	return &copied, nil
}

func (f *fakeProfileStore) Save(ctx context.Context, nickname string) (*models.UserProfile, error) {
	if f.profile == nil {
		f.profile = &models.UserProfile{ID: 1, Nickname: nickname}
	} else {
		f.profile.Nickname = nickname
	}
	copied := *f.profile
	return &copied, nil
}

type recordingPublisher struct {
	events []TimerEvent
}

func (p *recordingPublisher) PublishTimerEvent(ctx context.Context, event TimerEvent) {
	p.events = append(p.events, event)
}
