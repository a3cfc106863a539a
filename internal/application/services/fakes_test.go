package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

// In-memory repository fakes. The interval fake guards the single open
// slot per task under a mutex, mirroring what the partial unique index
// enforces in Postgres.

type fakeIntervalRepo struct {
	mu        sync.Mutex
	intervals map[uuid.UUID]*entities.TimeInterval
}

func newFakeIntervalRepo() *fakeIntervalRepo {
	return &fakeIntervalRepo{intervals: make(map[uuid.UUID]*entities.TimeInterval)}
}

func (r *fakeIntervalRepo) Create(ctx context.Context, interval *entities.TimeInterval) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.intervals {
		if existing.TaskID == interval.TaskID && existing.IsOpen() {
			return entities.ErrAlreadyTracking
		}
	}

	stored := *interval
	r.intervals[interval.ID] = &stored
	return nil
}

func (r *fakeIntervalRepo) GetOpenByTask(ctx context.Context, taskID uuid.UUID) (*entities.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, interval := range r.intervals {
		if interval.TaskID == taskID && interval.IsOpen() {
			found := *interval
			return &found, nil
		}
	}
	return nil, entities.ErrNoActiveTracking
}

func (r *fakeIntervalRepo) CloseOpen(ctx context.Context, taskID uuid.UUID, endedAt time.Time) (*entities.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, interval := range r.intervals {
		if interval.TaskID == taskID && interval.IsOpen() {
			end := endedAt
			interval.EndDate = &end
			closed := *interval
			return &closed, nil
		}
	}
	return nil, entities.ErrNoActiveTracking
}

func (r *fakeIntervalRepo) ListClosedByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*entities.TimeInterval{}
	for _, interval := range r.intervals {
		if interval.TaskID == taskID && !interval.IsOpen() {
			found := *interval
			result = append(result, &found)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.After(result[j].StartDate)
	})
	return result, nil
}

func (r *fakeIntervalRepo) ListClosedSince(ctx context.Context, since time.Time) ([]*entities.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*entities.TimeInterval{}
	for _, interval := range r.intervals {
		if !interval.IsOpen() && !interval.StartDate.Before(since) {
			found := *interval
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *fakeIntervalRepo) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, interval := range r.intervals {
		if interval.TaskID == taskID {
			delete(r.intervals, id)
		}
	}
	return nil
}

// add seeds a closed interval directly, bypassing the open-slot check.
func (r *fakeIntervalRepo) add(taskID uuid.UUID, start, end time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := end
	interval := &entities.TimeInterval{
		ID:        uuid.New(),
		TaskID:    taskID,
		StartDate: start,
		EndDate:   &e,
		TimeZone:  "UTC",
	}
	r.intervals[interval.ID] = interval
}

func (r *fakeIntervalRepo) countByTask(taskID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, interval := range r.intervals {
		if interval.TaskID == taskID {
			n++
		}
	}
	return n
}

type fakeTaskRepo struct {
	mu            sync.Mutex
	tasks         map[uuid.UUID]*entities.Task
	collaborators *fakeCollaboratorRepo
	assignments   map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeTaskRepo(collaborators *fakeCollaboratorRepo) *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:         make(map[uuid.UUID]*entities.Task),
		collaborators: collaborators,
		assignments:   make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.materialize(id)
}

// materialize copies the task and attaches its collaborators; callers hold the lock.
func (r *fakeTaskRepo) materialize(id uuid.UUID) (*entities.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	found := *task
	found.Collaborators = []entities.Collaborator{}
	for collaboratorID := range r.assignments[id] {
		if c, err := r.collaborators.GetByID(context.Background(), collaboratorID); err == nil {
			found.Collaborators = append(found.Collaborators, *c)
		}
	}
	return &found, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	delete(r.assignments, id)
	return nil
}

func (r *fakeTaskRepo) List(ctx context.Context) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*entities.Task{}
	for id := range r.tasks {
		task, _ := r.materialize(id)
		result = append(result, task)
	}
	return result, nil
}

func (r *fakeTaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*entities.Task{}
	for id, task := range r.tasks {
		if task.ProjectID != nil && *task.ProjectID == projectID {
			found, _ := r.materialize(id)
			result = append(result, found)
		}
	}
	return result, nil
}

func (r *fakeTaskRepo) ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*entities.Task{}
	for id := range r.tasks {
		if r.assignments[id][collaboratorID] {
			found, _ := r.materialize(id)
			result = append(result, found)
		}
	}
	return result, nil
}

func (r *fakeTaskRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	task.Status = status
	return nil
}

func (r *fakeTaskRepo) AddCollaborators(ctx context.Context, taskID uuid.UUID, collaboratorIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[taskID]; !ok {
		return entities.ErrTaskNotFound
	}
	if r.assignments[taskID] == nil {
		r.assignments[taskID] = make(map[uuid.UUID]bool)
	}
	for _, id := range collaboratorIDs {
		r.assignments[taskID][id] = true
	}
	return nil
}

func (r *fakeTaskRepo) RemoveCollaborator(ctx context.Context, taskID, collaboratorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[taskID]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.assignments[taskID], collaboratorID)
	return nil
}

func (r *fakeTaskRepo) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, task := range r.tasks {
		if task.ProjectID != nil && *task.ProjectID == projectID {
			delete(r.tasks, id)
			delete(r.assignments, id)
		}
	}
	return nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*entities.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*entities.Project)}
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *entities.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	found := *project
	return &found, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *entities.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[project.ID]; !ok {
		return entities.ErrProjectNotFound
	}
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return entities.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) List(ctx context.Context) ([]*entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*entities.Project{}
	for _, project := range r.projects {
		found := *project
		result = append(result, &found)
	}
	return result, nil
}

type fakeCollaboratorRepo struct {
	mu            sync.Mutex
	collaborators map[uuid.UUID]*entities.Collaborator
}

func newFakeCollaboratorRepo() *fakeCollaboratorRepo {
	return &fakeCollaboratorRepo{collaborators: make(map[uuid.UUID]*entities.Collaborator)}
}

func (r *fakeCollaboratorRepo) Create(ctx context.Context, collaborator *entities.Collaborator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if collaborator.ID == uuid.Nil {
		collaborator.ID = uuid.New()
	}
	stored := *collaborator
	r.collaborators[collaborator.ID] = &stored
	return nil
}

func (r *fakeCollaboratorRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collaborator, ok := r.collaborators[id]
	if !ok {
		return nil, entities.ErrCollaboratorNotFound
	}
	found := *collaborator
	return &found, nil
}

func (r *fakeCollaboratorRepo) List(ctx context.Context) ([]*entities.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*entities.Collaborator{}
	for _, collaborator := range r.collaborators {
		found := *collaborator
		result = append(result, &found)
	}
	return result, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			found := *user
			return &found, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

type fakeAuthRepo struct {
	mu     sync.Mutex
	nextID int
	tokens map[string]*ports.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*ports.RefreshToken)}
}

func (r *fakeAuthRepo) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.tokens[tokenHash] = &ports.RefreshToken{
		ID:        r.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeAuthRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, entities.ErrUnauthorized
	}
	found := *token
	return &found, nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token, ok := r.tokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *fakeAuthRepo) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeAuthRepo) CleanupExpiredTokens(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, hash)
		}
	}
	return nil
}

// compile-time interface checks
var (
	_ ports.TimeIntervalRepository = (*fakeIntervalRepo)(nil)
	_ ports.TaskRepository         = (*fakeTaskRepo)(nil)
	_ ports.ProjectRepository      = (*fakeProjectRepo)(nil)
	_ ports.CollaboratorRepository = (*fakeCollaboratorRepo)(nil)
	_ ports.UserRepository         = (*fakeUserRepo)(nil)
	_ ports.AuthRepository         = (*fakeAuthRepo)(nil)
)
