package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

type taskFixture struct {
	svc              *TaskService
	taskRepo         *fakeTaskRepo
	projectRepo      *fakeProjectRepo
	collaboratorRepo *fakeCollaboratorRepo
	intervalRepo     *fakeIntervalRepo
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	collaboratorRepo := newFakeCollaboratorRepo()
	taskRepo := newFakeTaskRepo(collaboratorRepo)
	projectRepo := newFakeProjectRepo()
	intervalRepo := newFakeIntervalRepo()

	return &taskFixture{
		svc:              NewTaskService(taskRepo, projectRepo, collaboratorRepo, intervalRepo, logger.NewNop()),
		taskRepo:         taskRepo,
		projectRepo:      projectRepo,
		collaboratorRepo: collaboratorRepo,
		intervalRepo:     intervalRepo,
	}
}

func (f *taskFixture) addCollaborator(t *testing.T, name string) uuid.UUID {
	t.Helper()
	c := &entities.Collaborator{Name: name, UserID: uuid.New()}
	require.NoError(t, f.collaboratorRepo.Create(context.Background(), c))
	return c.ID
}

func TestCreateTaskDefaultsToTodo(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		Title:       "triage inbox",
		Description: "sort by priority",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.TaskStatusTodo, task.Status)
	assert.Nil(t, task.ProjectID)
	assert.Empty(t, task.Collaborators)
}

func TestCreateTaskRejectsInvalidStatus(t *testing.T) {
	f := newTaskFixture(t)

	bogus := "blocked"
	_, err := f.svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		Title:       "triage inbox",
		Description: "sort by priority",
		Status:      &bogus,
	})
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)
}

func TestCreateTaskUnknownProject(t *testing.T) {
	f := newTaskFixture(t)

	missing := uuid.New()
	_, err := f.svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		Title:       "triage inbox",
		Description: "sort by priority",
		ProjectID:   &missing,
	})
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
}

func TestCreateTaskWithCollaborators(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	alice := f.addCollaborator(t, "Alice")
	bob := f.addCollaborator(t, "Bob")

	task, err := f.svc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:         "design review",
		Description:   "walk through mockups",
		Collaborators: []uuid.UUID{alice, bob},
	})
	require.NoError(t, err)
	assert.Len(t, task.Collaborators, 2)
}

func TestAssignCollaboratorsSetSemantics(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	alice := f.addCollaborator(t, "Alice")
	bob := f.addCollaborator(t, "Bob")

	task, err := f.svc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:         "design review",
		Description:   "walk through mockups",
		Collaborators: []uuid.UUID{alice},
	})
	require.NoError(t, err)

	// re-assigning alice plus a duplicate bob entry must yield exactly two
	task, err = f.svc.AssignCollaborators(ctx, task.ID, []uuid.UUID{alice, bob, bob})
	require.NoError(t, err)
	assert.Len(t, task.Collaborators, 2)
	assert.True(t, task.HasCollaborator(alice))
	assert.True(t, task.HasCollaborator(bob))
}

func TestAssignCollaboratorsUnknownCollaborator(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:       "design review",
		Description: "walk through mockups",
	})
	require.NoError(t, err)

	_, err = f.svc.AssignCollaborators(ctx, task.ID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, entities.ErrCollaboratorNotFound)
}

func TestRemoveCollaborator(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	alice := f.addCollaborator(t, "Alice")
	bob := f.addCollaborator(t, "Bob")

	task, err := f.svc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:         "design review",
		Description:   "walk through mockups",
		Collaborators: []uuid.UUID{alice, bob},
	})
	require.NoError(t, err)

	task, err = f.svc.RemoveCollaborator(ctx, task.ID, alice)
	require.NoError(t, err)
	assert.Len(t, task.Collaborators, 1)
	assert.False(t, task.HasCollaborator(alice))

	// removing an unassigned collaborator is a no-op
	task, err = f.svc.RemoveCollaborator(ctx, task.ID, alice)
	require.NoError(t, err)
	assert.Len(t, task.Collaborators, 1)
}

func TestUpdateTaskStatus(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:       "triage inbox",
		Description: "sort by priority",
	})
	require.NoError(t, err)

	task, err = f.svc.UpdateTaskStatus(ctx, task.ID, entities.TaskStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusInProgress, task.Status)

	_, err = f.svc.UpdateTaskStatus(ctx, task.ID, entities.TaskStatus("archived"))
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)
}

func TestDeleteTaskCascadesIntervals(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:       "triage inbox",
		Description: "sort by priority",
	})
	require.NoError(t, err)

	tracking := NewTimeTrackingService(f.intervalRepo, f.taskRepo, logger.NewNop())
	_, err = tracking.Start(ctx, task.ID, ports.StartTrackingRequest{TimeZone: "UTC"})
	require.NoError(t, err)
	_, err = tracking.Stop(ctx, task.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTask(ctx, task.ID))

	_, err = f.svc.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	assert.Equal(t, 0, f.intervalRepo.countByTask(task.ID))
}

func TestDeleteTaskUnknown(t *testing.T) {
	f := newTaskFixture(t)

	err := f.svc.DeleteTask(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}
