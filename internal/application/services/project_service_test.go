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

func newProjectFixture(t *testing.T) (*ProjectService, *TaskService, *fakeTaskRepo) {
	t.Helper()

	collaboratorRepo := newFakeCollaboratorRepo()
	taskRepo := newFakeTaskRepo(collaboratorRepo)
	projectRepo := newFakeProjectRepo()
	intervalRepo := newFakeIntervalRepo()

	projectSvc := NewProjectService(projectRepo, taskRepo, logger.NewNop())
	taskSvc := NewTaskService(taskRepo, projectRepo, collaboratorRepo, intervalRepo, logger.NewNop())
	return projectSvc, taskSvc, taskRepo
}

func TestProjectLifecycle(t *testing.T) {
	svc, _, _ := newProjectFixture(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, ports.CreateProjectRequest{Name: "Website relaunch"})
	require.NoError(t, err)
	assert.Equal(t, "Website relaunch", project.Name)

	renamed := "Relaunch Q3"
	project, err = svc.UpdateProject(ctx, project.ID, ports.UpdateProjectRequest{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, "Relaunch Q3", project.Name)

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	require.NoError(t, svc.DeleteProject(ctx, project.ID))
	_, err = svc.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
}

func TestProjectOperationsOnUnknownProject(t *testing.T) {
	svc, _, _ := newProjectFixture(t)
	ctx := context.Background()

	_, err := svc.GetProject(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)

	err = svc.DeleteProject(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)

	_, err = svc.GetProjectTasks(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
}

func TestDeleteProjectCascadesTasks(t *testing.T) {
	projectSvc, taskSvc, _ := newProjectFixture(t)
	ctx := context.Background()

	project, err := projectSvc.CreateProject(ctx, ports.CreateProjectRequest{Name: "Website relaunch"})
	require.NoError(t, err)

	inProject, err := taskSvc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:       "draft copy",
		Description: "landing page text",
		ProjectID:   &project.ID,
	})
	require.NoError(t, err)

	standalone, err := taskSvc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:       "unrelated chore",
		Description: "not in any project",
	})
	require.NoError(t, err)

	require.NoError(t, projectSvc.DeleteProject(ctx, project.ID))

	_, err = taskSvc.GetTask(ctx, inProject.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	// tasks outside the project survive
	_, err = taskSvc.GetTask(ctx, standalone.ID)
	assert.NoError(t, err)
}

func TestGetProjectTasks(t *testing.T) {
	projectSvc, taskSvc, _ := newProjectFixture(t)
	ctx := context.Background()

	project, err := projectSvc.CreateProject(ctx, ports.CreateProjectRequest{Name: "Website relaunch"})
	require.NoError(t, err)

	_, err = taskSvc.CreateTask(ctx, ports.CreateTaskRequest{
		Title:       "draft copy",
		Description: "landing page text",
		ProjectID:   &project.ID,
	})
	require.NoError(t, err)

	tasks, err := projectSvc.GetProjectTasks(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
