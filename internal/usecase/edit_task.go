package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// EditTaskInput contains the parameters for editing a task.
type EditTaskInput struct {
	TaskID string
	Patch  domain.TaskPatch
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task *domain.Task
}

// EditTask is the use case for editing a task's fields.
// Only managers and the task's assignee may edit.
type EditTask struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	logger   domain.Logger
	strict   bool // route status edits through the guarded workflow
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks domain.TaskRepository, sessions domain.SessionStore, strictStatusEdit bool, logger domain.Logger) *EditTask {
	return &EditTask{
		tasks:    tasks,
		sessions: sessions,
		strict:   strictStatusEdit,
		logger:   logger,
	}
}

// Execute applies the patch to the task.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if err := in.Patch.Validate(); err != nil {
		return nil, err
	}

	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	task, err := shared.GetVisibleTask(uc.tasks, actor, in.TaskID)
	if err != nil {
		return nil, err
	}

	if !domain.CanEdit(task, actor.Role, actor.ID) {
		return nil, fmt.Errorf("edit task %s: %w", task.ID, domain.ErrUnauthorized)
	}
	if in.Patch.Status != nil {
		if err := shared.AuthorizeStatusEdit(task, actor, *in.Patch.Status, uc.strict, uc.logger); err != nil {
			return nil, err
		}
	}

	updated, err := uc.tasks.Update(task.ID, in.Patch)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("edited by %s: %s", actor.Name, describePatch(in.Patch)))
	}

	return &EditTaskOutput{Task: updated}, nil
}

// describePatch lists the fields a patch changes.
func describePatch(p domain.TaskPatch) string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(p.Title != nil, "title")
	add(p.Description != nil, "description")
	add(p.Priority != nil, "priority")
	add(p.Status != nil, "status")
	add(p.AssigneeID != nil, "assignee")
	add(p.DueDate != nil || p.ClearDueDate, "dueDate")
	add(p.EstimatedHours != nil || p.ClearEstimate, "estimatedHours")
	add(p.Tags != nil, "tags")
	return strings.Join(fields, ", ")
}
