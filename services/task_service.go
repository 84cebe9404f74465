package services

import (
	"context"
	"time"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/logging"
	"github.com/kos3l/manageable-kanban-api/models"
	"github.com/kos3l/manageable-kanban-api/validations"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaskService struct {
	tasksCollection    *mongo.Collection
	projectsCollection *mongo.Collection
	usersCollection    *mongo.Collection
	access             *AccessService
	clock              *LifecycleClock
	txn                *TxnRunner
}

func NewTaskService(
	tasksCollection, projectsCollection, usersCollection *mongo.Collection,
	access *AccessService,
	clock *LifecycleClock,
	txn *TxnRunner,
) *TaskService {
	return &TaskService{
		tasksCollection:    tasksCollection,
		projectsCollection: projectsCollection,
		usersCollection:    usersCollection,
		access:             access,
		clock:              clock,
		txn:                txn,
	}
}

// NormalizeTaskOrder verifies that the proposed ordering is a permutation of
// the column's current task set: every existing id present, no foreign ids.
// Duplicates from a resubmitted payload are dropped before persisting.
func NormalizeTaskOrder(current, proposed []primitive.ObjectID) ([]primitive.ObjectID, error) {
	normalized := DedupeIDs(proposed)

	inCurrent := make(map[primitive.ObjectID]struct{}, len(current))
	for _, id := range current {
		inCurrent[id] = struct{}{}
	}
	inProposed := make(map[primitive.ObjectID]struct{}, len(normalized))
	for _, id := range normalized {
		inProposed[id] = struct{}{}
	}

	for _, id := range normalized {
		if _, ok := inCurrent[id]; !ok {
			return nil, apperrors.New(apperrors.KindInvariantViolation, "tasks differ from original")
		}
	}
	for id := range inCurrent {
		if _, ok := inProposed[id]; !ok {
			return nil, apperrors.New(apperrors.KindInvariantViolation, "tasks differ from original")
		}
	}
	return normalized, nil
}

// fetchTask loads one task.
func (s *TaskService) fetchTask(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	if err := s.tasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.New(apperrors.KindNotFound, "task not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch task", err)
	}
	return &task, nil
}

// fetchTaskProject loads a task together with its owning project, verifying
// the acting user's access along the way.
func (s *TaskService) fetchTaskProject(ctx context.Context, userID, taskID primitive.ObjectID) (*models.Task, *models.Project, error) {
	task, err := s.fetchTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	project, err := fetchProject(ctx, s.projectsCollection, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

// CreateTask creates a task inside a column and appends its reference to the
// column's ordered list. The first task under a project moves the project
// from NotStarted to Ongoing once the project has started.
func (s *TaskService) CreateTask(ctx context.Context, userID, projectID primitive.ObjectID, dto models.CreateTaskDTO) (*models.Task, error) {
	if err := validations.ValidateCreateTask(dto); err != nil {
		return nil, err
	}
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return nil, err
	}
	column := project.ColumnByID(dto.ColumnID)
	if column == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "column not found")
	}
	if err := ValidateTaskWindow(dto.StartDate, dto.EndDate, project.StartDate, project.EndDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          primitive.NewObjectID(),
		Title:       dto.Title,
		Description: dto.Description,
		StartDate:   dto.StartDate.UTC(),
		EndDate:     dto.EndDate.UTC(),
		ColumnID:    dto.ColumnID,
		ProjectID:   projectID,
		UserIDs:     []primitive.ObjectID{},
		Labels:      []models.Label{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		if _, err := s.tasksCollection.InsertOne(sc, task); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to create task", err)
		}
		if err := addTaskToColumn(sc, s.projectsCollection, projectID, dto.ColumnID, task.ID, len(column.Tasks) == 0); err != nil {
			return err
		}
		if s.clock.OnFirstTask(project) {
			if _, err := s.projectsCollection.UpdateOne(sc,
				bson.M{"_id": projectID},
				bson.M{"$set": bson.M{"status": project.Status}},
			); err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to persist project status", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created in project %s", task.ID.Hex(), projectID.Hex())
	return task, nil
}

// UpdateTask edits a task's fields, revalidating the dates against the
// project window as it stands now.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID primitive.ObjectID, dto models.UpdateTaskDTO) (*models.Task, error) {
	if err := validations.ValidateUpdateTask(dto); err != nil {
		return nil, err
	}
	task, project, err := s.fetchTaskProject(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	newStart, newEnd := task.StartDate, task.EndDate
	if dto.StartDate != nil {
		newStart = dto.StartDate.UTC()
	}
	if dto.EndDate != nil {
		newEnd = dto.EndDate.UTC()
	}
	if err := ValidateTaskWindow(newStart, newEnd, project.StartDate, project.EndDate); err != nil {
		return nil, err
	}

	set := bson.M{"startDate": newStart, "endDate": newEnd, "updatedAt": time.Now().UTC()}
	task.StartDate, task.EndDate = newStart, newEnd
	if dto.Title != nil {
		set["title"] = *dto.Title
		task.Title = *dto.Title
	}
	if dto.Description != nil {
		set["description"] = *dto.Description
		task.Description = *dto.Description
	}

	if _, err := s.tasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": set}); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update task", err)
	}
	return task, nil
}

// DeleteTask removes the task from every assignee's set and from its
// column's ordered list, then deletes the aggregate, as the symmetric
// inverse of CreateTask in one transaction.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID primitive.ObjectID) error {
	task, project, err := s.fetchTaskProject(ctx, userID, taskID)
	if err != nil {
		return err
	}

	err = s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		if len(task.UserIDs) > 0 {
			if _, err := s.usersCollection.UpdateMany(sc,
				bson.M{"_id": bson.M{"$in": task.UserIDs}},
				bson.M{"$pull": bson.M{"tasks": taskID}},
			); err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to remove task from assignees", err)
			}
		}
		if err := removeTaskFromColumn(sc, s.projectsCollection, project.ID, task.ColumnID, taskID); err != nil {
			return err
		}
		if _, err := s.tasksCollection.DeleteOne(sc, bson.M{"_id": taskID}); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to delete task", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted from project %s", taskID.Hex(), project.ID.Hex())
	return nil
}

// ReorderTasks replaces a column's task order with the proposed one after
// verifying it is a permutation of the current set. Resubmitting the current
// order is a no-op.
func (s *TaskService) ReorderTasks(ctx context.Context, userID, projectID primitive.ObjectID, dto models.UpdateTaskOrderDTO) error {
	if err := validations.ValidateTaskOrder(dto); err != nil {
		return err
	}
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return err
	}
	column := project.ColumnByID(dto.ColumnID)
	if column == nil {
		return apperrors.New(apperrors.KindNotFound, "column not found")
	}

	normalized, err := NormalizeTaskOrder(column.Tasks, dto.Tasks)
	if err != nil {
		return err
	}

	if _, err := s.projectsCollection.UpdateOne(ctx,
		bson.M{"_id": projectID, "columns._id": dto.ColumnID},
		bson.M{"$set": bson.M{"columns.$.tasks": normalized, "updatedAt": time.Now().UTC()}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to persist task order", err)
	}
	return nil
}

// AssignUser adds a user to the task's assignees. Both the acting user and
// the target must belong to the project's team.
func (s *TaskService) AssignUser(ctx context.Context, userID, taskID, targetUserID primitive.ObjectID) error {
	task, project, err := s.fetchTaskProject(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if _, err := s.access.Authorize(ctx, targetUserID, project.TeamID); err != nil {
		return err
	}

	return s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		return linkUserToTask(sc, s.tasksCollection, s.usersCollection, taskID, targetUserID, len(task.UserIDs) == 0)
	})
}

// UnassignUser removes a user from the task's assignees symmetrically.
func (s *TaskService) UnassignUser(ctx context.Context, userID, taskID, targetUserID primitive.ObjectID) error {
	task, _, err := s.fetchTaskProject(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if len(task.UserIDs) == 0 {
		return apperrors.New(apperrors.KindInvariantViolation, "task has no assignees")
	}

	return s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		return unlinkUserFromTask(sc, s.tasksCollection, s.usersCollection, taskID, targetUserID)
	})
}

// AddLabel attaches a label to the task. Labels are embedded; no
// cross-aggregate effect.
func (s *TaskService) AddLabel(ctx context.Context, userID, taskID primitive.ObjectID, dto models.CreateLabelDTO) (*models.Label, error) {
	if err := validations.ValidateCreateLabel(dto); err != nil {
		return nil, err
	}
	task, _, err := s.fetchTaskProject(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	label := models.Label{ID: primitive.NewObjectID(), Name: dto.Name, Color: dto.Color}

	var mutation bson.M
	if len(task.Labels) == 0 {
		mutation = bson.M{"$push": bson.M{"labels": label}}
	} else {
		mutation = bson.M{"$addToSet": bson.M{"labels": label}}
	}
	if _, err := s.tasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, mutation); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to add label", err)
	}
	return &label, nil
}

// RemoveLabel detaches a label from the task.
func (s *TaskService) RemoveLabel(ctx context.Context, userID, taskID, labelID primitive.ObjectID) error {
	if _, _, err := s.fetchTaskProject(ctx, userID, taskID); err != nil {
		return err
	}
	if _, err := s.tasksCollection.UpdateOne(ctx,
		bson.M{"_id": taskID},
		bson.M{"$pull": bson.M{"labels": bson.M{"_id": labelID}}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove label", err)
	}
	return nil
}

// GetTasksByProject lists every task under a project.
func (s *TaskService) GetTasksByProject(ctx context.Context, userID, projectID primitive.ObjectID) ([]models.Task, error) {
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return nil, err
	}
	return s.findTasks(ctx, bson.M{"projectId": projectID})
}

// tasksAssignedFilter matches the tasks under a project that reference the
// given assignee.
func tasksAssignedFilter(projectID, userID primitive.ObjectID) bson.M {
	return bson.M{"projectId": projectID, "userIds": userID}
}

// GetTasksForUserByProject lists the tasks under a project assigned to one
// member.
func (s *TaskService) GetTasksForUserByProject(ctx context.Context, userID, projectID, targetUserID primitive.ObjectID) ([]models.Task, error) {
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return nil, err
	}
	return s.findTasks(ctx, tasksAssignedFilter(projectID, targetUserID))
}

// GetTasksByColumn lists the tasks of one column.
func (s *TaskService) GetTasksByColumn(ctx context.Context, userID, projectID, columnID primitive.ObjectID) ([]models.Task, error) {
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return nil, err
	}
	return s.findTasks(ctx, bson.M{"projectId": projectID, "columnId": columnID})
}

// GetOneTask returns a single task after an access check.
func (s *TaskService) GetOneTask(ctx context.Context, userID, taskID primitive.ObjectID) (*models.Task, error) {
	task, _, err := s.fetchTaskProject(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) findTasks(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := s.tasksCollection.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch tasks", err)
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to decode tasks", err)
	}
	return tasks, nil
}
