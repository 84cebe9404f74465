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

// A project can grow beyond its four default columns, but never past this cap.
const maxColumnsPerProject = 98

type ColumnService struct {
	projectsCollection *mongo.Collection
	tasksCollection    *mongo.Collection
	usersCollection    *mongo.Collection
	access             *AccessService
	order              OrderIndex
	txn                *TxnRunner
}

func NewColumnService(
	projectsCollection, tasksCollection, usersCollection *mongo.Collection,
	access *AccessService,
	txn *TxnRunner,
) *ColumnService {
	return &ColumnService{
		projectsCollection: projectsCollection,
		tasksCollection:    tasksCollection,
		usersCollection:    usersCollection,
		access:             access,
		txn:                txn,
	}
}

// AddColumn appends a new empty column after the current last one.
func (s *ColumnService) AddColumn(ctx context.Context, userID, projectID primitive.ObjectID, dto models.CreateColumnDTO) (*models.Project, error) {
	if err := validations.ValidateCreateColumn(dto); err != nil {
		return nil, err
	}
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return nil, err
	}
	if len(project.Columns) >= maxColumnsPerProject {
		return nil, apperrors.Newf(apperrors.KindInvariantViolation, "a project cannot have more than %d columns", maxColumnsPerProject)
	}

	column := models.Column{
		ID:    primitive.NewObjectID(),
		Name:  dto.Name,
		Tasks: []primitive.ObjectID{},
	}
	project.Columns = s.order.InsertAt(project.Columns, column, s.order.NextOrder(project.Columns))

	if err := s.persistColumns(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// RenameColumn updates a column's name. No ordering side effects.
func (s *ColumnService) RenameColumn(ctx context.Context, userID, projectID primitive.ObjectID, dto models.UpdateColumnDTO) error {
	if err := validations.ValidateUpdateColumn(dto); err != nil {
		return err
	}
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return err
	}

	res, err := s.projectsCollection.UpdateOne(ctx,
		bson.M{"_id": projectID, "columns._id": dto.ID},
		bson.M{"$set": bson.M{"columns.$.name": dto.Name, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to rename column", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "column not found")
	}
	return nil
}

// DeleteColumn removes a column together with every task it references.
// Each referenced task is stripped from its assignees and deleted, then the
// remaining columns are compacted, all in one transaction.
func (s *ColumnService) DeleteColumn(ctx context.Context, userID, projectID, columnID primitive.ObjectID) error {
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return err
	}

	err = s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		project, err := fetchProject(sc, s.projectsCollection, projectID)
		if err != nil {
			return err
		}
		column := project.ColumnByID(columnID)
		if column == nil {
			return apperrors.New(apperrors.KindNotFound, "column not found")
		}

		if len(column.Tasks) > 0 {
			if _, err := s.usersCollection.UpdateMany(sc,
				bson.M{"tasks": bson.M{"$in": column.Tasks}},
				bson.M{"$pull": bson.M{"tasks": bson.M{"$in": column.Tasks}}},
			); err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to remove tasks from assignees", err)
			}
			if _, err := s.tasksCollection.DeleteMany(sc,
				bson.M{"_id": bson.M{"$in": column.Tasks}},
			); err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to delete column tasks", err)
			}
		}

		removedOrder := column.Order
		remaining := make([]models.Column, 0, len(project.Columns)-1)
		for _, c := range project.Columns {
			if c.ID != columnID {
				remaining = append(remaining, c)
			}
		}
		s.order.RemoveAndCompact(remaining, removedOrder)
		project.Columns = remaining

		return s.persistColumns(sc, project)
	})
	if err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: COLUMN_DELETED, Description: Column %s deleted from project %s", columnID.Hex(), projectID.Hex())
	return nil
}

// ReorderColumn moves one column to a new order slot, shifting the columns
// in between by a single position.
func (s *ColumnService) ReorderColumn(ctx context.Context, userID, projectID primitive.ObjectID, dto models.UpdateColumnOrderDTO) error {
	if err := validations.ValidateColumnOrder(dto); err != nil {
		return err
	}
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return err
	}

	return s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		project, err := fetchProject(sc, s.projectsCollection, projectID)
		if err != nil {
			return err
		}
		column := project.ColumnByID(dto.ColumnID)
		if column == nil {
			return apperrors.New(apperrors.KindNotFound, "column not found")
		}
		if dto.Order >= len(project.Columns) {
			return apperrors.New(apperrors.KindValidationFailed, "order is out of range")
		}

		s.order.MoveTo(project.Columns, column.Order, dto.Order)
		return s.persistColumns(sc, project)
	})
}

func (s *ColumnService) persistColumns(ctx context.Context, project *models.Project) error {
	if _, err := s.projectsCollection.UpdateOne(ctx,
		bson.M{"_id": project.ID},
		bson.M{"$set": bson.M{"columns": project.Columns, "updatedAt": time.Now().UTC()}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to persist columns", err)
	}
	return nil
}
