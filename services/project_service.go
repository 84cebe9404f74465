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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Names of the columns every new project starts with, in display order.
var defaultColumnNames = []string{"Backlog", "To Do", "Doing", "Done"}

type ProjectService struct {
	projectsCollection *mongo.Collection
	teamsCollection    *mongo.Collection
	tasksCollection    *mongo.Collection
	access             *AccessService
	clock              *LifecycleClock
	softDelete         *SoftDeleteLedger
	txn                *TxnRunner
}

func NewProjectService(
	projectsCollection, teamsCollection, tasksCollection *mongo.Collection,
	access *AccessService,
	clock *LifecycleClock,
	softDelete *SoftDeleteLedger,
	txn *TxnRunner,
) *ProjectService {
	return &ProjectService{
		projectsCollection: projectsCollection,
		teamsCollection:    teamsCollection,
		tasksCollection:    tasksCollection,
		access:             access,
		clock:              clock,
		softDelete:         softDelete,
		txn:                txn,
	}
}

// NewEmptyColumns builds fresh columns with dense order values for the given
// names.
func NewEmptyColumns(names []string) []models.Column {
	columns := make([]models.Column, 0, len(names))
	for i, name := range names {
		columns = append(columns, models.Column{
			ID:    primitive.NewObjectID(),
			Name:  name,
			Order: i,
			Tasks: []primitive.ObjectID{},
		})
	}
	return columns
}

// fetchProject loads one project, excluding soft-deleted ones.
func fetchProject(ctx context.Context, projectsCollection *mongo.Collection, projectID primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := projectsCollection.FindOne(ctx, NotDeleted(bson.M{"_id": projectID})).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.New(apperrors.KindNotFound, "project not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch project", err)
	}
	return &project, nil
}

// CreateProject creates a project under a team with the four default columns
// and records the back-reference on the team, in one transaction.
func (s *ProjectService) CreateProject(ctx context.Context, userID, teamID primitive.ObjectID, dto models.CreateProjectDTO) (*models.Project, error) {
	if err := validations.ValidateCreateProject(dto); err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, teamID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        dto.Name,
		Description: dto.Description,
		TechStack:   dto.TechStack,
		Status:      models.StatusNotStarted,
		StartDate:   dto.StartDate.UTC(),
		EndDate:     dto.EndDate.UTC(),
		TeamID:      teamID,
		Columns:     NewEmptyColumns(defaultColumnNames),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		if _, err := s.projectsCollection.InsertOne(sc, project); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to create project", err)
		}
		if _, err := s.teamsCollection.UpdateOne(sc,
			bson.M{"_id": teamID},
			bson.M{"$addToSet": bson.M{"projects": project.ID}},
		); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to add project to team", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created under team %s", project.ID.Hex(), teamID.Hex())
	return project, nil
}

// GetAllProjects lists the team's projects. Reading applies the lazy Overdue
// transition; a change is persisted before the result is returned.
func (s *ProjectService) GetAllProjects(ctx context.Context, userID, teamID primitive.ObjectID) ([]models.Project, error) {
	if _, err := s.access.Authorize(ctx, userID, teamID); err != nil {
		return nil, err
	}

	cursor, err := s.projectsCollection.Find(ctx, NotDeleted(bson.M{"teamId": teamID}))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch projects", err)
	}
	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to decode projects", err)
	}

	for i := range projects {
		if s.clock.Refresh(&projects[i]) {
			if err := s.persistStatus(ctx, &projects[i]); err != nil {
				return nil, err
			}
		}
	}
	return projects, nil
}

// GetProjectByID returns one project, applying the lazy Overdue transition.
func (s *ProjectService) GetProjectByID(ctx context.Context, userID, projectID primitive.ObjectID) (*models.Project, error) {
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return nil, err
	}
	if s.clock.Refresh(project) {
		if err := s.persistStatus(ctx, project); err != nil {
			return nil, err
		}
	}
	return project, nil
}

// UpdateProject edits the project's fields. The date window can only move as
// far as the existing tasks allow, and extending the end date of an overdue
// project brings it back to Ongoing.
func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID primitive.ObjectID, dto models.UpdateProjectDTO) (*models.Project, error) {
	if err := validations.ValidateUpdateProject(dto); err != nil {
		return nil, err
	}
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return nil, err
	}

	newStart, newEnd := project.StartDate, project.EndDate
	if dto.StartDate != nil {
		newStart = dto.StartDate.UTC()
	}
	if dto.EndDate != nil {
		newEnd = dto.EndDate.UTC()
	}

	if dto.StartDate != nil || dto.EndDate != nil {
		earliestStart, latestEnd, err := s.taskWindowBounds(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if err := ValidateProjectWindow(newStart, newEnd, earliestStart, latestEnd); err != nil {
			return nil, err
		}
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if dto.Name != nil {
		set["name"] = *dto.Name
		project.Name = *dto.Name
	}
	if dto.Description != nil {
		set["description"] = *dto.Description
		project.Description = *dto.Description
	}
	if dto.TechStack != nil {
		set["techStack"] = *dto.TechStack
		project.TechStack = *dto.TechStack
	}
	if dto.StartDate != nil {
		set["startDate"] = newStart
		project.StartDate = newStart
	}
	if dto.EndDate != nil {
		set["endDate"] = newEnd
		project.EndDate = newEnd
		if s.clock.OnEndDateChange(project, newEnd) {
			set["status"] = project.Status
		}
	}

	if _, err := s.projectsCollection.UpdateOne(ctx, bson.M{"_id": projectID}, bson.M{"$set": set}); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update project", err)
	}
	return project, nil
}

// CompleteProject marks the project Completed.
func (s *ProjectService) CompleteProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return err
	}
	if err := s.clock.Complete(project); err != nil {
		return err
	}
	if err := s.persistStatus(ctx, project); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: PROJECT_COMPLETED, Description: Project %s completed by user %s", projectID.Hex(), userID.Hex())
	return nil
}

// DeleteProject soft-deletes the project. Its tasks stay untouched; default
// reads already exclude everything under a deleted project.
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	project, err := fetchProject(ctx, s.projectsCollection, projectID)
	if err != nil {
		return err
	}
	if _, err := s.access.Authorize(ctx, userID, project.TeamID); err != nil {
		return err
	}
	if err := s.softDelete.MarkDeleted(ctx, s.projectsCollection, projectID); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s soft-deleted by user %s", projectID.Hex(), userID.Hex())
	return nil
}

// taskWindowBounds returns the earliest task start and the latest task end
// date across the project, or nils when the project has no tasks.
func (s *ProjectService) taskWindowBounds(ctx context.Context, projectID primitive.ObjectID) (*time.Time, *time.Time, error) {
	var earliest models.Task
	err := s.tasksCollection.FindOne(ctx,
		bson.M{"projectId": projectID},
		options.FindOne().SetSort(bson.D{{Key: "startDate", Value: 1}}),
	).Decode(&earliest)
	if err == mongo.ErrNoDocuments {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch task window", err)
	}

	var latest models.Task
	err = s.tasksCollection.FindOne(ctx,
		bson.M{"projectId": projectID},
		options.FindOne().SetSort(bson.D{{Key: "endDate", Value: -1}}),
	).Decode(&latest)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch task window", err)
	}
	return &earliest.StartDate, &latest.EndDate, nil
}

func (s *ProjectService) persistStatus(ctx context.Context, project *models.Project) error {
	if _, err := s.projectsCollection.UpdateOne(ctx,
		bson.M{"_id": project.ID},
		bson.M{"$set": bson.M{"status": project.Status, "updatedAt": time.Now().UTC()}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to persist project status", err)
	}
	return nil
}
