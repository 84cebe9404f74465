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

type TeamService struct {
	teamsCollection *mongo.Collection
	usersCollection *mongo.Collection
	membership      *MembershipLedger
	access          *AccessService
	softDelete      *SoftDeleteLedger
	txn             *TxnRunner
}

func NewTeamService(
	teamsCollection, usersCollection *mongo.Collection,
	membership *MembershipLedger,
	access *AccessService,
	softDelete *SoftDeleteLedger,
	txn *TxnRunner,
) *TeamService {
	return &TeamService{
		teamsCollection: teamsCollection,
		usersCollection: usersCollection,
		membership:      membership,
		access:          access,
		softDelete:      softDelete,
		txn:             txn,
	}
}

// CreateTeam creates a team owned by the given user. The creator is always
// the first member and both sides of the membership are linked in one
// transaction.
func (s *TeamService) CreateTeam(ctx context.Context, userID primitive.ObjectID, dto models.CreateTeamDTO) (*models.Team, error) {
	if err := validations.ValidateCreateTeam(dto); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	team := &models.Team{
		ID:          primitive.NewObjectID(),
		Name:        dto.Name,
		Description: dto.Description,
		CreatedBy:   userID,
		Users:       []primitive.ObjectID{userID},
		Projects:    []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		if _, err := s.teamsCollection.InsertOne(sc, team); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to create team", err)
		}
		return linkUserToTeam(sc, s.teamsCollection, s.usersCollection, team.ID, userID)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TEAM_CREATED, Description: Team %s created by user %s", team.ID.Hex(), userID.Hex())
	return team, nil
}

// GetAllTeams returns every team the user belongs to. Soft-deleted teams are
// excluded by default.
func (s *TeamService) GetAllTeams(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	cursor, err := s.teamsCollection.Find(ctx, NotDeleted(bson.M{"users": userID}))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch teams", err)
	}
	teams := []models.Team{}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to decode teams", err)
	}
	return teams, nil
}

// GetTeamByID returns one team, provided the user may access it.
func (s *TeamService) GetTeamByID(ctx context.Context, userID, teamID primitive.ObjectID) (*models.Team, error) {
	return s.access.Authorize(ctx, userID, teamID)
}

// UpdateTeam renames the team or updates its description.
func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID primitive.ObjectID, dto models.UpdateTeamDTO) (*models.Team, error) {
	if err := validations.ValidateUpdateTeam(dto); err != nil {
		return nil, err
	}
	team, err := s.access.Authorize(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if dto.Name != nil {
		set["name"] = *dto.Name
		team.Name = *dto.Name
	}
	if dto.Description != nil {
		set["description"] = *dto.Description
		team.Description = *dto.Description
	}

	if _, err := s.teamsCollection.UpdateOne(ctx, bson.M{"_id": teamID}, bson.M{"$set": set}); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update team", err)
	}
	return team, nil
}

// UpdateMembers replaces the team's member set with the desired one inside a
// single transaction. Removed members lose their task assignments under the
// team's projects as part of the same unit of work.
func (s *TeamService) UpdateMembers(ctx context.Context, userID, teamID primitive.ObjectID, desired []primitive.ObjectID) (*models.Team, error) {
	if _, err := s.access.Authorize(ctx, userID, teamID); err != nil {
		return nil, err
	}

	err := s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		var team models.Team
		if err := s.teamsCollection.FindOne(sc, NotDeleted(bson.M{"_id": teamID})).Decode(&team); err != nil {
			if err == mongo.ErrNoDocuments {
				return apperrors.New(apperrors.KindNotFound, "team not found")
			}
			return apperrors.Wrap(apperrors.KindInternal, "failed to fetch team", err)
		}
		return s.membership.Reconcile(sc, &team, desired)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TEAM_MEMBERS_UPDATED, Description: Members of team %s reconciled by user %s", teamID.Hex(), userID.Hex())

	var updated models.Team
	if err := s.teamsCollection.FindOne(ctx, bson.M{"_id": teamID}).Decode(&updated); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch updated team", err)
	}
	return &updated, nil
}

// DeleteTeam soft-deletes a team. Only the creator may delete it, and never
// when it is the requesting user's only team.
func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID primitive.ObjectID) error {
	var team models.Team
	if err := s.teamsCollection.FindOne(ctx, NotDeleted(bson.M{"_id": teamID})).Decode(&team); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperrors.New(apperrors.KindNotFound, "team not found")
		}
		return apperrors.Wrap(apperrors.KindInternal, "failed to fetch team", err)
	}
	if team.CreatedBy != userID {
		return apperrors.New(apperrors.KindForbidden, "only the team creator can delete the team")
	}

	var user models.User
	if err := s.usersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to fetch user", err)
	}
	if len(DedupeIDs(user.Teams)) == 1 && user.Teams[0] == teamID {
		return apperrors.New(apperrors.KindInvariantViolation, "cannot delete your only team")
	}

	if err := s.softDelete.MarkDeleted(ctx, s.teamsCollection, teamID); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: TEAM_DELETED, Description: Team %s soft-deleted by user %s", teamID.Hex(), userID.Hex())
	return nil
}
