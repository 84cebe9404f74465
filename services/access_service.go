package services

import (
	"context"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccessService decides whether a user may read or mutate anything owned by
// a team. Every workflow entry point calls Authorize before touching data.
type AccessService struct {
	teamsCollection *mongo.Collection
}

func NewAccessService(teamsCollection *mongo.Collection) *AccessService {
	return &AccessService{teamsCollection: teamsCollection}
}

// Authorize loads the team and verifies the user is its creator or one of
// its members. A soft-deleted team denies access the same way a missing
// membership does.
func (s *AccessService) Authorize(ctx context.Context, userID, teamID primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := s.teamsCollection.FindOne(ctx, bson.M{"_id": teamID}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.New(apperrors.KindNotFound, "team not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch team", err)
	}
	if team.IsDeleted {
		return nil, apperrors.New(apperrors.KindForbidden, "the team has been deleted")
	}
	if !team.HasUser(userID) {
		return nil, apperrors.New(apperrors.KindForbidden, "the user needs to be a part of the team to access it")
	}
	return &team, nil
}
