package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/logging"
	"github.com/kos3l/manageable-kanban-api/models"
	"github.com/kos3l/manageable-kanban-api/validations"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	usersCollection *mongo.Collection
	teamsCollection *mongo.Collection
	jwtService      *JWTService
	txn             *TxnRunner
}

func NewUserService(usersCollection, teamsCollection *mongo.Collection, jwtService *JWTService, txn *TxnRunner) *UserService {
	return &UserService{
		usersCollection: usersCollection,
		teamsCollection: teamsCollection,
		jwtService:      jwtService,
		txn:             txn,
	}
}

// Register creates a user together with their default team. The user and the
// team reference each other, so both inserts run in one transaction.
func (s *UserService) Register(ctx context.Context, dto models.CreateUserDTO) (*models.User, *models.Team, error) {
	if err := validations.ValidateCreateUser(dto); err != nil {
		return nil, nil, err
	}

	count, err := s.usersCollection.CountDocuments(ctx, bson.M{"email": dto.Email})
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.KindInternal, "failed to check email", err)
	}
	if count > 0 {
		return nil, nil, apperrors.New(apperrors.KindValidationFailed, "email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.KindInternal, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Password:  string(hashed),
		Birthdate: dto.Birthdate.UTC(),
		Teams:     []primitive.ObjectID{},
		Tasks:     []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	team := &models.Team{
		ID:        primitive.NewObjectID(),
		Name:      fmt.Sprintf("%s's Team", dto.FirstName),
		CreatedBy: user.ID,
		Users:     []primitive.ObjectID{user.ID},
		Projects:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.txn.Run(ctx, func(sc mongo.SessionContext) error {
		if _, err := s.usersCollection.InsertOne(sc, user); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to create user", err)
		}
		if _, err := s.teamsCollection.InsertOne(sc, team); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to create default team", err)
		}
		return linkUserToTeam(sc, s.teamsCollection, s.usersCollection, team.ID, user.ID)
	})
	if err != nil {
		return nil, nil, err
	}

	user.Teams = []primitive.ObjectID{team.ID}
	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User %s registered with default team %s", user.ID.Hex(), team.ID.Hex())
	return user, team, nil
}

// Login verifies the credentials and issues a token pair. The refresh token
// is persisted on the user so it can be checked on renewal.
func (s *UserService) Login(ctx context.Context, dto models.LoginDTO) (*models.User, string, string, error) {
	if err := validations.ValidateLogin(dto); err != nil {
		return nil, "", "", err
	}

	var user models.User
	if err := s.usersCollection.FindOne(ctx, bson.M{"email": dto.Email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", "", apperrors.New(apperrors.KindValidationFailed, "email is wrong")
		}
		return nil, "", "", apperrors.Wrap(apperrors.KindInternal, "failed to fetch user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, "", "", apperrors.New(apperrors.KindValidationFailed, "wrong password")
	}

	name := user.FirstName + " " + user.LastName
	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(name, user.ID.Hex())
	if err != nil {
		return nil, "", "", err
	}

	if _, err := s.usersCollection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"refreshToken": refreshToken}},
	); err != nil {
		return nil, "", "", apperrors.Wrap(apperrors.KindInternal, "failed to persist refresh token", err)
	}
	return &user, accessToken, refreshToken, nil
}

// Refresh exchanges a valid refresh token for a new access token. The token
// must match the one stored on the user.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userIDHex, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return "", apperrors.New(apperrors.KindForbidden, "invalid refresh token")
	}

	var user models.User
	if err := s.usersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return "", apperrors.New(apperrors.KindForbidden, "invalid refresh token")
	}
	if user.RefreshToken != refreshToken {
		return "", apperrors.New(apperrors.KindForbidden, "invalid refresh token")
	}

	name := user.FirstName + " " + user.LastName
	return s.jwtService.GenerateAccessToken(name, user.ID.Hex())
}

// GetUserByID returns one user. The password hash never leaves the service.
func (s *UserService) GetUserByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.usersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.New(apperrors.KindNotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to fetch user", err)
	}
	user.Password = ""
	return &user, nil
}

// UpdateUser edits profile fields. The teams and tasks back-references are
// never writable through this path.
func (s *UserService) UpdateUser(ctx context.Context, userID primitive.ObjectID, dto models.UpdateUserDTO) error {
	if err := validations.ValidateUpdateUser(dto); err != nil {
		return err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if dto.FirstName != nil {
		set["firstName"] = *dto.FirstName
	}
	if dto.LastName != nil {
		set["lastName"] = *dto.LastName
	}
	if dto.Birthdate != nil {
		set["birthdate"] = dto.Birthdate.UTC()
	}

	res, err := s.usersCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update user", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "user not found")
	}
	return nil
}
