package services

import (
	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MembershipLedger maintains the two-way relation between a team and its
// users. It never touches team CRUD; it only keeps the membership sets and
// their downstream task assignments consistent.
type MembershipLedger struct {
	teamsCollection *mongo.Collection
	usersCollection *mongo.Collection
	tasksCollection *mongo.Collection
}

func NewMembershipLedger(teamsCollection, usersCollection, tasksCollection *mongo.Collection) *MembershipLedger {
	return &MembershipLedger{
		teamsCollection: teamsCollection,
		usersCollection: usersCollection,
		tasksCollection: tasksCollection,
	}
}

// DedupeIDs collapses an id list into a set, preserving first occurrence.
func DedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DiffMembers computes which users would join and which would leave when the
// current member set is replaced by the desired one. Both inputs are treated
// as sets.
func DiffMembers(current, desired []primitive.ObjectID) (added, removed []primitive.ObjectID) {
	current = DedupeIDs(current)
	desired = DedupeIDs(desired)

	inCurrent := make(map[primitive.ObjectID]struct{}, len(current))
	for _, id := range current {
		inCurrent[id] = struct{}{}
	}
	inDesired := make(map[primitive.ObjectID]struct{}, len(desired))
	for _, id := range desired {
		inDesired[id] = struct{}{}
	}

	for _, id := range desired {
		if _, ok := inCurrent[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range current {
		if _, ok := inDesired[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}

// AddMembers links every listed user to the team.
func (l *MembershipLedger) AddMembers(sc mongo.SessionContext, team *models.Team, userIDs []primitive.ObjectID) error {
	for _, userID := range userIDs {
		if err := linkUserToTeam(sc, l.teamsCollection, l.usersCollection, team.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

// RemoveMembers unlinks every listed user from the team. Removing the team
// creator is refused before any write happens. A removed user keeps the team
// in their own set when it is their only one, so this operation never
// orphans a user.
func (l *MembershipLedger) RemoveMembers(sc mongo.SessionContext, team *models.Team, userIDs []primitive.ObjectID) error {
	for _, userID := range userIDs {
		if userID == team.CreatedBy {
			return apperrors.New(apperrors.KindInvariantViolation, "the team creator cannot be removed from the team")
		}
	}
	for _, userID := range userIDs {
		if err := unlinkUserFromTeam(sc, l.teamsCollection, l.usersCollection, team.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

// Reconcile replaces the team's member set with the desired one. Users who
// leave the team are also stripped from every task under the team's projects
// they were assigned to, in the same transaction.
func (l *MembershipLedger) Reconcile(sc mongo.SessionContext, team *models.Team, desired []primitive.ObjectID) error {
	added, removed := DiffMembers(team.Users, desired)

	if err := l.RemoveMembers(sc, team, removed); err != nil {
		return err
	}
	if err := l.AddMembers(sc, team, added); err != nil {
		return err
	}
	if len(removed) == 0 || len(team.Projects) == 0 {
		return nil
	}
	return l.stripAssignments(sc, team.Projects, removed)
}

// stripAssignments finds every task under the given projects that references
// one of the removed users and severs both sides of the user<->task relation.
func (l *MembershipLedger) stripAssignments(sc mongo.SessionContext, projectIDs, userIDs []primitive.ObjectID) error {
	filter := bson.M{
		"projectId": bson.M{"$in": projectIDs},
		"userIds":   bson.M{"$elemMatch": bson.M{"$in": userIDs}},
	}

	cursor, err := l.tasksCollection.Find(sc, filter)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to look up task assignments", err)
	}
	var affected []models.Task
	if err := cursor.All(sc, &affected); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to decode task assignments", err)
	}
	if len(affected) == 0 {
		return nil
	}

	taskIDs := make([]primitive.ObjectID, 0, len(affected))
	for _, task := range affected {
		taskIDs = append(taskIDs, task.ID)
	}

	if _, err := l.tasksCollection.UpdateMany(sc,
		bson.M{"_id": bson.M{"$in": taskIDs}},
		bson.M{"$pull": bson.M{"userIds": bson.M{"$in": userIDs}}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove users from tasks", err)
	}
	if _, err := l.usersCollection.UpdateMany(sc,
		bson.M{"_id": bson.M{"$in": userIDs}},
		bson.M{"$pull": bson.M{"tasks": bson.M{"$in": taskIDs}}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove tasks from users", err)
	}
	return nil
}
