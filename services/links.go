package services

import (
	"context"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// The store has no referential-integrity engine, so each bidirectional
// relation is kept symmetric by exactly one link/unlink pair below. Callers
// never push or pull these fields ad hoc.

// matchedOrNotFound converts a zero-match update into a NotFound error so a
// link targeting a nonexistent document aborts the surrounding transaction
// instead of committing one-sided.
func matchedOrNotFound(res *mongo.UpdateResult, message string) error {
	if res.MatchedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, message)
	}
	return nil
}

// linkUserToTeam adds the membership on both sides of the user<->team
// relation. Set semantics on both ends, so re-linking is a no-op.
func linkUserToTeam(ctx context.Context, teams, users *mongo.Collection, teamID, userID primitive.ObjectID) error {
	if _, err := teams.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{"$addToSet": bson.M{"users": userID}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to add user to team", err)
	}
	res, err := users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"teams": teamID}},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to add team to user", err)
	}
	return matchedOrNotFound(res, "user not found")
}

// unlinkUserFromTeam removes the membership on both sides. The user side is
// only pulled when the user belongs to more than one team, so removing a
// member never leaves them without any team.
func unlinkUserFromTeam(ctx context.Context, teams, users *mongo.Collection, teamID, userID primitive.ObjectID) error {
	if _, err := teams.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{"$pull": bson.M{"users": userID}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove user from team", err)
	}
	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": userID, "teams.1": bson.M{"$exists": true}},
		bson.M{"$pull": bson.M{"teams": teamID}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove team from user", err)
	}
	return nil
}

// linkUserToTask assigns a user to a task on both sides of the relation.
// An empty assignee list takes a plain push, otherwise an $addToSet guards
// against duplicate insertion races.
func linkUserToTask(ctx context.Context, tasks, users *mongo.Collection, taskID, userID primitive.ObjectID, noAssignees bool) error {
	var mutation bson.M
	if noAssignees {
		mutation = bson.M{"$push": bson.M{"userIds": userID}}
	} else {
		mutation = bson.M{"$addToSet": bson.M{"userIds": userID}}
	}
	if _, err := tasks.UpdateOne(ctx, bson.M{"_id": taskID}, mutation); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to add user to task", err)
	}
	res, err := users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"tasks": taskID}},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to add task to user", err)
	}
	return matchedOrNotFound(res, "user not found")
}

// unlinkUserFromTask removes the assignment symmetrically.
func unlinkUserFromTask(ctx context.Context, tasks, users *mongo.Collection, taskID, userID primitive.ObjectID) error {
	if _, err := tasks.UpdateOne(ctx,
		bson.M{"_id": taskID},
		bson.M{"$pull": bson.M{"userIds": userID}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove user from task", err)
	}
	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"tasks": taskID}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove task from user", err)
	}
	return nil
}

// addTaskToColumn appends a task reference to the owning column's ordered
// list. First insertion takes a plain push, later ones an $addToSet.
func addTaskToColumn(ctx context.Context, projects *mongo.Collection, projectID, columnID, taskID primitive.ObjectID, listEmpty bool) error {
	var mutation bson.M
	if listEmpty {
		mutation = bson.M{"$push": bson.M{"columns.$.tasks": taskID}}
	} else {
		mutation = bson.M{"$addToSet": bson.M{"columns.$.tasks": taskID}}
	}
	res, err := projects.UpdateOne(ctx,
		bson.M{"_id": projectID, "columns._id": columnID},
		mutation,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to add task to column", err)
	}
	return matchedOrNotFound(res, "column not found")
}

// removeTaskFromColumn drops a task reference from the column's list.
func removeTaskFromColumn(ctx context.Context, projects *mongo.Collection, projectID, columnID, taskID primitive.ObjectID) error {
	if _, err := projects.UpdateOne(ctx,
		bson.M{"_id": projectID, "columns._id": columnID},
		bson.M{"$pull": bson.M{"columns.$.tasks": taskID}},
	); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove task from column", err)
	}
	return nil
}
