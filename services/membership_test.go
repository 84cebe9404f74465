package services

import (
	"testing"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ids(n int) []primitive.ObjectID {
	out := make([]primitive.ObjectID, n)
	for i := range out {
		out[i] = primitive.NewObjectID()
	}
	return out
}

func containsID(list []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range list {
		if candidate == id {
			return true
		}
	}
	return false
}

func TestDedupeIDs(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	got := DedupeIDs([]primitive.ObjectID{a, b, a, c, b, a})
	if len(got) != 3 {
		t.Fatalf("got %d ids, want 3", len(got))
	}
	if got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("first occurrence order not preserved: %v", got)
	}
}

func TestDedupeIDsEmpty(t *testing.T) {
	if got := DedupeIDs(nil); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestDiffMembers(t *testing.T) {
	members := ids(4)
	joiner := primitive.NewObjectID()

	current := members
	desired := []primitive.ObjectID{members[0], members[2], joiner}

	added, removed := DiffMembers(current, desired)

	if len(added) != 1 || added[0] != joiner {
		t.Fatalf("added = %v, want only the joiner", added)
	}
	if len(removed) != 2 {
		t.Fatalf("removed %d members, want 2", len(removed))
	}
	if !containsID(removed, members[1]) || !containsID(removed, members[3]) {
		t.Fatalf("removed = %v, want members 1 and 3", removed)
	}
}

func TestDiffMembersNoChange(t *testing.T) {
	members := ids(3)

	added, removed := DiffMembers(members, members)
	if len(added) != 0 || len(removed) != 0 {
		t.Fatalf("added = %v removed = %v, want both empty", added, removed)
	}
}

// A desired list with duplicates must behave as the set it denotes.
func TestDiffMembersDuplicatesInDesired(t *testing.T) {
	members := ids(2)
	joiner := primitive.NewObjectID()

	desired := []primitive.ObjectID{members[0], joiner, joiner, members[1], members[0]}
	added, removed := DiffMembers(members, desired)

	if len(added) != 1 || added[0] != joiner {
		t.Fatalf("added = %v, want only the joiner once", added)
	}
	if len(removed) != 0 {
		t.Fatalf("removed = %v, want empty", removed)
	}
}

func TestDiffMembersEmptyDesired(t *testing.T) {
	members := ids(2)

	added, removed := DiffMembers(members, nil)
	if len(added) != 0 {
		t.Fatalf("added = %v, want empty", added)
	}
	if len(removed) != 2 {
		t.Fatalf("removed %d members, want all 2", len(removed))
	}
}

// Removing a set that contains the team creator is refused before any write
// happens: the call succeeds with a nil session because it never reaches the
// store, and the team is left untouched.
func TestRemoveMembersCreatorProtected(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := models.Team{
		ID:        primitive.NewObjectID(),
		CreatedBy: creator,
		Users:     []primitive.ObjectID{creator, member},
	}

	ledger := NewMembershipLedger(nil, nil, nil)
	err := ledger.RemoveMembers(nil, &team, []primitive.ObjectID{member, creator})
	if !apperrors.IsKind(err, apperrors.KindInvariantViolation) {
		t.Fatalf("removing the creator = %v, want invariant violation", err)
	}
	if len(team.Users) != 2 || team.Users[0] != creator || team.Users[1] != member {
		t.Fatalf("team members changed on a refused removal: %v", team.Users)
	}
}

func TestRemoveMembersEmptyListNoOp(t *testing.T) {
	team := models.Team{CreatedBy: primitive.NewObjectID()}

	ledger := NewMembershipLedger(nil, nil, nil)
	if err := ledger.RemoveMembers(nil, &team, nil); err != nil {
		t.Fatalf("empty removal failed: %v", err)
	}
}

// A desired list that denotes the current member set, however shuffled or
// duplicated, must not touch the store at all. The nil collections would
// panic on any write, so a clean return proves the no-op.
func TestReconcileUnchangedMembersTouchesNothing(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := models.Team{
		ID:        primitive.NewObjectID(),
		CreatedBy: creator,
		Users:     []primitive.ObjectID{creator, member},
		Projects:  ids(1),
	}

	ledger := NewMembershipLedger(nil, nil, nil)
	desired := []primitive.ObjectID{member, creator, member}
	if err := ledger.Reconcile(nil, &team, desired); err != nil {
		t.Fatalf("reconcile with the unchanged member set failed: %v", err)
	}
}
