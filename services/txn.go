package services

import (
	"context"
	"errors"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"go.mongodb.org/mongo-driver/mongo"
)

// TxnRunner wraps a unit of work spanning several collections in a single
// multi-document transaction. Each workflow entry point owns exactly one
// top-level transaction; nested Run calls are not supported.
type TxnRunner struct {
	client *mongo.Client
}

func NewTxnRunner(client *mongo.Client) *TxnRunner {
	return &TxnRunner{client: client}
}

// Run starts a session, executes work inside a transaction and commits when
// work returns nil. Any error aborts the transaction, so no partial writes
// survive. The session is released on every exit path.
func (r *TxnRunner) Run(ctx context.Context, work func(sc mongo.SessionContext) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to start a store session", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, work(sc)
	})
	if err != nil {
		// Typed errors from the unit of work pass through untouched.
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) &&
			(cmdErr.HasErrorLabel("TransientTransactionError") || cmdErr.HasErrorLabel("UnknownTransactionCommitResult")) {
			return apperrors.Wrap(apperrors.KindConflict, "transaction aborted due to a concurrent mutation", err)
		}
		return apperrors.Wrap(apperrors.KindInternal, "transaction failed", err)
	}
	return nil
}
