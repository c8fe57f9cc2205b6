// Package txn wraps multi-document updates in a MongoDB transaction when
// the deployment supports one, and lets callers detect deployments that
// do not (standalone mongod) so they can fall back to sequential writes.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a session transaction. The callback may
// be retried by the driver, so it must be idempotent with respect to the
// session context it receives.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// transactions (standalone server, no replica set). Callers use it to
// decide whether a sequential fallback is appropriate.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "session") {
		return true
	}
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	return false
}
