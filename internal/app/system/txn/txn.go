// internal/app/system/txn/txn.go
//
// Package txn runs a closure inside a MongoDB multi-document transaction.
// Transactions require a replica set or mongos; on a standalone server the
// closure is executed directly instead, so development against a plain
// local mongod still works. Callers that depend on all-or-nothing semantics
// should treat the fallback as best effort.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTxn executes fn inside a transaction on client. If the server does not
// support transactions, fn is run once outside a transaction.
func WithTxn(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Warn("transactions unsupported on this MongoDB deployment, running without transaction")
		}
		return fn(ctx)
	}
	return err
}

// Supported reports whether the connected deployment supports
// multi-document transactions, probed with an empty transaction.
func Supported(ctx context.Context, client *mongo.Client) bool {
	err := WithTxnProbe(ctx, client)
	return err == nil
}

// WithTxnProbe starts and commits an empty transaction.
func WithTxnProbe(ctx context.Context, client *mongo.Client) error {
	sess, err := client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	if err := sess.StartTransaction(); err != nil {
		return err
	}
	if err := sess.CommitTransaction(ctx); err != nil {
		_ = sess.AbortTransaction(ctx)
		return err
	}
	return nil
}

// Error codes MongoDB returns when transactions are attempted on a
// deployment that cannot run them.
const (
	codeTransactionNumbers = 20  // "Transaction numbers are only allowed on..."
	codeIllegalOperation   = 51  // standalone server
	codeOperationNotSupp   = 263 // "Cannot run ... in a multi-document transaction"
)

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone mongod rather than replica set).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeTransactionNumbers, codeIllegalOperation, codeOperationNotSupp:
			return true
		}
		return false
	}

	// Driver-level errors do not always carry a code; fall back to message
	// heuristics, requiring two corroborating keywords.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
