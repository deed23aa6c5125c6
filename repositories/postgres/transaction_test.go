package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when the function succeeds", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tm.InTransaction(ctx, func(txCtx context.Context) error {
			executor := GetExecutor(txCtx, db)
			_, err := executor.ExecContext(txCtx, "UPDATE users SET is_verified = true")
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the function fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, zap.NewNop())
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := tm.InTransaction(ctx, func(txCtx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure is reported", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, zap.NewNop())

		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		err := tm.InTransaction(ctx, func(txCtx context.Context) error {
			t.Fatal("function should not run")
			return nil
		})

		assert.Error(t, err)
	})
}

func TestGetExecutor(t *testing.T) {
	t.Run("returns the pool without a transaction", func(t *testing.T) {
		db, _ := newMockDB(t)
		executor := GetExecutor(context.Background(), db)
		assert.Equal(t, db.DB, executor)
	})

	t.Run("returns the transaction when one rides the context", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		tx, err := db.BeginTx(context.Background(), nil)
		require.NoError(t, err)

		txCtx := context.WithValue(context.Background(), transactionContextKey{}, tx)
		executor := GetExecutor(txCtx, db)
		assert.Equal(t, tx, executor)
	})
}
