package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr   error
	commitCalls int
	rollbacks   int
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.commitCalls++
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	return nil
}

type fakeBeginner struct {
	begins int
	// commitErrs[i] возвращается на Commit i-й транзакции, nil по исчерпании
	commitErrs []error
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	var err error
	if b.begins < len(b.commitErrs) {
		err = b.commitErrs[b.begins]
	}
	b.begins++
	return &fakeTx{commitErr: err}, nil
}

func serializationErr() *pq.Error {
	return &pq.Error{Code: pqSerializationFailure, Message: "could not serialize access due to concurrent update"}
}

func TestDoSerializable_RetriesOnCommitConflict(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationErr(), serializationErr(), serializationErr()}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransaction)
	assert.Equal(t, maxSerializableRetries, attempts)
	assert.Equal(t, maxSerializableRetries, db.begins)
}

func TestDoSerializable_SucceedsAfterRetry(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationErr()}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_RetriesOnWrappedQueryConflict(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	errExec := errors.New("storage: exec query error")

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		// Репозитории оборачивают ошибку драйвера через %w - код 40001 должен остаться в цепочке
		return fmt.Errorf("%w: Create - execute insert: %w", errExec, serializationErr())
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransaction)
	assert.Equal(t, maxSerializableRetries, attempts)
}

func TestDoSerializable_NoRetryOnOtherError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	errBusiness := errors.New("slot already booked")

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return errBusiness
	})

	require.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, attempts)
}

func TestDo_ReusesActiveTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(outer context.Context) error {
		return m.Do(outer, func(inner context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begins)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(serializationErr()))
	assert.True(t, isSerializationFailure(fmt.Errorf("%w: commit: %w", ErrTransaction, serializationErr())))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("plain error")))
	assert.False(t, isSerializationFailure(nil))
}
