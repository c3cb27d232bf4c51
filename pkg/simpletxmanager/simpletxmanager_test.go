package simpletxmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	pqErr := &pq.Error{Code: pqSerializationFailure, Message: "could not serialize access due to concurrent update"}

	assert.True(t, isSerializationFailure(pqErr))
	// Ошибка коммита и ошибки репозиториев оборачиваются через %w - код должен находиться в цепочке
	assert.True(t, isSerializationFailure(fmt.Errorf("%w: commit: %w", ErrTransaction, pqErr)))
	assert.True(t, isSerializationFailure(fmt.Errorf("%w: Create - execute insert: %w", errors.New("storage: exec query error"), pqErr)))

	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("plain error")))
	assert.False(t, isSerializationFailure(nil))
}
