package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "", Code(nil))
	assert.Equal(t, "", Code(errors.New("boom")))
	assert.Equal(t, "source_not_found", Code(ErrSourceNotFound))
	assert.Equal(t, "invalid_input", Code(fmt.Errorf("load site.json: %w", ErrInvalidInput)))
	assert.Equal(t, "execution_failure", Code(fmt.Errorf("a: %w", fmt.Errorf("b: %w", ErrExecutionFailure))))
	assert.Equal(t, "write_failure", Code(fmt.Errorf("write: %w", ErrWriteFailure)))
}
