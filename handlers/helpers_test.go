package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, errNotFound, kindOf(gorm.ErrRecordNotFound))
	assert.Equal(t, errDuplicate, kindOf(gorm.ErrDuplicatedKey))
	assert.Equal(t, errUnknown, kindOf(errors.New("connection refused")))

	// wrapped errors still classify
	wrapped := fmt.Errorf("load profile: %w", gorm.ErrRecordNotFound)
	assert.Equal(t, errNotFound, kindOf(wrapped))
}

func TestAtoiOr(t *testing.T) {
	assert.Equal(t, 7, atoiOr("7", 1))
	assert.Equal(t, 1, atoiOr("", 1))
	assert.Equal(t, 1, atoiOr("abc", 1))
	assert.Equal(t, -3, atoiOr("-3", 1))
}
