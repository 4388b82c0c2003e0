package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"postboard/internal/models"
)

func TestCanModify(t *testing.T) {
	owner := models.User{ID: 7}
	other := models.User{ID: 8}

	assert.True(t, canModify(owner, 7))
	assert.False(t, canModify(other, 7))
	assert.False(t, canModify(models.User{}, 7))
}
