package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNavigatorClamps(t *testing.T) {
	n := NewNavigator(3, 0)
	assert.False(t, n.HasPrev())
	n.Prev()
	assert.Equal(t, 0, n.Index())

	n.Next()
	n.Next()
	assert.Equal(t, 2, n.Index())
	assert.False(t, n.HasNext())
	n.Next()
	assert.Equal(t, 2, n.Index())

	n.Jump(-5)
	assert.Equal(t, 0, n.Index())
	n.Jump(99)
	assert.Equal(t, 2, n.Index())
	assert.Equal(t, 2, NewNavigator(3, 10).Index())
}

func TestNavigatorEmptyList(t *testing.T) {
	n := NewNavigator(0, 4)
	assert.Equal(t, 0, n.Index())
	assert.False(t, n.HasCurrent())
	assert.False(t, n.HasNext())
	assert.False(t, n.HasPrev())
	n.Next()
	assert.Equal(t, 0, n.Index())
}

func TestCompletionPercentage(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	ids := []uuid.UUID{a, b, c}

	assert.Zero(t, CompletionPercentage(nil, map[uuid.UUID]bool{a: true}))
	assert.Zero(t, CompletionPercentage(ids, nil))
	assert.Equal(t, 33.33, CompletionPercentage(ids, map[uuid.UUID]bool{a: true}))
	assert.Equal(t, 66.67, CompletionPercentage(ids, map[uuid.UUID]bool{a: true, c: true, d: true}))
	assert.Equal(t, 100.0, CompletionPercentage(ids, map[uuid.UUID]bool{a: true, b: true, c: true}))
}

func TestDisplayValue(t *testing.T) {
	v, w := 75.0, 33.33
	assert.Equal(t, "-", DisplayValue(nil))
	assert.Equal(t, "75%", DisplayValue(&v))
	assert.Equal(t, "33.33%", DisplayValue(&w))
}
