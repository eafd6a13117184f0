package util

import (
	"github.com/stretchr/testify/assert"
	"pokerengine/internal/rng"
	"strings"
	"testing"
)

func TestRandomSeatName(t *testing.T) {
	a := assert.New(t)

	name1 := RandomSeatName(rng.NewSeeded(7))
	name2 := RandomSeatName(rng.NewSeeded(7))
	a.Equal(name1, name2)

	parts := strings.Split(name1, " ")
	a.Len(parts, 2)
	a.Contains(adjectives, parts[0])
	a.Contains(animals, parts[1])
}

func TestNewHandID(t *testing.T) {
	a := assert.New(t)
	id1 := NewHandID()
	id2 := NewHandID()
	a.Len(id1, 36)
	a.NotEqual(id1, id2)
}
