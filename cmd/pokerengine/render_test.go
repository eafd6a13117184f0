package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pokerengine/pkg/playable"
)

func TestFormatLog(t *testing.T) {
	a := assert.New(t)

	names := map[string]string{"p1": "Happy Otter"}
	a.Equal("Happy Otter raised to $40", formatLog(playable.SimpleLogMessage("p1", "{} raised to ${%d}", 40), names))
	a.Equal("p2 won $15", formatLog(playable.SimpleLogMessage("p2", "{} won ${%d}", 15), names))

	l := playable.CardsLogMessage("p1", []string{"As", "Ad"}, "{} showed")
	a.Equal("Happy Otter showed: As Ad", formatLog(l, names))
}

func TestCards(t *testing.T) {
	assert.Equal(t, "As ?? !4c", cards([]string{"As", "", "!4c"}))
}
