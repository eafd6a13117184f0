package engine

import (
	"fmt"

	"pokerengine/pkg/rules"
)

// groupedBet returns the betting sub-step of a grouped step
func groupedBet(c rules.GroupedConfig) (rules.Step, bool) {
	for _, step := range c.Steps {
		if bet, ok := step.Config.(rules.BetConfig); ok && !bet.Type.Forced() {
			return step, true
		}
	}

	return rules.Step{}, false
}

// startGrouped opens a grouped step
// Players complete every sub-step in turn, starting with the first player to bet when the group has a betting round
func (g *Game) startGrouped(c rules.GroupedConfig) bool {
	first := g.inHand()[0].ID()
	if bet, ok := groupedBet(c); ok {
		first = g.openRound(bet.Config.(rules.BetConfig).Type).ID()
	}

	g.turn.order = g.orderFrom(first)
	g.settleGrouped(c)
	return !g.groupedDone(c)
}

// settleGrouped moves the turn to the next sub-step a player needs to act on
func (g *Game) settleGrouped(c rules.GroupedConfig) {
	for g.turn.index < len(g.turn.order) {
		p := g.participants[g.turn.order[g.turn.index]]
		if p.Folded || g.turn.sub >= len(c.Steps) {
			g.turn.index++
			g.turn.sub = 0
			continue
		}

		sub := c.Steps[g.turn.sub]
		if sub.Condition.Matches(g.choices) && g.needsStep(p, sub) {
			g.state = stateFor(sub)
			return
		}

		g.turn.sub++
	}

	if _, ok := groupedBet(c); ok && !g.pm.IsRoundOver() {
		g.turn.cleanup = true
		g.state = StateBetting
	}
}

// advanceGrouped records that the player finished their sub-step
// Returns true if the player moved on to another sub-step or another player's turn
func (g *Game) advanceGrouped(c rules.GroupedConfig, acted rules.Step) bool {
	if g.turn.cleanup {
		return g.pm.IsRoundOver()
	}

	if _, ok := acted.Config.(rules.BetConfig); !ok && g.turn.index >= len(g.turn.order) {
		panic(fmt.Sprintf("%s acted after the grouped step ended", acted.Name))
	}

	g.turn.sub++
	g.settleGrouped(c)
	return true
}

// groupedDone returns true once every player finished and the betting round is over
func (g *Game) groupedDone(c rules.GroupedConfig) bool {
	if g.turn.index < len(g.turn.order) {
		return false
	}

	if _, ok := groupedBet(c); ok {
		return g.pm.IsRoundOver()
	}

	return true
}
