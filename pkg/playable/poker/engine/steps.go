package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"pokerengine/pkg/rules"
)

// turn tracks who acts in the current interactive step
// Betting turns are tracked by the pot manager instead
type turn struct {
	order []string
	index int

	// sub is the grouped sub-step the player at index is on
	sub int
	// cleanup is true once every player finished their grouped sub-steps
	// and only betting remains
	cleanup bool
}

func (t turn) current() (string, bool) {
	if t.index < len(t.order) {
		return t.order[t.index], true
	}

	return "", false
}

func stateFor(step rules.Step) State {
	switch c := step.Config.(type) {
	case rules.BetConfig:
		return StateBetting
	case rules.DealConfig, rules.RollDieConfig, rules.ReplaceCommunityConfig, rules.RemoveConfig:
		return StateDealing
	case rules.ProtectConfig:
		return StateProtectionDecision
	case rules.ShowdownConfig:
		return StateShowdown
	case rules.GroupedConfig:
		if len(c.Steps) > 0 {
			return stateFor(c.Steps[0])
		}
	}

	return StateDrawing
}

// interactive returns true if the step waits for player decisions
func interactive(step rules.Step) bool {
	if bet, ok := step.Config.(rules.BetConfig); ok {
		return !bet.Type.Forced()
	}

	return step.Kind().Interactive()
}

func (g *Game) step() (rules.Step, bool) {
	if g.stepIndex < 0 || g.stepIndex >= len(g.rules.GamePlay) {
		return rules.Step{}, false
	}

	return g.rules.GamePlay[g.stepIndex], true
}

// activeStep returns the step (or grouped sub-step) waiting for a player
func (g *Game) activeStep() (rules.Step, bool) {
	if !g.InProgress() {
		return rules.Step{}, false
	}

	step, ok := g.step()
	if !ok || !interactive(step) {
		return rules.Step{}, false
	}

	grouped, ok := step.Config.(rules.GroupedConfig)
	if !ok {
		return step, true
	}

	if g.turn.cleanup {
		bet, ok := groupedBet(grouped)
		return bet, ok
	}

	if g.turn.index >= len(g.turn.order) || g.turn.sub >= len(grouped.Steps) {
		return rules.Step{}, false
	}

	return grouped.Steps[g.turn.sub], true
}

// CurrentPlayer returns the ID of the player who must act next, or an empty string if nobody is on the clock
func (g *Game) CurrentPlayer() string {
	return g.currentPlayer()
}

func (g *Game) currentPlayer() string {
	step, ok := g.activeStep()
	if !ok {
		return ""
	}

	if _, isBet := step.Config.(rules.BetConfig); isBet {
		if pt := g.pm.GetInTurnParticipant(); pt != nil {
			return pt.ID()
		}

		return ""
	}

	id, _ := g.turn.current()
	return id
}

// enterStep moves to the first step at or after stepIndex that has work to do
// Steps whose condition does not match are skipped, as are interactive steps nobody needs to act on
func (g *Game) enterStep() {
	for g.state != StateComplete {
		step, ok := g.step()
		if !ok {
			panic(fmt.Sprintf("%s ran out of steps without a showdown", g.rules.Game))
		}

		logger := g.logger.WithFields(logrus.Fields{
			"hand": g.handID,
			"step": step.Name,
		})

		if !step.Condition.Matches(g.choices) {
			logger.Debug("skipping step")
			g.stepIndex++
			continue
		}

		g.state = stateFor(step)
		if !interactive(step) {
			return
		}

		g.turn = turn{}
		if g.beginInteractive(step) {
			logger.Debug("waiting for players")
			return
		}

		logger.Debug("nobody needs to act")
		g.finishInteractive(step)
		g.stepIndex++
	}
}

// Advance executes the current step if it needs no decision, then moves to the next step
func (g *Game) Advance() error {
	if !g.InProgress() {
		return ErrHandNotStarted
	}

	step, _ := g.step()
	if interactive(step) {
		return ErrWaitingForPlayer
	}

	g.logger.WithFields(logrus.Fields{
		"hand": g.handID,
		"step": step.Name,
	}).Debug("executing step")

	if err := g.execute(step); err != nil {
		return err
	}

	g.assertConserved()
	if g.state != StateComplete {
		g.stepIndex++
		g.enterStep()
	}

	return nil
}

// autoProgress executes steps until one needs a decision when AutoProgress is set
func (g *Game) autoProgress() error {
	if !g.options.AutoProgress {
		return nil
	}

	for g.InProgress() {
		if err := g.Advance(); err != nil {
			if err == ErrWaitingForPlayer {
				return nil
			}

			return err
		}
	}

	return nil
}

func (g *Game) execute(step rules.Step) error {
	switch c := step.Config.(type) {
	case rules.BetConfig:
		return g.postForcedBets(c)
	case rules.DealConfig:
		return g.deal(c)
	case rules.RollDieConfig:
		return g.rollDie(c)
	case rules.ReplaceCommunityConfig:
		return g.replaceCommunity(c)
	case rules.RemoveConfig:
		g.removeBoards(c)
		return nil
	case rules.ShowdownConfig:
		g.showdown()
		return nil
	}

	panic(fmt.Sprintf("cannot execute a %s step", step.Kind()))
}

// beginInteractive sets up a step and returns true if a player must act
func (g *Game) beginInteractive(step rules.Step) bool {
	switch c := step.Config.(type) {
	case rules.BetConfig:
		return g.startBetting(c)
	case rules.GroupedConfig:
		return g.startGrouped(c)
	case rules.ChooseConfig:
		g.turn.order = []string{g.chooser(c)}
		return true
	case rules.ProtectConfig:
		// paying or declining is final for the hand
		for _, p := range g.inHand() {
			if _, done := g.protected[p.ID()]; !done && g.lowestHole(p) > 0 {
				g.turn.order = append(g.turn.order, p.ID())
			}
		}
	default:
		for _, p := range g.inHand() {
			if g.needsStep(p, step) {
				g.turn.order = append(g.turn.order, p.ID())
			}
		}
	}

	return len(g.turn.order) > 0
}

// needsStep returns true if the player has a decision to make in a non-betting step
func (g *Game) needsStep(p *participant, step rules.Step) bool {
	switch c := step.Config.(type) {
	case rules.BetConfig:
		pt := g.pm.GetInTurnParticipant()
		return pt != nil && pt.ID() == p.ID()
	case rules.ExposeConfig:
		return c.Max > 0 && len(p.Hand.FaceDown()) > 0
	case rules.DrawConfig, rules.DiscardConfig:
		r, _ := rules.Range(c)
		return r.Max > 0 && p.Hand.Len() > 0
	}

	return true
}

// finishInteractive closes an interactive step once every player acted
func (g *Game) finishInteractive(step rules.Step) {
	closeRound := false
	switch c := step.Config.(type) {
	case rules.BetConfig:
		closeRound = true
	case rules.GroupedConfig:
		_, closeRound = groupedBet(c)
	}

	if closeRound && g.pm.RoundOpen() {
		if err := g.pm.EndRound(); err != nil {
			panic(fmt.Sprintf("could not end the betting round: %v", err))
		}

		g.log(g.potLog())
	}

	g.turn = turn{}
}

// stepFinished moves on after the last player acted in the current step
func (g *Game) stepFinished(step rules.Step) {
	g.finishInteractive(step)
	g.stepIndex++
	g.enterStep()
	if err := g.autoProgress(); err != nil {
		g.logger.WithError(err).WithField("hand", g.handID).Error("could not progress the hand")
	}
}

func (g *Game) chooser(c rules.ChooseConfig) string {
	if c.Chooser == rules.ChooserLeftOfButton {
		return g.inHand()[0].ID()
	}

	if p, ok := g.table.PlayerAt(g.table.ButtonSeat); ok && p.InHand() {
		return p.ID
	}

	return g.inHand()[0].ID()
}
