// Package engine plays hands of any variant described by a rules document
package engine

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"pokerengine/internal/rng"
	"pokerengine/internal/util"
	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/playable/poker/showdown"
	"pokerengine/pkg/rules"
	"pokerengine/pkg/table"
)

// Game is a table playing one variant
// A Game is not safe for concurrent use. The room package serializes access to it
type Game struct {
	logger  logrus.FieldLogger
	rules   *rules.Rules
	options Options

	table        *table.Table
	participants map[string]*participant
	seeds        *rng.Seeded

	handID     string
	handNumber int
	state      State
	stepIndex  int
	turn       turn

	pm   *potmanager.PotManager
	deck *deck.Deck
	die  *deck.Deck

	// startingChips is every chip at the table when the hand started
	startingChips int
	bettingRounds int
	bigBlind      string
	bringIn       string
	choices       map[string]string
	declarations  map[string]rules.Declaration
	protected     map[string]int

	result *showdown.GameResult
	logs   []*playable.LogMessage
}

// NewGame returns a game of the variant
func NewGame(logger logrus.FieldLogger, r *rules.Rules, opts Options) (*Game, error) {
	if err := opts.validate(r); err != nil {
		return nil, err
	}

	if opts.Die == nil {
		die, err := deck.NewOfKind(deck.Die, 0)
		if err != nil {
			return nil, err
		}

		opts.Die = die
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rng.Crypto{}.Seed()
	}

	return &Game{
		logger:       logger.WithField("game", r.Game),
		rules:        r,
		options:      opts,
		table:        table.New(opts.MaxSeats),
		participants: make(map[string]*participant),
		seeds:        rng.NewSeeded(seed),
		state:        StateWaiting,
		die:          opts.Die,
		choices:      make(map[string]string),
		declarations: make(map[string]rules.Declaration),
		protected:    make(map[string]int),
		logs:         make([]*playable.LogMessage, 0),
	}, nil
}

// Name returns the name of the variant
func (g *Game) Name() string {
	return g.rules.Game
}

// Rules returns the variant being played
func (g *Game) Rules() *rules.Rules {
	return g.rules
}

// Options returns the options of the game
func (g *Game) Options() Options {
	return g.options
}

// Table returns the table
func (g *Game) Table() *table.Table {
	return g.table
}

// HandID returns the ID of the current (or last) hand
func (g *Game) HandID() string {
	return g.handID
}

// CurrentState returns the phase of the hand
func (g *Game) CurrentState() State {
	return g.state
}

// InProgress returns true if a hand has started and is not complete
func (g *Game) InProgress() bool {
	return g.state != StateWaiting && g.state != StateComplete
}

// AddPlayer seats a player with a stack
// A player who sits down during a hand is dealt in on the next hand
func (g *Game) AddPlayer(seat int, id, name string, stack int) error {
	if g.options.MinBuyIn > 0 && stack < g.options.MinBuyIn {
		return table.UserError(fmt.Sprintf("the minimum buy-in is ${%d}", g.options.MinBuyIn))
	}

	if g.options.MaxBuyIn > 0 && stack > g.options.MaxBuyIn {
		return table.UserError(fmt.Sprintf("the maximum buy-in is ${%d}", g.options.MaxBuyIn))
	}

	p, err := g.table.AddPlayer(seat, id, name, stack)
	if err != nil {
		return err
	}

	if g.InProgress() {
		// the stack stays out of the hand but is still at the table
		p.Active = false
		g.startingChips += stack
	}

	g.participants[id] = &participant{Player: p}
	g.logger.WithFields(logrus.Fields{
		"player": id,
		"seat":   seat,
		"stack":  stack,
	}).Info("player seated")

	return nil
}

// RemovePlayer stands a player up between hands
func (g *Game) RemovePlayer(id string) error {
	if g.InProgress() {
		return ErrHandInProgress
	}

	if err := g.table.RemovePlayer(id); err != nil {
		return err
	}

	delete(g.participants, id)
	return nil
}

// StartHand shuffles up and deals a new hand
func (g *Game) StartHand() error {
	if g.InProgress() {
		return ErrHandInProgress
	}

	g.table.ResetHand()
	active := g.table.ActivePlayers()
	if len(active) < g.rules.Players.Min {
		return table.UserError(fmt.Sprintf("%s needs at least %d players", g.rules.Game, g.rules.Players.Min))
	}

	if len(active) > g.rules.Players.Max {
		return table.UserError(fmt.Sprintf("%s allows at most %d players", g.rules.Game, g.rules.Players.Max))
	}

	if _, err := g.table.MoveButton(); err != nil {
		return err
	}

	if err := g.newDeck(); err != nil {
		return err
	}

	g.pm = potmanager.New(g.options.Structure, g.options.Stakes)
	for _, p := range g.table.LeftOfButton() {
		if err := g.pm.SeatParticipant(g.participants[p.ID]); err != nil {
			return err
		}
	}

	g.handID = util.NewHandID()
	g.handNumber++
	g.startingChips = g.table.TotalChips()
	g.bettingRounds = 0
	g.bigBlind = ""
	g.bringIn = ""
	g.choices = make(map[string]string)
	g.declarations = make(map[string]rules.Declaration)
	g.protected = make(map[string]int)
	g.result = nil
	g.turn = turn{}
	g.stepIndex = 0
	g.state = StateDealing

	g.logger.WithFields(logrus.Fields{
		"hand":    g.handID,
		"number":  g.handNumber,
		"button":  g.table.ButtonSeat,
		"players": len(active),
	}).Info("starting hand")
	g.log(playable.SimpleLogMessage("", "Hand #%d of %s started", g.handNumber, g.rules.Game))

	g.enterStep()
	return g.autoProgress()
}

func (g *Game) newDeck() error {
	if g.options.Deck != nil {
		g.deck = g.options.Deck
	} else {
		d, err := deck.NewOfKind(g.rules.Deck.Type, g.rules.Deck.Jokers)
		if err != nil {
			return err
		}

		g.deck = d
	}

	g.deck.Shuffle(g.nextSeed())
	return nil
}

// nextSeed returns the seed of the next shuffle
func (g *Game) nextSeed() int64 {
	return int64(g.seeds.Intn(1<<31-1)) + 1
}

// HandResults returns the result of the last completed hand
func (g *Game) HandResults() (*showdown.GameResult, bool) {
	if g.state != StateComplete || g.result == nil {
		return nil, false
	}

	return g.result, true
}

// DrainLogs returns the log messages since the last call
func (g *Game) DrainLogs() []*playable.LogMessage {
	logs := g.logs
	g.logs = make([]*playable.LogMessage, 0)
	return logs
}

func (g *Game) log(msgs ...*playable.LogMessage) {
	g.logs = append(g.logs, msgs...)
}

// inHand returns the participants still in the hand, starting left of the button
func (g *Game) inHand() []*participant {
	players := make([]*participant, 0)
	for _, p := range g.table.LeftOfButton() {
		if !p.Folded {
			players = append(players, g.participants[p.ID])
		}
	}

	return players
}

// orderFrom returns the participants still in the hand starting with id
func (g *Game) orderFrom(id string) []string {
	players := g.inHand()
	start := 0
	for i, p := range players {
		if p.ID() == id {
			start = i
			break
		}
	}

	ids := make([]string, 0, len(players))
	for i := range players {
		ids = append(ids, players[(start+i)%len(players)].ID())
	}

	return ids
}

// assertConserved panics if chips were created or destroyed
func (g *Game) assertConserved() {
	total := g.table.TotalChips() + g.pm.GetTotal()
	if total != g.startingChips {
		panic(fmt.Sprintf("chips are not conserved: started with %d, have %d", g.startingChips, total))
	}

	if !g.pm.IsGameOver() {
		if pots := g.pm.Pots().Total(); pots != g.pm.GetTotal() {
			panic(fmt.Sprintf("pots hold %d but %d was committed", pots, g.pm.GetTotal()))
		}
	}
}

// complete pays out the result and ends the hand
func (g *Game) complete(result *showdown.GameResult) {
	payouts := result.Payouts()
	ids := make([]string, 0, len(payouts))
	for id := range payouts {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	for _, id := range ids {
		if err := g.pm.Pay(g.participants[id], payouts[id]); err != nil {
			panic(fmt.Sprintf("could not pay %s: %v", id, err))
		}
	}

	if g.pm.GetTotal() != 0 {
		panic(fmt.Sprintf("%d chips were left in the pot", g.pm.GetTotal()))
	}

	g.assertConserved()
	g.result = result
	g.state = StateComplete

	for _, pot := range result.Pots() {
		for _, award := range pot.Awards {
			msg := playable.SimpleLogMessage(award.ID, "{} won ${%d}", award.Amount)
			if pot.HandType != "" {
				msg = playable.SimpleLogMessage(award.ID, "{} won ${%d} with the %s", award.Amount, pot.HandType)
			}

			g.log(msg)
		}
	}

	g.logger.WithFields(logrus.Fields{
		"hand":        g.handID,
		"uncontested": result.Uncontested(),
		"payouts":     payouts,
	}).Info("hand complete")
}
