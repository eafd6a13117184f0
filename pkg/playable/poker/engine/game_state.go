package engine

import (
	hashstructure "github.com/mitchellh/hashstructure/v2"
	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable/poker/action"
)

// PlayerState is a player as seen by the viewer
type PlayerState struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Seat         int    `json:"seat"`
	Stack        int    `json:"stack"`
	AmountInPlay int    `json:"amountInPlay"`
	Active       bool   `json:"active"`
	Folded       bool   `json:"folded"`
	AllIn        bool   `json:"allIn"`
	Button       bool   `json:"button"`
	// Cards hides what the viewer cannot see as an empty string
	Cards     []string `json:"cards"`
	Declared  bool     `json:"declared"`
	Protected bool     `json:"protected"`
}

// PotState is a pot as seen by everyone
type PotState struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
}

// BoardState is a community board
type BoardState struct {
	Name    string   `json:"name"`
	Cards   []string `json:"cards"`
	Removed bool     `json:"removed"`
}

// GameState is the hand as seen by one viewer
type GameState struct {
	HandID      string             `json:"handId"`
	Game        string             `json:"game"`
	State       State              `json:"state"`
	Step        string             `json:"step"`
	CurrentTurn string             `json:"currentTurn"`
	ButtonSeat  int                `json:"buttonSeat"`
	CurrentBet  int                `json:"currentBet"`
	Players     []PlayerState      `json:"players"`
	Pots        []PotState         `json:"pots"`
	Boards      []BoardState       `json:"boards"`
	Choices     map[string]string  `json:"choices"`
	Actions     action.Descriptors `json:"actions" hash:"ignore"`
	Hash        uint64             `json:"hash" hash:"ignore"`
}

// State returns the hand as seen by the viewer
// Face-down cards of other players are hidden until the hand is complete. An empty viewer sees only public information
func (g *Game) State(viewer string) *GameState {
	gs := &GameState{
		HandID:      g.handID,
		Game:        g.rules.Game,
		State:       g.state,
		CurrentTurn: g.currentPlayer(),
		ButtonSeat:  g.table.ButtonSeat,
		Players:     make([]PlayerState, 0),
		Pots:        make([]PotState, 0),
		Boards:      make([]BoardState, 0),
		Choices:     make(map[string]string, len(g.choices)),
		Actions:     g.ValidActions(viewer),
	}

	if step, ok := g.step(); ok && g.InProgress() {
		gs.Step = step.Name
		if sub, ok := g.activeStep(); ok && sub.Name != step.Name {
			gs.Step = step.Name + "/" + sub.Name
		}
	}

	for k, v := range g.choices {
		gs.Choices[k] = v
	}

	reveal := g.state == StateComplete && g.result != nil && !g.result.Uncontested()
	for _, p := range g.table.Players() {
		ps := PlayerState{
			ID:           p.ID,
			Name:         p.Name,
			Seat:         p.Seat,
			Stack:        p.Stack(),
			AmountInPlay: p.AmountInPlay(),
			Active:       p.Active,
			Folded:       p.Folded,
			Button:       p.Seat == g.table.ButtonSeat,
			Cards:        make([]string, 0),
		}

		if g.pm != nil && p.Active {
			ps.AllIn = g.pm.IsAllIn(g.participants[p.ID])
		}

		_, ps.Declared = g.declarations[p.ID]
		ps.Protected = g.protected[p.ID] > 0

		for _, c := range p.Hand.Cards() {
			switch {
			case p.ID == viewer:
				ps.Cards = append(ps.Cards, deck.CardToString(c))
			case c.IsFaceUp() || (reveal && !p.Folded):
				ps.Cards = append(ps.Cards, deck.CardToString(publicCard(c)))
			default:
				ps.Cards = append(ps.Cards, "")
			}
		}

		gs.Players = append(gs.Players, ps)
	}

	if g.pm != nil {
		gs.CurrentBet = g.pm.GetBet()
		if !g.pm.IsGameOver() {
			for _, pot := range g.pm.Pots() {
				ps := PotState{Amount: pot.Amount, Eligible: make([]string, 0)}
				for _, pt := range pot.Eligible {
					ps.Eligible = append(ps.Eligible, pt.ID())
				}

				gs.Pots = append(gs.Pots, ps)
			}
		}
	}

	for _, b := range g.table.Boards.All() {
		gs.Boards = append(gs.Boards, BoardState{Name: b.Name, Cards: cardStrings(b.Cards), Removed: b.Removed})
	}

	hash, err := hashstructure.Hash(gs, hashstructure.FormatV2, nil)
	if err != nil {
		g.logger.WithError(err).Error("could not hash the game state")
	}

	gs.Hash = hash
	return gs
}

func publicCard(c deck.Card) deck.Card {
	if c.WildType == deck.PrivateWild {
		return c.WithWildType(deck.NotWild)
	}

	return c
}
