// Package showdown decides who wins the pots at the end of a hand
package showdown

import (
	"sort"

	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable/poker/handanalyzer"
	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/rules"
	"pokerengine/pkg/table"
)

// Entrant is a player who reached showdown
type Entrant struct {
	ID          string
	Seat        int
	Hand        *deck.Hand
	Declaration rules.Declaration
}

// Input is everything needed to decide a hand
type Input struct {
	Showdown rules.Showdown
	// BestHands are the contests in effect, already resolved for any choices made
	BestHands  []rules.BestHand
	DeckKind   deck.Kind
	Boards     *table.Boards
	ButtonSeat int
	ChipUnit   int
	Entrants   []Entrant
	Pots       potmanager.Pots
}

type evaluation struct {
	result handanalyzer.Result
	board  string
	ok     bool
}

type decider struct {
	in      Input
	order   []string
	results map[string][]evaluation
}

// Decide evaluates every entrant and pays each pot
func Decide(in Input) *GameResult {
	d := &decider{in: in, results: make(map[string][]evaluation)}
	d.order = oddChipOrder(in.Entrants, in.Showdown.OddChip, in.ButtonSeat)

	for _, e := range in.Entrants {
		evals := make([]evaluation, len(in.BestHands))
		for i, bh := range in.BestHands {
			evals[i] = d.evaluate(bh, e)
		}

		d.results[e.ID] = evals
	}

	result := &GameResult{}
	for i, pot := range in.Pots {
		if pot.Amount == 0 {
			continue
		}

		result.pots = append(result.pots, d.pay(i, pot)...)
	}

	for _, id := range sortedIDs(in.Entrants) {
		e := entrantByID(in.Entrants, id)
		ph := PlayerHands{ID: id, Declaration: string(e.Declaration)}
		for i, bh := range in.BestHands {
			ev := d.results[id][i]
			hr := HandResult{HandType: bh.Name, Qualified: ev.ok, Board: ev.board}
			if ev.ok {
				hr.Description = ev.result.Description
				hr.Cards = cardStrings(ev.result.Cards)
			} else {
				hr.Description = "no qualifying hand"
			}

			ph.Hands = append(ph.Hands, hr)
		}

		result.hands = append(result.hands, ph)
	}

	return result
}

// Uncontested pays every pot to the last player in the hand
func Uncontested(winner string, pots potmanager.Pots) *GameResult {
	result := &GameResult{uncontested: true}
	for i, pot := range pots {
		if pot.Amount == 0 {
			continue
		}

		result.pots = append(result.pots, PotResult{
			Pot:     i,
			Amount:  pot.Amount,
			Winners: []string{winner},
			Awards:  []Award{{ID: winner, Amount: pot.Amount}},
		})
	}

	return result
}

// evaluate finds an entrant's best hand for one contest
func (d *decider) evaluate(bh rules.BestHand, e Entrant) evaluation {
	hole := e.Hand.Cards()
	if bh.HoleSubset != "" {
		hole = e.Hand.Subset(bh.HoleSubset)
	}

	opts := handanalyzer.OptionsFor(bh, d.in.DeckKind)
	boards := d.boardsFor(bh)

	if bh.EvaluationType == rules.EvalSuitHigh && bh.Suit == rules.RiverSuit {
		river, ok := riverCard(boards)
		if !ok {
			return evaluation{}
		}

		opts.Suit = river.Suit
	}

	if len(boards) == 0 {
		r, ok := handanalyzer.Best(bh, hole, nil, opts)
		return evaluation{result: r, ok: ok}
	}

	var best evaluation
	for _, board := range boards {
		r, ok := handanalyzer.Best(bh, hole, board.Cards, opts)
		if ok && (!best.ok || r.Beats(best.result)) {
			best = evaluation{result: r, board: board.Name, ok: true}
		}
	}

	if best.ok && len(boards) == 1 {
		best.board = ""
	}

	return best
}

// boardsFor returns the live boards a contest may use
// An unnamed board uses the default board, or every live board together if there is none
func (d *decider) boardsFor(bh rules.BestHand) []*table.Board {
	if d.in.Boards == nil {
		return nil
	}

	switch bh.Board {
	case rules.AnyBoard:
		return d.in.Boards.Live()
	case "":
		if board, ok := d.in.Boards.Find(table.DefaultBoard); ok {
			if board.Removed {
				return nil
			}

			return []*table.Board{board}
		}

		live := d.in.Boards.Live()
		if len(live) == 0 {
			return nil
		}

		return []*table.Board{{Name: table.DefaultBoard, Cards: d.in.Boards.Cards()}}
	}

	board, ok := d.in.Boards.Find(bh.Board)
	if !ok || board.Removed {
		return nil
	}

	return []*table.Board{board}
}

func riverCard(boards []*table.Board) (deck.Card, bool) {
	for _, board := range boards {
		for i := len(board.Cards) - 1; i >= 0; i-- {
			if !board.Cards[i].IsDie() {
				return board.Cards[i], true
			}
		}
	}

	return deck.Card{}, false
}

// contestants returns who competes for each contest of the pot
func (d *decider) contestants(eligible []string) [][]string {
	n := len(d.in.BestHands)
	contests := make([][]string, n)

	if d.in.Showdown.DeclarationMode == rules.Declare && n >= 2 {
		for _, id := range eligible {
			switch entrantByID(d.in.Entrants, id).Declaration {
			case rules.DeclareHigh:
				contests[0] = append(contests[0], id)
			case rules.DeclareLow:
				contests[1] = append(contests[1], id)
			case rules.DeclareHighLow:
				// both ways must tie or beat everyone in the pot in both contests
				if d.unbeaten(id, 0, eligible) && d.unbeaten(id, 1, eligible) {
					contests[0] = append(contests[0], id)
					contests[1] = append(contests[1], id)
				}
			}
		}

		for _, c := range contests {
			if len(c) > 0 {
				return contests
			}
		}

		// nobody is left to contest the pot, so the cards speak
	}

	for i := range contests {
		contests[i] = eligible
	}

	return contests
}

// unbeaten returns true if the player has a hand for the contest that no one in the pot beats
func (d *decider) unbeaten(id string, contest int, eligible []string) bool {
	mine := d.results[id][contest]
	if !mine.ok {
		return false
	}

	for _, other := range eligible {
		theirs := d.results[other][contest]
		if theirs.ok && theirs.result.Beats(mine.result) {
			return false
		}
	}

	return true
}

// winners returns the best hands of the contest in odd chip order
func (d *decider) winners(contest int, ids []string) []string {
	var best *handanalyzer.Result
	var winners []string
	for _, id := range d.order {
		if !contains(ids, id) {
			continue
		}

		ev := d.results[id][contest]
		if !ev.ok {
			continue
		}

		switch {
		case best == nil || ev.result.Beats(*best):
			r := ev.result
			best = &r
			winners = []string{id}
		case ev.result.Ties(*best):
			winners = append(winners, id)
		}
	}

	return winners
}

// pay divides a pot between the contests and their winners
// A contest nobody qualifies for gives up its share to the others. Odd units go to the
// first contest and then to the winners in odd chip order
func (d *decider) pay(index int, pot *potmanager.Pot) []PotResult {
	eligible := make([]string, 0, len(pot.Eligible))
	for _, pt := range pot.Eligible {
		if entrantByID(d.in.Entrants, pt.ID()).ID != "" {
			eligible = append(eligible, pt.ID())
		}
	}

	if len(eligible) == 0 {
		eligible = d.order
	}

	contests := d.contestants(eligible)
	type won struct {
		handType string
		winners  []string
	}

	var active []won
	for i, ids := range contests {
		if winners := d.winners(i, ids); len(winners) > 0 {
			active = append(active, won{handType: d.in.BestHands[i].Name, winners: winners})
		}
	}

	if len(active) == 0 {
		// nobody can make a hand, so the pot is chopped
		active = append(active, won{winners: d.ordered(eligible)})
	}

	portions := potmanager.Split(pot.Amount, len(active), d.in.ChipUnit)
	results := make([]PotResult, 0, len(active))
	for i, w := range active {
		shares := potmanager.Split(portions[i], len(w.winners), d.in.ChipUnit)
		pr := PotResult{
			Pot:      index,
			HandType: w.handType,
			Amount:   portions[i],
			Winners:  w.winners,
			Split:    len(w.winners) > 1,
		}

		for j, id := range w.winners {
			pr.Awards = append(pr.Awards, Award{ID: id, Amount: shares[j]})
		}

		results = append(results, pr)
	}

	return results
}

// ordered returns the ids in odd chip order
func (d *decider) ordered(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range d.order {
		if contains(ids, id) {
			out = append(out, id)
		}
	}

	return out
}

// oddChipOrder returns the entrants in the order odd chips are handed out
func oddChipOrder(entrants []Entrant, policy rules.OddChip, button int) []string {
	sorted := make([]Entrant, len(entrants))
	copy(sorted, entrants)

	distance := func(seat int) int {
		if policy == rules.OddChipLowestSeat {
			return seat
		}

		d := seat - button
		if d <= 0 {
			d += 1 << 16
		}

		return d
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return distance(sorted[i].Seat) < distance(sorted[j].Seat)
	})

	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}

	return ids
}

func entrantByID(entrants []Entrant, id string) Entrant {
	for _, e := range entrants {
		if e.ID == id {
			return e
		}
	}

	return Entrant{}
}

func sortedIDs(entrants []Entrant) []string {
	sorted := make([]Entrant, len(entrants))
	copy(sorted, entrants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Seat < sorted[j].Seat
	})

	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}

	return ids
}

func contains(ids []string, id string) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}

	return false
}

func cardStrings(cards deck.Cards) []string {
	s := make([]string, len(cards))
	for i, c := range cards {
		s[i] = deck.CardToString(c)
	}

	return s
}
