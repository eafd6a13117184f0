package potmanager

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Pot is a main pot or side pot
type Pot struct {
	Amount int
	// Eligible are the participants who have not folded and contributed enough to win the pot
	Eligible []Participant
}

type potJSON struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
}

// MarshalJSON provides custom marshalling
func (p Pot) MarshalJSON() ([]byte, error) {
	ids := make([]string, len(p.Eligible))
	for i, p := range p.Eligible {
		ids[i] = p.ID()
	}

	return json.Marshal(potJSON{
		Amount:   p.Amount,
		Eligible: ids,
	})
}

// IsEligible returns true if the participant can win the pot
func (p *Pot) IsEligible(id string) bool {
	for _, pt := range p.Eligible {
		if pt.ID() == id {
			return true
		}
	}

	return false
}

// Pots is a collection of pots. The first pot is the main pot
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}

// Pots returns the main pot and side pots for everything committed to the hand so far
// A side pot is created for each all-in amount. Adjacent levels with the same eligible
// participants are combined
func (p *PotManager) Pots() Pots {
	levels := make(map[int]bool)
	highest := 0
	for _, pip := range p.tableOrder {
		if pip.total > highest {
			highest = pip.total
		}

		if pip.isAllIn && !pip.isFolded && pip.total > 0 {
			levels[pip.total] = true
		}
	}

	if highest == 0 {
		return Pots{{Amount: p.payments - p.paid, Eligible: p.eligibleAt(0)}}
	}

	levels[highest] = true
	amounts := make([]int, 0, len(levels))
	for amount := range levels {
		amounts = append(amounts, amount)
	}
	sort.Ints(amounts)

	pots := make(Pots, 0, len(amounts))
	prevAmount := 0
	for _, level := range amounts {
		potAmount := 0
		for _, pip := range p.tableOrder {
			amount := pip.total
			if amount > level {
				amount = level
			}

			if diff := amount - prevAmount; diff > 0 {
				potAmount += diff
			}
		}

		eligible := p.eligibleAt(level)
		switch {
		case len(pots) > 0 && (len(eligible) == 0 || sameParticipants(pots[len(pots)-1].Eligible, eligible)):
			// nobody new can win this level
			pots[len(pots)-1].Amount += potAmount
		default:
			pots = append(pots, &Pot{Amount: potAmount, Eligible: eligible})
		}

		prevAmount = level
	}

	pots[0].Amount += p.payments
	if p.paid > 0 {
		// pots are reported net of what has been paid out, from the last pot back
		owed := p.paid
		for i := len(pots) - 1; i >= 0 && owed > 0; i-- {
			take := pots[i].Amount
			if take > owed {
				take = owed
			}

			pots[i].Amount -= take
			owed -= take
		}
	}

	return pots
}

func (p *PotManager) eligibleAt(level int) []Participant {
	eligible := make([]Participant, 0, len(p.tableOrder))
	for _, pip := range p.tableOrder {
		if !pip.isFolded && pip.total >= level {
			eligible = append(eligible, pip.Participant)
		}
	}

	return eligible
}

func sameParticipants(a, b []Participant) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].ID() != b[i].ID() {
			return false
		}
	}

	return true
}

// Split divides amount among n winners in units of chipUnit
// The first winners receive any odd units. Anything smaller than a unit goes to the first winner
func Split(amount, n, chipUnit int) []int {
	if n <= 0 {
		return nil
	}

	if chipUnit <= 0 {
		chipUnit = 1
	}

	units := amount / chipUnit
	remainder := amount % chipUnit

	shares := make([]int, n)
	for i := range shares {
		shares[i] = (units / n) * chipUnit
		if i < units%n {
			shares[i] += chipUnit
		}
	}

	shares[0] += remainder
	return shares
}

// Pay awards chips from the pots to a participant
func (p *PotManager) Pay(pt Participant, amount int) error {
	if !p.isGameOver {
		return fmt.Errorf("game is not over")
	}

	pip, err := p.participant(pt)
	if err != nil {
		return err
	}

	if amount < 0 || amount > p.GetTotal() {
		return fmt.Errorf("cannot pay %d from a total of %d", amount, p.GetTotal())
	}

	pip.AdjustBalance(amount)
	p.paid += amount
	return nil
}

// TableOrder returns the participants in the order they were seated
func (p *PotManager) TableOrder() []Participant {
	order := make([]Participant, len(p.tableOrder))
	for i, pip := range p.tableOrder {
		order[i] = pip.Participant
	}

	return order
}

// SortByTableOrder sorts the participants in the order they were seated
func (p *PotManager) SortByTableOrder(participants []Participant) []Participant {
	pips := make([]*participantInPot, 0, len(participants))
	for _, pt := range participants {
		if pip, ok := p.participants[pt.ID()]; ok {
			pips = append(pips, pip)
		}
	}

	sort.Sort(sortByTableIndex(pips))

	sorted := make([]Participant, len(pips))
	for i, pip := range pips {
		sorted[i] = pip.Participant
	}

	return sorted
}
