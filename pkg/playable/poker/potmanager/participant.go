package potmanager

// Participant provides an interface for retrieving and adjusting a participants balance
type Participant interface {
	ID() string
	Balance() int
	AdjustBalance(amount int)
	SetAmountInPlay(amount int)
}

// participantInPot is a participant in a pot
type participantInPot struct {
	Participant
	// tableIndex is where the player is seated at the table
	tableIndex int
	// amountInPlay keeps track of how much the player is risking on the current betting round
	amountInPlay int
	// total is everything the player has put in this hand, including antes and the current round
	total int
	// forced is how much of total came from antes, blinds and bring-ins
	forced int

	hasActed bool
	// canRaise is false after an incomplete all-in raise until the player faces a full raise
	canRaise bool
	isAllIn  bool
	isFolded bool
}

// reset is called when the betting round is complete
func (p *participantInPot) reset() {
	p.amountInPlay = 0
	p.hasActed = false
	p.canRaise = true
	p.Participant.SetAmountInPlay(0)
}

// commit moves chips from the participant's balance into play
// If amount is the participant's remaining balance, the participant is all-in
func (p *participantInPot) commit(amount int) int {
	if amount >= p.Balance() {
		amount = p.Balance()
		p.isAllIn = true
	}

	p.amountInPlay += amount
	p.total += amount
	p.Participant.AdjustBalance(-1 * amount)
	p.Participant.SetAmountInPlay(p.amountInPlay)

	return amount
}

// refund returns uncalled chips from the current round
func (p *participantInPot) refund(amount int) {
	p.amountInPlay -= amount
	p.total -= amount
	p.isAllIn = false
	p.Participant.AdjustBalance(amount)
	p.Participant.SetAmountInPlay(p.amountInPlay)
}

// canAct returns true if the participant can check, call, bet, raise, fold
func (p *participantInPot) canAct() bool {
	return !p.isFolded && !p.isAllIn
}

// stack is the most the participant can have in play this round
func (p *participantInPot) stack() int {
	return p.amountInPlay + p.Balance()
}

type sortByTableIndex []*participantInPot

func (s sortByTableIndex) Len() int {
	return len(s)
}

func (s sortByTableIndex) Less(i, j int) bool {
	return s[i].tableIndex < s[j].tableIndex
}

func (s sortByTableIndex) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
