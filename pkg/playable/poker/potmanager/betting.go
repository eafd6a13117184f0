package potmanager

// Options are the betting decisions available to a participant
type Options struct {
	CanFold  bool
	CanCheck bool
	// CallAmount is what the participant adds to call. It is less than the bet when calling all-in
	CallAmount int
	CanCall    bool
	CanRaise   bool
	// IsBet is true when nobody has bet yet this round
	IsBet bool
	// IsComplete is true when a Limit raise completes an incomplete bet (i.e., a bring-in)
	IsComplete bool
	// MinRaise and MaxRaise are totals for the round, not amounts added
	MinRaise int
	MaxRaise int
}

// GetOptions returns the betting options for the participant on the clock
// Returns false if the participant is not on the clock
func (p *PotManager) GetOptions(pt Participant) (Options, bool) {
	pit := p.GetInTurnParticipant()
	if pit == nil || pit.ID() != pt.ID() || p.isGameOver {
		return Options{}, false
	}

	return p.optionsFor(p.participants[pt.ID()]), true
}

func (p *PotManager) optionsFor(pip *participantInPot) Options {
	opts := Options{CanFold: true}

	if pip.amountInPlay >= p.currentBet {
		opts.CanCheck = true
	} else {
		opts.CanCall = true
		opts.CallAmount = p.currentBet - pip.amountInPlay
		if opts.CallAmount > pip.Balance() {
			opts.CallAmount = pip.Balance()
		}
	}

	stack := pip.stack()
	if !p.canRaise(pip) || stack <= p.currentBet {
		return opts
	}

	opts.CanRaise = true
	opts.IsBet = p.currentBet == 0
	opts.IsComplete = p.structure == Limit && p.currentBet > 0 && p.currentBet < p.betSize

	minRaise := p.minFullRaise()
	maxRaise := stack
	switch p.structure {
	case Limit:
		maxRaise = minRaise
	case PotLimit:
		maxRaise = p.GetPotLimitMaxBet(pip)
	}

	if maxRaise > stack {
		maxRaise = stack
	}

	if minRaise > stack {
		// all-in for less is the only raise
		minRaise = stack
		maxRaise = stack
	}

	opts.MinRaise = minRaise
	opts.MaxRaise = maxRaise
	return opts
}

// canRaise returns true if the Limit cap has not been reached, the participant's action was not
// closed by an incomplete raise, and somebody else can still call a raise
func (p *PotManager) canRaise(pip *participantInPot) bool {
	if !pip.canRaise || !pip.canAct() {
		return false
	}

	// one bet + three raises is the cap for a cap of 4
	if p.structure == Limit && p.stakes.BettingCap > 0 && p.currentBet >= p.betSize*p.stakes.BettingCap {
		return false
	}

	for _, other := range p.tableOrder {
		if other != pip && other.canAct() {
			return true
		}
	}

	return false
}

// minFullRaise returns the smallest total that counts as a full bet or raise
func (p *PotManager) minFullRaise() int {
	if p.structure == Limit {
		if p.currentBet < p.betSize {
			return p.betSize
		}

		return p.currentBet + p.betSize
	}

	increment := p.lastRaise
	if increment < p.betSize {
		increment = p.betSize
	}

	return p.currentBet + increment
}

// GetPotLimitMaxBet returns the maximum bet allowed in a pot-limit game
// Previous bet + pot + all bets in play + amount to call
func (p *PotManager) GetPotLimitMaxBet(pt Participant) int {
	pip, ok := p.participants[pt.ID()]
	if !ok {
		return 0
	}

	previousBet := p.currentBet
	amountToCall := p.currentBet - pip.amountInPlay
	if amountToCall < 0 {
		amountToCall = 0
	}

	potTotal := p.collected() + p.GetAmountInPlay() + amountToCall

	return previousBet + potTotal
}

// collected returns the chips in the pot from antes and closed rounds
func (p *PotManager) collected() int {
	return p.GetTotal() - p.GetAmountInPlay()
}
