package potmanager

import (
	"errors"
	"fmt"
	"sort"
)

// ParticipantError is an error that happened because of a participant error
type ParticipantError string

func (p ParticipantError) Error() string {
	return string(p)
}

func newParticipantError(format string, a ...interface{}) ParticipantError {
	return ParticipantError(fmt.Sprintf(format, a...))
}

// ErrGameOver is an error an action is attempted after the game ended
var ErrGameOver = errors.New("game is over")

// ErrRoundOver is an error when the round is over
var ErrRoundOver = ParticipantError("betting round is over")

// ErrParticipantNotFound is an error when a participant with a provided ID cannot be found
var ErrParticipantNotFound = errors.New("participant not found")

// ErrParticipantCannotAct is an error when the participant cannot act
var ErrParticipantCannotAct = ParticipantError("it is not your turn")

// Structure is a betting structure
type Structure string

// betting structures
const (
	Limit    Structure = "Limit"
	NoLimit  Structure = "No Limit"
	PotLimit Structure = "Pot Limit"
)

// Valid returns true if the structure is known
func (s Structure) Valid() bool {
	return s == Limit || s == NoLimit || s == PotLimit
}

// Stakes are the chip amounts of a game
type Stakes struct {
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
	Ante       int `json:"ante"`
	BringIn    int `json:"bringIn"`
	SmallBet   int `json:"smallBet"`
	BigBet     int `json:"bigBet"`
	// BettingCap is the maximum number of bets and raises in a Limit round, counting the blind. 0 is unlimited
	BettingCap int `json:"bettingCap"`
	// ChipUnit is the smallest amount a pot is split into
	ChipUnit int `json:"chipUnit"`
}

// PotManager provides capabilities for keeping track of bets and pots
type PotManager struct {
	structure    Structure
	stakes       Stakes
	participants map[string]*participantInPot
	tableOrder   []*participantInPot

	// antes is the ante ledger. Antes go straight to the pot
	antes int
	// forced is every forced bet posted this hand, antes included
	forced int
	// payments are chips paid to the pot outside of betting, i.e., protection
	payments int

	roundOpen bool
	// betSize is the fixed bet for Limit, or the minimum bet for No Limit and Pot Limit
	betSize    int
	currentBet int
	// lastRaise is the size of the last full bet or raise this round
	lastRaise int
	// actionAtIndex is who is currently making a decision, -1 if nobody
	actionAtIndex int

	// paid is how much has been awarded to winners
	paid int

	// isGameOver will prevent any further action from happening
	isGameOver bool
}

// New instantiates a new PotManager
func New(structure Structure, stakes Stakes) *PotManager {
	if stakes.ChipUnit <= 0 {
		stakes.ChipUnit = 1
	}

	return &PotManager{
		structure:     structure,
		stakes:        stakes,
		participants:  make(map[string]*participantInPot),
		tableOrder:    make([]*participantInPot, 0),
		actionAtIndex: -1,
	}
}

// Structure returns the betting structure
func (p *PotManager) Structure() Structure {
	return p.structure
}

// Stakes returns the stakes
func (p *PotManager) Stakes() Stakes {
	return p.stakes
}

// SeatParticipant adds a participant to the table in the order called
// This method must be called in order of the players, starting left of the button
func (p *PotManager) SeatParticipant(pt Participant) error {
	if pt.Balance() <= 0 {
		return errors.New("cannot seat participant without a balance")
	}

	if _, ok := p.participants[pt.ID()]; ok {
		return fmt.Errorf("participant %s is already seated", pt.ID())
	}

	pip := &participantInPot{
		Participant: pt,
		tableIndex:  len(p.tableOrder),
		canRaise:    true,
	}
	p.participants[pt.ID()] = pip
	p.tableOrder = append(p.tableOrder, pip)

	return nil
}

func (p *PotManager) participant(pt Participant) (*participantInPot, error) {
	pip, ok := p.participants[pt.ID()]
	if !ok {
		return nil, ErrParticipantNotFound
	}

	return pip, nil
}

// PostAntes collects the ante from every participant who has not folded
// A participant who cannot cover the ante is all-in for what they have
func (p *PotManager) PostAntes() {
	if p.stakes.Ante <= 0 {
		return
	}

	for _, pip := range p.tableOrder {
		if pip.isFolded || pip.isAllIn {
			continue
		}

		amount := pip.commit(p.stakes.Ante)
		// antes are not part of any betting round
		pip.amountInPlay -= amount
		pip.Participant.SetAmountInPlay(pip.amountInPlay)
		pip.forced += amount
		p.antes += amount
		p.forced += amount
	}
}

// PostPayment collects a payment that goes straight to the pot outside of a betting round
// (i.e., protecting a wild card). The participant must cover the full amount
func (p *PotManager) PostPayment(pt Participant, amount int) error {
	if p.isGameOver {
		return ErrGameOver
	}

	if p.roundOpen {
		return errors.New("cannot collect a payment during a betting round")
	}

	pip, err := p.participant(pt)
	if err != nil {
		return err
	}

	if pip.isFolded {
		return newParticipantError("you already folded")
	}

	if amount <= 0 || amount > pip.Balance() {
		return newParticipantError("you cannot pay ${%d}", amount)
	}

	// payments are dead money in the main pot and do not count toward side pot levels
	pip.Participant.AdjustBalance(-1 * amount)
	if pip.Balance() == 0 {
		pip.isAllIn = true
	}

	p.payments += amount
	return nil
}

// GetPaymentTotal returns the total of all payments collected this hand
func (p *PotManager) GetPaymentTotal() int {
	return p.payments
}

// StartRound opens a new betting round
func (p *PotManager) StartRound(betSize int) error {
	if p.isGameOver {
		return ErrGameOver
	}

	if p.roundOpen {
		return errors.New("the previous round is not over")
	}

	for _, pip := range p.tableOrder {
		pip.reset()
	}

	p.roundOpen = true
	p.betSize = betSize
	p.currentBet = 0
	p.lastRaise = 0
	p.actionAtIndex = -1

	return nil
}

// SetBetSize changes the bet size of the open round
// This is used when blinds are posted in one step and the betting happens in a later step
func (p *PotManager) SetBetSize(betSize int) {
	p.betSize = betSize
}

// RoundOpen returns true if a betting round has started and not ended
func (p *PotManager) RoundOpen() bool {
	return p.roundOpen
}

// PostBlind posts a blind for the participant
// The current bet becomes the full blind even if the participant is all-in for less
func (p *PotManager) PostBlind(pt Participant, amount int) (int, error) {
	pip, err := p.forcedParticipant(pt)
	if err != nil {
		return 0, err
	}

	posted := pip.commit(amount)
	pip.forced += posted
	p.forced += posted

	if amount > p.currentBet {
		p.lastRaise = amount - p.currentBet
		p.currentBet = amount
	}

	return posted, nil
}

// PostBringIn posts the bring-in for the participant
// The bring-in counts as the participant's action for the round
func (p *PotManager) PostBringIn(pt Participant, amount int) (int, error) {
	pip, err := p.forcedParticipant(pt)
	if err != nil {
		return 0, err
	}

	posted := pip.commit(amount)
	pip.forced += posted
	pip.hasActed = true
	p.forced += posted

	if posted > p.currentBet {
		p.currentBet = posted
	}

	return posted, nil
}

func (p *PotManager) forcedParticipant(pt Participant) (*participantInPot, error) {
	if !p.roundOpen {
		return nil, errors.New("no betting round is open")
	}

	pip, err := p.participant(pt)
	if err != nil {
		return nil, err
	}

	if !pip.canAct() {
		return nil, fmt.Errorf("participant %s cannot post", pt.ID())
	}

	return pip, nil
}

// SetFirstToAct gives the action to the participant, or the next participant after them who needs to act
func (p *PotManager) SetFirstToAct(pt Participant) error {
	pip, err := p.participant(pt)
	if err != nil {
		return err
	}

	p.actionAtIndex = p.nextToAct(pip.tableIndex, true)
	return nil
}

// needsAction returns true if the participant still has a decision this round
func (p *PotManager) needsAction(pip *participantInPot) bool {
	if !pip.canAct() {
		return false
	}

	if pip.amountInPlay < p.currentBet {
		return true
	}

	return !pip.hasActed && p.GetCanActParticipantCount() > 1
}

// nextToAct finds the first participant, starting at index, who needs to act
func (p *PotManager) nextToAct(index int, inclusive bool) int {
	if p.GetInHandParticipantCount() <= 1 {
		return -1
	}

	n := len(p.tableOrder)
	start := 1
	if inclusive {
		start = 0
	}

	for i := start; i <= n; i++ {
		pip := p.tableOrder[(index+i)%n]
		if p.needsAction(pip) {
			return pip.tableIndex
		}
	}

	return -1
}

// IsRoundOver returns true if no participant needs to act
func (p *PotManager) IsRoundOver() bool {
	return p.actionAtIndex < 0
}

// GetInTurnParticipant returns the participant who is to act next
// Returns nil if the round is over
func (p *PotManager) GetInTurnParticipant() Participant {
	if p.IsRoundOver() {
		return nil
	}

	return p.tableOrder[p.actionAtIndex].Participant
}

// IsParticipantYetToAct returns true if the participant is not in turn and still needs to act this round
func (p *PotManager) IsParticipantYetToAct(pt Participant) bool {
	pip, ok := p.participants[pt.ID()]
	if !ok || p.IsRoundOver() {
		return false
	}

	return pip.tableIndex != p.actionAtIndex && p.needsAction(pip)
}

// GetCanActParticipantCount returns the number of participants in the hand who didn't fold or go all-in
func (p *PotManager) GetCanActParticipantCount() int {
	count := 0
	for _, pt := range p.tableOrder {
		if pt.canAct() {
			count++
		}
	}

	return count
}

// GetInHandParticipantCount returns the number of participants who didn't fold
func (p *PotManager) GetInHandParticipantCount() int {
	count := 0
	for _, pt := range p.tableOrder {
		if !pt.isFolded {
			count++
		}
	}

	return count
}

// InHand returns the participants who have not folded, in table order
func (p *PotManager) InHand() []Participant {
	participants := make([]Participant, 0, len(p.tableOrder))
	for _, pip := range p.tableOrder {
		if !pip.isFolded {
			participants = append(participants, pip.Participant)
		}
	}

	return participants
}

// IsFolded returns true if the participant folded
func (p *PotManager) IsFolded(pt Participant) bool {
	pip, ok := p.participants[pt.ID()]
	return ok && pip.isFolded
}

// IsAllIn returns true if the participant has no chips left behind
func (p *PotManager) IsAllIn(pt Participant) bool {
	pip, ok := p.participants[pt.ID()]
	return ok && pip.isAllIn
}

// GetBet returns the current bet
func (p *PotManager) GetBet() int {
	return p.currentBet
}

// GetAmountToCall returns how much the participant needs to add to call
func (p *PotManager) GetAmountToCall(pt Participant) int {
	pip, ok := p.participants[pt.ID()]
	if !ok || p.currentBet <= pip.amountInPlay {
		return 0
	}

	toCall := p.currentBet - pip.amountInPlay
	if toCall > pip.Balance() {
		return pip.Balance()
	}

	return toCall
}

// GetAnteTotal returns the total of all antes posted this hand
func (p *PotManager) GetAnteTotal() int {
	return p.antes
}

// GetForcedTotal returns the total of all forced bets posted this hand
func (p *PotManager) GetForcedTotal() int {
	return p.forced
}

// GetAmountInPlay returns the total amount bet in the current round, not yet collected into the pot
func (p *PotManager) GetAmountInPlay() int {
	total := 0
	for _, pip := range p.tableOrder {
		total += pip.amountInPlay
	}

	return total
}

// GetTotal returns everything committed to the hand, less anything already paid out
func (p *PotManager) GetTotal() int {
	total := 0
	for _, pip := range p.tableOrder {
		total += pip.total
	}

	return total + p.payments - p.paid
}

// Contributions returns how much each participant has put into the hand
func (p *PotManager) Contributions() map[string]int {
	contributions := make(map[string]int, len(p.tableOrder))
	for _, pip := range p.tableOrder {
		contributions[pip.ID()] = pip.total
	}

	return contributions
}

// ParticipantFolds handles a fold
func (p *PotManager) ParticipantFolds(pt Participant) error {
	pip, err := p.getActiveParticipantInPot(pt)
	if err != nil {
		return err
	}

	pip.isFolded = true
	pip.hasActed = true
	p.completeTurn(pip)
	return nil
}

// FoldOutOfTurn folds a participant who is not on the clock (i.e., they left the table)
func (p *PotManager) FoldOutOfTurn(pt Participant) error {
	pip, err := p.participant(pt)
	if err != nil {
		return err
	}

	if pip.isFolded {
		return newParticipantError("you already folded")
	}

	pip.isFolded = true
	pip.hasActed = true
	if p.actionAtIndex == pip.tableIndex {
		p.completeTurn(pip)
	} else if p.GetInHandParticipantCount() <= 1 {
		p.actionAtIndex = -1
	}

	return nil
}

// ParticipantChecks handles a check
func (p *PotManager) ParticipantChecks(pt Participant) error {
	pip, err := p.getActiveParticipantInPot(pt)
	if err != nil {
		return err
	}

	if pip.amountInPlay != p.currentBet {
		return newParticipantError("you cannot check with an active bet")
	}

	pip.hasActed = true
	p.completeTurn(pip)
	return nil
}

// ParticipantCalls handles a call
// A participant who cannot cover the call is all-in for what they have
func (p *PotManager) ParticipantCalls(pt Participant) error {
	pip, err := p.getActiveParticipantInPot(pt)
	if err != nil {
		return err
	}

	if p.currentBet <= pip.amountInPlay {
		return newParticipantError("you cannot call without an active bet")
	}

	pip.commit(p.currentBet - pip.amountInPlay)
	pip.hasActed = true
	p.completeTurn(pip)
	return nil
}

// ParticipantBetsOrRaises will bet or raise to the amount for the participant
// The amount is the participant's total for the round, not the amount added
func (p *PotManager) ParticipantBetsOrRaises(pt Participant, amount int) error {
	pip, err := p.getActiveParticipantInPot(pt)
	if err != nil {
		return err
	}

	opts := p.optionsFor(pip)
	if !opts.CanRaise {
		if p.currentBet == 0 {
			return newParticipantError("you cannot bet")
		}

		return newParticipantError("you cannot raise")
	}

	if amount > opts.MaxRaise {
		return newParticipantError("your bet of ${%d} cannot exceed ${%d}", amount, opts.MaxRaise)
	}

	// an all-in is always allowed, even if it is less than the minimum
	if amount < opts.MinRaise && amount != pip.stack() {
		return newParticipantError("your bet of ${%d} must be at least ${%d}", amount, opts.MinRaise)
	}

	if amount <= p.currentBet {
		return newParticipantError("your raise of ${%d} must be greater than the previous bet of ${%d}", amount, p.currentBet)
	}

	raiseSize := amount - p.currentBet
	full := amount >= p.minFullRaise()

	pip.commit(amount - pip.amountInPlay)
	pip.hasActed = true
	p.currentBet = amount

	if full {
		if p.structure == Limit {
			p.lastRaise = p.betSize
		} else {
			p.lastRaise = raiseSize
		}

		// a full raise re-opens the action for everyone
		for _, other := range p.tableOrder {
			if other != pip {
				other.canRaise = true
			}
		}
	} else {
		// an incomplete raise does not re-open the action for anyone who already acted
		for _, other := range p.tableOrder {
			if other != pip && other.hasActed {
				other.canRaise = false
			}
		}
	}

	p.completeTurn(pip)
	return nil
}

// completeTurn must be called after a participant bets, raises, checks, calls, or folds
func (p *PotManager) completeTurn(pip *participantInPot) {
	p.actionAtIndex = p.nextToAct(pip.tableIndex, false)
}

// EndRound closes the betting round
// Any uncalled portion of the largest bet is returned to its owner
func (p *PotManager) EndRound() error {
	if !p.roundOpen {
		return errors.New("no betting round is open")
	}

	if !p.IsRoundOver() {
		return errors.New("round is not over")
	}

	p.refundUncalled()
	for _, pip := range p.tableOrder {
		pip.reset()
	}

	p.roundOpen = false
	p.currentBet = 0
	p.actionAtIndex = -1

	return nil
}

func (p *PotManager) refundUncalled() {
	if len(p.tableOrder) < 2 {
		return
	}

	bets := make([]*participantInPot, len(p.tableOrder))
	copy(bets, p.tableOrder)
	sort.SliceStable(bets, func(i, j int) bool {
		return bets[i].amountInPlay > bets[j].amountInPlay
	})

	if excess := bets[0].amountInPlay - bets[1].amountInPlay; excess > 0 {
		bets[0].refund(excess)
	}
}

// getActiveParticipantInPot returns the participantInPot if the participant is on the clock, otherwise
// an error if the participant cannot act
func (p *PotManager) getActiveParticipantInPot(pt Participant) (*participantInPot, error) {
	if p.isGameOver {
		return nil, ErrGameOver
	}

	pit := p.GetInTurnParticipant()
	if pit == nil {
		return nil, ErrRoundOver
	}

	if pit.ID() != pt.ID() {
		return nil, ErrParticipantCannotAct
	}

	pip, ok := p.participants[pt.ID()]
	if !ok {
		panic("participant not found")
	}

	return pip, nil
}

// EndGame will prevent further action from happening
// Any uncalled chips of an open round are returned first
func (p *PotManager) EndGame() {
	if p.roundOpen {
		p.refundUncalled()
		p.roundOpen = false
	}

	p.actionAtIndex = -1
	p.isGameOver = true
}

// IsGameOver returns true after EndGame
func (p *PotManager) IsGameOver() bool {
	return p.isGameOver
}
