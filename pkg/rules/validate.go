package rules

import (
	"strings"

	"pokerengine/pkg/deck"
)

// groupable are the kinds a grouped step may contain
var groupable = map[Kind]bool{
	KindBet:     true,
	KindExpose:  true,
	KindDiscard: true,
	KindDraw:    true,
	KindDeclare: true,
}

// Validate checks the rules for anything that would make the variant unplayable
func (r *Rules) Validate() error {
	v := &validator{rules: r, choices: r.Choices(), subsets: r.Subsets(), boards: r.Boards()}
	v.defaults()

	checks := []func() *ConfigError{
		v.game,
		v.players,
		v.deck,
		v.structures,
		v.forcedBets,
		v.steps,
		v.showdown,
		v.capacity,
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}

	return nil
}

type validator struct {
	rules   *Rules
	choices map[string][]string
	subsets map[string]bool
	boards  map[string]bool
}

func (v *validator) fail(field, format string, a ...interface{}) *ConfigError {
	return configError(v.rules.Game, field, format, a...)
}

func (v *validator) defaults() {
	r := v.rules
	if r.BettingOrder.Initial == "" {
		switch r.ForcedBets.Style {
		case ForcedBlinds:
			r.BettingOrder.Initial = OrderAfterBigBlind
		case ForcedBringIn:
			r.BettingOrder.Initial = OrderBringIn
		default:
			r.BettingOrder.Initial = OrderDealer
		}
	}

	if r.BettingOrder.Subsequent == "" {
		r.BettingOrder.Subsequent = OrderDealer
	}

	if r.ForcedBets.Style == ForcedBringIn && r.ForcedBets.BringInEval == "" {
		r.ForcedBets.BringInEval = BringInLow
	}
}

func (v *validator) game() *ConfigError {
	if strings.TrimSpace(v.rules.Game) == "" {
		return v.fail("game", "is required")
	}

	return nil
}

func (v *validator) players() *ConfigError {
	p := v.rules.Players
	if p.Min < MinPlayers || p.Max > MaxPlayers || p.Min > p.Max {
		return v.fail("players", "bounds %d..%d must be within %d..%d", p.Min, p.Max, MinPlayers, MaxPlayers)
	}

	return nil
}

func (v *validator) deck() *ConfigError {
	d := v.rules.Deck
	if !d.Type.Valid() || d.Type == deck.Die {
		return v.fail("deck.type", "unknown deck type: %s", d.Type)
	}

	if d.Jokers < 0 {
		return v.fail("deck.jokers", "must be positive")
	}

	return nil
}

func (v *validator) structures() *ConfigError {
	if len(v.rules.BettingStructures) == 0 {
		return v.fail("bettingStructures", "at least one betting structure is required")
	}

	for _, s := range v.rules.BettingStructures {
		if !s.Valid() {
			return v.fail("bettingStructures", "unsupported betting structure: %s", s)
		}
	}

	return nil
}

func (v *validator) forcedBets() *ConfigError {
	r := v.rules
	switch r.ForcedBets.Style {
	case ForcedBlinds, ForcedBringIn, ForcedAntesOnly:
	default:
		return v.fail("forcedBets.style", "unknown forced bet style: %s", r.ForcedBets.Style)
	}

	if r.ForcedBets.Style == ForcedBringIn && r.ForcedBets.BringInEval != BringInLow && r.ForcedBets.BringInEval != BringInHigh {
		return v.fail("forcedBets.bringInEval", "unknown bring-in evaluation: %s", r.ForcedBets.BringInEval)
	}

	for field, order := range map[string]Order{"bettingOrder.initial": r.BettingOrder.Initial, "bettingOrder.subsequent": r.BettingOrder.Subsequent} {
		switch order {
		case OrderAfterBigBlind, OrderBringIn, OrderDealer, OrderHighHand, OrderLowHand:
		default:
			return v.fail(field, "unknown betting order: %s", order)
		}
	}

	return nil
}

func (v *validator) steps() *ConfigError {
	steps := v.rules.GamePlay
	if len(steps) == 0 {
		return v.fail("gamePlay", "at least one step is required")
	}

	showdowns := 0
	for _, step := range steps {
		if step.Kind() == KindShowdown {
			showdowns++
		}
	}

	if showdowns != 1 || steps[len(steps)-1].Kind() != KindShowdown {
		return v.fail("gamePlay", "the last step must be the only showdown step")
	}

	var err *ConfigError
	v.rules.WalkSteps(func(path string, step Step) {
		if err == nil {
			err = v.step(path, step)
		}
	})

	return err
}

func (v *validator) step(path string, step Step) *ConfigError {
	if step.Name == "" {
		return v.fail(path, "name is required")
	}

	path = path + " (" + step.Name + ")"
	if step.Condition != nil {
		if err := v.condition(path+".condition", *step.Condition); err != nil {
			return err
		}
	}

	switch c := step.Config.(type) {
	case BetConfig:
		return v.bet(path, c)
	case DealConfig:
		return v.deal(path, c)
	case DrawConfig, DiscardConfig, ExposeConfig:
		rng, _ := Range(c)
		if rng.Min < 0 || rng.Max < 1 || rng.Min > rng.Max {
			return v.fail(path, "invalid card range %d..%d", rng.Min, rng.Max)
		}
	case SeparateConfig:
		if len(c.Subsets) == 0 {
			return v.fail(path, "at least one subset is required")
		}

		seen := make(map[string]bool)
		for _, sub := range c.Subsets {
			if sub.Name == "" || sub.Number <= 0 || seen[sub.Name] {
				return v.fail(path, "invalid subset %q", sub.Name)
			}

			seen[sub.Name] = true
		}
	case DeclareConfig:
		if len(c.Options) == 0 {
			return v.fail(path, "declare needs options")
		}

		for _, opt := range c.Options {
			if opt != DeclareHigh && opt != DeclareLow && opt != DeclareHighLow {
				return v.fail(path, "unknown declaration: %s", opt)
			}
		}
	case ChooseConfig:
		if c.Subject == "" || len(c.Options) == 0 {
			return v.fail(path, "choose needs a subject and options")
		}

		if c.Chooser != "" && c.Chooser != ChooserButton && c.Chooser != ChooserLeftOfButton {
			return v.fail(path, "unknown chooser: %s", c.Chooser)
		}
	case RollDieConfig:
		if c.Subject == "" {
			return v.fail(path, "roll_die needs a subject")
		}
	case ReplaceCommunityConfig:
		if len(c.Ranks) == 0 {
			return v.fail(path, "replace_community needs ranks")
		}

		for _, rank := range c.Ranks {
			if _, err := deck.ParseRank(rank); err != nil {
				return v.fail(path, "%s", err)
			}
		}
	case RemoveConfig:
		if c.Type != RemoveLowestRiver && c.Type != RemoveHighestRiver {
			return v.fail(path, "unknown remove type: %s", c.Type)
		}

		for _, board := range c.Boards {
			if !v.boards[board] {
				return v.fail(path, "unknown board: %s", board)
			}
		}
	case ProtectConfig:
		if c.Cost <= 0 {
			return v.fail(path, "protect cost must be positive")
		}

		if !v.rules.Showdown.HasWild(WildLowestHole) {
			return v.fail(path, "protect requires a lowest_hole wild card policy")
		}
	case GroupedConfig:
		if len(c.Steps) == 0 {
			return v.fail(path, "grouped actions need sub-steps")
		}

		for _, sub := range c.Steps {
			if !groupable[sub.Kind()] {
				return v.fail(path, "%s cannot be grouped", sub.Kind())
			}

			if bet, ok := sub.Config.(BetConfig); ok && bet.Type.Forced() {
				return v.fail(path, "forced bets cannot be grouped")
			}
		}
	case ShowdownConfig:
		if c.Type != "final" {
			return v.fail(path, "unknown showdown type: %s", c.Type)
		}
	}

	return nil
}

func (v *validator) bet(path string, c BetConfig) *ConfigError {
	style := v.rules.ForcedBets.Style
	switch c.Type {
	case BetAntes, BetSmall, BetBig:
	case BetBlinds:
		if style != ForcedBlinds {
			return v.fail(path, "blinds require the blinds forced bet style")
		}
	case BetBringIn:
		if style != ForcedBringIn {
			return v.fail(path, "bring-in requires the bring-in forced bet style")
		}
	case "":
		return v.fail(path, "bet type is required")
	default:
		return v.fail(path, "unknown bet type: %s", c.Type)
	}

	return nil
}

func (v *validator) deal(path string, c DealConfig) *ConfigError {
	if c.Location != LocationPlayer && c.Location != LocationCommunity {
		return v.fail(path, "deal needs a location")
	}

	if c.Location == LocationPlayer && c.Board != "" {
		return v.fail(path, "player deals cannot name a board")
	}

	if len(c.Cards) == 0 {
		return v.fail(path, "deal needs a card count")
	}

	for _, cards := range c.Cards {
		if cards.Number <= 0 {
			return v.fail(path, "card count must be positive")
		}

		if cards.State != StateFaceUp && cards.State != StateFaceDown {
			return v.fail(path, "unknown card state: %s", cards.State)
		}
	}

	return nil
}

func (v *validator) condition(path string, c Condition) *ConfigError {
	options, ok := v.choices[c.Subject]
	if !ok {
		return v.fail(path, "unknown subject: %s", c.Subject)
	}

	values := c.In
	if c.Equals != "" {
		values = append([]string{c.Equals}, values...)
	}

	if len(values) == 0 {
		return v.fail(path, "condition needs equals or in")
	}

	for _, value := range values {
		if !contains(options, value) {
			return v.fail(path, "%s is not an option of %s", value, c.Subject)
		}
	}

	return nil
}

func (v *validator) showdown() *ConfigError {
	s := v.rules.Showdown
	switch s.DeclarationMode {
	case CardsSpeak:
	case Declare:
		if !v.rules.HasKind(KindDeclare) {
			return v.fail("showdown.declarationMode", "declare mode requires a declare step")
		}

		if len(s.BestHand) != 2 || len(s.ConditionalBestHands) > 0 {
			return v.fail("showdown.bestHand", "declare mode needs exactly a high and a low best hand")
		}
	default:
		return v.fail("showdown.declarationMode", "unknown declaration mode: %s", s.DeclarationMode)
	}

	if len(s.BestHand) == 0 {
		return v.fail("showdown.bestHand", "at least one best hand is required")
	}

	for _, bh := range s.BestHand {
		if err := v.bestHand("showdown.bestHand", bh); err != nil {
			return err
		}
	}

	for _, cond := range s.ConditionalBestHands {
		if err := v.condition("showdown.conditionalBestHands.condition", cond.Condition); err != nil {
			return err
		}

		if len(cond.BestHand) == 0 {
			return v.fail("showdown.conditionalBestHands", "at least one best hand is required")
		}

		for _, bh := range cond.BestHand {
			if err := v.bestHand("showdown.conditionalBestHands.bestHand", bh); err != nil {
				return err
			}
		}
	}

	for _, w := range s.WildCards {
		if err := v.wildCard(w); err != nil {
			return err
		}
	}

	if s.OddChip != OddChipLeftOfButton && s.OddChip != OddChipLowestSeat {
		return v.fail("showdown.oddChip", "unknown odd chip policy: %s", s.OddChip)
	}

	return nil
}

func (v *validator) bestHand(field string, bh BestHand) *ConfigError {
	if bh.Name == "" {
		return v.fail(field, "name is required")
	}

	field = field + " (" + bh.Name + ")"
	switch bh.EvaluationType {
	case EvalHigh, EvalA5Low, Eval27Low, EvalBadugi:
	case EvalSuitHigh:
		if bh.Suit == "" {
			return v.fail(field, "suit_high needs a suit")
		}

		if bh.Suit != RiverSuit && deck.Suit(bh.Suit).Order() < 0 {
			return v.fail(field, "unknown suit: %s", bh.Suit)
		}
	default:
		return v.fail(field, "unknown evaluation type: %s", bh.EvaluationType)
	}

	if bh.AnyCards < 0 || bh.HoleCards < 0 || bh.CommunityCards < 0 {
		return v.fail(field, "card counts must be positive")
	}

	if bh.AnyCards > 0 && bh.HoleCards+bh.CommunityCards > 0 {
		return v.fail(field, "anyCards cannot be combined with holeCards or communityCards")
	}

	if bh.CommunityCards > 0 && len(v.boards) == 0 {
		return v.fail(field, "communityCards requires community cards to be dealt")
	}

	if len(bh.Qualifier) > 0 {
		if !bh.EvaluationType.IsLow() || len(bh.Qualifier) != 1 || bh.Qualifier[0] < 5 || bh.Qualifier[0] > deck.Ace {
			return v.fail(field, "invalid qualifier")
		}
	}

	if bh.HoleSubset != "" && !v.subsets[bh.HoleSubset] {
		return v.fail(field, "unknown subset: %s", bh.HoleSubset)
	}

	if bh.Board != "" && bh.Board != AnyBoard && !v.boards[bh.Board] {
		return v.fail(field, "unknown board: %s", bh.Board)
	}

	return nil
}

func (v *validator) wildCard(w WildCard) *ConfigError {
	const field = "showdown.wildCards"
	if w.Role != RoleWild && w.Role != RoleBug {
		return v.fail(field, "unknown wild role: %s", w.Role)
	}

	switch w.Type {
	case WildJoker:
		if v.rules.Deck.Jokers == 0 {
			return v.fail(field, "joker wild cards need jokers in the deck")
		}
	case WildRank:
		if w.Role == RoleBug {
			return v.fail(field, "only jokers can be bugs")
		}

		if w.Subject != "" {
			if _, ok := v.choices[w.Subject]; !ok {
				return v.fail(field, "unknown subject: %s", w.Subject)
			}
		} else if _, err := deck.ParseRank(w.Rank); err != nil {
			return v.fail(field, "%s", err)
		}
	case WildLowestHole:
		if w.Role == RoleBug {
			return v.fail(field, "only jokers can be bugs")
		}
	default:
		return v.fail(field, "unknown wild type: %s", w.Type)
	}

	return nil
}

// capacity checks that the deck can deal every card to the maximum number of players
// Conditional deals are grouped by condition and only the largest group counts
func (v *validator) capacity() *ConfigError {
	r := v.rules
	d, err := deck.NewOfKind(r.Deck.Type, r.Deck.Jokers)
	if err != nil {
		return v.fail("deck", "%s", err)
	}

	unconditional := 0
	conditional := make(map[string]int)
	for _, step := range r.GamePlay {
		c, ok := step.Config.(DealConfig)
		if !ok {
			continue
		}

		n := c.Total()
		if c.Location == LocationPlayer {
			n *= r.Players.Max
		}

		if step.Condition == nil {
			unconditional += n
		} else {
			conditional[step.Condition.key()] += n
		}
	}

	largest := 0
	for _, n := range conditional {
		if n > largest {
			largest = n
		}
	}

	if unconditional+largest > d.Size() {
		return v.fail("gamePlay", "deals %d cards from a %d card deck with %d players", unconditional+largest, d.Size(), r.Players.Max)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}
