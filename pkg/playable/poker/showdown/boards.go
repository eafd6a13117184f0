package showdown

import (
	"pokerengine/pkg/rules"
	"pokerengine/pkg/table"
)

// RemoveBoards takes boards out of contention by their river card
// Every board tied for the lowest (or highest) river is removed, unless that would
// remove every live board. The names of the removed boards are returned
func RemoveBoards(boards *table.Boards, cfg rules.RemoveConfig) []string {
	live := boards.Live()
	candidates := make([]*table.Board, 0, len(live))
	for _, board := range live {
		if len(cfg.Boards) > 0 && !contains(cfg.Boards, board.Name) {
			continue
		}

		if _, ok := riverCard([]*table.Board{board}); ok {
			candidates = append(candidates, board)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	rank := func(b *table.Board) int {
		card, _ := riverCard([]*table.Board{b})
		return card.Rank
	}

	target := rank(candidates[0])
	for _, board := range candidates[1:] {
		r := rank(board)
		if (cfg.Type == rules.RemoveLowestRiver && r < target) || (cfg.Type == rules.RemoveHighestRiver && r > target) {
			target = r
		}
	}

	var removed []string
	for _, board := range candidates {
		if rank(board) == target {
			removed = append(removed, board.Name)
		}
	}

	if len(removed) == len(live) {
		return nil
	}

	for _, name := range removed {
		_ = boards.Remove(name)
	}

	return removed
}
