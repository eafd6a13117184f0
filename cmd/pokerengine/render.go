package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pterm/pterm"
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/engine"
)

var money = regexp.MustCompile(`\$\{(\d+)\}`)

// printer writes the table to stdout, with panels when stdout is a terminal
type printer struct {
	fancy bool
}

func newPrinter(fancy bool) *printer {
	if !fancy {
		pterm.DisableStyling()
	}

	return &printer{fancy: fancy}
}

// Responses prints the log messages and results the table sent
func (p *printer) Responses(responses []*playable.Response, state *engine.GameState) {
	names := make(map[string]string, len(state.Players))
	for _, player := range state.Players {
		names[player.ID] = player.Name
	}

	for _, res := range responses {
		switch res.Key {
		case "logs":
			logs, _ := res.Data.([]*playable.LogMessage)
			for _, l := range logs {
				msg := formatLog(l, names)
				if p.fancy {
					pterm.Info.Println(msg)
				} else {
					fmt.Println(msg)
				}
			}
		case "results":
			if result, ok := resultOf(res); ok {
				p.box("SHOWDOWN", result.String())
			}
		}
	}
}

// State prints the table as the player on the clock sees it
func (p *printer) State(state *engine.GameState) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", state.Game, state.Step)
	for _, board := range state.Boards {
		if board.Removed {
			continue
		}

		fmt.Fprintf(&b, "%s: %s\n", board.Name, strings.Join(board.Cards, " "))
	}

	for i, pot := range state.Pots {
		fmt.Fprintf(&b, "pot %d: $%d\n", i, pot.Amount)
	}

	for _, player := range state.Players {
		line := fmt.Sprintf("%s %-22s $%-6d %s", player.ID, player.Name, player.Stack, cards(player.Cards))
		if player.AmountInPlay > 0 {
			line += fmt.Sprintf("  (in: $%d)", player.AmountInPlay)
		}

		switch {
		case player.Folded:
			line = pterm.Gray(line + "  folded")
		case player.ID == state.CurrentTurn:
			line = pterm.LightCyan(line)
		}

		b.WriteString(line + "\n")
	}

	actions := make([]string, 0, len(state.Actions))
	for _, desc := range state.Actions {
		s := string(desc.Action)
		switch {
		case desc.Action.IsBetting() && desc.Max > 0 && desc.Min != desc.Max:
			s += fmt.Sprintf(" %d-%d", desc.Min, desc.Max)
		case desc.Action.IsBetting() && desc.Min > 0:
			s += fmt.Sprintf(" %d", desc.Min)
		case len(desc.Options) > 0:
			s += " " + strings.Join(desc.Options, "|")
		}

		actions = append(actions, s)
	}

	fmt.Fprintf(&b, "actions: %s", strings.Join(actions, ", "))
	p.box(state.CurrentTurn, b.String())
}

// Error prints a rejected command
func (p *printer) Error(err error) {
	if p.fancy {
		pterm.Error.Println(err.Error())
		return
	}

	fmt.Println("error:", err.Error())
}

func (p *printer) box(title, body string) {
	if !p.fancy {
		fmt.Println(body)
		return
	}

	pterm.DefaultBox.WithTitle(pterm.LightYellow(title)).WithTitleTopCenter().Println(body)
}

func cards(c []string) string {
	shown := make([]string, len(c))
	for i, card := range c {
		if card == "" {
			card = "??"
		}

		shown[i] = card
	}

	return strings.Join(shown, " ")
}

// formatLog renders a log message for the terminal
func formatLog(l *playable.LogMessage, names map[string]string) string {
	msg := money.ReplaceAllString(l.Format(names), "$$$1")
	if len(l.Cards) > 0 {
		msg += ": " + strings.Join(l.Cards, " ")
	}

	return msg
}
