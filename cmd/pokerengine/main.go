package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"pokerengine/internal/config"
	"pokerengine/internal/rng"
	"pokerengine/internal/util"
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/engine"
	"pokerengine/pkg/playable/poker/showdown"
	"pokerengine/pkg/room"
	"pokerengine/pkg/rules"
	"pokerengine/variants"
)

var (
	variant = flag.String("variant", "holdem", "the variant to play")
	players = flag.Int("players", 3, "the number of players")
	hands   = flag.Int("hands", 1, "the number of hands to play")
	stack   = flag.Int("stack", 0, "the starting stack, defaults to the maximum buy-in")
	list    = flag.Bool("list", false, "list the available variants and exit")
)

func main() {
	flag.Parse()
	cfg := config.Instance()
	setupLogger(cfg)

	repository := rules.NewRepository(logrus.StandardLogger(), rulesFS(cfg))
	if *list {
		listVariants(repository)
		return
	}

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), repository)
	dealer, err := pitBoss.OpenTable(*variant, newOptions(cfg), 0)
	if err != nil {
		logrus.WithError(err).Fatal("could not open the table")
	}
	defer dealer.EndShift()

	if err := seatPlayers(dealer, cfg); err != nil {
		logrus.WithError(err).Fatal("could not seat the players")
	}

	out := newPrinter(term.IsTerminal(int(os.Stdout.Fd())))
	spectator := room.NewClient("")
	if err := pitBoss.ClientConnected(spectator, dealer.UUID()); err != nil {
		logrus.WithError(err).Fatal("could not watch the table")
	}

	in := bufio.NewScanner(os.Stdin)
	for i := 0; i < *hands; i++ {
		if err := dealer.StartHand(); err != nil {
			out.Error(err)
			return
		}

		if !playHand(dealer, spectator, in, out) {
			return
		}
	}
}

// playHand prompts whoever is on the clock until the hand is complete
// False is returned when input runs out
func playHand(dealer *room.Dealer, spectator *room.Client, in *bufio.Scanner, out *printer) bool {
	for {
		out.Responses(drain(spectator), dealer.State(""))
		if dealer.CurrentState() == engine.StateComplete {
			return true
		}

		id := dealer.State("").CurrentTurn
		if id == "" {
			if err := dealer.Advance(); err != nil {
				out.Error(err)
				return false
			}

			continue
		}

		out.State(dealer.State(id))
		fmt.Printf("%s> ", id)
		if !in.Scan() {
			return false
		}

		line := strings.TrimSpace(in.Text())
		if line == "quit" {
			return false
		}

		req, err := parseCommand(line)
		if err != nil {
			out.Error(err)
			continue
		}

		if res := dealer.PlayerAction(id, req); !res.Success {
			out.Error(res.Error)
		}
	}
}

func drain(c *room.Client) []*playable.Response {
	responses := make([]*playable.Response, 0)
	for {
		select {
		case msg := <-c.SendChan():
			if res, ok := msg.(*playable.Response); ok {
				responses = append(responses, res)
			}
		default:
			return responses
		}
	}
}

func seatPlayers(dealer *room.Dealer, cfg config.Config) error {
	chips := *stack
	if chips == 0 {
		chips = cfg.Table.MaxBuyIn
	}

	var names rng.Generator = rng.Crypto{}
	if cfg.Seed != 0 {
		names = rng.NewSeeded(cfg.Seed)
	}

	for i := 0; i < *players; i++ {
		id := fmt.Sprintf("p%d", i+1)
		if err := dealer.SitDown(i, id, util.RandomSeatName(names), chips); err != nil {
			return err
		}
	}

	return nil
}

func rulesFS(cfg config.Config) fs.FS {
	if cfg.RulesDir != "" {
		return os.DirFS(cfg.RulesDir)
	}

	return variants.FS
}

func listVariants(repository *rules.Repository) {
	names, err := repository.Names()
	if err != nil {
		logrus.WithError(err).Fatal("could not list the variants")
	}

	for _, name := range names {
		r, err := repository.GetOrLoad(name)
		if err != nil {
			logrus.WithError(err).WithField("variant", name).Error("invalid variant")
			continue
		}

		fmt.Printf("%-20s %s (%d-%d players)\n", name, r.Game, r.Players.Min, r.Players.Max)
	}
}

func setupLogger(cfg config.Config) {
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(cfg.Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// resultOf pulls the hand result out of a results response
func resultOf(res *playable.Response) (*showdown.GameResult, bool) {
	result, ok := res.Data.(*showdown.GameResult)
	return result, ok
}
