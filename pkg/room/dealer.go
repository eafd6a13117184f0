// Package room serializes everything that happens at a table
package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/action"
	"pokerengine/pkg/playable/poker/engine"
)

// ErrShiftEnded happens when a dealer is used after the table closed
var ErrShiftEnded = errors.New("the table is closed")

// Dealer owns a game and is the only thing allowed to touch it
// Every human action and every expired timeout goes through the dealer's lock
type Dealer struct {
	logger logrus.FieldLogger
	game   *engine.Game

	lock        sync.Mutex
	clients     map[*Client]bool
	logMessages []*playable.LogMessage
	closed      bool

	// turnTimeout schedules a timeout for every player put on the clock when positive
	turnTimeout time.Duration
	timeouts    map[string]*timeout
	timers      sync.WaitGroup
}

// NewDealer returns a dealer for the game
func NewDealer(logger logrus.FieldLogger, game *engine.Game, turnTimeout time.Duration) *Dealer {
	return &Dealer{
		logger:      logger.WithField("uuid", game.Table().UUID),
		game:        game,
		clients:     make(map[*Client]bool),
		logMessages: make([]*playable.LogMessage, 0),
		turnTimeout: turnTimeout,
		timeouts:    make(map[string]*timeout),
	}
}

// UUID returns the UUID of the table
func (d *Dealer) UUID() string {
	return d.game.Table().UUID
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.clientList()
}

func (d *Dealer) clientList() []*Client {
	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// AddClient adds a client and sends them the current state
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	defer d.lock.Unlock()

	client.dealer = d
	d.clients[client] = true
	d.sendState(client)
}

// RemoveClient removes a client and returns true if it was the last one
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	delete(d.clients, client)
	return len(d.clients) == 0
}

// SitDown seats a player at the table
func (d *Dealer) SitDown(seat int, id, name string, stack int) error {
	return d.do(func() error {
		return d.game.AddPlayer(seat, id, name, stack)
	})
}

// StandUp removes a player from the table between hands
func (d *Dealer) StandUp(id string) error {
	return d.do(func() error {
		return d.game.RemovePlayer(id)
	})
}

// StartHand deals a new hand
func (d *Dealer) StartHand() error {
	return d.do(d.game.StartHand)
}

// Advance executes the current step when the game does not progress automatically
func (d *Dealer) Advance() error {
	return d.do(d.game.Advance)
}

// do runs fn under the lock and tells every client what changed
func (d *Dealer) do(fn func() error) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.closed {
		return ErrShiftEnded
	}

	if err := fn(); err != nil {
		return err
	}

	d.changed()
	return nil
}

// PlayerAction performs an action for the player
func (d *Dealer) PlayerAction(playerID string, req action.Request) action.Result {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.closed {
		return action.Failed(ErrShiftEnded)
	}

	return d.playerAction(playerID, req)
}

// playerAction must be called with the lock held
func (d *Dealer) playerAction(playerID string, req action.Request) action.Result {
	res := d.game.PlayerAction(playerID, req)
	if !res.Success {
		d.logger.WithError(res.Error).WithFields(logrus.Fields{
			"player": playerID,
			"action": string(req.Action),
		}).Debug("action rejected")
		return res
	}

	d.cancelTimeout(playerID)
	if res.StateChanged {
		d.changed()
	}

	return res
}

// State returns the game as seen by the viewer
func (d *Dealer) State(viewer string) *engine.GameState {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.State(viewer)
}

// CurrentState returns the phase of the hand
func (d *Dealer) CurrentState() engine.State {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.CurrentState()
}

// ReceivedMessage is called when a client sends a message to the table
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	var err error
	switch msg.Action {
	case "startHand":
		err = d.StartHand()
	case "advance":
		err = d.Advance()
	default:
		var req action.Request
		req, err = msg.Request()
		if err == nil {
			if res := d.PlayerAction(c.PlayerID, req); !res.Success {
				err = res.Error
			}
		}
	}

	if err != nil {
		d.logger.WithError(err).WithField("client", c.String()).Debug("could not perform action")
		c.Send(playable.ErrorResponse(msg.Context, err))
		return
	}

	c.Send(playable.OK(msg.Context))
}

// EndShift closes the table and stops every pending timeout
func (d *Dealer) EndShift() {
	d.lock.Lock()
	d.closed = true
	for id := range d.timeouts {
		d.cancelTimeout(id)
	}
	d.lock.Unlock()

	d.timers.Wait()
	d.logger.Debug("dealer shift ended")
}

// changed broadcasts the new state and puts the next player on the clock
// Note: the caller must hold the lock
func (d *Dealer) changed() {
	logs := d.game.DrainLogs()
	d.addLogMessages(logs)

	result, complete := d.game.HandResults()
	for _, client := range d.clientList() {
		if len(logs) > 0 {
			d.send(client, newLogsResponse(logs))
		}

		d.sendState(client)
		if complete {
			d.send(client, newResultsResponse(result))
		}
	}

	if d.turnTimeout > 0 {
		if id := d.game.CurrentPlayer(); id != "" {
			d.scheduleTimeout(context.Background(), id, d.turnTimeout)
		}
	}
}

func (d *Dealer) sendState(client *Client) {
	d.send(client, newGameResponse(d.game.State(client.PlayerID)))
}

func (d *Dealer) send(client *Client, msg interface{}) {
	if !client.Send(msg) {
		d.logger.WithField("client", client.String()).Warn("client is not keeping up, message dropped")
	}
}
