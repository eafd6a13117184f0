package room

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"pokerengine/pkg/playable/poker/engine"
	"pokerengine/pkg/rules"
)

// PitBoss is responsible for opening tables and dispatching clients to them
type PitBoss struct {
	logger     logrus.FieldLogger
	repository *rules.Repository

	lock    sync.RWMutex
	dealers map[string]*Dealer
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(logger logrus.FieldLogger, repository *rules.Repository) *PitBoss {
	return &PitBoss{
		logger:     logger,
		repository: repository,
		dealers:    make(map[string]*Dealer),
	}
}

// OpenTable starts a table playing the variant
func (p *PitBoss) OpenTable(variant string, opts engine.Options, turnTimeout time.Duration) (*Dealer, error) {
	r, err := p.repository.GetOrLoad(variant)
	if err != nil {
		return nil, err
	}

	game, err := engine.NewGame(p.logger, r, opts)
	if err != nil {
		return nil, err
	}

	dealer := NewDealer(p.logger, game, turnTimeout)

	p.lock.Lock()
	p.dealers[dealer.UUID()] = dealer
	p.lock.Unlock()

	p.logger.WithFields(logrus.Fields{
		"uuid":    dealer.UUID(),
		"variant": r.Game,
	}).Info("table opened")

	return dealer, nil
}

// Dealer returns the dealer of the table
func (p *PitBoss) Dealer(uuid string) (*Dealer, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[uuid]
	return dealer, ok
}

// Tables returns the number of open tables
func (p *PitBoss) Tables() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

// CloseTable ends the dealer's shift
func (p *PitBoss) CloseTable(uuid string) error {
	p.lock.Lock()
	dealer, ok := p.dealers[uuid]
	delete(p.dealers, uuid)
	p.lock.Unlock()

	if !ok {
		return fmt.Errorf("table not found: %s", uuid)
	}

	dealer.EndShift()
	p.logger.WithField("uuid", uuid).Info("table closed")
	return nil
}

// ClientConnected is called when a client joins a table
func (p *PitBoss) ClientConnected(client *Client, uuid string) error {
	dealer, ok := p.Dealer(uuid)
	if !ok {
		return fmt.Errorf("table not found: %s", uuid)
	}

	p.logger.WithField("player", client.PlayerID).Debug("client connected")
	dealer.AddClient(client)
	return nil
}

// ClientDisconnected is called when a client leaves its table
// The table stays open after the last client leaves
func (p *PitBoss) ClientDisconnected(client *Client) {
	if client.dealer == nil {
		return
	}

	p.logger.WithField("player", client.String()).Debug("client disconnected")
	if client.dealer.RemoveClient(client) {
		p.logger.WithField("uuid", client.dealer.UUID()).Debug("last client left the table")
	}
}
