package room

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"pokerengine/pkg/playable"
)

// Client is a viewer of a table
// A client with an empty PlayerID is a spectator and sees only public information
type Client struct {
	PlayerID string

	// send is a channel for sending messages to the client
	send chan interface{}

	dealer *Dealer
}

// NewClient returns a new client object
func NewClient(playerID string) *Client {
	return &Client{
		PlayerID: playerID,
		send:     make(chan interface{}, 256),
	}
}

// Send sends a message to the client without blocking
// False is returned if the client is not keeping up
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the player and table
func (c *Client) String() string {
	if c.dealer == nil {
		return c.PlayerID
	}

	return fmt.Sprintf("%s:%s", c.PlayerID, c.dealer.UUID())
}

// ReceivedMessage is called when a client sends a message to its table
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
