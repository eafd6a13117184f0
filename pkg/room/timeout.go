package room

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"pokerengine/pkg/playable/poker/action"
)

type timeout struct {
	handID string
	cancel context.CancelFunc
}

// ScheduleTimeout acts for the player if they are still on the clock after the duration
// The player checks when they can, folds when they can't, and otherwise takes the
// least committal option. The timeout is cancelled when the player acts, when the
// returned function is called, or when ctx is done
func (d *Dealer) ScheduleTimeout(ctx context.Context, playerID string, after time.Duration) context.CancelFunc {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.scheduleTimeout(ctx, playerID, after)
}

// scheduleTimeout must be called with the lock held
func (d *Dealer) scheduleTimeout(ctx context.Context, playerID string, after time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	if d.closed {
		cancel()
		return cancel
	}

	d.cancelTimeout(playerID)
	t := &timeout{handID: d.game.HandID(), cancel: cancel}
	d.timeouts[playerID] = t

	d.timers.Add(1)
	go func() {
		defer d.timers.Done()

		timer := time.NewTimer(after)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
			d.expire(ctx, playerID, t)
		}
	}()

	return cancel
}

func (d *Dealer) cancelTimeout(playerID string) {
	if t, ok := d.timeouts[playerID]; ok {
		t.cancel()
		delete(d.timeouts, playerID)
	}
}

func (d *Dealer) expire(ctx context.Context, playerID string, t *timeout) {
	d.lock.Lock()
	defer d.lock.Unlock()

	// the player may have acted while the timer was waiting for the lock
	if ctx.Err() != nil || d.closed || d.timeouts[playerID] != t {
		return
	}

	delete(d.timeouts, playerID)
	t.cancel()

	logger := d.logger.WithFields(logrus.Fields{
		"player": playerID,
		"hand":   t.handID,
	})

	if d.game.HandID() != t.handID || d.game.CurrentPlayer() != playerID {
		logger.Debug("timeout expired after the player's turn")
		return
	}

	req, ok := defaultRequest(d.game.ValidActions(playerID))
	if !ok {
		logger.Warn("timeout expired, but there is no default action")
		return
	}

	logger.WithField("action", string(req.Action)).Info("player timed out")
	if res := d.playerAction(playerID, req); !res.Success {
		logger.WithError(res.Error).Error("could not act for the player")
	}
}

// defaultRequest returns what a player who ran out of time does
func defaultRequest(descs action.Descriptors) (action.Request, bool) {
	for _, a := range []action.Action{action.Check, action.Fold, action.Decline} {
		if _, ok := descs.Find(a); ok {
			return action.Request{Action: a}, true
		}
	}

	for _, a := range []action.Action{action.Draw, action.Discard, action.Expose} {
		if desc, ok := descs.Find(a); ok && desc.Min == 0 {
			return action.Request{Action: a}, true
		}
	}

	if desc, ok := descs.Find(action.Declare); ok && len(desc.Options) > 0 {
		return action.Request{Action: action.Declare, Declaration: desc.Options[0]}, true
	}

	if desc, ok := descs.Find(action.Choose); ok && len(desc.Options) > 0 {
		return action.Request{Action: action.Choose, Choice: desc.Options[0]}, true
	}

	return action.Request{}, false
}
