package room

import (
	"pokerengine/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, keeping only the most recent
// Note: the caller must hold the lock
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// LogMessages returns the most recent log messages, oldest first
func (d *Dealer) LogMessages() []*playable.LogMessage {
	d.lock.Lock()
	defer d.lock.Unlock()

	logs := make([]*playable.LogMessage, len(d.logMessages))
	copy(logs, d.logMessages)
	return logs
}
