package turn

import "slices"

// DefaultMessageLimit bounds the message history kept per match
const DefaultMessageLimit = 6

// messageLog keeps the most recent messages, newest first
type messageLog struct {
	limit   int
	entries []string
}

func newMessageLog(limit int) *messageLog {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	return &messageLog{limit: limit}
}

func (l *messageLog) push(msg string) {
	l.entries = slices.Insert(l.entries, 0, msg)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

func (l *messageLog) list() []string {
	return slices.Clone(l.entries)
}

func (l *messageLog) reset(entries []string) {
	l.entries = nil
	for i := len(entries) - 1; i >= 0; i-- {
		l.push(entries[i])
	}
}
