package iomonitor

import (
	"time"
)

// NoticeKind tells what a notice is about.
type NoticeKind int

const (
	// Offline is sent on every failed probe of a persistent monitor. A
	// client keeps a blocking message on screen while these arrive.
	Offline NoticeKind = iota
	// Online is sent when a persistent monitor recovers.
	Online
	// Down is sent when a transition monitor loses its server.
	Down
	// UpAgain is sent when a transition monitor sees its server again.
	UpAgain
	// Dismiss removes the Down or UpAgain notice with the same ID.
	Dismiss
)

// String returns the name of the notice kind.
func (k NoticeKind) String() string {
	switch k {
	case Offline:
		return "offline"
	case Online:
		return "online"
	case Down:
		return "down"
	case UpAgain:
		return "up-again"
	case Dismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

// Messages shown to the user.
const (
	MsgOffline = "Connection lost, trying to reconnect..."
	MsgOnline  = "Connection restored"
	MsgDown    = "Server is down, using local cache"
	MsgUpAgain = "Server is up again"
)

// Notice is a change of reachability reported to the user.
type Notice struct {
	// ID identifies a notice, Dismiss refers to it.
	ID uint64

	// Monitor is the name of the monitor that sent the notice.
	Monitor string

	Kind NoticeKind
	Text string
	At   time.Time
}

// Notifier shows notices to the user. Notify can be called from several
// goroutines.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc is a function used as a Notifier.
type NotifierFunc func(Notice)

// Notify calls f.
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}
