package entity

import (
	"time"

	"github.com/paulmach/orb"
)

// ConnectionState is the PDN connection state of a user.
type ConnectionState string

const (
	ConnectionCreated  ConnectionState = "Created"
	ConnectionReleased ConnectionState = "Released"
)

// UserPosition is where a user is and which cell serves it, if any.
type UserPosition struct {
	Position orb.Point
	CellID   string
}

// Connection is a user's PDN session as seen by the core network.
type Connection struct {
	State    ConnectionState
	IPv4Addr string
}

// Snapshot is one consistent view of the mobile network at Timestamp.
// Users missing from Positions are absent from the network.
type Snapshot struct {
	Timestamp   time.Time
	Positions   map[UserID]UserPosition
	Connections map[UserID]Connection
}

// CurrentPositions returns the position of every present user.
func (s *Snapshot) CurrentPositions() map[UserID]UserPosition {
	return s.Positions
}

// ConnectionState returns the user's connection and whether the user is known.
// A present user without a session is Released.
func (s *Snapshot) ConnectionState(user UserID) (Connection, bool) {
	if conn, ok := s.Connections[user]; ok {
		return conn, true
	}
	if _, ok := s.Positions[user]; ok {
		return Connection{State: ConnectionReleased}, true
	}

	return Connection{}, false
}

// Position returns the user's position and whether the user is present.
func (s *Snapshot) Position(user UserID) (UserPosition, bool) {
	pos, ok := s.Positions[user]

	return pos, ok
}
