package impl

import (
	"slices"
	"time"

	"exposure/internal/domain/entity"

	"github.com/paulmach/orb/planar"
)

const (
	defaultApn     = "Default"
	defaultPdnType = "Ipv4"
)

// Matcher turns a snapshot and the active subscriptions into events. It holds
// no state: the previous snapshot used for edge detection is passed in.
type Matcher struct{}

// NewMatcher creates a Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match returns one event per (subscription, target user) pair that qualifies
// in cur, ordered by subscription creation and then target order. prev is the
// last successfully acquired snapshot, nil on the first cycle.
func (m *Matcher) Match(prev, cur *entity.Snapshot, subscriptions []*entity.Subscription, now time.Time) []*entity.Event {
	if cur == nil {
		return nil
	}

	ordered := slices.Clone(subscriptions)
	slices.SortStableFunc(ordered, func(a, b *entity.Subscription) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	var events []*entity.Event
	for _, sub := range ordered {
		if !sub.IsEvaluable(now) {
			continue
		}

		seen := make(map[entity.UserID]struct{}, len(sub.TargetUsers))
		for _, user := range sub.TargetUsers {
			if _, dup := seen[user]; dup {
				continue
			}
			seen[user] = struct{}{}

			var event *entity.Event
			switch {
			case sub.TracksLocation():
				event = m.matchLocation(prev, cur, sub, user)
			case sub.Kind == entity.KindPdnConnectionEvent:
				event = m.matchPdnConnection(prev, cur, sub, user)
			}
			if event != nil {
				events = append(events, event)
			}
		}
	}

	return events
}

// matchLocation reports every present user on every cycle. DATA reachability
// additionally requires an established PDN connection.
func (m *Matcher) matchLocation(prev, cur *entity.Snapshot, sub *entity.Subscription, user entity.UserID) *entity.Event {
	pos, ok := cur.Position(user)
	if !ok {
		return nil
	}

	if sub.ReachabilityType == entity.ReachabilityData {
		conn, _ := cur.ConnectionState(user)
		if conn.State != entity.ConnectionCreated {
			return nil
		}
	}

	info := &entity.LocationInfo{
		CellID:   pos.CellID,
		ENodeBID: pos.CellID,
		Position: pos.Position,
		LdrType:  entity.LdrEnteringIntoArea,
	}
	if prev != nil {
		if before, seen := prev.Position(user); seen {
			info.LdrType = entity.LdrMotion
			info.DistanceMoved = planar.Distance(before.Position, pos.Position)
		}
	}

	event := newEvent(sub, user, cur.Timestamp)
	event.Location = info

	return event
}

// matchPdnConnection fires on a change of connection state between two
// snapshots that both know the user.
func (m *Matcher) matchPdnConnection(prev, cur *entity.Snapshot, sub *entity.Subscription, user entity.UserID) *entity.Event {
	if prev == nil {
		return nil
	}

	before, knownBefore := prev.ConnectionState(user)
	after, knownNow := cur.ConnectionState(user)
	if !knownBefore || !knownNow || before.State == after.State {
		return nil
	}

	addr := after.IPv4Addr
	if addr == "" {
		addr = before.IPv4Addr
	}

	event := newEvent(sub, user, cur.Timestamp)
	event.PdnConnection = &entity.PdnConnectionInfo{
		Status:         after.State,
		PreviousStatus: before.State,
		Apn:            defaultApn,
		PdnType:        defaultPdnType,
		IPv4Addr:       addr,
	}

	return event
}

func newEvent(sub *entity.Subscription, user entity.UserID, ts time.Time) *entity.Event {
	return &entity.Event{
		ID:             entity.NewEventID(sub.ID, user, ts),
		SubscriptionID: sub.ID,
		Kind:           sub.Kind,
		UserID:         user,
		Timestamp:      ts,
	}
}
