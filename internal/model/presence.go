package model

import "time"

type PresenceStatus string

const (
	StatusOnline   PresenceStatus = "online"
	StatusDND      PresenceStatus = "dnd"
	StatusInactive PresenceStatus = "inactive"
	StatusOffline  PresenceStatus = "offline"
)

func (s PresenceStatus) Valid() bool {
	switch s {
	case StatusOnline, StatusDND, StatusInactive, StatusOffline:
		return true
	}
	return false
}

// Presence is the persisted two-field presence state of a user.
type Presence struct {
	UserID         string         `json:"user_id"`
	Status         PresenceStatus `json:"status"`
	PreviousStatus PresenceStatus `json:"previous_status"`
	ChangedAt      time.Time      `json:"changed_at"`
}

// OfflinePresence is the state of a user that has never connected.
func OfflinePresence(userID string) Presence {
	return Presence{UserID: userID, Status: StatusOffline, PreviousStatus: StatusOffline}
}

// Connect applies the first-session transition: an offline user comes back with the
// status they had before going offline, or online when that was offline too.
// A user that is already connected somewhere is left as is.
func (p Presence) Connect(now time.Time) (Presence, bool) {
	if p.Status != StatusOffline && p.Status != "" {
		return p, false
	}
	next := p
	next.Status = StatusOnline
	if p.PreviousStatus.Valid() && p.PreviousStatus != StatusOffline {
		next.Status = p.PreviousStatus
	}
	next.ChangedAt = now
	return next, true
}

// Disconnect applies the last-session-closed transition.
func (p Presence) Disconnect(now time.Time) (Presence, bool) {
	if p.Status == StatusOffline || p.Status == "" {
		return p, false
	}
	next := p
	next.PreviousStatus = p.Status
	next.Status = StatusOffline
	next.ChangedAt = now
	return next, true
}

// Change sets the status directly. PreviousStatus is untouched.
func (p Presence) Change(s PresenceStatus, now time.Time) Presence {
	next := p
	next.Status = s
	next.ChangedAt = now
	return next
}
