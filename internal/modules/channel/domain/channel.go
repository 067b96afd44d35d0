package domain

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// BroadcastPrefix is prepended to channel ids by the Bot API. Other surfaces
// (MTProto, the web preview) report the bare id.
const BroadcastPrefix = "-100"

// Channel represents a Telegram channel being monitored
type Channel struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Title    string `json:"title"`
}

// Label returns the most readable name known for the channel.
func (c Channel) Label() string {
	switch {
	case c.Title != "":
		return c.Title
	case c.Username != "":
		return "@" + c.Username
	case c.Name != "":
		return c.Name
	}
	return c.ID
}

// StripBroadcastPrefix returns id without the broadcast prefix. Ids that do
// not carry it are returned unchanged.
func StripBroadcastPrefix(id string) string {
	bare, ok := strings.CutPrefix(id, BroadcastPrefix)
	if !ok || !isDigits(bare) {
		return id
	}
	return bare
}

// AddBroadcastPrefix returns the prefixed form of a bare positive id. Anything
// else (already prefixed, negative group ids, non-numeric) is returned unchanged.
func AddBroadcastPrefix(id string) string {
	if !isDigits(id) {
		return id
	}
	return BroadcastPrefix + id
}

// CanonicalID is the representation used for comparisons and message keys.
func CanonicalID(id string) string {
	return StripBroadcastPrefix(strings.TrimSpace(id))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// MonitoredSet holds every known representation of the resolved channels.
// It is built once and never mutated, so it is safe for concurrent readers.
type MonitoredSet struct {
	channels []Channel
	ids      map[string]struct{}
}

func NewMonitoredSet(channels []Channel) *MonitoredSet {
	s := &MonitoredSet{
		channels: lo.UniqBy(channels, func(ch Channel) string { return CanonicalID(ch.ID) }),
		ids:      make(map[string]struct{}, len(channels)*3),
	}
	for _, ch := range s.channels {
		id := strings.TrimSpace(ch.ID)
		if id == "" {
			continue
		}
		s.ids[id] = struct{}{}
		s.ids[StripBroadcastPrefix(id)] = struct{}{}
		s.ids[AddBroadcastPrefix(id)] = struct{}{}
	}
	return s
}

// Contains reports whether id, its stripped form or its prefixed form was registered.
func (s *MonitoredSet) Contains(id string) bool {
	if s == nil {
		return false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	for _, candidate := range []string{id, StripBroadcastPrefix(id), AddBroadcastPrefix(id)} {
		if _, ok := s.ids[candidate]; ok {
			return true
		}
	}
	return false
}

// Channels returns a copy of the resolved channels in resolution order.
func (s *MonitoredSet) Channels() []Channel {
	if s == nil {
		return nil
	}
	return append([]Channel(nil), s.channels...)
}

func (s *MonitoredSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.channels)
}

func (s *MonitoredSet) Empty() bool {
	return s.Len() == 0
}
