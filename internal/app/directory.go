package app

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dkeye/CallSignal/internal/core"
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomDirectory tracks room membership. A room exists only while it has members;
// there is no explicit create or delete.
type RoomDirectory struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]map[domain.ConnID]struct{}
	// reverse index, so a disconnect can find its rooms without a scan
	connRooms map[domain.ConnID]map[domain.RoomID]struct{}
}

func NewRoomDirectory() *RoomDirectory {
	return &RoomDirectory{
		rooms:     make(map[domain.RoomID]map[domain.ConnID]struct{}),
		connRooms: make(map[domain.ConnID]map[domain.RoomID]struct{}),
	}
}

// Join adds id to room. Returns false if it was already a member.
func (d *RoomDirectory) Join(room domain.RoomID, id domain.ConnID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	members := d.rooms[room]
	if members == nil {
		members = make(map[domain.ConnID]struct{})
		d.rooms[room] = members
		log.Info().Str("module", "app.directory").Str("room", string(room)).Msg("room opened")
	}
	if _, ok := members[id]; ok {
		return false
	}
	members[id] = struct{}{}

	joined := d.connRooms[id]
	if joined == nil {
		joined = make(map[domain.RoomID]struct{})
		d.connRooms[id] = joined
	}
	joined[room] = struct{}{}
	log.Info().Str("module", "app.directory").Str("room", string(room)).Str("conn", string(id)).Msg("member added")
	return true
}

// Leave removes id from room and drops the room once it is empty.
// Returns false if id was not a member.
func (d *RoomDirectory) Leave(room domain.RoomID, id domain.ConnID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.leaveLocked(room, id)
}

func (d *RoomDirectory) leaveLocked(room domain.RoomID, id domain.ConnID) bool {
	members := d.rooms[room]
	if _, ok := members[id]; !ok {
		return false
	}
	delete(members, id)
	if len(members) == 0 {
		delete(d.rooms, room)
		log.Info().Str("module", "app.directory").Str("room", string(room)).Msg("room closed")
	}
	if joined, ok := d.connRooms[id]; ok {
		delete(joined, room)
		if len(joined) == 0 {
			delete(d.connRooms, id)
		}
	}
	log.Info().Str("module", "app.directory").Str("room", string(room)).Str("conn", string(id)).Msg("member removed")
	return true
}

// MembersOf returns a sorted copy of the member set. Later mutations are not reflected.
func (d *RoomDirectory) MembersOf(room domain.RoomID) []domain.ConnID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	members := d.rooms[room]
	out := make([]domain.ConnID, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (d *RoomDirectory) IsMember(room domain.RoomID, id domain.ConnID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.rooms[room][id]
	return ok
}

// RoomsOf returns every room id is currently a member of.
func (d *RoomDirectory) RoomsOf(id domain.ConnID) []domain.RoomID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	joined := d.connRooms[id]
	out := make([]domain.RoomID, 0, len(joined))
	for room := range joined {
		out = append(out, room)
	}
	slices.Sort(out)
	return out
}

func (d *RoomDirectory) Exists(room domain.RoomID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.rooms[room]
	return ok
}

func (d *RoomDirectory) List() []core.RoomInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(d.rooms))
	for room, members := range d.rooms {
		out = append(out, core.RoomInfo{ID: room, MemberCount: len(members)})
	}
	slices.SortFunc(out, func(a, b core.RoomInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
