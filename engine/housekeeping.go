/*
housekeeping.go - Cleaning and maintenance operations

Housekeeping only touches the rooms table. The cleaning schedule itself is
a pure read-only projection (every room that is not Clean).
*/
package engine

import (
	"context"

	"github.com/stayhub/hotel-engine/hotel"
)

// CleaningSchedule lists rooms awaiting cleaning.
func (e *Engine) CleaningSchedule(ctx context.Context) ([]hotel.Room, error) {
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return nil, err
	}
	var out []hotel.Room
	for _, r := range rooms {
		if r.Cleaning != hotel.CleaningClean {
			out = append(out, r)
		}
	}
	return out, nil
}

// MarkRoomCleaned flips a Dirty room to Clean. A room that is already
// Clean is a transition error, not a no-op: it usually means the wrong
// room id was entered.
func (e *Engine) MarkRoomCleaned(ctx context.Context, roomID string) (hotel.Room, error) {
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return hotel.Room{}, err
	}
	i := roomIndex(rooms, roomID)
	if i < 0 {
		return hotel.Room{}, hotel.ErrRoomNotFound
	}
	if rooms[i].Cleaning != hotel.CleaningDirty {
		return hotel.Room{}, &hotel.FieldError{Field: "room_id", Value: roomID, Reason: "room is already clean"}
	}

	rooms[i].Cleaning = hotel.CleaningClean
	if err := e.commit(ctx, commit{Rooms: rooms}); err != nil {
		return hotel.Room{}, err
	}
	e.log.Info().Str("room_id", roomID).Msg("room cleaned")
	return rooms[i], nil
}

// ListMaintenance returns rooms currently out of service.
func (e *Engine) ListMaintenance(ctx context.Context) ([]hotel.Room, error) {
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return nil, err
	}
	var out []hotel.Room
	for _, r := range rooms {
		if r.Status == hotel.RoomMaintenance {
			out = append(out, r)
		}
	}
	return out, nil
}

// ResolveMaintenance returns a room from Maintenance to service. The room
// comes back Available but Dirty: it needs a clean before it is bookable.
func (e *Engine) ResolveMaintenance(ctx context.Context, roomID string) (hotel.Room, error) {
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return hotel.Room{}, err
	}
	i := roomIndex(rooms, roomID)
	if i < 0 {
		return hotel.Room{}, hotel.ErrRoomNotFound
	}
	if rooms[i].Status != hotel.RoomMaintenance {
		return hotel.Room{}, &hotel.FieldError{Field: "room_id", Value: roomID, Reason: "room is not in maintenance"}
	}

	rooms[i].Status = hotel.RoomAvailable
	rooms[i].Cleaning = hotel.CleaningDirty
	if err := e.commit(ctx, commit{Rooms: rooms}); err != nil {
		return hotel.Room{}, err
	}
	e.log.Info().Str("room_id", roomID).Msg("maintenance resolved")
	return rooms[i], nil
}
