package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/hotel-engine/engine"
	"github.com/stayhub/hotel-engine/hotel"
)

func TestAddRoom_StartsAvailableClean(t *testing.T) {
	f := newFixture(t, "2025-01-08")

	room := f.addRoom(t, "Single", "100.00")

	assert.Equal(t, "R1", room.ID)
	assert.Equal(t, hotel.RoomSingle, room.Type)
	assert.Equal(t, "100.00", hotel.FormatAmount(room.Price))
	assert.Equal(t, hotel.RoomAvailable, room.Status)
	assert.Equal(t, hotel.CleaningClean, room.Cleaning)
}

func TestAddRoom_Validation(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	ctx := context.Background()

	tests := []struct {
		name     string
		roomType string
		price    string
	}{
		{"unknown type", "Suite", "100.00"},
		{"non-numeric price", "Single", "cheap"},
		{"zero price", "Single", "0"},
		{"negative price", "Single", "-50.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.eng.AddRoom(ctx, tt.roomType, tt.price)
			assert.ErrorIs(t, err, hotel.ErrInvalidInput)
		})
	}
}

func TestUpdateRoom_PartialPatch(t *testing.T) {
	// Only the fields set in the patch change; everything else is kept.

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	ctx := context.Background()

	got, err := f.eng.UpdateRoom(ctx, room.ID, engine.RoomPatch{Price: "120.00"})

	require.NoError(t, err)
	assert.Equal(t, "120.00", hotel.FormatAmount(got.Price))
	assert.Equal(t, hotel.RoomSingle, got.Type)
	assert.Equal(t, hotel.RoomAvailable, got.Status)
}

func TestUpdateRoom_MaintenanceTakesRoomOutOfService(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	ctx := context.Background()

	_, err := f.eng.UpdateRoom(ctx, room.ID, engine.RoomPatch{Status: "Maintenance"})
	require.NoError(t, err)

	_, err = f.eng.Reserve(ctx, guest.ID, "Single", 1)
	assert.ErrorIs(t, err, hotel.ErrNoAvailability)
}

func TestUpdateRoom_Errors(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	ctx := context.Background()

	t.Run("unknown room", func(t *testing.T) {
		_, err := f.eng.UpdateRoom(ctx, "R99", engine.RoomPatch{Price: "120.00"})
		assert.ErrorIs(t, err, hotel.ErrRoomNotFound)
	})
	t.Run("bad status value", func(t *testing.T) {
		_, err := f.eng.UpdateRoom(ctx, room.ID, engine.RoomPatch{Status: "Broken"})
		assert.ErrorIs(t, err, hotel.ErrInvalidInput)
	})
}

func TestDeleteRoom(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	f.addRoom(t, "Double", "150.00")
	ctx := context.Background()

	require.NoError(t, f.eng.DeleteRoom(ctx, "R1"))

	rooms, err := f.eng.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "R2", rooms[0].ID)

	assert.ErrorIs(t, f.eng.DeleteRoom(ctx, "R1"), hotel.ErrRoomNotFound)
}

func TestFindAvailable_FirstBookableInTableOrder(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	f.addRoom(t, "Single", "110.00")
	ctx := context.Background()

	_, err := f.eng.UpdateRoom(ctx, "R1", engine.RoomPatch{Cleaning: "Dirty"})
	require.NoError(t, err)

	got, err := f.eng.FindAvailable(ctx, "Single")

	require.NoError(t, err)
	assert.Equal(t, "R2", got.ID)
}

func TestListForType_IncludesUnavailableRooms(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	f.addRoom(t, "Double", "150.00")
	ctx := context.Background()
	_, err := f.eng.UpdateRoom(ctx, "R1", engine.RoomPatch{Status: "Maintenance"})
	require.NoError(t, err)

	got, err := f.eng.ListForType(ctx, "Single")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "R1", got[0].ID)
}
