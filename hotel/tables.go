package hotel

import "context"

// =============================================================================
// TYPED TABLE ACCESS
// =============================================================================
// Thin wrappers pairing a Schema with its codec. The engine goes through
// these so every load is validated and every save renders canonical values.

func decodeAll[T any](schema Schema, recs []Record, from func(Record) (T, error)) ([]T, error) {
	out := make([]T, 0, len(recs))
	for i, rec := range recs {
		row, err := from(rec)
		if err != nil {
			return nil, &DecodeError{Table: schema.Name, Row: i, Err: err}
		}
		out = append(out, row)
	}
	return out, nil
}

func encodeAll[T any](rows []T, record func(T) Record) []Record {
	recs := make([]Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, record(row))
	}
	return recs
}

func LoadRooms(ctx context.Context, s Store) ([]Room, error) {
	recs, err := s.Load(ctx, TableRooms)
	if err != nil {
		return nil, err
	}
	return decodeAll(TableRooms, recs, RoomFromRecord)
}

func SaveRooms(ctx context.Context, s Store, rooms []Room) error {
	return s.Save(ctx, TableRooms, encodeAll(rooms, Room.Record))
}

func LoadBookings(ctx context.Context, s Store) ([]Booking, error) {
	recs, err := s.Load(ctx, TableBookings)
	if err != nil {
		return nil, err
	}
	return decodeAll(TableBookings, recs, BookingFromRecord)
}

func SaveBookings(ctx context.Context, s Store, bookings []Booking) error {
	return s.Save(ctx, TableBookings, encodeAll(bookings, Booking.Record))
}

func LoadPayments(ctx context.Context, s Store) ([]Payment, error) {
	recs, err := s.Load(ctx, TablePayments)
	if err != nil {
		return nil, err
	}
	return decodeAll(TablePayments, recs, PaymentFromRecord)
}

func SavePayments(ctx context.Context, s Store, payments []Payment) error {
	return s.Save(ctx, TablePayments, encodeAll(payments, Payment.Record))
}

func LoadGuests(ctx context.Context, s Store) ([]Guest, error) {
	recs, err := s.Load(ctx, TableGuests)
	if err != nil {
		return nil, err
	}
	return decodeAll(TableGuests, recs, GuestFromRecord)
}

func SaveGuests(ctx context.Context, s Store, guests []Guest) error {
	return s.Save(ctx, TableGuests, encodeAll(guests, Guest.Record))
}

func LoadSequences(ctx context.Context, s Store) ([]Sequence, error) {
	recs, err := s.Load(ctx, TableSequences)
	if err != nil {
		return nil, err
	}
	return decodeAll(TableSequences, recs, SequenceFromRecord)
}

func SaveSequences(ctx context.Context, s Store, seqs []Sequence) error {
	return s.Save(ctx, TableSequences, encodeAll(seqs, Sequence.Record))
}
