/*
guests.go - Guest registry (reception path)

The engine owns guest identity rows because reservations stamp guest_id
and full_name onto bookings. Credential verification and login sit with
the auth collaborator and are out of scope here; the registry only applies
the same shape checks the reception desk always has (email looks like an
email, password long enough, no duplicate username or IC/passport).
*/
package engine

import (
	"context"
	"strings"

	"github.com/stayhub/hotel-engine/hotel"
)

// RegisterGuestParams carries the reception registration form.
type RegisterGuestParams struct {
	FullName   string
	ICPassport string
	Phone      string
	Email      string
	Username   string
	Password   string
}

// RegisterGuest creates a guest row after validating the form and checking
// username and IC/passport uniqueness.
func (e *Engine) RegisterGuest(ctx context.Context, p RegisterGuestParams) (hotel.Guest, error) {
	if err := validateRegistration(p); err != nil {
		return hotel.Guest{}, err
	}

	guests, err := hotel.LoadGuests(ctx, e.store)
	if err != nil {
		return hotel.Guest{}, err
	}
	for _, g := range guests {
		if g.ICPassport == p.ICPassport {
			return hotel.Guest{}, hotel.ErrDuplicateGuest
		}
		if g.Username == p.Username {
			return hotel.Guest{}, hotel.ErrDuplicateGuest
		}
	}

	seqs, err := hotel.LoadSequences(ctx, e.store)
	if err != nil {
		return hotel.Guest{}, err
	}

	id, seqs := nextID(seqs, "G", len(guests))
	guest := hotel.Guest{
		ID:         id,
		Username:   p.Username,
		Password:   p.Password,
		FullName:   p.FullName,
		Phone:      p.Phone,
		ICPassport: p.ICPassport,
		Email:      p.Email,
	}
	guests = append(guests, guest)

	if err := e.commit(ctx, commit{Sequences: seqs, Guests: guests}); err != nil {
		return hotel.Guest{}, err
	}
	e.log.Info().Str("guest_id", id).Msg("guest registered")
	return guest, nil
}

func validateRegistration(p RegisterGuestParams) error {
	switch {
	case strings.TrimSpace(p.FullName) == "":
		return &hotel.FieldError{Field: "full_name", Value: "", Reason: "required"}
	case strings.TrimSpace(p.ICPassport) == "":
		return &hotel.FieldError{Field: "ic_passport", Value: "", Reason: "required"}
	case strings.TrimSpace(p.Username) == "":
		return &hotel.FieldError{Field: "username", Value: "", Reason: "required"}
	}
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	return validatePassword(p.Password)
}

// validateEmail is a shape check, not RFC validation; the desk just needs
// to catch obvious typos.
func validateEmail(email string) error {
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return &hotel.FieldError{Field: "email", Value: email, Reason: "not an email address"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return &hotel.FieldError{Field: "password", Value: "", Reason: "must be at least 6 characters"}
	}
	return nil
}

// GuestPatch holds optional updates for UpdateGuest. Empty strings keep
// the current value. guest_id and username are immutable: bookings and
// login both key on them.
type GuestPatch struct {
	FullName string
	Phone    string
	Email    string
	Password string
}

// UpdateGuest applies a partial update to a guest row.
func (e *Engine) UpdateGuest(ctx context.Context, guestID string, patch GuestPatch) (hotel.Guest, error) {
	guests, err := hotel.LoadGuests(ctx, e.store)
	if err != nil {
		return hotel.Guest{}, err
	}
	i := guestIndex(guests, guestID)
	if i < 0 {
		return hotel.Guest{}, hotel.ErrGuestNotFound
	}

	if patch.Email != "" {
		if err := validateEmail(patch.Email); err != nil {
			return hotel.Guest{}, err
		}
		guests[i].Email = patch.Email
	}
	if patch.Password != "" {
		if err := validatePassword(patch.Password); err != nil {
			return hotel.Guest{}, err
		}
		guests[i].Password = patch.Password
	}
	if patch.FullName != "" {
		guests[i].FullName = patch.FullName
	}
	if patch.Phone != "" {
		guests[i].Phone = patch.Phone
	}

	if err := e.commit(ctx, commit{Guests: guests}); err != nil {
		return hotel.Guest{}, err
	}
	e.log.Info().Str("guest_id", guestID).Msg("guest updated")
	return guests[i], nil
}

// GetGuest resolves a guest by id.
func (e *Engine) GetGuest(ctx context.Context, guestID string) (hotel.Guest, error) {
	guests, err := hotel.LoadGuests(ctx, e.store)
	if err != nil {
		return hotel.Guest{}, err
	}
	if i := guestIndex(guests, guestID); i >= 0 {
		return guests[i], nil
	}
	return hotel.Guest{}, hotel.ErrGuestNotFound
}

// RoomTypeOffer is one line of the guest-facing availability display:
// a room type with a nightly price that currently has a bookable room.
type RoomTypeOffer struct {
	Type  hotel.RoomType
	Price string
}

// AvailableRoomTypes returns the distinct type+price combinations with at
// least one bookable room, so the display doesn't list fifty identical
// singles.
func (e *Engine) AvailableRoomTypes(ctx context.Context) ([]RoomTypeOffer, error) {
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return nil, err
	}
	seen := make(map[RoomTypeOffer]bool)
	var out []RoomTypeOffer
	for _, r := range rooms {
		if !r.Bookable() {
			continue
		}
		offer := RoomTypeOffer{Type: r.Type, Price: hotel.FormatAmount(r.Price)}
		if !seen[offer] {
			seen[offer] = true
			out = append(out, offer)
		}
	}
	return out, nil
}
