package models

import "encoding/json"

type ContextKey string

// CallerKey holds the resolved Caller in a request context.
const CallerKey ContextKey = "caller"

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PassHash []byte `json:"-"`
}

type Room struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MarshalJSON adds the _id alias the calendar client keys rooms by.
func (r Room) MarshalJSON() ([]byte, error) {
	type plain Room

	return json.Marshal(struct {
		plain
		LegacyID int64 `json:"_id"`
	}{plain(r), r.ID})
}

// Booking dates are YYYY-MM-DD and times are zero-padded HH:mm wall-clock strings.
type Booking struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId,string"`
	RoomID    int64  `json:"roomId"`
	Date      string `json:"date"`
	TimeStart string `json:"timeStart"`
	TimeEnd   string `json:"timeEnd"`
	Reason    string `json:"reason"`
}

// MarshalJSON adds the _id alias the calendar client keys events by.
// userId is a string so it matches the id the client keeps in localStorage.
func (b Booking) MarshalJSON() ([]byte, error) {
	type plain Booking

	return json.Marshal(struct {
		plain
		LegacyID int64 `json:"_id"`
	}{plain(b), b.ID})
}

// Caller is the identity resolved from a session token for a single request.
type Caller struct {
	UserID  int64
	Email   string
	IsAdmin bool
}
