package storage

import "errors"

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking is not found")
	ErrTimeBooked      = errors.New("time is already booked")
	ErrSlotBusy        = errors.New("booking slot is locked by another request")
)
