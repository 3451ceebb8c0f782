package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPolicy() BookingPolicy {
	return BookingPolicy{
		BufferMinutes:          DefaultBufferMinutes,
		MinAdvanceHours:        DefaultMinAdvanceHours,
		MaxAdvanceDays:         DefaultMaxAdvanceDays,
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
	}
}

func TestBookingPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookingPolicy)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(p *BookingPolicy) {},
		},
		{
			name:   "zero buffer allowed",
			mutate: func(p *BookingPolicy) { p.BufferMinutes = 0 },
		},
		{
			name:    "negative buffer",
			mutate:  func(p *BookingPolicy) { p.BufferMinutes = -1 },
			wantErr: true,
		},
		{
			name:    "negative min advance",
			mutate:  func(p *BookingPolicy) { p.MinAdvanceHours = -1 },
			wantErr: true,
		},
		{
			name:    "negative max advance",
			mutate:  func(p *BookingPolicy) { p.MaxAdvanceDays = -1 },
			wantErr: true,
		},
		{
			name:    "zero granularity",
			mutate:  func(p *BookingPolicy) { p.SlotGranularityMinutes = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPolicy()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPolicy)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingPolicy_MinBookingTime(t *testing.T) {
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	p := validPolicy()
	p.MinAdvanceHours = 2
	assert.Equal(t, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC), p.MinBookingTime(now))

	p.MinAdvanceHours = 0
	assert.Equal(t, now, p.MinBookingTime(now))
}

func TestBookingPolicy_MaxBookingDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 14:30 UTC = 10:30 по Нью-Йорку
	now := time.Date(2026, 9, 14, 14, 30, 0, 0, time.UTC)

	p := validPolicy()
	p.MaxAdvanceDays = 60

	got := p.MaxBookingDate(now, loc)
	assert.Equal(t, time.Date(2026, 11, 13, 0, 0, 0, 0, loc), got)

	p.MaxAdvanceDays = 0
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, loc), p.MaxBookingDate(now, loc))
}
