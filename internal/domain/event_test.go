package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventIsPast(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	// Yesterday is past
	assert.True(t, Event{Date: "2026-03-09"}.IsPast(now))

	// Today counts until midnight
	assert.False(t, Event{Date: "2026-03-10"}.IsPast(now))

	// Multi-day event ending today is still running
	assert.False(t, Event{Date: "2026-03-07", EndDate: "2026-03-10"}.IsPast(now))
	assert.True(t, Event{Date: "2026-03-07", EndDate: "2026-03-09"}.IsPast(now))

	// Unparsable dates never count as past
	assert.False(t, Event{Date: "irgendwann"}.IsPast(now))
}

func TestDefaultEventStatus(t *testing.T) {
	status, ok := MemberTypeBursche.DefaultEventStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusYes, status)

	status, ok = MemberTypeFux.DefaultEventStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusYes, status)

	status, ok = MemberTypeInaktiv.DefaultEventStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusNo, status)

	_, ok = MemberTypeEmployee.DefaultEventStatus()
	assert.False(t, ok)
	assert.False(t, MemberTypeEmployee.MustConfirm())
}
