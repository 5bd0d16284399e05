package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-gateway/internal/events"
)

func TestStorePutGetDelete(t *testing.T) {
	s := NewStore(30 * time.Minute)
	f := NewForm(0, new(MockLoanAPI), newRefs(), events.NewBus())

	s.Put(f)
	assert.Equal(t, 1, s.Len())

	got, ok := s.Get(f.ID)
	require.True(t, ok)
	assert.Same(t, f, got)

	_, ok = s.Get("no-such-form")
	assert.False(t, ok)

	s.Delete(f.ID)
	assert.Equal(t, 0, s.Len())
}

func TestStoreExpireStale(t *testing.T) {
	s := NewStore(30 * time.Minute)
	s.Put(NewForm(0, new(MockLoanAPI), newRefs(), events.NewBus()))
	s.Put(NewForm(0, new(MockLoanAPI), newRefs(), events.NewBus()))

	assert.Equal(t, 0, s.ExpireStale(time.Now()))
	assert.Equal(t, 2, s.Len())

	expired := s.ExpireStale(time.Now().Add(31 * time.Minute))
	assert.Equal(t, 2, expired)
	assert.Equal(t, 0, s.Len())
}
