package bookingcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkachan/shiftscout/pkg/core/model"
)

func newTestCache(ttl time.Duration, start time.Time) (*Cache, *time.Time) {
	clock := start
	c := New(ttl)
	c.now = func() time.Time { return clock }
	return c, &clock
}

func TestStoreAndGet(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC))
	slots := []model.SlotCandidate{{ID: 7, PlaceName: "Пошта"}}

	token := c.Store(100, 200, "Дима Маслов", slots)
	require.NotEmpty(t, token)

	state, ok := c.Get(token)
	require.True(t, ok)
	assert.Equal(t, int64(100), state.ChatID)
	assert.Equal(t, int64(200), state.UserID)
	assert.Equal(t, "Дима Маслов", state.UserFullName)
	assert.Equal(t, slots, state.Slots)
	assert.Equal(t, 0, state.CurrentIndex)
}

func TestGet_UnknownToken(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, time.Now())

	_, ok := c.Get("no-such-token")
	assert.False(t, ok)
}

func TestGet_ExpiredEntryDropped(t *testing.T) {
	c, clock := newTestCache(time.Minute, time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC))
	token := c.Store(1, 2, "Дима Маслов", nil)

	*clock = clock.Add(2 * time.Minute)

	_, ok := c.Get(token)
	assert.False(t, ok)
}

func TestStore_CopiesSlots(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, time.Now())
	slots := []model.SlotCandidate{{ID: 1, PlaceName: "Пошта"}}

	token := c.Store(1, 2, "Дима Маслов", slots)
	slots[0].PlaceName = "changed"

	state, ok := c.Get(token)
	require.True(t, ok)
	assert.Equal(t, "Пошта", state.Slots[0].PlaceName)
}

func TestUpdate_AdvancesPaging(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, time.Now())
	token := c.Store(1, 2, "Дима Маслов", []model.SlotCandidate{{ID: 1}, {ID: 2}})

	state, ok := c.Get(token)
	require.True(t, ok)
	state.CurrentIndex = 1
	c.Update(state)

	updated, ok := c.Get(token)
	require.True(t, ok)
	assert.Equal(t, 1, updated.CurrentIndex)
}

func TestRemove(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, time.Now())
	token := c.Store(1, 2, "Дима Маслов", nil)

	c.Remove(token)

	_, ok := c.Get(token)
	assert.False(t, ok)
}

func TestPurge_DropsOnlyExpired(t *testing.T) {
	c, clock := newTestCache(time.Minute, time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC))
	expired := c.Store(1, 2, "Дима Маслов", nil)

	*clock = clock.Add(30 * time.Second)
	fresh := c.Store(3, 4, "Юрій Зваричевський", nil)

	*clock = clock.Add(45 * time.Second)

	assert.Equal(t, 1, c.Purge())

	_, ok := c.Get(expired)
	assert.False(t, ok)
	_, ok = c.Get(fresh)
	assert.True(t, ok)
}
