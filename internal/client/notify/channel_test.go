package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChannel(t *testing.T, opts ...ChannelOption) *Channel {
	t.Helper()
	c := NewChannel(opts...)
	t.Cleanup(c.Close)
	return c
}

// TestChannel_ShowDefaults проверяет значения по умолчанию
func TestChannel_ShowDefaults(t *testing.T) {
	c := newTestChannel(t, WithDefaultDuration(time.Hour))

	toast := c.Success("Saved", "All good")

	id, err := uuid.Parse(toast.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, SeveritySuccess, toast.Severity)
	assert.True(t, toast.AutoClose)
	assert.Equal(t, time.Hour, toast.Duration)
	assert.Equal(t, float64(100), toast.Progress)

	toasts := c.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, toast.ID, toasts[0].ID)
}

func TestChannel_ErrorIsSticky(t *testing.T) {
	c := newTestChannel(t, WithTick(time.Millisecond), WithDefaultDuration(5*time.Millisecond))

	toast := c.Error("Failed", "Something broke")
	assert.False(t, toast.AutoClose)

	// Ошибка без автозакрытия остается в списке
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, c.Toasts(), 1)

	// Явное включение автозакрытия переопределяет значение по умолчанию
	sticky := c.Error("Failed", "Closes itself", WithAutoClose(true))
	assert.True(t, sticky.AutoClose)
}

func TestChannel_WithDuration(t *testing.T) {
	c := newTestChannel(t, WithDefaultDuration(time.Hour))

	assert.Equal(t, 6*time.Second, c.Info("a", "b", WithDuration(6*time.Second)).Duration)
	// Нулевая длительность заменяется значением по умолчанию
	assert.Equal(t, time.Hour, c.Info("a", "b", WithDuration(0)).Duration)
}

func TestChannel_AutoClose(t *testing.T) {
	c := newTestChannel(t, WithTick(time.Millisecond))

	var (
		mu        sync.Mutex
		progress  []float64
		removedAt int
		calls     int
	)
	c.Subscribe(func(toasts []Toast) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if len(toasts) == 0 {
			if removedAt == 0 {
				removedAt = calls
			}
			return
		}
		progress = append(progress, toasts[0].Progress)
	})

	c.Warning("Heads up", "Closing soon", WithDuration(10*time.Millisecond))

	require.Eventually(t, func() bool {
		return len(c.Toasts()) == 0
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	// Прогресс не возрастает
	for i := 1; i < len(progress); i++ {
		assert.LessOrEqual(t, progress[i], progress[i-1])
	}
	assert.NotZero(t, removedAt)
}

func TestChannel_DismissIdempotent(t *testing.T) {
	c := newTestChannel(t, WithDefaultDuration(time.Hour))

	var mu sync.Mutex
	emptySnapshots := 0
	c.Subscribe(func(toasts []Toast) {
		mu.Lock()
		defer mu.Unlock()
		if len(toasts) == 0 {
			emptySnapshots++
		}
	})

	toast := c.Info("Hello", "World")
	c.Dismiss(toast.ID)
	c.Dismiss(toast.ID)
	c.Dismiss("unknown")

	assert.Empty(t, c.Toasts())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, emptySnapshots)
}

func TestChannel_ManualDismissStopsCountdown(t *testing.T) {
	c := newTestChannel(t, WithTick(time.Millisecond))

	toast := c.Info("Hello", "World", WithDuration(50*time.Millisecond))
	c.Dismiss(toast.ID)

	// Отсчет остановлен: новые снимки не приходят
	var mu sync.Mutex
	calls := 0
	c.Subscribe(func([]Toast) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestChannel_DismissAll(t *testing.T) {
	c := newTestChannel(t, WithDefaultDuration(time.Hour))

	c.Info("one", "1")
	c.Error("two", "2")
	c.Success("three", "3")
	require.Len(t, c.Toasts(), 3)

	c.DismissAll()
	assert.Empty(t, c.Toasts())
}

func TestChannel_SubscribeCancel(t *testing.T) {
	c := newTestChannel(t, WithDefaultDuration(time.Hour))

	var mu sync.Mutex
	var got [][]Toast
	cancel := c.Subscribe(func(toasts []Toast) {
		mu.Lock()
		got = append(got, toasts)
		mu.Unlock()
	})

	c.Info("one", "1")
	cancel()
	cancel()
	c.Info("two", "2")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	require.Len(t, got[0], 1)
	assert.Equal(t, "one", got[0][0].Title)
}

func TestChannel_SnapshotIsCopy(t *testing.T) {
	c := newTestChannel(t, WithDefaultDuration(time.Hour))
	c.Info("one", "1")

	snapshot := c.Toasts()
	snapshot[0].Title = "changed"

	assert.Equal(t, "one", c.Toasts()[0].Title)
}

func TestChannel_ConcurrentShow(t *testing.T) {
	c := newTestChannel(t, WithDefaultDuration(time.Hour))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Info("title", "message")
		}()
	}
	wg.Wait()

	toasts := c.Toasts()
	require.Len(t, toasts, 50)

	ids := make(map[string]struct{}, len(toasts))
	for _, toast := range toasts {
		ids[toast.ID] = struct{}{}
	}
	assert.Len(t, ids, 50)
}
