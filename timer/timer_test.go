package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManager_FiresScheduledTask(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired int32
	m.Schedule(50*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(300 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 1 {
		t.Errorf("Expected the task to fire once, got %d", atomic.LoadInt32(&fired))
	}
}

func TestManager_CancelPreventsFiring(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired int32
	id := m.Schedule(200*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})
	m.Cancel(id)

	time.Sleep(400 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("Cancelled task should not fire")
	}
}

func TestManager_RepeatingTask(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired int32
	id := m.Schedule(50*time.Millisecond, 150*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(600 * time.Millisecond)
	m.Cancel(id)
	if got := atomic.LoadInt32(&fired); got < 2 {
		t.Errorf("Expected the task to repeat, fired %d times", got)
	}
}
