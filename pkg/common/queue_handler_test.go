package common

import (
	"sync"
	"testing"
	"time"
)

func TestQueueHandlerFlushesOnClose(t *testing.T) {
	var mu sync.Mutex
	var batches [][]int
	q := NewQueueHandler(func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, items)
	}, 2, time.Hour)

	q.Add(1, 2, 3, 4, 5)
	q.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	total := 0
	for _, b := range batches {
		if len(b) > 2 {
			t.Errorf("batch larger than chunk size: %v", b)
		}
		total += len(b)
	}
	if total != 5 {
		t.Errorf("expected 5 items processed, got %d", total)
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue after close")
	}
}

func TestQueueHandlerProcessesOnTick(t *testing.T) {
	got := make(chan []string, 1)
	q := NewQueueHandler(func(items []string) {
		got <- items
	}, 10, 10*time.Millisecond)
	defer q.Close()

	q.Add("a")
	select {
	case items := <-got:
		if len(items) != 1 || items[0] != "a" {
			t.Errorf("unexpected batch %v", items)
		}
	case <-time.After(time.Second):
		t.Fatal("queue was not processed")
	}
}
