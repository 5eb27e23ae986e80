package event

import "testing"

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	q.Push(GameEvent{Type: EventStart})
	q.Push(GameEvent{Type: EventLevelLoaded})

	if q.Len() != 2 {
		t.Fatalf("Len = %d, want 2", q.Len())
	}

	batch := q.Consume()
	if len(batch) != 2 || batch[0].Type != EventStart || batch[1].Type != EventLevelLoaded {
		t.Fatalf("unexpected batch %+v", batch)
	}
	if q.Len() != 0 {
		t.Errorf("queue not drained, Len = %d", q.Len())
	}
	if q.Consume() != nil {
		t.Error("expected nil from empty queue")
	}
}

func TestQueuePushDuringDispatchGoesToNextBatch(t *testing.T) {
	q := NewEventQueue()
	q.Push(GameEvent{Type: EventPickPlace})

	batch := q.Consume()
	for range batch {
		q.Push(GameEvent{Type: EventHoldReleased})
	}
	if batch[0].Type != EventPickPlace {
		t.Fatalf("batch was overwritten by push during dispatch: %v", batch[0].Type)
	}

	next := q.Consume()
	if len(next) != 1 || next[0].Type != EventHoldReleased {
		t.Fatalf("unexpected next batch %+v", next)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventGameOverRequest.String() != "GameOverRequest" {
		t.Errorf("got %q", EventGameOverRequest.String())
	}
	if EventType(999).String() != "Unknown" {
		t.Errorf("got %q", EventType(999).String())
	}
}
