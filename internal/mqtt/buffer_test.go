package mqtt

import (
	"testing"
)

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(4)
	if got := rb.drainAll(); got != nil {
		t.Errorf("expected nil from empty drain, got %d items", len(got))
	}
}

func TestRingBufferPushAndDrain(t *testing.T) {
	rb := newRingBuffer(8)
	for i := 0; i < 3; i++ {
		rb.push(bufferedMsg{topic: Topic, payload: []byte{byte(i)}, qos: 1})
	}
	if rb.len() != 3 {
		t.Fatalf("expected len 3, got %d", rb.len())
	}

	got := rb.drainAll()
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	for i, m := range got {
		if m.payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, m.payload[0])
		}
		if m.topic != Topic || m.qos != 1 {
			t.Errorf("item %d: metadata not preserved: %+v", i, m)
		}
	}
	if rb.len() != 0 {
		t.Errorf("expected empty buffer after drain, got %d", rb.len())
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	rb := newRingBuffer(3)

	// Push 0..4; the buffer keeps 2, 3, 4.
	for i := 0; i < 5; i++ {
		rb.push(bufferedMsg{topic: Topic, payload: []byte{byte(i)}})
	}
	if rb.dropped != 2 {
		t.Errorf("expected 2 dropped, got %d", rb.dropped)
	}

	got := rb.drainAll()
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	for i, m := range got {
		if want := byte(i + 2); m.payload[0] != want {
			t.Errorf("item %d: expected payload %d, got %d", i, want, m.payload[0])
		}
	}
	if rb.dropped != 0 {
		t.Errorf("drain should reset dropped, got %d", rb.dropped)
	}
}

func TestRingBufferReuseAfterDrain(t *testing.T) {
	rb := newRingBuffer(2)
	rb.push(bufferedMsg{payload: []byte{1}})
	rb.push(bufferedMsg{payload: []byte{2}})
	rb.drainAll()

	rb.push(bufferedMsg{payload: []byte{3}})
	got := rb.drainAll()
	if len(got) != 1 || got[0].payload[0] != 3 {
		t.Errorf("expected [3] after reuse, got %+v", got)
	}
}
