package image

import "testing"

func TestPoolGetAllocates(t *testing.T) {
	p := NewPool(4)
	buf := p.Get(64)
	if len(buf) != 64 {
		t.Fatalf("Get(64) returned %d bytes", len(buf))
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatal("fresh buffer not zeroed")
		}
	}
}

func TestPoolReuseAndZeroing(t *testing.T) {
	p := NewPool(4)

	buf := p.Get(32)
	for i := range buf {
		buf[i] = 0xFF
	}
	p.Put(buf)

	if p.Len(32) != 1 {
		t.Fatalf("Len(32) = %d, want 1", p.Len(32))
	}

	reused := p.Get(32)
	if &reused[0] != &buf[0] {
		t.Error("Get did not reuse the pooled buffer")
	}
	for i, b := range reused {
		if b != 0 {
			t.Fatalf("reused buffer not zeroed at %d: %#x", i, b)
		}
	}
	if p.Len(32) != 0 {
		t.Errorf("Len(32) = %d after Get, want 0", p.Len(32))
	}
}

func TestPoolBucketsBySize(t *testing.T) {
	p := NewPool(4)
	p.Put(make([]uint8, 16))
	p.Put(make([]uint8, 32))

	if got := p.Get(16); len(got) != 16 {
		t.Errorf("Get(16) returned %d bytes", len(got))
	}
	if p.Len(32) != 1 {
		t.Errorf("Len(32) = %d, want 1", p.Len(32))
	}
}

func TestPoolCapacityLimit(t *testing.T) {
	p := NewPool(2)
	for i := 0; i < 5; i++ {
		p.Put(make([]uint8, 8))
	}
	if p.Len(8) != 2 {
		t.Errorf("Len(8) = %d, want capacity limit 2", p.Len(8))
	}
}

func TestPoolPutNil(t *testing.T) {
	p := NewPool(2)
	p.Put(nil) // must not panic
	if p.Len(0) != 0 {
		t.Errorf("nil Put was retained")
	}
}
