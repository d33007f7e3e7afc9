package assemblybook

import "testing"

func TestKeyIsOrderSensitive(t *testing.T) {
	k1 := Key([]string{"a", "b"})
	k2 := Key([]string{"b", "a"})
	if k1 == k2 {
		t.Fatal("Key should depend on catalog order, got the same hash for reordered texts")
	}
}

func TestProbeReturnsHighestWeight(t *testing.T) {
	b := New()
	key := Key([]string{"shapeA", "shapeB"})

	b.Record(key, 0, 1, 1)
	b.Record(key, 2, 3, 5)
	b.Record(key, 1, 0, 3)

	entry, ok := b.Probe(key)
	if !ok {
		t.Fatal("expected a hit after Record")
	}
	if entry.ShapeID != 2 || entry.Orientation != 3 {
		t.Fatalf("Probe = %+v, want shape 2 orientation 3 (highest weight)", entry)
	}
}

func TestProbeTiesBreakOnLowestShapeID(t *testing.T) {
	b := New()
	key := Key([]string{"x"})

	b.Record(key, 5, 0, 2)
	b.Record(key, 1, 0, 2)

	entry, ok := b.Probe(key)
	if !ok {
		t.Fatal("expected a hit")
	}
	if entry.ShapeID != 1 {
		t.Fatalf("Probe = %+v, want shape 1 (lowest ID on a weight tie)", entry)
	}
}

func TestRecordAccumulatesWeight(t *testing.T) {
	b := New()
	key := Key([]string{"x"})
	b.Record(key, 0, 0, 1)
	b.Record(key, 0, 0, 1)

	entries := b.All(key)
	if len(entries) != 1 {
		t.Fatalf("expected one distinct entry, got %d", len(entries))
	}
	if entries[0].Weight != 2 {
		t.Fatalf("expected accumulated weight 2, got %d", entries[0].Weight)
	}
}

func TestProbeMissOnUnknownKey(t *testing.T) {
	b := New()
	if _, ok := b.Probe(Key([]string{"unseen"})); ok {
		t.Fatal("expected a miss for a key never recorded")
	}
}

func TestNilBookIsSafe(t *testing.T) {
	var b *Book
	if _, ok := b.Probe(1); ok {
		t.Fatal("nil Book.Probe should always miss")
	}
	b.Record(1, 0, 0, 5) // must not panic
	if n := b.Size(); n != 0 {
		t.Fatalf("nil Book.Size = %d, want 0", n)
	}
	if entries := b.All(1); entries != nil {
		t.Fatalf("nil Book.All = %v, want nil", entries)
	}
}
