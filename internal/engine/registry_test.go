package engine

import "testing"

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("missing"); ok {
		t.Fatal("Get on empty registry returned ok")
	}

	s := NewSession(MinimalEncoder{}, GreedyPolicy{}, DefaultLearningRate)
	r.Put("a", s)
	if got, ok := r.Get("a"); !ok || got != s {
		t.Fatal("Get did not return the stored session")
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	r.Remove("a")
	if _, ok := r.Get("a"); ok {
		t.Fatal("session still present after Remove")
	}
}
