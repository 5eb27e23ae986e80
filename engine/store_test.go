package engine

import (
	"slices"
	"testing"

	"github.com/lixenwraith/topple/core"
)

func TestStoreAscendingIteration(t *testing.T) {
	s := NewStore[int]()
	for _, e := range []core.Entity{7, 3, 9, 1, 5} {
		s.SetComponent(e, int(e)*10)
	}
	s.SetComponent(3, 33) // Replace keeps a single entry

	want := []core.Entity{1, 3, 5, 7, 9}
	if got := s.GetAllEntities(); !slices.Equal(got, want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	if v, _ := s.GetComponent(3); v != 33 {
		t.Fatalf("Get(3) = %d, want 33", v)
	}

	s.RemoveEntity(5)
	s.RemoveEntity(42)
	want = []core.Entity{1, 3, 7, 9}
	if got := s.GetAllEntities(); !slices.Equal(got, want) {
		t.Fatalf("after Remove All() = %v, want %v", got, want)
	}
	if first, ok := s.First(); !ok || first != 1 {
		t.Fatalf("First() = %d, %v", first, ok)
	}
}

func TestStoreSnapshotSurvivesMutation(t *testing.T) {
	s := NewStore[struct{}]()
	s.SetComponent(1, struct{}{})
	s.SetComponent(2, struct{}{})

	snapshot := s.GetAllEntities()
	for _, e := range snapshot {
		s.RemoveEntity(e)
	}
	if s.CountEntities() != 0 || len(snapshot) != 2 {
		t.Fatalf("count=%d snapshot=%v", s.CountEntities(), snapshot)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore[string]()
	s.SetComponent(4, "a")
	s.ClearAllComponents()
	if s.HasEntity(4) || s.CountEntities() != 0 {
		t.Fatal("store not empty after Clear")
	}
	if _, ok := s.First(); ok {
		t.Fatal("First on empty store")
	}
}
