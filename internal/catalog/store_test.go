package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshsim/meshsim/internal/testutil"
)

func newTestStore() *Store {
	return NewStore(WithClock(testutil.NewClock(time.Time{}, time.Second).Now))
}

func TestStore_Put_GeneratesIDAndTimestamps(t *testing.T) {
	s := newTestStore()

	e := s.Put(Entity{Type: TypeService, Name: "orders"})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, testutil.FixedStart, e.CreatedAt)
	assert.Equal(t, testutil.FixedStart, e.UpdatedAt)

	stored, ok := s.Get(TypeService, e.ID)
	require.True(t, ok)
	assert.Equal(t, "orders", stored.Name)
}

func TestStore_Put_ReplacePreservesCreatedAt(t *testing.T) {
	s := newTestStore()

	e := s.Put(Entity{ID: "svc-1", Type: TypeService, Name: "orders"})
	updated := s.Put(Entity{ID: "svc-1", Type: TypeService, Name: "orders-v2"})

	assert.Equal(t, e.CreatedAt, updated.CreatedAt)
	assert.Equal(t, testutil.FixedStart.Add(time.Second), updated.UpdatedAt)
	assert.Equal(t, 1, s.Count(TypeService))

	stored, _ := s.Get(TypeService, "svc-1")
	assert.Equal(t, "orders-v2", stored.Name)
}

func TestStore_Get_UnknownReturnsFalse(t *testing.T) {
	s := newTestStore()

	_, ok := s.Get(TypeService, "nope")

	assert.False(t, ok)
}

func TestStore_Get_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	s.Put(Entity{ID: "svc-1", Type: TypeService, Name: "orders",
		Attrs: map[string]any{"service_type": "rest"}})

	got, _ := s.Get(TypeService, "svc-1")
	got.Attrs["service_type"] = "grpc"

	again, _ := s.Get(TypeService, "svc-1")
	assert.Equal(t, "rest", again.StringAttr("service_type"))
}

func TestStore_All_InsertionOrder(t *testing.T) {
	s := newTestStore()
	s.Put(Entity{ID: "svc-b", Type: TypeService, Name: "b"})
	s.Put(Entity{ID: "svc-a", Type: TypeService, Name: "a"})
	s.Put(Entity{ID: "svc-c", Type: TypeService, Name: "c"})

	all := s.All(TypeService)

	require.Len(t, all, 3)
	assert.Equal(t, []string{"svc-b", "svc-a", "svc-c"},
		[]string{all[0].ID, all[1].ID, all[2].ID})
}

func TestStore_Delete_RemovesFromOrder(t *testing.T) {
	s := newTestStore()
	s.Put(Entity{ID: "svc-a", Type: TypeService})
	s.Put(Entity{ID: "svc-b", Type: TypeService})

	require.True(t, s.Delete(TypeService, "svc-a"))
	assert.False(t, s.Delete(TypeService, "svc-a"))

	all := s.All(TypeService)
	require.Len(t, all, 1)
	assert.Equal(t, "svc-b", all[0].ID)
}

func TestStore_Overview_CountsPerType(t *testing.T) {
	s := newTestStore()
	s.Put(Entity{ID: "svc-a", Type: TypeService})
	s.Put(Entity{ID: "svc-b", Type: TypeService})
	s.Put(Entity{ID: "plat-1", Type: TypePlatform})

	o := s.Overview()

	assert.Equal(t, 2, o[TypeService])
	assert.Equal(t, 1, o[TypePlatform])
	assert.Equal(t, 0, o["trace"])
}

func TestStore_NameOf(t *testing.T) {
	s := newTestStore()
	s.Put(Entity{ID: "svc-1", Type: TypeService, Name: "orders"})
	s.Put(Entity{ID: "svc-2", Type: TypeService})

	name, ok := s.NameOf(TypeService, "svc-1")
	require.True(t, ok)
	assert.Equal(t, "orders", name)

	_, ok = s.NameOf(TypeService, "svc-2")
	assert.False(t, ok, "blank names do not resolve")

	_, ok = s.NameOf(TypeService, "nope")
	assert.False(t, ok)
}

func TestEntity_IntAttr_AcceptsDecodedWidths(t *testing.T) {
	e := Entity{Attrs: map[string]any{
		"a": 3,
		"b": int64(4),
		"c": float64(5),
		"d": "not a number",
	}}

	assert.Equal(t, 3, e.IntAttr("a"))
	assert.Equal(t, 4, e.IntAttr("b"))
	assert.Equal(t, 5, e.IntAttr("c"))
	assert.Equal(t, 0, e.IntAttr("d"))
	assert.Equal(t, 0, e.IntAttr("missing"))
}

func TestEntity_StringMapAttr_ConvertsDecodedMaps(t *testing.T) {
	e := Entity{Attrs: map[string]any{
		"metadata": map[string]any{"language": "go", "replicas": 3},
	}}

	m := e.StringMapAttr("metadata")

	assert.Equal(t, "go", m["language"])
	_, present := m["replicas"]
	assert.False(t, present, "non-string values are dropped")
	assert.Empty(t, e.StringMapAttr("missing"))
}
