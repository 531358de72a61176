package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/takeashot/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inspectOffset struct {
	DX, DY float64
}

type inspectTarget struct {
	X      float32
	Count  uint
	Name   string
	Offset inspectOffset
	Ref    *inspectOffset
	hidden int
}

type inspectTag struct {
	Kind string
}

func newInspectStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[inspectTarget](registry)
	ecs.RegisterComponent[inspectTag](registry)
	return ecs.NewStorage(registry)
}

func findEntity(t *testing.T, entities []EntityInfo, id ecs.EntityId) EntityInfo {
	t.Helper()
	for _, e := range entities {
		if e.ID == id {
			return e
		}
	}
	require.Failf(t, "entity missing", "%d not collected", id)
	return EntityInfo{}
}

func TestGetFields(t *testing.T) {
	cache := NewReflectionCache()
	fields := cache.GetFields(reflect.TypeOf(inspectTarget{}))

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"X", "Count", "Name", "Offset", "Ref"}, names)

	assert.True(t, fields[3].IsStruct)
	assert.False(t, fields[3].IsPointer)
	assert.True(t, fields[4].IsPointer)
	assert.Equal(t, reflect.TypeOf(inspectOffset{}), fields[4].Type)

	again := cache.GetFields(reflect.TypeOf(inspectTarget{}))
	assert.Equal(t, fields, again)

	assert.Empty(t, cache.GetFields(reflect.TypeOf(0)))
}

func TestCollectEntities(t *testing.T) {
	storage := newInspectStorage()
	a := storage.Spawn(inspectTarget{Name: "a"})
	b := storage.Spawn(inspectTarget{Name: "b"}, inspectTag{})
	child := storage.SpawnChild(a, inspectTag{Kind: "child"})

	entities := collectEntities(storage)
	require.Len(t, entities, 3)

	childInfo := findEntity(t, entities, child)
	assert.True(t, childInfo.HasParent)
	assert.Equal(t, a, childInfo.Parent)
	assert.Equal(t, child.ArchetypeId(), childInfo.ArchetypeID)

	assert.Equal(t, 1, findEntity(t, entities, a).Children)
	assert.Len(t, findEntity(t, entities, b).ComponentTypes, 2)
}

func TestFilterEntities(t *testing.T) {
	storage := newInspectStorage()
	a := storage.Spawn(inspectTarget{})
	storage.Spawn(inspectTarget{}, inspectTag{})
	storage.SpawnChild(a, inspectTag{})
	entities := collectEntities(storage)

	assert.Len(t, filterEntities(entities, "", nil), 3)
	assert.Len(t, filterEntities(entities, "InspectTag", nil), 2)
	assert.Empty(t, filterEntities(entities, "nothing", nil))

	archetypeId := a.ArchetypeId()
	only := filterEntities(entities, "", &archetypeId)
	require.Len(t, only, 1)
	assert.Equal(t, a, only[0].ID)
}

func TestSortEntities(t *testing.T) {
	storage := newInspectStorage()
	a := storage.Spawn(inspectTarget{})
	storage.Spawn(inspectTarget{})
	child := storage.SpawnChild(a, inspectTag{})
	entities := collectEntities(storage)

	sortEntities(entities, 0, true)
	for i := 1; i < len(entities); i++ {
		assert.Less(t, entities[i-1].ID, entities[i].ID)
	}

	sortEntities(entities, 3, false)
	assert.Equal(t, child, entities[0].ID)
}

func TestBrowserSelectionClearsOnDespawn(t *testing.T) {
	storage := newInspectStorage()
	id := storage.Spawn(inspectTarget{})

	browser := NewEntityBrowser(storage, 0)
	assert.Zero(t, browser.Selected())

	browser.Select(id)
	assert.Equal(t, id, browser.Selected())

	storage.Delete(id)
	assert.Zero(t, browser.Selected())
}

func TestSetField(t *testing.T) {
	storage := newInspectStorage()
	id := storage.Spawn(inspectTarget{X: 1, Count: 2, Name: "before"})
	compType := reflect.TypeOf(inspectTarget{})
	target := func() *inspectTarget {
		return storage.GetComponent(id, compType).(*inspectTarget)
	}

	assert.True(t, setField(storage, id, compType, []int{0}, reflect.ValueOf(float32(4.5))))
	assert.InDelta(t, 4.5, target().X, 1e-6)

	// widgets edit ints; the field is unsigned
	assert.True(t, setField(storage, id, compType, []int{1}, reflect.ValueOf(int32(7))))
	assert.Equal(t, uint(7), target().Count)

	assert.True(t, setField(storage, id, compType, []int{2}, reflect.ValueOf("after")))
	assert.Equal(t, "after", target().Name)

	assert.True(t, setField(storage, id, compType, []int{3, 1}, reflect.ValueOf(float32(-2))))
	assert.InDelta(t, -2, target().Offset.DY, 1e-6)

	assert.False(t, setField(storage, id, compType, []int{2}, reflect.ValueOf(3)))
	assert.False(t, setField(storage, id, compType, []int{0}, reflect.ValueOf(true)))
	assert.False(t, setField(storage, id, compType, []int{0, 0}, reflect.ValueOf(float32(1))))
	assert.False(t, setField(storage, id, compType, []int{5}, reflect.ValueOf(1)))
	assert.False(t, setField(storage, id, reflect.TypeOf(inspectTag{}), []int{0}, reflect.ValueOf("x")))
	assert.Equal(t, "after", target().Name)

	storage.Delete(id)
	assert.False(t, setField(storage, id, compType, []int{2}, reflect.ValueOf("gone")))
}

func TestCollectArchetypes(t *testing.T) {
	storage := newInspectStorage()
	single := storage.Spawn(inspectTarget{})
	storage.Spawn(inspectTarget{})
	storage.Spawn(inspectTarget{})
	pair := storage.Spawn(inspectTarget{}, inspectTag{})

	archetypes := collectArchetypes(storage)
	require.Len(t, archetypes, 2)

	sortArchetypes(archetypes, 3, false)
	assert.Equal(t, single.ArchetypeId(), archetypes[0].ID)
	assert.Equal(t, 3, archetypes[0].EntityCount)
	assert.Equal(t, pair.ArchetypeId(), archetypes[1].ID)
	assert.Len(t, archetypes[1].ComponentTypes, 2)

	sortArchetypes(archetypes, 2, true)
	assert.Equal(t, single.ArchetypeId(), archetypes[0].ID)
}

func TestMatchingArchetypes(t *testing.T) {
	storage := newInspectStorage()
	storage.Spawn(inspectTarget{})
	pair := storage.Spawn(inspectTarget{}, inspectTag{})
	storage.Spawn(inspectTag{})

	names := componentTypeNames(storage)
	assert.Equal(t, []string{"debugui.inspectTag", "debugui.inspectTarget"}, names)

	both := matchingArchetypes(storage, map[string]bool{
		"debugui.inspectTag":    true,
		"debugui.inspectTarget": true,
	})
	require.Len(t, both, 1)
	assert.Equal(t, pair.ArchetypeId(), both[0].ID)

	assert.Len(t, matchingArchetypes(storage, map[string]bool{"debugui.inspectTag": true}), 2)
}

func TestSpawnInspectors(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	watched := newInspectStorage()
	id := watched.Spawn(inspectTarget{})

	browser := SpawnInspectors(storage, watched)
	require.NotNil(t, browser)
	browser.Select(id)
	assert.Equal(t, id, browser.Selected())

	items := ecs.NewView[struct{ *ImguiItem }](storage)
	count := 0
	for item := range items.Iter() {
		require.NotNil(t, item.Render)
		count++
	}
	assert.Equal(t, 4, count)
}
