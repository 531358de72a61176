package ecs_test

import (
	"testing"

	"github.com/plus3/takeashot/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movingView struct {
	*Position
	*Velocity
}

type labelledView struct {
	Entity ecs.EntityId
	*Position
	Label  *Label  `ecs:"optional"`
	Points *Points `ecs:"optional"`
}

func TestViewMatchesRequiredComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Label{Value: "b"})
	storage.Spawn(Position{X: 3})
	storage.Spawn(Velocity{DX: 4})

	view := ecs.NewView[movingView](storage)
	assert.Equal(t, 2, view.Count())

	for item := range view.Iter() {
		item.Position.X += item.Velocity.DX
	}

	var xs []float32
	for item := range view.Iter() {
		xs = append(xs, item.Position.X)
	}
	assert.ElementsMatch(t, []float32{2, 4}, xs)
}

func TestViewOptionalAndEntityIdFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	plain := storage.Spawn(Position{X: 1})
	named := storage.Spawn(Position{X: 2}, Label{Value: "duck"}, Points(10))

	view := ecs.NewView[labelledView](storage)
	require.Equal(t, 2, view.Count())

	for item := range view.Iter() {
		switch item.Entity {
		case plain:
			assert.Nil(t, item.Label)
			assert.Nil(t, item.Points)
		case named:
			require.NotNil(t, item.Label)
			assert.Equal(t, "duck", item.Label.Value)
			assert.Equal(t, Points(10), *item.Points)
		default:
			t.Fatalf("unexpected entity %d", item.Entity)
		}
	}
}

func TestViewGetAndFill(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 7}, Velocity{DX: 1})
	lonely := storage.Spawn(Position{X: 8})

	view := ecs.NewView[movingView](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(7), item.Position.X)
	assert.Nil(t, view.Get(lonely))

	var out movingView
	assert.True(t, view.Fill(id, &out))
	assert.False(t, view.Fill(lonely, &out))

	storage.Delete(id)
	assert.Nil(t, view.Get(id))
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 3}, Velocity{})
	ref := storage.CreateEntityRef(id)
	view := ecs.NewView[movingView](storage)

	require.NotNil(t, view.GetRef(ref))
	storage.Delete(id)
	assert.Nil(t, view.GetRef(ref))
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[labelledView](storage)

	id := view.Spawn(labelledView{Position: &Position{X: 4}})
	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(4), item.Position.X)
	assert.Nil(t, item.Label)

	assert.Panics(t, func() { view.Spawn(labelledView{Label: &Label{}}) })
}

func TestNewViewRejectsBadShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	type valueField struct {
		Position Position
	}
	type badTag struct {
		Label *Label `ecs:"maybe"`
	}

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[valueField](storage) })
	assert.Panics(t, func() { ecs.NewView[badTag](storage) })
}

func TestViewEmbeddedEntityId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Label{Value: "stick"})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Label
	}](storage)

	for item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		assert.Equal(t, "stick", item.Label.Value)
	}
}
