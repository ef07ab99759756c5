package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	assert.Len(t, scene.GameObjects, 1)
	assert.Same(t, obj, scene.GameObjects[0])
	assert.Same(t, scene, obj.Scene)
	assert.Same(t, obj, scene.FindByUID(obj.UID))
	assert.Nil(t, scene.FindByUID(0))
}

func TestSceneRemoveGameObjectKeepsOrder(t *testing.T) {
	scene := NewScene("Test")
	a, b, c := NewGameObject("A"), NewGameObject("B"), NewGameObject("C")
	scene.AddGameObject(a)
	scene.AddGameObject(b)
	scene.AddGameObject(c)

	scene.RemoveGameObject(b)

	assert.Equal(t, []*GameObject{a, c}, scene.GameObjects)
	assert.Nil(t, scene.FindByUID(b.UID))
	assert.Nil(t, b.Scene)
}

func TestSceneFind(t *testing.T) {
	scene := NewScene("Test")
	e1, e2, p := NewGameObject("Enemy1"), NewGameObject("Enemy2"), NewGameObject("Player")
	e1.Tags = []string{"enemy", "ai"}
	e2.Tags = []string{"enemy"}
	p.Tags = []string{"player"}
	scene.AddGameObject(e1)
	scene.AddGameObject(e2)
	scene.AddGameObject(p)

	assert.Same(t, p, scene.FindByName("Player"))
	assert.Nil(t, scene.FindByName("DoesNotExist"))
	assert.Len(t, scene.FindByTag("enemy"), 2)
	assert.Empty(t, scene.FindByTag("nonexistent"))
}
