package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleResolve(t *testing.T) {
	scene := NewScene("s")
	obj := NewGameObject("target")
	scene.AddGameObject(obj)

	h := HandleOf(obj)
	assert.False(t, h.IsZero())
	assert.Same(t, obj, h.Resolve(scene))

	scene.RemoveGameObject(obj)
	assert.Nil(t, h.Resolve(scene))
}

func TestHandleZero(t *testing.T) {
	h := HandleOf(nil)
	assert.True(t, h.IsZero())
	assert.Nil(t, h.Resolve(NewScene("s")))
	assert.Nil(t, HandleOf(NewGameObject("x")).Resolve(nil))
}
