package engine

// Handle refers to a GameObject by UID without keeping it alive. It stays
// valid across removals: resolving a removed object yields nil.
type Handle struct {
	UID uint64 // 0 = none
}

// HandleOf returns a handle to g, or the zero handle for nil.
func HandleOf(g *GameObject) Handle {
	if g == nil {
		return Handle{}
	}
	return Handle{UID: g.UID}
}

// Resolve looks the object up in scene.
func (h Handle) Resolve(scene *Scene) *GameObject {
	if h.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(h.UID)
}

func (h Handle) IsZero() bool {
	return h.UID == 0
}
