package physics

import (
	"sort"

	"collide3d/internal/engine"
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// approachEpsilon is the closing speed below which a pair counts as diverging.
	approachEpsilon = 0.01
	// penetrationSlop is left unresolved to avoid jitter on resting contacts.
	penetrationSlop = 0.001
	// correctionPercent of the remaining penetration is removed per cycle.
	correctionPercent = 0.8
)

// CollisionPair is an unordered pair of objects, keyed by UID.
type CollisionPair struct {
	A, B *engine.GameObject
}

// makePair creates a consistent collision pair (smaller UID first)
func makePair(a, b *engine.GameObject) CollisionPair {
	if a.UID > b.UID {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

// contactFrame derives the contact normal (pointing from b toward a), the
// linear penetration and the contact point from a detection result.
func contactFrame(a, b *Body, res CollisionDetectionResult) (rl.Vector3, float32, rl.Vector3) {
	pa, pb := a.Position(), b.Position()
	switch res.Type {
	case ContinuousSphereVsSphere, ContinuousSphereVsOBB:
		return rl.Vector3Negate(res.Continuous.NormalisedContactNormal), 0, res.Continuous.ContactPoint

	case OBBvsOBB:
		leafA := a.Box.Tree.Nodes[res.Leaf0].Box
		leafB := b.Box.Tree.Nodes[res.Leaf1].Box
		onB, _ := geom.ClosestPointOnOBB(leafB, leafA.Center)
		onA, _ := geom.ClosestPointOnOBB(leafA, onB)
		contact := rl.Vector3Scale(rl.Vector3Add(onA, onB), 0.5)
		return rl.Vector3Negate(res.SAT.Normal), res.Penetration, contact

	case SphereVsOBB:
		if res.Leaf1 >= 0 {
			box := b.Box.Tree.Nodes[res.Leaf1].Box
			closest, local := geom.ClosestPointOnOBB(box, pa)
			return normalizeOr(rl.Vector3Subtract(pa, closest), geom.ExitNormal(box, local)), res.Penetration, closest
		}
		box := a.Box.Tree.Nodes[res.Leaf0].Box
		closest, local := geom.ClosestPointOnOBB(box, pb)
		n := normalizeOr(rl.Vector3Subtract(closest, pb), rl.Vector3Negate(geom.ExitNormal(box, local)))
		return n, res.Penetration, closest
	}

	d := rl.Vector3Subtract(pa, pb)
	n := normalizeOr(d, rl.Vector3{Y: 1})
	pen := a.Radius() + b.Radius() - rl.Vector3Length(d)
	return n, pen, rl.Vector3Add(pb, rl.Vector3Scale(n, b.Radius()))
}

// handleCollision applies the response for a confirmed collision and
// reports whether velocities were changed.
func (w *World) handleCollision(a, b *Body, res CollisionDetectionResult, dt float32) bool {
	n, pen, contact := contactFrame(a, b, res)
	if res.Type.Continuous() {
		pen = 0
	}

	var applied bool
	switch {
	case a.IsTerrain() && b.IsTerrain():
		return false
	case b.IsTerrain():
		applied = w.resolveTerrain(a, b, n, pen)
	case a.IsTerrain():
		applied = w.resolveTerrain(b, a, rl.Vector3Negate(n), pen)
	default:
		applied = w.resolvePair(a, b, n, pen, contact, dt)
	}
	w.currentCollisions[makePair(a.Object, b.Object)] = true
	return applied
}

// resolvePair exchanges an impulse between two dynamic bodies along n
// (pointing from b toward a).
func (w *World) resolvePair(a, b *Body, n rl.Vector3, pen float32, contact rl.Vector3, dt float32) bool {
	ra := rl.Vector3Subtract(contact, a.Position())
	rb := rl.Vector3Subtract(contact, b.Position())

	relVel := func() rl.Vector3 {
		va := rl.Vector3Add(a.Velocity(), rl.Vector3CrossProduct(a.AngularVelocity(), ra))
		vb := rl.Vector3Add(b.Velocity(), rl.Vector3CrossProduct(b.AngularVelocity(), rb))
		return rl.Vector3Subtract(va, vb)
	}

	vn := rl.Vector3DotProduct(relVel(), n)
	if !w.approaching(vn) {
		past, crossed := crossedNormal(a, b, n, dt)
		if crossed {
			n = past
			vn = rl.Vector3DotProduct(relVel(), n)
		}
		if !crossed || vn >= 0 {
			w.separate(a, b, n, pen)
			return false
		}
	}

	invMa, invMb := a.InverseMass(), b.InverseMass()
	invIa, invIb := a.inverseInertia(), b.inverseInertia()
	angular := func(r, dir rl.Vector3, invI float32) float32 {
		rxn := rl.Vector3CrossProduct(r, dir)
		return rl.Vector3DotProduct(rl.Vector3CrossProduct(rl.Vector3Scale(rxn, invI), r), dir)
	}

	denom := invMa + invMb + angular(ra, n, invIa) + angular(rb, n, invIb)
	if denom <= 0 {
		return false
	}

	preA, preB := a.Velocity(), b.Velocity()
	e := w.Config.ElasticityCoefficient
	jn := -(1 + e) * vn / denom
	applyImpulse(a, rl.Vector3Scale(n, jn), ra)
	applyImpulse(b, rl.Vector3Scale(n, -jn), rb)

	// Coulomb friction along the remaining tangential motion.
	rv := relVel()
	tangent := rl.Vector3Subtract(rv, rl.Vector3Scale(n, rl.Vector3DotProduct(rv, n)))
	if geom.LengthSq(tangent) > 1e-8 {
		tangent = rl.Vector3Normalize(tangent)
		tDenom := invMa + invMb + angular(ra, tangent, invIa) + angular(rb, tangent, invIb)
		if tDenom > 0 {
			mu := (a.Rigid.Friction + b.Rigid.Friction) / 2
			jt := -rl.Vector3DotProduct(rv, tangent) / tDenom
			limit := mu * jn
			if jt > limit {
				jt = limit
			} else if jt < -limit {
				jt = -limit
			}
			applyImpulse(a, rl.Vector3Scale(tangent, jt), ra)
			applyImpulse(b, rl.Vector3Scale(tangent, -jt), rb)
		}
	}

	w.separate(a, b, n, pen)
	a.Rigid.Wake()
	b.Rigid.Wake()

	impact := ImpactData{
		ContactPoint: contact,
		Object:       objectImpact(a, preA),
		Collider:     objectImpact(b, preB),
	}
	impact.TotalImpactVelocity = impact.Object.VelocityChangeMagnitude + impact.Collider.VelocityChangeMagnitude
	impact.TotalImpactForce = impact.Object.ImpactForce + impact.Collider.ImpactForce

	notifyImpact(a.Object, b.Object, impact)
	notifyImpact(b.Object, a.Object, impact.Swap())

	if jn >= w.Config.ImpactMomentumThreshold {
		w.SignificantImpact.Invoke(ImpactEvent{Object: a.Object, Other: b.Object, Momentum: jn})
	}
	return true
}

// resolveTerrain reflects dyn's velocity off immovable terrain along n
// (pointing from the terrain toward dyn).
func (w *World) resolveTerrain(dyn, terrain *Body, n rl.Vector3, pen float32) bool {
	rb := dyn.Rigid
	vn := rl.Vector3DotProduct(rb.Velocity, n)
	if !w.approaching(vn) {
		w.pushOut(dyn, n, pen)
		return false
	}

	e := w.Config.ElasticityCoefficient
	closing := -vn
	rb.Velocity = rl.Vector3Subtract(rb.Velocity, rl.Vector3Scale(n, (1+e)*vn))
	w.pushOut(dyn, n, pen)
	rb.Wake()

	impact := TerrainImpactData{
		Terrain:          terrain.Object,
		ResponseVector:   n,
		ResponseVelocity: rl.Vector3DotProduct(rb.Velocity, n),
		ImpactVelocity:   closing,
		ImpactForce:      (1 + e) * closing * rb.Mass,
	}
	notifyTerrainImpact(dyn.Object, impact)

	if momentum := closing * rb.Mass; momentum >= w.Config.ImpactMomentumThreshold {
		w.SignificantImpact.Invoke(ImpactEvent{Object: dyn.Object, Other: terrain.Object, Momentum: momentum, Terrain: true})
	}
	return true
}

// approaching reports whether a contact with normal velocity vn gets an
// impulse. Separating contacts (vn >= 0) never do. Slow closing contacts,
// below approachEpsilon, only do when HandleDivergingCollisions is set.
func (w *World) approaching(vn float32) bool {
	if vn >= 0 {
		return false
	}
	return -vn >= approachEpsilon || w.Config.HandleDivergingCollisions
}

// crossedNormal checks whether the pair passed through each other during the
// last cycle, in which case the contact normal from their past positions is
// the one to respond along.
func crossedNormal(a, b *Body, n rl.Vector3, dt float32) (rl.Vector3, bool) {
	pastA := rl.Vector3Subtract(a.Position(), rl.Vector3Scale(a.Velocity(), dt))
	pastB := rl.Vector3Subtract(b.Position(), rl.Vector3Scale(b.Velocity(), dt))
	past := rl.Vector3Subtract(pastA, pastB)
	if geom.LengthSq(past) < 1e-12 || rl.Vector3DotProduct(past, n) >= 0 {
		return n, false
	}
	return rl.Vector3Normalize(past), true
}

func applyImpulse(b *Body, impulse, r rl.Vector3) {
	rb := b.Rigid
	rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(impulse, b.InverseMass()))
	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity,
		rl.Vector3Scale(rl.Vector3CrossProduct(r, impulse), b.inverseInertia()))
}

func objectImpact(b *Body, pre rl.Vector3) ObjectImpact {
	dv := rl.Vector3Subtract(b.Velocity(), pre)
	mag := rl.Vector3Length(dv)
	return ObjectImpact{
		ID:                      b.Object.UID,
		PreImpactVelocity:       pre,
		VelocityChange:          dv,
		VelocityChangeMagnitude: mag,
		ImpactForce:             mag * b.mass(),
	}
}

// separate splits positional correction between two bodies by inverse mass.
func (w *World) separate(a, b *Body, n rl.Vector3, pen float32) {
	if pen <= penetrationSlop {
		return
	}
	invMa, invMb := a.InverseMass(), b.InverseMass()
	total := invMa + invMb
	if total <= 0 {
		return
	}
	shift := (pen - penetrationSlop) * correctionPercent / total
	a.SetPosition(rl.Vector3Add(a.Position(), rl.Vector3Scale(n, shift*invMa)))
	b.SetPosition(rl.Vector3Subtract(b.Position(), rl.Vector3Scale(n, shift*invMb)))
}

// pushOut moves a body fully out of terrain along n.
func (w *World) pushOut(b *Body, n rl.Vector3, pen float32) {
	if pen <= penetrationSlop {
		return
	}
	b.SetPosition(rl.Vector3Add(b.Position(), rl.Vector3Scale(n, pen)))
}

// dispatchCollisionCallbacks fires enter/exit callbacks by comparing this
// frame's touching pairs with the previous frame's, in UID order.
func (w *World) dispatchCollisionCallbacks() {
	for _, pair := range sortedPairs(w.currentCollisions) {
		if !w.activeCollisions[pair] {
			notifyCollisionEnter(pair.A, pair.B)
			notifyCollisionEnter(pair.B, pair.A)
		}
	}
	for _, pair := range sortedPairs(w.activeCollisions) {
		if !w.currentCollisions[pair] {
			notifyCollisionExit(pair.A, pair.B)
			notifyCollisionExit(pair.B, pair.A)
		}
	}

	// Swap buffers
	w.activeCollisions = w.currentCollisions
	w.currentCollisions = make(map[CollisionPair]bool, len(w.activeCollisions))
}

func sortedPairs(set map[CollisionPair]bool) []CollisionPair {
	pairs := make([]CollisionPair, 0, len(set))
	for p := range set {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A.UID != pairs[j].A.UID {
			return pairs[i].A.UID < pairs[j].A.UID
		}
		return pairs[i].B.UID < pairs[j].B.UID
	})
	return pairs
}

// notifyCollisionEnter calls OnCollisionEnter on all handlers in obj
func notifyCollisionEnter(obj, other *engine.GameObject) {
	for _, h := range engine.ComponentsOf[engine.CollisionHandler](obj) {
		h.OnCollisionEnter(other)
	}
}

// notifyCollisionExit calls OnCollisionExit on all handlers in obj
func notifyCollisionExit(obj, other *engine.GameObject) {
	for _, h := range engine.ComponentsOf[engine.CollisionHandler](obj) {
		h.OnCollisionExit(other)
	}
}
