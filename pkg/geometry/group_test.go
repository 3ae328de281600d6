package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestGroup_EmptyMisses(t *testing.T) {
	group := NewGroup()
	if _, isHit := group.Hit(core.NewRay(core.Zero(), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); isHit {
		t.Error("Empty group should never be hit")
	}
}

func TestGroup_AddClearLen(t *testing.T) {
	group := NewGroup()
	group.Add(mustSphere(t, core.NewVec3(0, 0, -1), 0.5, nil))
	group.Add(mustSphere(t, core.NewVec3(0, 0, -3), 0.5, nil))
	if group.Len() != 2 || len(group.Objects()) != 2 {
		t.Fatalf("Expected 2 objects, got %d", group.Len())
	}

	group.Clear()
	if group.Len() != 0 {
		t.Errorf("Expected empty group after Clear, got %d", group.Len())
	}
	if _, isHit := group.Hit(core.NewRay(core.Zero(), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); isHit {
		t.Error("Cleared group should never be hit")
	}
}

func TestGroup_NearestHitIsOrderIndependent(t *testing.T) {
	a := mustSphere(t, core.NewVec3(0, 0, -1), 0.5, nil)
	b := mustSphere(t, core.NewVec3(0.2, 0.1, -3), 1.0, nil)

	rays := []core.Ray{
		core.NewRay(core.Zero(), core.NewVec3(0, 0, -1)),
		core.NewRay(core.Zero(), core.NewVec3(0.1, 0.05, -1)),
		core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1)),
		core.NewRay(core.NewVec3(0.2, 0.1, -3), core.NewVec3(0, 1, 0)),
		core.NewRay(core.Zero(), core.NewVec3(0, 1, 0)),
	}

	const tMin, tMax = 0.001, 1000.0
	for _, ray := range rays {
		hitA, okA := a.Hit(ray, tMin, tMax)
		hitB, okB := b.Hit(ray, tMin, tMax)

		expectHit := okA || okB
		expectedT := math.Inf(1)
		if okA {
			expectedT = hitA.T
		}
		if okB && hitB.T < expectedT {
			expectedT = hitB.T
		}

		for _, group := range []*Group{NewGroup(a, b), NewGroup(b, a)} {
			hit, isHit := group.Hit(ray, tMin, tMax)
			if isHit != expectHit {
				t.Fatalf("Ray %v: expected hit=%t, got %t", ray, expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-expectedT) > 1e-12 {
				t.Errorf("Ray %v: expected nearest t=%f, got %f", ray, expectedT, hit.T)
			}
		}
	}
}

func TestGroup_RespectsTraceBounds(t *testing.T) {
	group := NewGroup(
		mustSphere(t, core.NewVec3(0, 0, -2), 0.5, nil),
		mustSphere(t, core.NewVec3(0, 0, -6), 0.5, nil),
	)
	ray := core.NewRay(core.Zero(), core.NewVec3(0, 0, -1))

	hit, isHit := group.Hit(ray, 0.001, 4)
	if !isHit || math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected hit at t=1.5, got hit=%t t=%f", isHit, hit.T)
	}

	hit, isHit = group.Hit(ray, 3, 100)
	if !isHit || math.Abs(hit.T-5.5) > 1e-9 {
		t.Errorf("Expected hit at t=5.5, got hit=%t t=%f", isHit, hit.T)
	}

	if _, isHit = group.Hit(ray, 0.001, 1); isHit {
		t.Error("Expected miss when tMax excludes every root")
	}
}
