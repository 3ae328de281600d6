package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Group is a flat collection of traceables resolved by linear scan.
// Built once before rendering and read-only afterwards.
type Group struct {
	objects []Traceable
}

// NewGroup creates a group from the given objects
func NewGroup(objects ...Traceable) *Group {
	g := &Group{objects: make([]Traceable, 0, len(objects))}
	g.objects = append(g.objects, objects...)
	return g
}

// Add appends an object to the group
func (g *Group) Add(object Traceable) {
	g.objects = append(g.objects, object)
}

// Clear removes every object from the group
func (g *Group) Clear() {
	g.objects = g.objects[:0]
}

// Len returns the number of objects in the group
func (g *Group) Len() int {
	return len(g.objects)
}

// Objects returns the group members
func (g *Group) Objects() []Traceable {
	return g.objects
}

// Hit returns the closest hit among all members
func (g *Group) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, object := range g.objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
