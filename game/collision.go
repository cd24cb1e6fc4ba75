package game

import "math"

// Circle is a collidable shape; Size is its diameter.
type Circle struct {
	X, Y, Size float64
}

func circleAt(p Point, size float64) Circle {
	return Circle{X: p.X, Y: p.Y, Size: size}
}

// Collide reports whether a and b overlap under the rule. The test is
// symmetric in its arguments.
func (r CollisionRule) Collide(a, b Circle) bool {
	reach := a.Size/2 + b.Size/2
	dx := a.X - b.X
	dy := a.Y - b.Y

	if r == CollisionAxisAligned {
		return math.Abs(dx) < reach && math.Abs(dy) < reach
	}
	return math.Hypot(dx, dy) < reach
}

// Collide applies the default Euclidean rule.
func Collide(a, b Circle) bool {
	return CollisionEuclidean.Collide(a, b)
}
