package body

import (
	"math"

	"github.com/san-kum/rigid2d/internal/vmath"
)

// Construction limits. Areas are in m², densities in g/cm³.
const (
	MinBodySize = 0.01 * 0.01
	MaxBodySize = 64.0 * 64.0

	MinDensity = 0.1
	MaxDensity = 21.4

	DefaultStaticFriction  = 0.6
	DefaultDynamicFriction = 0.4
)

type Body struct {
	position        vmath.Vector
	linearVelocity  vmath.Vector
	angle           float64
	angularVelocity float64
	force           vmath.Vector

	shape           ShapeType
	density         float64
	mass            float64
	invMass         float64
	inertia         float64
	invInertia      float64
	restitution     float64
	area            float64
	isStatic        bool
	radius          float64
	width           float64
	height          float64
	staticFriction  float64
	dynamicFriction float64

	vertices            []vmath.Vector
	transformedVertices []vmath.Vector
	aabb                AABB

	transformDirty bool
	aabbDirty      bool
}

func newBody(shape ShapeType, density, mass, inertia, restitution, area float64,
	isStatic bool, radius, width, height float64, vertices []vmath.Vector) *Body {
	b := &Body{
		shape:           shape,
		density:         density,
		mass:            mass,
		inertia:         inertia,
		restitution:     restitution,
		area:            area,
		isStatic:        isStatic,
		radius:          radius,
		width:           width,
		height:          height,
		staticFriction:  DefaultStaticFriction,
		dynamicFriction: DefaultDynamicFriction,
		transformDirty:  true,
		aabbDirty:       true,
	}
	if mass > 0 {
		b.invMass = 1 / mass
	}
	if inertia > 0 {
		b.invInertia = 1 / inertia
	}
	if shape == Box {
		b.vertices = vertices
		b.transformedVertices = make([]vmath.Vector, len(vertices))
	}
	return b
}

func validate(area, density float64) error {
	if area < MinBodySize {
		return &ValidationError{Field: "area", Value: area, Bound: MinBodySize, Wrapped: ErrAreaTooSmall}
	}
	if area > MaxBodySize {
		return &ValidationError{Field: "area", Value: area, Bound: MaxBodySize, Wrapped: ErrAreaTooLarge}
	}
	if density < MinDensity {
		return &ValidationError{Field: "density", Value: density, Bound: MinDensity, Wrapped: ErrDensityTooLow}
	}
	if density > MaxDensity {
		return &ValidationError{Field: "density", Value: density, Bound: MaxDensity, Wrapped: ErrDensityTooHigh}
	}
	return nil
}

// NewCircle creates a circle body centered on the origin.
func NewCircle(radius, density, restitution float64, isStatic bool) (*Body, error) {
	area := math.Pi * radius * radius
	if err := validate(area, density); err != nil {
		return nil, err
	}
	restitution = vmath.MustClamp(0, 1, restitution)

	mass, inertia := 0.0, 0.0
	if !isStatic {
		mass = area * density
		inertia = 0.5 * mass * radius * radius
	}

	return newBody(Circle, density, mass, inertia, restitution, area, isStatic, radius, 0, 0, nil), nil
}

// NewBox creates a width×height rectangle centered on the origin.
func NewBox(width, height, density, restitution float64, isStatic bool) (*Body, error) {
	area := width * height
	if err := validate(area, density); err != nil {
		return nil, err
	}
	restitution = vmath.MustClamp(0, 1, restitution)

	mass, inertia := 0.0, 0.0
	if !isStatic {
		mass = area * density
		inertia = (1.0 / 12.0) * mass * (width*width + height*height)
	}

	return newBody(Box, density, mass, inertia, restitution, area, isStatic, 0, width, height, boxVertices(width, height)), nil
}

// Step integrates one sub-step of a frame split into iterations sub-steps.
func (b *Body) Step(dt float64, gravity vmath.Vector, iterations int) {
	if b.isStatic {
		return
	}
	dt /= float64(iterations)

	b.linearVelocity = b.linearVelocity.Add(b.force.Scale(b.invMass * dt))
	b.linearVelocity = b.linearVelocity.Add(gravity.Scale(dt))
	b.position = b.position.Add(b.linearVelocity.Scale(dt))
	b.angle += b.angularVelocity * dt

	b.force = vmath.Zero
	b.invalidate()
}

func (b *Body) invalidate() {
	b.transformDirty = true
	b.aabbDirty = true
}

func (b *Body) Move(amount vmath.Vector) {
	b.position = b.position.Add(amount)
	b.invalidate()
}

func (b *Body) MoveTo(position vmath.Vector) {
	b.position = position
	b.invalidate()
}

func (b *Body) Rotate(amount float64) {
	b.angle += amount
	b.invalidate()
}

func (b *Body) RotateTo(angle float64) {
	b.angle = angle
	b.invalidate()
}

// ApplyForce adds f to the force consumed by the next integration sub-step.
// Static bodies ignore forces.
func (b *Body) ApplyForce(f vmath.Vector) {
	if b.isStatic {
		return
	}
	b.force = b.force.Add(f)
}

// TransformedVertices returns the world-space corners of a box, or nil for a
// circle. The slice is owned by the body and rewritten after the next move.
func (b *Body) TransformedVertices() []vmath.Vector {
	if b.shape != Box {
		return nil
	}
	if b.transformDirty {
		t := vmath.NewTransform(b.position, b.angle)
		for i, v := range b.vertices {
			b.transformedVertices[i] = v.Transform(t)
		}
		b.transformDirty = false
	}
	return b.transformedVertices
}

func (b *Body) AABB() AABB {
	if !b.aabbDirty {
		return b.aabb
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	switch b.shape {
	case Box:
		for _, v := range b.TransformedVertices() {
			minX = math.Min(minX, v.X)
			maxX = math.Max(maxX, v.X)
			minY = math.Min(minY, v.Y)
			maxY = math.Max(maxY, v.Y)
		}
	case Circle:
		minX = b.position.X - b.radius
		minY = b.position.Y - b.radius
		maxX = b.position.X + b.radius
		maxY = b.position.Y + b.radius
	default:
		panic("body: invalid shape type " + b.shape.String())
	}

	b.aabb = NewAABB(minX, minY, maxX, maxY)
	b.aabbDirty = false
	return b.aabb
}

func (b *Body) Position() vmath.Vector        { return b.position }
func (b *Body) Angle() float64                { return b.angle }
func (b *Body) LinearVelocity() vmath.Vector  { return b.linearVelocity }
func (b *Body) AngularVelocity() float64      { return b.angularVelocity }
func (b *Body) Force() vmath.Vector           { return b.force }
func (b *Body) Shape() ShapeType              { return b.shape }
func (b *Body) Radius() float64               { return b.radius }
func (b *Body) Width() float64                { return b.width }
func (b *Body) Height() float64               { return b.height }
func (b *Body) IsStatic() bool                { return b.isStatic }
func (b *Body) Density() float64              { return b.density }
func (b *Body) Area() float64                 { return b.area }
func (b *Body) Mass() float64                 { return b.mass }
func (b *Body) InvMass() float64              { return b.invMass }
func (b *Body) Inertia() float64              { return b.inertia }
func (b *Body) InvInertia() float64           { return b.invInertia }
func (b *Body) Restitution() float64          { return b.restitution }
func (b *Body) StaticFriction() float64       { return b.staticFriction }
func (b *Body) DynamicFriction() float64      { return b.dynamicFriction }
func (b *Body) LocalVertices() []vmath.Vector { return b.vertices }

// SetLinearVelocity is a no-op on static bodies.
func (b *Body) SetLinearVelocity(v vmath.Vector) {
	if b.isStatic {
		return
	}
	b.linearVelocity = v
}

// SetAngularVelocity is a no-op on static bodies.
func (b *Body) SetAngularVelocity(w float64) {
	if b.isStatic {
		return
	}
	b.angularVelocity = w
}

// SetFriction overrides the default Coulomb coefficients.
func (b *Body) SetFriction(static, dynamic float64) {
	b.staticFriction = static
	b.dynamicFriction = dynamic
}

// KineticEnergy returns the translational plus rotational energy.
func (b *Body) KineticEnergy() float64 {
	return 0.5*b.mass*b.linearVelocity.LengthSquared() + 0.5*b.inertia*b.angularVelocity*b.angularVelocity
}

// Momentum returns the linear momentum.
func (b *Body) Momentum() vmath.Vector {
	return b.linearVelocity.Scale(b.mass)
}
