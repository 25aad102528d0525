// Package shape provides parametric generators for procedural primitives:
// flat-face solids (box, plane, prism, pyramids, fin), revolved profiles
// (cone, cylinder, tube and their tapered/partial variants), doubly
// parametrized surfaces (sphere, torus, spring, spiral, curved cone) and
// analytic surfaces (sine-deformed cone, superellipsoid).
//
// Every generator is a plain parameter struct whose Generate method returns
// a self-contained mesh.Buffer. Generation is pure: invalid parameters are
// clamped to safe minimums instead of rejected, degenerate math falls back
// to a stable direction instead of failing, and calling Generate twice with
// the same parameters yields byte-identical buffers.
package shape

import (
	"fmt"
	"sort"
	"sync"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Generator produces a mesh buffer from a fixed set of shape parameters.
// Implementations are value types so that a Generator can be snapshotted
// and compared to detect parameter changes between frames.
type Generator interface {
	// Generate builds the mesh. It always succeeds, returning a valid
	// (possibly degenerate) buffer even for out-of-range parameters.
	Generate() mesh.Buffer
}

// Factory constructs a Generator preconfigured with a shape's default
// parameters.
type Factory func() Generator

// Registry maps shape names to generator factories, enabling callers to
// enumerate and construct shapes uniformly.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty shape registry.
//
// Returns:
//   - *Registry: the newly created registry instance
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a named factory to the registry.
//
// Parameters:
//   - name: unique shape name, must be non-empty
//   - factory: constructor for the shape's default generator, must be non-nil
//
// Returns:
//   - error: if the name is empty, the factory is nil, or the name is taken
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("register shape: empty name")
	}
	if factory == nil {
		return fmt.Errorf("register shape %q: nil factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("register shape %q: already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under the given name.
//
// Parameters:
//   - name: the shape name to look up
//
// Returns:
//   - Factory: the registered factory, or nil if not found
//   - bool: true if the name is registered
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// New constructs a default-parameter generator for the named shape.
//
// Parameters:
//   - name: the shape name to construct
//
// Returns:
//   - Generator: a generator with that shape's defaults, or nil if not found
//   - bool: true if the name is registered
func (r *Registry) New(name string) (Generator, bool) {
	f, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names returns all registered shape names in sorted order.
//
// Returns:
//   - []string: sorted shape names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) add(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// DefaultRegistry returns a registry populated with every built-in shape
// under its canonical name, each preconfigured with display-ready defaults.
//
// Returns:
//   - *Registry: registry containing all built-in shape factories
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.add("box", func() Generator { return Box{Width: 1, Height: 1, Depth: 1} })
	r.add("plane", func() Generator { return Plane{Width: 2, Depth: 2} })
	r.add("prism", func() Generator { return Prism{Width: 1, Height: 1, Depth: 1} })
	r.add("pyramid3", func() Generator { return Pyramid3{} })
	r.add("pyramid4", func() Generator { return Pyramid4{BaseSize: 1, Height: 1} })
	r.add("fin", func() Generator { return Fin{BaseLength: 1, TopLength: 0.6, Height: 1, Thickness: 0.1} })
	r.add("cone", func() Generator { return Cone{Radius: 0.5, Height: 1, Slices: 36} })
	r.add("partial-cone", func() Generator {
		return PartialCone{Radius: 0.5, Height: 1, Slices: 36, ArcDegrees: 180}
	})
	r.add("curved-cone", func() Generator {
		return CurvedCone{Slices: 24, CurveSteps: 16, Radius: 0.35, Height: 2, BendRadius: 1.5}
	})
	r.add("sine-cone", func() Generator {
		return SineCone{
			BaseRadius:     0.6,
			Height:         2,
			FlattenFactor:  0.25,
			SineAmplitude:  0.08,
			SineFrequency:  3,
			RadialSegments: 48,
			HeightSegments: 48,
		}
	})
	r.add("cylinder", func() Generator { return Cylinder{Radius: 0.5, Height: 1, Slices: 36} })
	r.add("tapered-cylinder", func() Generator {
		return TaperedCylinder{BottomRadius: 0.5, TopRadius: 0.25, Height: 1, Slices: 36}
	})
	r.add("tube", func() Generator { return Tube{OuterRadius: 0.5, InnerRadius: 0.35, Height: 1, Slices: 36} })
	r.add("sphere", func() Generator {
		return Sphere{LatitudeSegments: 30, LongitudeSegments: 30, Radius: 0.5}
	})
	r.add("hemisphere", func() Generator {
		return Hemisphere{LatitudeSegments: 30, LongitudeSegments: 30, Radius: 0.5}
	})
	r.add("torus", func() Generator {
		return Torus{MainRadius: 0.5, TubeRadius: 0.15, MainSegments: 30, TubeSegments: 30}
	})
	r.add("tapered-torus", func() Generator {
		return TaperedTorus{
			MainRadius:      0.5,
			TubeRadiusStart: 0.2,
			TubeRadiusEnd:   0.02,
			MainSegments:    40,
			TubeSegments:    24,
			SweepAngle:      4.712389,
		}
	})
	r.add("torus-surface", func() Generator { return TorusSurface{Thickness: 0.1} })
	r.add("spring", func() Generator {
		return Spring{MainRadius: 0.4, TubeRadius: 0.08, MainSegments: 4, TubeSegments: 24, Length: 1.5}
	})
	r.add("spiral", func() Generator {
		return Spiral{
			TubeRadius:     0.12,
			FlattenFactor:  0.3,
			LoopSpacing:    0.25,
			Loops:          3,
			TubeSegments:   16,
			SpiralSegments: 200,
		}
	})
	r.add("superellipsoid", func() Generator {
		return Superellipsoid{
			ScaleX:             0.5,
			ScaleY:             0.5,
			ScaleZ:             0.5,
			VerticalExponent:   0.3,
			HorizontalExponent: 0.3,
			USegments:          32,
			VSegments:          32,
		}
	})
	return r
}

// minScale is the smallest radius, height or spacing a generator will
// accept; non-positive inputs are raised to it so division stays finite.
const minScale = 0.01

// clampScale raises non-positive lengths to minScale.
func clampScale(v float32) float32 {
	if v <= 0 {
		return minScale
	}
	return v
}

// clampSegments raises a subdivision count to the minimum of 3 needed to
// enclose an axis.
func clampSegments(n int) int {
	if n < 3 {
		return 3
	}
	return n
}
