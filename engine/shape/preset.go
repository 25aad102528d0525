package shape

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is one named entry in a YAML gallery file: a shape name plus
// numeric parameter overrides. Any key other than name and shape is treated
// as a parameter; keys a shape does not recognize are ignored, and omitted
// parameters keep the registry defaults.
type Preset struct {
	Name   string             `yaml:"name"`
	Shape  string             `yaml:"shape"`
	Params map[string]float64 `yaml:",inline"`
}

// LoadPresets reads a gallery file of the form:
//
//	presets:
//	  - name: tall spring
//	    shape: spring
//	    main_segments: 8
//	    length: 3.0
//
// Parameters:
//   - path: path to the YAML gallery file
//
// Returns:
//   - []Preset: the presets in file order
//   - error: if the file cannot be read, parsed, or names no shape
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var file struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}
	for i, p := range file.Presets {
		if p.Shape == "" {
			return nil, fmt.Errorf("preset %d (%q): missing shape", i, p.Name)
		}
	}
	return file.Presets, nil
}

// Build resolves the preset's shape through the registry and applies its
// parameter overrides on top of the shape's defaults. Shapes registered by
// callers (not built in) pass through with defaults only.
//
// Parameters:
//   - reg: registry to resolve against; nil falls back to DefaultRegistry
//
// Returns:
//   - Generator: the configured generator
//   - error: if the preset's shape is not registered
func (p Preset) Build(reg *Registry) (Generator, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	base, ok := reg.New(p.Shape)
	if !ok {
		return nil, fmt.Errorf("preset %q: unknown shape %q", p.Name, p.Shape)
	}

	switch g := base.(type) {
	case Box:
		g.Width = p.scalar("width", g.Width)
		g.Height = p.scalar("height", g.Height)
		g.Depth = p.scalar("depth", g.Depth)
		return g, nil
	case Plane:
		g.Width = p.scalar("width", g.Width)
		g.Depth = p.scalar("depth", g.Depth)
		return g, nil
	case Prism:
		g.Width = p.scalar("width", g.Width)
		g.Height = p.scalar("height", g.Height)
		g.Depth = p.scalar("depth", g.Depth)
		return g, nil
	case Pyramid3:
		// Fixed proportions, no parameters.
		return g, nil
	case Pyramid4:
		g.BaseSize = p.scalar("base_size", g.BaseSize)
		g.Height = p.scalar("height", g.Height)
		return g, nil
	case Fin:
		g.BaseLength = p.scalar("base_length", g.BaseLength)
		g.TopLength = p.scalar("top_length", g.TopLength)
		g.Height = p.scalar("height", g.Height)
		g.Thickness = p.scalar("thickness", g.Thickness)
		return g, nil
	case Cone:
		g.Radius = p.scalar("radius", g.Radius)
		g.Height = p.scalar("height", g.Height)
		g.Slices = p.count("slices", g.Slices)
		return g, nil
	case PartialCone:
		g.Radius = p.scalar("radius", g.Radius)
		g.Height = p.scalar("height", g.Height)
		g.Slices = p.count("slices", g.Slices)
		g.ArcDegrees = p.scalar("arc_degrees", g.ArcDegrees)
		return g, nil
	case CurvedCone:
		g.Slices = p.count("slices", g.Slices)
		g.CurveSteps = p.count("curve_steps", g.CurveSteps)
		g.Radius = p.scalar("radius", g.Radius)
		g.Height = p.scalar("height", g.Height)
		g.BendRadius = p.scalar("bend_radius", g.BendRadius)
		return g, nil
	case SineCone:
		g.BaseRadius = p.scalar("base_radius", g.BaseRadius)
		g.Height = p.scalar("height", g.Height)
		g.FlattenFactor = p.scalar("flatten_factor", g.FlattenFactor)
		g.SineAmplitude = p.scalar("sine_amplitude", g.SineAmplitude)
		g.SineFrequency = p.scalar("sine_frequency", g.SineFrequency)
		g.SinePhase = p.scalar("sine_phase", g.SinePhase)
		g.RadialSegments = p.count("radial_segments", g.RadialSegments)
		g.HeightSegments = p.count("height_segments", g.HeightSegments)
		return g, nil
	case Cylinder:
		g.Radius = p.scalar("radius", g.Radius)
		g.Height = p.scalar("height", g.Height)
		g.Slices = p.count("slices", g.Slices)
		return g, nil
	case TaperedCylinder:
		g.BottomRadius = p.scalar("bottom_radius", g.BottomRadius)
		g.TopRadius = p.scalar("top_radius", g.TopRadius)
		g.Height = p.scalar("height", g.Height)
		g.Slices = p.count("slices", g.Slices)
		return g, nil
	case Tube:
		g.OuterRadius = p.scalar("outer_radius", g.OuterRadius)
		g.InnerRadius = p.scalar("inner_radius", g.InnerRadius)
		g.Height = p.scalar("height", g.Height)
		g.Slices = p.count("slices", g.Slices)
		return g, nil
	case Sphere:
		g.LatitudeSegments = p.count("latitude_segments", g.LatitudeSegments)
		g.LongitudeSegments = p.count("longitude_segments", g.LongitudeSegments)
		g.Radius = p.scalar("radius", g.Radius)
		return g, nil
	case Hemisphere:
		g.LatitudeSegments = p.count("latitude_segments", g.LatitudeSegments)
		g.LongitudeSegments = p.count("longitude_segments", g.LongitudeSegments)
		g.Radius = p.scalar("radius", g.Radius)
		return g, nil
	case Torus:
		g.MainRadius = p.scalar("main_radius", g.MainRadius)
		g.TubeRadius = p.scalar("tube_radius", g.TubeRadius)
		g.MainSegments = p.count("main_segments", g.MainSegments)
		g.TubeSegments = p.count("tube_segments", g.TubeSegments)
		return g, nil
	case TaperedTorus:
		g.MainRadius = p.scalar("main_radius", g.MainRadius)
		g.TubeRadiusStart = p.scalar("tube_radius_start", g.TubeRadiusStart)
		g.TubeRadiusEnd = p.scalar("tube_radius_end", g.TubeRadiusEnd)
		g.MainSegments = p.count("main_segments", g.MainSegments)
		g.TubeSegments = p.count("tube_segments", g.TubeSegments)
		g.SweepAngle = p.scalar("sweep_angle", g.SweepAngle)
		return g, nil
	case TorusSurface:
		g.Thickness = p.scalar("thickness", g.Thickness)
		return g, nil
	case Spring:
		g.MainRadius = p.scalar("main_radius", g.MainRadius)
		g.TubeRadius = p.scalar("tube_radius", g.TubeRadius)
		g.MainSegments = p.count("main_segments", g.MainSegments)
		g.TubeSegments = p.count("tube_segments", g.TubeSegments)
		g.Length = p.scalar("length", g.Length)
		return g, nil
	case Spiral:
		g.TubeRadius = p.scalar("tube_radius", g.TubeRadius)
		g.FlattenFactor = p.scalar("flatten_factor", g.FlattenFactor)
		g.LoopSpacing = p.scalar("loop_spacing", g.LoopSpacing)
		g.Loops = p.scalar("loops", g.Loops)
		g.TubeSegments = p.count("tube_segments", g.TubeSegments)
		g.SpiralSegments = p.count("spiral_segments", g.SpiralSegments)
		return g, nil
	case Superellipsoid:
		g.ScaleX = p.scalar("scale_x", g.ScaleX)
		g.ScaleY = p.scalar("scale_y", g.ScaleY)
		g.ScaleZ = p.scalar("scale_z", g.ScaleZ)
		g.VerticalExponent = p.scalar("vertical_exponent", g.VerticalExponent)
		g.HorizontalExponent = p.scalar("horizontal_exponent", g.HorizontalExponent)
		g.USegments = p.count("u_segments", g.USegments)
		g.VSegments = p.count("v_segments", g.VSegments)
		return g, nil
	}
	return base, nil
}

func (p Preset) scalar(key string, def float32) float32 {
	if v, ok := p.Params[key]; ok {
		return float32(v)
	}
	return def
}

func (p Preset) count(key string, def int) int {
	if v, ok := p.Params[key]; ok {
		return int(v)
	}
	return def
}
