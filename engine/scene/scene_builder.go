package scene

import (
	"github.com/primshapes/prim-go/engine/shape"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene. Objects without IDs are
// assigned new IDs and persisted in the registry. Their meshes are generated
// in parallel and uploaded before NewScene returns.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...Object) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj.ID() == 0 {
				obj.SetID(s.nextID)
				s.nextID++
			}
			s.registry[obj.ID()] = obj
		}
	}
}

// WithBuildWorkers sets the number of worker goroutines used for the initial
// parallel mesh build and the parallel CPU phase of Update. Defaults to
// runtime.NumCPU()-1. Higher values may improve throughput with many live
// objects; lower values reduce scheduling overhead for simple scenes.
//
// Parameters:
//   - n: the number of build workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBuildWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.buildWorkers = n
	}
}

// WithCullingDisabled disables frustum culling for the scene. When set to
// true, DrawCalls skips the bounding sphere test and draws every enabled
// object. By default culling is enabled (disabled = false).
//
// Parameters:
//   - disabled: true to disable frustum culling, false to enable it (default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}

// WithLogger sets the logger the scene reports upload failures and draw
// skips through. Defaults to a no-op logger.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWarnings sets the deprecation warning registry used by the legacy
// line-drawing entry points. Defaults to a new registry backed by the
// scene's logger.
//
// Parameters:
//   - warnings: the warning registry to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWarnings(warnings *shape.Warnings) SceneBuilderOption {
	return func(s *scene) {
		s.warnings = warnings
	}
}
