package pipeline

import (
	"github.com/matzehuels/drawkit/pkg/cache"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// Load returns the scene opts refers to: opts.Scene when set, otherwise
// the file at opts.Path, read as JSON or TOML by extension.
func Load(opts Options) (*scene.Scene, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	s := opts.Scene
	if s == nil {
		var err error
		if s, err = scene.Open(opts.Path); err != nil {
			return nil, err
		}
	}
	if s.Name != "" {
		if err := errors.ValidateSceneName(s.Name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Hash returns the content hash of s. Two scenes with the same hash draw
// identically, so the hash keys rendered artifacts.
func Hash(s *scene.Scene) (string, error) {
	data, err := scene.MarshalTOML(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode scene for hashing")
	}
	return cache.Hash(data), nil
}

// withSketch returns s with its hand-drawn amplitude replaced when
// amplitude is positive. s itself is not modified.
func withSketch(s *scene.Scene, amplitude float64) *scene.Scene {
	if amplitude <= 0 {
		return s
	}
	cp := *s
	sk := scene.SketchSpec{Amplitude: amplitude}
	if s.Sketch != nil {
		sk.Seed = s.Sketch.Seed
	}
	cp.Sketch = &sk
	return &cp
}
