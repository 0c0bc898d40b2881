package voxray

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// Command is a scene mutation deferred to the next frame boundary.
type Command interface {
	Apply(s *Scene) error
}

type AddSphereCmd struct{ Sphere *Sphere }

type RemoveSphereCmd struct{ ID uuid.UUID }

type AddLightCmd struct{ Light Light }

type RemoveLightCmd struct{ ID uuid.UUID }

type SetStochasticCmd struct{ On bool }

type SetSoftShadowCmd struct{ Amount Real }

type SetAmbientCmd struct{ Ambient AmbientLight }

// SetSpecialColorCmd recolours a special voxel, as the puzzle logic does on a pick.
type SetSpecialColorCmd struct {
	Index int
	Color Color
}

func (c AddSphereCmd) Apply(s *Scene) error {
	if c.Sphere == nil {
		return errors.New("add sphere: nil sphere")
	}
	s.Spheres = append(s.Spheres, c.Sphere)
	return nil
}

func (c RemoveSphereCmd) Apply(s *Scene) error {
	for i, sp := range s.Spheres {
		if sp.ID == c.ID {
			s.Spheres = append(s.Spheres[:i:i], s.Spheres[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(ErrNotFound, "sphere %s", c.ID)
}

func (c AddLightCmd) Apply(s *Scene) error {
	if c.Light == nil {
		return errors.New("add light: nil light")
	}
	s.Lights.Add(c.Light)
	return nil
}

func (c RemoveLightCmd) Apply(s *Scene) error {
	if !s.Lights.Remove(c.ID) {
		return errors.Wrapf(ErrNotFound, "light %s", c.ID)
	}
	return nil
}

func (c SetStochasticCmd) Apply(s *Scene) error {
	s.Lights.Stochastic = c.On
	return nil
}

func (c SetSoftShadowCmd) Apply(s *Scene) error {
	if c.Amount < 0 {
		return errors.Errorf("soft shadow must be >= 0, got %g", c.Amount)
	}
	s.Lights.SoftShadow = c.Amount
	return nil
}

func (c SetAmbientCmd) Apply(s *Scene) error {
	s.Lights.Ambient = c.Ambient
	return nil
}

func (c SetSpecialColorCmd) Apply(s *Scene) error {
	if c.Index < 0 || c.Index >= len(s.Grid.Cells) || !s.Grid.Cells[c.Index].Special {
		return errors.Wrapf(ErrNotFound, "special voxel %d", c.Index)
	}
	s.Grid.Cells[c.Index].SpecialColor = c.Color
	return nil
}

func touchesSpheres(c Command) bool {
	switch c.(type) {
	case AddSphereCmd, RemoveSphereCmd, *AddSphereCmd, *RemoveSphereCmd:
		return true
	}
	return false
}

// CommandQueue collects commands from any goroutine and applies them in order
// when Flush is called between frames.
type CommandQueue struct {
	mu      sync.Mutex
	pending []Command
}

func (q *CommandQueue) Push(c Command) {
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()
}

func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush applies every pending command. A failing command does not stop the
// rest; the first error is returned. The BVH is rebuilt once if any command
// touched the sphere set.
func (q *CommandQueue) Flush(s *Scene) error {
	q.mu.Lock()
	cmds := q.pending
	q.pending = nil
	q.mu.Unlock()

	var first error
	rebuild := false
	for _, c := range cmds {
		if err := c.Apply(s); err != nil {
			DebugLog("command %T failed: %v", c, err)
			if first == nil {
				first = err
			}
			continue
		}
		if touchesSpheres(c) {
			rebuild = true
		}
	}
	if rebuild {
		s.RebuildBVH()
	}
	return first
}
