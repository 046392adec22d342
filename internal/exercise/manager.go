package exercise

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Manager keeps exercises in registration order.
type Manager struct {
	exercises []Exercise
	byName    map[string]Exercise
}

func NewManager() *Manager {
	return &Manager{
		exercises: make([]Exercise, 0),
		byName:    make(map[string]Exercise),
	}
}

// NewDefaultManager registers every built-in exercise.
func NewDefaultManager() *Manager {
	mm := NewManager()
	mm.AddExercise(NewXorKey(XorKeyConfig{}))
	for _, e := range NewHornExercises(HornConfig{}) {
		mm.AddExercise(e)
	}
	return mm
}

// AddExercise registers e. A later exercise with the same name replaces the
// earlier one in place.
func (mm *Manager) AddExercise(e Exercise) {
	if _, ok := mm.byName[e.Name()]; ok {
		for i, old := range mm.exercises {
			if old.Name() == e.Name() {
				mm.exercises[i] = e
			}
		}
	} else {
		mm.exercises = append(mm.exercises, e)
	}
	mm.byName[e.Name()] = e
}

func (mm *Manager) Get(name string) (Exercise, error) {
	e, ok := mm.byName[name]
	if !ok {
		return nil, errors.Errorf("unknown exercise %q, want one of %v", name, mm.Names())
	}
	return e, nil
}

func (mm *Manager) Names() []string {
	return lo.Map(mm.exercises, func(e Exercise, _ int) string {
		return e.Name()
	})
}

func (mm *Manager) Exercises() []Exercise {
	return mm.exercises
}
