package contract

import (
	"context"
	"fmt"
	"reflect"
	"sort"
)

// Abilities maps a capability name to its implementation.
type Abilities map[string]any

// Names returns the granted ability names, sorted.
func (a Abilities) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Performer is the actor as seen from inside an interaction.
type Performer interface {
	Name() string
	Perform(ctx context.Context, activities ...Activity) error
	Asks(ctx context.Context, question Activity) (any, error)
}

// Scene is passed to every interaction: the actor running it plus the
// actor's current ability bundle.
type Scene struct {
	Actor     Performer
	Abilities Abilities
}

// Use fetches the ability called name and asserts it to T.
func Use[T any](scene Scene, name string) (T, error) {
	var zero T
	raw, ok := scene.Abilities[name]
	if !ok {
		return zero, fmt.Errorf("%w: %q (granted: %v)", ErrMissingAbility, name, scene.Abilities.Names())
	}
	ability, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, want %v", ErrMissingAbility, name, raw, reflect.TypeOf((*T)(nil)).Elem())
	}
	return ability, nil
}
