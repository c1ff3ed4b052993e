package contract

import (
	"context"
	"fmt"
	"sort"
)

// Activity is anything an actor can attempt: an Action that still has to be
// resolved by a perspective, or an Interaction that already knows how to run.
type Activity interface {
	activity()
}

// Interaction performs the actual effect using the abilities in the scene.
type Interaction func(ctx context.Context, scene Scene) (any, error)

func (Interaction) activity() {}

// Action is a parameter-bound, described instance of a task template.
// It is never modified after construction; nested tasks are reached through
// accessors that build new actions.
type Action struct {
	id          string
	params      Params
	description string
	nested      map[string]Accessor
	order       []string
}

func (Action) activity() {}

// NewAction is used by task templates. Accessors are kept in the given order.
func NewAction(id string, params Params, description string, nested []Accessor) Action {
	a := Action{
		id:          id,
		params:      params.clone(),
		description: description,
		nested:      make(map[string]Accessor, len(nested)),
		order:       make([]string, 0, len(nested)),
	}
	for _, acc := range nested {
		name := acc.Name()
		if _, exists := a.nested[name]; !exists {
			a.order = append(a.order, name)
		}
		a.nested[name] = acc
	}
	return a
}

func (a Action) ID() string          { return a.id }
func (a Action) Description() string { return a.description }

// Params returns a copy of the bound parameters.
func (a Action) Params() Params {
	return a.params.clone()
}

func (a Action) NestedNames() []string {
	return append([]string(nil), a.order...)
}

func (a Action) Nested(name string) (Accessor, bool) {
	acc, ok := a.nested[name]
	return acc, ok
}

// Then builds the nested action called name with the given values.
func (a Action) Then(name string, values ...any) (Action, error) {
	acc, ok := a.nested[name]
	if !ok {
		known := append([]string(nil), a.order...)
		sort.Strings(known)
		return Action{}, fmt.Errorf("%w: task %q has no nested task %q (nested: %v)", ErrInvalidTask, a.id, name, known)
	}
	return acc.Bind(values...)
}

func (a Action) MustThen(name string, values ...any) Action {
	out, err := a.Then(name, values...)
	if err != nil {
		panic(err)
	}
	return out
}

func (a Action) String() string {
	return a.description
}

// Accessor builds a nested action from its parent. ID and Description are
// available without binding anything.
type Accessor struct {
	id          string
	name        string
	description string
	bind        func(values ...any) (Action, error)
}

func NewAccessor(id, name, description string, bind func(values ...any) (Action, error)) Accessor {
	return Accessor{
		id:          id,
		name:        name,
		description: description,
		bind:        bind,
	}
}

func (a Accessor) ID() string          { return a.id }
func (a Accessor) Name() string        { return a.name }
func (a Accessor) Description() string { return a.description }

func (a Accessor) Bind(values ...any) (Action, error) {
	if a.bind == nil {
		return Action{}, fmt.Errorf("%w: accessor %q has no builder", ErrInvalidTask, a.id)
	}
	return a.bind(values...)
}

// Describe returns a human readable label for any activity.
func Describe(activity Activity) string {
	switch v := activity.(type) {
	case Action:
		return v.description
	case *Action:
		if v == nil {
			return "<nil action>"
		}
		return v.description
	case Interaction:
		return "interaction"
	default:
		return fmt.Sprintf("%T", activity)
	}
}
