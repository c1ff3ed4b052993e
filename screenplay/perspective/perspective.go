// Package perspective maps task ids to the handlers that know how to carry
// them out against one backend.
package perspective

import (
	"fmt"
	"sort"
	"strings"

	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
)

// Handler receives the bound params of an action and returns the interaction
// that performs it.
type Handler func(params contractx.Params) contractx.Interaction

// Identified is satisfied by task templates and nested accessors.
type Identified interface {
	ID() string
}

// Registry is handed to the register callback of New.
type Registry struct {
	handlers map[string]Handler
	err      error
}

// Handle registers h for the task id of task.
func (r *Registry) Handle(task Identified, h Handler) {
	if r.err != nil {
		return
	}
	if task == nil {
		r.err = fmt.Errorf("%w: cannot register a handler for a nil task", contractx.ErrInvalidTask)
		return
	}
	id := strings.TrimSpace(task.ID())
	if id == "" {
		r.err = fmt.Errorf("%w: cannot register a handler for an empty task id", contractx.ErrInvalidTask)
		return
	}
	if h == nil {
		r.err = fmt.Errorf("%w: handler for %q is nil", contractx.ErrInvalidTask, id)
		return
	}
	if _, exists := r.handlers[id]; exists {
		r.err = fmt.Errorf("%w: %q", contractx.ErrDuplicateHandler, id)
		return
	}
	r.handlers[id] = h
}

// Perspective is immutable once New returns.
type Perspective struct {
	name     string
	handlers map[string]Handler
}

func New(name string, register func(r *Registry)) (*Perspective, error) {
	reg := &Registry{handlers: make(map[string]Handler)}
	if register != nil {
		register(reg)
	}
	if reg.err != nil {
		return nil, fmt.Errorf("perspective %q: %w", name, reg.err)
	}
	return &Perspective{
		name:     name,
		handlers: reg.handlers,
	}, nil
}

func MustNew(name string, register func(r *Registry)) *Perspective {
	p, err := New(name, register)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Perspective) Name() string {
	return p.name
}

// TaskIDs returns every registered id, sorted.
func (p *Perspective) TaskIDs() []string {
	ids := make([]string, 0, len(p.handlers))
	for id := range p.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p *Perspective) Lookup(id string) (Handler, bool) {
	h, ok := p.handlers[id]
	return h, ok
}

// Resolve turns an activity into an executable interaction. Interactions are
// returned unchanged; actions are looked up by id and their handler is called
// with the action's params.
func (p *Perspective) Resolve(activity contractx.Activity) (contractx.Interaction, error) {
	switch v := activity.(type) {
	case contractx.Interaction:
		return v, nil
	case contractx.Action:
		return p.resolveAction(v)
	case *contractx.Action:
		if v == nil {
			return nil, fmt.Errorf("%w: nil action", contractx.ErrNotInteraction)
		}
		return p.resolveAction(*v)
	case nil:
		return nil, fmt.Errorf("%w: nil activity", contractx.ErrNotInteraction)
	default:
		return nil, fmt.Errorf("%w: unsupported activity %T", contractx.ErrNotInteraction, activity)
	}
}

func (p *Perspective) resolveAction(action contractx.Action) (contractx.Interaction, error) {
	h, ok := p.Lookup(action.ID())
	if !ok {
		return nil, &UnknownTaskError{
			TaskID:      action.ID(),
			Perspective: p.name,
			Registered:  p.TaskIDs(),
		}
	}
	return h(action.Params()), nil
}

// UnknownTaskError occurs when an action's id has no handler in the
// perspective it is resolved against.
type UnknownTaskError struct {
	TaskID      string
	Perspective string
	Registered  []string
}

func (e *UnknownTaskError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: no handler found for task %q in %q perspective", contractx.ErrUnknownTask, e.TaskID, e.Perspective)
	b.WriteString("\n\nAlternatives:")
	if len(e.Registered) == 0 {
		b.WriteString("\n(none)")
	}
	for _, id := range e.Registered {
		b.WriteString("\n")
		b.WriteString(id)
	}
	return b.String()
}

func (e *UnknownTaskError) Is(target error) bool {
	return target == contractx.ErrUnknownTask
}
