// Package memory gives an actor a scoped key/value store, granted as an
// ability and driven through the Remember and Recall interactions.
package memory

import (
	"strings"

	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
)

// AbilityName is the name Memory is granted under.
const AbilityName = "memory"

// Rememberer stores values by item name.
type Rememberer interface {
	Remember(item string, value any)
}

// Recaller reads values back by item name.
type Recaller interface {
	Recall(item string) (any, error)
}

// Memory is owned by a single actor and is not safe for concurrent use. The
// zero value is ready to use.
type Memory struct {
	values map[string]any
	order  []string
}

func New() *Memory {
	return &Memory{values: make(map[string]any, 8)}
}

// Abilities returns the bundle that grants m to an actor.
func (m *Memory) Abilities() contractx.Abilities {
	return contractx.Abilities{AbilityName: m}
}

// Remember stores value under item, overwriting anything already there.
func (m *Memory) Remember(item string, value any) {
	if m.values == nil {
		m.values = make(map[string]any, 8)
	}
	if _, exists := m.values[item]; !exists {
		m.order = append(m.order, item)
	}
	m.values[item] = value
}

func (m *Memory) Recall(item string) (any, error) {
	value, ok := m.values[item]
	if !ok {
		return nil, &NothingRememberedError{
			Item:  item,
			Known: m.Items(),
		}
	}
	return value, nil
}

// Items returns the remembered item names in the order they were first stored.
func (m *Memory) Items() []string {
	return append([]string(nil), m.order...)
}

// NothingRememberedError occurs when an item is recalled that was never
// remembered.
type NothingRememberedError struct {
	Item  string
	Known []string
}

func (e *NothingRememberedError) Error() string {
	var b strings.Builder
	b.WriteString(contractx.ErrNothingRemembered.Error())
	b.WriteString(": I do not remember anything about '")
	b.WriteString(e.Item)
	b.WriteString("'.\n\nHere's what I do know about:")
	if len(e.Known) == 0 {
		b.WriteString("\n(nothing yet)")
	}
	for _, name := range e.Known {
		b.WriteString("\n- ")
		b.WriteString(name)
	}
	return b.String()
}

func (e *NothingRememberedError) Is(target error) bool {
	return target == contractx.ErrNothingRemembered
}
