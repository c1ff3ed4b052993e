package memory

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
)

type remember struct{}

type recall struct{}

var (
	// Remember builds interactions that store a value:
	//	Remember.That("user").Is("ada")
	Remember remember

	// Recall builds interactions that read a value back:
	//	Recall.About("user")
	Recall recall
)

// Fact is an item waiting for its value.
type Fact struct {
	item string
}

func (remember) That(item string) Fact {
	return Fact{item: item}
}

// Is returns an interaction that remembers value under the fact's item. It
// answers with the stored value.
func (f Fact) Is(value any) contractx.Interaction {
	item := f.item
	return func(ctx context.Context, scene contractx.Scene) (any, error) {
		m, err := contractx.Use[Rememberer](scene, AbilityName)
		if err != nil {
			return nil, fmt.Errorf("remember %q: %w", item, err)
		}
		m.Remember(item, value)
		return value, nil
	}
}

func (recall) About(item string) contractx.Interaction {
	return func(ctx context.Context, scene contractx.Scene) (any, error) {
		m, err := contractx.Use[Recaller](scene, AbilityName)
		if err != nil {
			return nil, fmt.Errorf("recall %q: %w", item, err)
		}
		return m.Recall(item)
	}
}

// RecallAs reads item from the memory granted in scene and asserts it to T.
// A remembered nil comes back as the zero value of T.
// It is meant for handlers that need a remembered value mid-interaction.
func RecallAs[T any](scene contractx.Scene, item string) (T, error) {
	var zero T
	m, err := contractx.Use[Recaller](scene, AbilityName)
	if err != nil {
		return zero, fmt.Errorf("recall %q: %w", item, err)
	}
	raw, err := m.Recall(item)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}
	value, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T", contractx.ErrUnexpectedAnswer, item, raw)
	}
	return value, nil
}
