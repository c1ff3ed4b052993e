// Package actor runs activities against a perspective using a bundle of
// abilities.
package actor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
	perspectivex "github.com/tanpawarit/screenplay/screenplay/perspective"
)

const (
	defaultName        = "actor"
	unknownPerspective = "unknown"
)

// Option customizes an Actor.
type Option func(*Actor)

func WithName(name string) Option {
	return func(a *Actor) {
		if name != "" {
			a.name = name
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Actor) {
		a.logger = &logger
	}
}

// Actor holds a mutable ability bundle and the perspective its actions are
// resolved against. Actions run strictly one after another.
type Actor struct {
	name        string
	abilities   contractx.Abilities
	perspective *perspectivex.Perspective
	logger      *zerolog.Logger
}

var _ contractx.Performer = (*Actor)(nil)

// New creates an actor that owns abilities. A nil perspective resolves only
// plain interactions.
func New(abilities contractx.Abilities, perspective *perspectivex.Perspective, opts ...Option) *Actor {
	if abilities == nil {
		abilities = contractx.Abilities{}
	}
	if perspective == nil {
		perspective = perspectivex.MustNew(unknownPerspective, nil)
	}

	a := &Actor{
		name:        defaultName,
		abilities:   abilities,
		perspective: perspective,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.logger == nil {
		logger := log.Logger.With().Str("actor", a.name).Logger()
		a.logger = &logger
	}
	return a
}

func (a *Actor) Name() string { return a.name }

func (a *Actor) Perspective() *perspectivex.Perspective {
	return a.perspective
}

// Abilities returns the live ability bundle, not a copy.
func (a *Actor) Abilities() contractx.Abilities {
	return a.abilities
}

// AttemptsTo resolves and runs each activity in order, waiting for each to
// finish before resolving the next. The first failure aborts the sequence.
func (a *Actor) AttemptsTo(ctx context.Context, activities ...contractx.Activity) (*Actor, error) {
	for i, activity := range activities {
		if err := ctx.Err(); err != nil {
			return a, fmt.Errorf("attempt step %d: %w", i+1, err)
		}
		if _, err := a.run(ctx, activity); err != nil {
			return a, err
		}
	}
	return a, nil
}

// Perform is AttemptsTo without the fluent return, for use inside interactions.
func (a *Actor) Perform(ctx context.Context, activities ...contractx.Activity) error {
	_, err := a.AttemptsTo(ctx, activities...)
	return err
}

// Asks resolves question like a single step of AttemptsTo and returns its
// result.
func (a *Actor) Asks(ctx context.Context, question contractx.Activity) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.run(ctx, question)
}

// Through returns a new actor sharing this actor's abilities but resolving
// actions against perspective.
func (a *Actor) Through(perspective *perspectivex.Perspective) *Actor {
	return New(a.abilities, perspective, WithName(a.name), WithLogger(*a.logger))
}

// GainsAbilities merges extra into the bundle in place. Later grants replace
// earlier ones with the same name.
func (a *Actor) GainsAbilities(extra contractx.Abilities) *Actor {
	for name, ability := range extra {
		a.abilities[name] = ability
	}
	a.logger.Debug().Strs("abilities", extra.Names()).Msg("abilities granted")
	return a
}

func (a *Actor) run(ctx context.Context, activity contractx.Activity) (any, error) {
	description := contractx.Describe(activity)
	logger := a.logger.With().
		Str("perspective", a.perspective.Name()).
		Str("activity", description).
		Logger()

	interaction, err := a.perspective.Resolve(activity)
	if err != nil {
		logger.Error().Err(err).Msg("resolve activity")
		return nil, err
	}
	if interaction == nil {
		err := fmt.Errorf("%w: perspective %q produced nothing for %q", contractx.ErrNotInteraction, a.perspective.Name(), description)
		logger.Error().Err(err).Msg("resolve activity")
		return nil, err
	}

	logger.Debug().Msg("attempting")
	out, err := interaction(ctx, contractx.Scene{
		Actor:     a,
		Abilities: a.abilities,
	})
	if err != nil {
		logger.Error().Err(err).Msg("activity failed")
		return nil, err
	}
	return out, nil
}

// AsksFor is Asks with the answer asserted to T.
func AsksFor[T any](ctx context.Context, a *Actor, question contractx.Activity) (T, error) {
	var zero T
	out, err := a.Asks(ctx, question)
	if err != nil {
		return zero, err
	}
	answer, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: answer to %q is %T", contractx.ErrUnexpectedAnswer, contractx.Describe(question), out)
	}
	return answer, nil
}
