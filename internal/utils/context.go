// Package utils holds small helpers shared by the server and the CLI:
// context keys for the authenticated actor, JSON response writing, JWT
// signing and parsing, the resty-based API client and trace ids.
package utils

import (
	"context"

	"github.com/MKhiriev/go-privacy-keeper/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// ActorCtxKey is the key used to store the authenticated [models.Actor] in
// the context. It is written by the HTTP auth middleware and read by
// handlers through GetActorFromContext.
var ActorCtxKey = contextKey("actor")

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, ActorCtxKey, actor)
}

// GetActorFromContext returns the actor stored by [WithActor]. ok is false
// when the context carries no actor.
func GetActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorCtxKey).(models.Actor)
	return actor, ok
}
