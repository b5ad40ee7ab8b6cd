package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
)

// Actor is the caller on whose behalf an operation runs. The zero value is anonymous.
type Actor struct {
	UserID  uuid.UUID
	IsStaff bool
}

func (a Actor) Anonymous() bool { return a.UserID == uuid.Nil }

// ActorFromContext reads the identity attached by the auth middleware.
func ActorFromContext(ctx context.Context) Actor {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return Actor{}
	}
	return Actor{UserID: rd.UserID, IsStaff: rd.IsStaff}
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

type Paged[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}
