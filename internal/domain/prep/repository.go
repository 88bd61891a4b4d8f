package prep

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows prep request listings
type Filter struct {
	CookID *uuid.UUID
	Status *Status
}

// Repository defines the interface for prep request persistence
type Repository interface {
	Create(ctx context.Context, req *PrepRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*PrepRequest, error)
	// List returns matching requests, newest first.
	List(ctx context.Context, filter Filter) ([]*PrepRequest, error)
	Update(ctx context.Context, req *PrepRequest) error
}
