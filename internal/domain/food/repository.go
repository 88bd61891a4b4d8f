package food

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for food item persistence
type Repository interface {
	Create(ctx context.Context, item *FoodItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*FoodItem, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*FoodItem, error)
	GetAll(ctx context.Context) ([]*FoodItem, error)
	Update(ctx context.Context, item *FoodItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ComboRepository defines the interface for combo persistence
type ComboRepository interface {
	Create(ctx context.Context, combo *Combo, itemIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Combo, error)
	GetAll(ctx context.Context) ([]*Combo, error)
	Update(ctx context.Context, combo *Combo, itemIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
