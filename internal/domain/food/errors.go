package food

import "errors"

var (
	ErrFoodNotFound     = errors.New("food item not found")
	ErrComboNotFound    = errors.New("combo not found")
	ErrInvalidComboItem = errors.New("one or more combo items are invalid")
	ErrInvalidStatus    = errors.New("invalid combo status")
)
