package combo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainFood "foodnest/internal/domain/food"
	"foodnest/internal/logger"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

// Service implements combo management. Every referenced food item must exist
// at create and update time.
type Service struct {
	comboRepo domainFood.ComboRepository
	foodRepo  domainFood.Repository
}

// NewService creates a new combo service
func NewService(comboRepo domainFood.ComboRepository, foodRepo domainFood.Repository) *Service {
	return &Service{
		comboRepo: comboRepo,
		foodRepo:  foodRepo,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateComboRequest) (*ComboResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.checkItemsExist(ctx, req.ItemIDs); err != nil {
		return nil, err
	}

	status := domainFood.ComboStatusActive
	if req.Status != "" {
		status = req.Status
	}

	combo := &domainFood.Combo{
		Name:   utils.SanitizeString(req.Name),
		Price:  req.Price,
		Status: status,
	}
	if err := s.comboRepo.Create(ctx, combo, req.ItemIDs); err != nil {
		return nil, err
	}

	logger.Info("Combo created",
		zap.String("combo_id", combo.ID.String()),
		zap.Int("items", len(req.ItemIDs)),
		zap.String("event", "combo_created"),
	)

	return s.Get(ctx, combo.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ComboResponse, error) {
	combo, err := s.comboRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToComboResponse(combo), nil
}

func (s *Service) List(ctx context.Context) ([]*ComboResponse, error) {
	combos, err := s.comboRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*ComboResponse, 0, len(combos))
	for _, combo := range combos {
		responses = append(responses, ToComboResponse(combo))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateComboRequest) (*ComboResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	combo, err := s.comboRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(combo.Items))
	for _, item := range combo.Items {
		itemIDs = append(itemIDs, item.ID)
	}

	if req.Name != nil {
		combo.Name = utils.SanitizeString(*req.Name)
	}
	if req.Price != nil {
		combo.Price = *req.Price
	}
	if req.Status != nil {
		combo.Status = *req.Status
	}
	if req.ItemIDs != nil {
		if err := s.checkItemsExist(ctx, req.ItemIDs); err != nil {
			return nil, err
		}
		itemIDs = req.ItemIDs
	}

	if err := s.comboRepo.Update(ctx, combo, itemIDs); err != nil {
		return nil, err
	}

	logger.Info("Combo updated",
		zap.String("combo_id", combo.ID.String()),
		zap.String("event", "combo_updated"),
	)

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.comboRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Combo deleted",
		zap.String("combo_id", id.String()),
		zap.String("event", "combo_deleted"),
	)

	return nil
}

func (s *Service) checkItemsExist(ctx context.Context, itemIDs []uuid.UUID) error {
	items, err := s.foodRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve combo items: %w", err)
	}

	found := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		found[item.ID] = struct{}{}
	}
	for _, id := range itemIDs {
		if _, ok := found[id]; !ok {
			return appErrors.NewAppError("ITEM_NOT_FOUND",
				fmt.Sprintf("Food item %s does not exist", id), domainFood.ErrFoodNotFound)
		}
	}
	return nil
}
