package food

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainFood "foodnest/internal/domain/food"
	"foodnest/internal/logger"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

// Service implements menu item management. Image files live on disk through
// the ImageStore; the entity keeps their URL and path.
type Service struct {
	repo   domainFood.Repository
	images *ImageStore
}

// NewService creates a new food service
func NewService(repo domainFood.Repository, images *ImageStore) *Service {
	return &Service{
		repo:   repo,
		images: images,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateFoodRequest, image *multipart.FileHeader) (*FoodResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	materials, err := parseRawMaterials(req.RawMaterials)
	if err != nil {
		return nil, err
	}
	total, err := parseQuantity(req.TotalQuantity, "total_quantity")
	if err != nil {
		return nil, err
	}
	perServing, err := parseQuantity(req.PerServing, "per_serving")
	if err != nil {
		return nil, err
	}

	item := &domainFood.FoodItem{
		Name:          utils.SanitizeString(req.Name),
		Price:         req.Price,
		Category:      utils.SanitizeString(req.Category),
		Available:     true,
		Tax:           req.Tax,
		RawMaterials:  materials,
		TotalQuantity: total,
		PerServing:    perServing,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if image != nil {
		url, path, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		item.ImageURL = &url
		item.ImagePath = &path
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if item.ImagePath != nil {
			s.images.Remove(*item.ImagePath)
		}
		return nil, err
	}

	logger.Info("Food item created",
		zap.String("food_id", item.ID.String()),
		zap.String("name", item.Name),
		zap.String("event", "food_created"),
	)

	return ToFoodResponse(item), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*FoodResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToFoodResponse(item), nil
}

func (s *Service) List(ctx context.Context) ([]*FoodResponse, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*FoodResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToFoodResponse(item))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateFoodRequest, image *multipart.FileHeader) (*FoodResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = utils.SanitizeString(*req.Name)
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = utils.SanitizeString(*req.Category)
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.Tax != nil {
		item.Tax = *req.Tax
	}
	if req.RawMaterials != nil {
		materials, err := parseRawMaterials(*req.RawMaterials)
		if err != nil {
			return nil, err
		}
		item.RawMaterials = materials
	}
	if req.TotalQuantity != nil {
		total, err := parseQuantity(*req.TotalQuantity, "total_quantity")
		if err != nil {
			return nil, err
		}
		item.TotalQuantity = total
	}
	if req.PerServing != nil {
		perServing, err := parseQuantity(*req.PerServing, "per_serving")
		if err != nil {
			return nil, err
		}
		item.PerServing = perServing
	}

	var oldPath string
	if image != nil {
		url, path, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		if item.ImagePath != nil {
			oldPath = *item.ImagePath
		}
		item.ImageURL = &url
		item.ImagePath = &path
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if image != nil && item.ImagePath != nil {
			s.images.Remove(*item.ImagePath)
		}
		return nil, err
	}

	// The replaced file goes away only after the row is safely updated.
	if oldPath != "" {
		s.images.Remove(oldPath)
	}

	logger.Info("Food item updated",
		zap.String("food_id", item.ID.String()),
		zap.String("event", "food_updated"),
	)

	return ToFoodResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if item.ImagePath != nil {
		s.images.Remove(*item.ImagePath)
	}

	logger.Info("Food item deleted",
		zap.String("food_id", id.String()),
		zap.String("event", "food_deleted"),
	)

	return nil
}
