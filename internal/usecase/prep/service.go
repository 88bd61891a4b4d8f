package prep

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainFood "foodnest/internal/domain/food"
	domainPrep "foodnest/internal/domain/prep"
	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/logger"
	"foodnest/internal/realtime"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

// validTransitions encodes the forward-only prep lifecycle. A request never
// moves backwards and a picked request is terminal.
var validTransitions = map[domainPrep.Status]domainPrep.Status{
	domainPrep.StatusQueued:     domainPrep.StatusProcessing,
	domainPrep.StatusProcessing: domainPrep.StatusReady,
	domainPrep.StatusReady:      domainPrep.StatusPicked,
}

// Service implements the prep-request workflow: supervisors hand food cards
// to cooks, cooks walk them through the status lifecycle, and every change is
// fanned out on the realtime feed.
type Service struct {
	prepRepo domainPrep.Repository
	foodRepo domainFood.Repository
	userRepo domainUser.Repository
	hub      *realtime.Hub
}

// NewService creates a new prep request service
func NewService(
	prepRepo domainPrep.Repository,
	foodRepo domainFood.Repository,
	userRepo domainUser.Repository,
	hub *realtime.Hub,
) *Service {
	return &Service{
		prepRepo: prepRepo,
		foodRepo: foodRepo,
		userRepo: userRepo,
		hub:      hub,
	}
}

// Create snapshots the food card and queues it for the cook. The snapshot is
// frozen at this point; later menu edits do not touch open requests.
func (s *Service) Create(ctx context.Context, requestedBy uuid.UUID, req *CreatePrepRequest) (*PrepResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	item, err := s.foodRepo.GetByID(ctx, req.FoodID)
	if err != nil {
		return nil, err
	}

	cook, err := s.userRepo.GetByID(ctx, req.CookID)
	if err != nil {
		return nil, err
	}
	if cook.Role != domainUser.RoleCook {
		return nil, appErrors.NewAppError("INVALID_COOK",
			"Assigned user is not a cook", domainUser.ErrInvalidUserRole)
	}

	request := &domainPrep.PrepRequest{
		FoodID:            item.ID,
		FoodSnapshot:      snapshotFood(item),
		CookID:            req.CookID,
		RequestedBy:       requestedBy,
		Status:            domainPrep.StatusQueued,
		QuantityToPrepare: req.QuantityToPrepare,
		Notes:             utils.SanitizeText(req.Notes),
	}
	if err := s.prepRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Prep request created",
		zap.String("prep_id", request.ID.String()),
		zap.String("food_id", request.FoodID.String()),
		zap.String("cook_id", request.CookID.String()),
		zap.String("event", "prep_request_created"),
	)

	response := ToPrepResponse(request)
	s.hub.PublishPrepEvent("prep_request_created", request.CookID, response)

	return response, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PrepResponse, error) {
	request, err := s.prepRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPrepResponse(request), nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*PrepResponse, error) {
	domainFilter := domainPrep.Filter{CookID: filter.CookID}
	if filter.Status != nil {
		status := domainPrep.Status(*filter.Status)
		switch status {
		case domainPrep.StatusQueued, domainPrep.StatusProcessing,
			domainPrep.StatusReady, domainPrep.StatusPicked:
			domainFilter.Status = &status
		default:
			return nil, appErrors.NewAppError("VALIDATION_ERROR",
				fmt.Sprintf("Unknown status %q", *filter.Status), domainPrep.ErrInvalidStatus)
		}
	}

	requests, err := s.prepRepo.List(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]*PrepResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, ToPrepResponse(request))
	}
	return responses, nil
}

// Update applies a partial update. Status moves one step forward at a time
// through queued, processing, ready, picked.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdatePrepRequest) (*PrepResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	request, err := s.prepRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		next := domainPrep.Status(*req.Status)
		if next != request.Status {
			if validTransitions[request.Status] != next {
				return nil, appErrors.NewAppError("INVALID_TRANSITION",
					fmt.Sprintf("Cannot move a %s request to %s", request.Status, next),
					domainPrep.ErrInvalidStatusTransition)
			}
			request.Status = next
		}
	}
	if req.QuantityToPrepare != nil {
		request.QuantityToPrepare = *req.QuantityToPrepare
	}
	if req.Notes != nil {
		request.Notes = utils.SanitizeText(*req.Notes)
	}

	if err := s.prepRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Prep request updated",
		zap.String("prep_id", request.ID.String()),
		zap.String("status", string(request.Status)),
		zap.String("event", "prep_request_updated"),
	)

	response := ToPrepResponse(request)
	s.hub.PublishPrepEvent("prep_request_updated", request.CookID, response)

	return response, nil
}

func snapshotFood(item *domainFood.FoodItem) domainPrep.FoodSnapshot {
	return domainPrep.FoodSnapshot{
		Name:          item.Name,
		Price:         item.Price,
		Category:      item.Category,
		Tax:           item.Tax,
		Available:     item.Available,
		ImageURL:      item.ImageURL,
		RawMaterials:  item.RawMaterials,
		TotalQuantity: item.TotalQuantity,
		PerServing:    item.PerServing,
	}
}
