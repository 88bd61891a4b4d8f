package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainTeam "foodnest/internal/domain/team"
	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/logger"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

// Service implements team management. Membership is role-checked: each
// listed user must exist and hold the list's role.
type Service struct {
	teamRepo domainTeam.Repository
	userRepo domainUser.Repository
}

// NewService creates a new team service
func NewService(teamRepo domainTeam.Repository, userRepo domainUser.Repository) *Service {
	return &Service{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateTeamRequest) (*TeamResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.checkMembers(ctx, req.Supervisors, req.Riders, req.Cooks); err != nil {
		return nil, err
	}

	team := &domainTeam.Team{
		Name:        utils.SanitizeString(req.Name),
		Supervisors: req.Supervisors,
		Riders:      req.Riders,
		Cooks:       req.Cooks,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	logger.Info("Team created",
		zap.String("team_id", team.ID.String()),
		zap.String("name", team.Name),
		zap.String("event", "team_created"),
	)

	return ToTeamResponse(team), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*TeamResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTeamResponse(team), nil
}

func (s *Service) List(ctx context.Context) ([]*TeamResponse, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*TeamResponse, 0, len(teams))
	for _, team := range teams {
		responses = append(responses, ToTeamResponse(team))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateTeamRequest) (*TeamResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = utils.SanitizeString(*req.Name)
	}
	if req.Supervisors != nil {
		team.Supervisors = req.Supervisors
	}
	if req.Riders != nil {
		team.Riders = req.Riders
	}
	if req.Cooks != nil {
		team.Cooks = req.Cooks
	}

	if err := s.checkMembers(ctx, team.Supervisors, team.Riders, team.Cooks); err != nil {
		return nil, err
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}

	logger.Info("Team updated",
		zap.String("team_id", team.ID.String()),
		zap.String("event", "team_updated"),
	)

	return ToTeamResponse(team), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Team deleted",
		zap.String("team_id", id.String()),
		zap.String("event", "team_deleted"),
	)

	return nil
}

func (s *Service) checkMembers(ctx context.Context, supervisors, riders, cooks []uuid.UUID) error {
	lists := []struct {
		role string
		ids  []uuid.UUID
	}{
		{domainUser.RoleSupervisor, supervisors},
		{domainUser.RoleRider, riders},
		{domainUser.RoleCook, cooks},
	}

	for _, list := range lists {
		for _, id := range list.ids {
			member, err := s.userRepo.GetByID(ctx, id)
			if err != nil {
				return appErrors.NewAppError("INVALID_MEMBER",
					fmt.Sprintf("User %s does not exist", id), domainTeam.ErrInvalidMemberRole)
			}
			if member.Role != list.role {
				return appErrors.NewAppError("INVALID_MEMBER",
					fmt.Sprintf("User %s is not a %s", id, list.role), domainTeam.ErrInvalidMemberRole)
			}
		}
	}
	return nil
}
