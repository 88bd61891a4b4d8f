package team

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainTeam "foodnest/internal/domain/team"
	domainUser "foodnest/internal/domain/user"
	appErrors "foodnest/pkg/errors"
)

type fakeTeamRepo struct {
	teams map[uuid.UUID]*domainTeam.Team
}

func (r *fakeTeamRepo) Create(_ context.Context, team *domainTeam.Team) error {
	for _, existing := range r.teams {
		if existing.Name == team.Name {
			return domainTeam.ErrTeamAlreadyExists
		}
	}
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id uuid.UUID) (*domainTeam.Team, error) {
	if team, ok := r.teams[id]; ok {
		copied := *team
		return &copied, nil
	}
	return nil, domainTeam.ErrTeamNotFound
}

func (r *fakeTeamRepo) GetAll(_ context.Context) ([]*domainTeam.Team, error) {
	var out []*domainTeam.Team
	for _, team := range r.teams {
		copied := *team
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *domainTeam.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return domainTeam.ErrTeamNotFound
	}
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.teams[id]; !ok {
		return domainTeam.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(context.Context, string) (*domainUser.User, error) {
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(context.Context) ([]*domainUser.User, error)            { return nil, nil }
func (r *fakeUserRepo) GetByRole(context.Context, string) ([]*domainUser.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(context.Context, *domainUser.User) error                { return nil }
func (r *fakeUserRepo) UpdatePassword(context.Context, uuid.UUID, string) error       { return nil }
func (r *fakeUserRepo) UpdatePayroll(context.Context, *domainUser.User) error         { return nil }
func (r *fakeUserRepo) Delete(context.Context, uuid.UUID) error                       { return nil }

func newTestService(t *testing.T) (*Service, uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()

	teamRepo := &fakeTeamRepo{teams: make(map[uuid.UUID]*domainTeam.Team)}
	userRepo := &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}

	ctx := context.Background()
	supervisor := &domainUser.User{Email: "sup@foodnest.io", Role: domainUser.RoleSupervisor}
	rider := &domainUser.User{Email: "rider@foodnest.io", Role: domainUser.RoleRider}
	cook := &domainUser.User{Email: "cook@foodnest.io", Role: domainUser.RoleCook}
	require.NoError(t, userRepo.Create(ctx, supervisor))
	require.NoError(t, userRepo.Create(ctx, rider))
	require.NoError(t, userRepo.Create(ctx, cook))

	return NewService(teamRepo, userRepo), supervisor.ID, rider.ID, cook.ID
}

func TestCreateTeamWithRoleCheckedMembers(t *testing.T) {
	svc, supID, riderID, cookID := newTestService(t)

	created, err := svc.Create(context.Background(), &CreateTeamRequest{
		Name:        "Station One",
		Supervisors: []uuid.UUID{supID},
		Riders:      []uuid.UUID{riderID},
		Cooks:       []uuid.UUID{cookID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Station One", created.Name)
	assert.Equal(t, []uuid.UUID{cookID}, created.Cooks)
}

func TestCreateTeamRejectsWrongRole(t *testing.T) {
	svc, supID, riderID, _ := newTestService(t)

	// A rider listed as a cook fails the membership check.
	_, err := svc.Create(context.Background(), &CreateTeamRequest{
		Name:        "Station One",
		Supervisors: []uuid.UUID{supID},
		Cooks:       []uuid.UUID{riderID},
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_MEMBER", appErr.Code)
	assert.ErrorIs(t, err, domainTeam.ErrInvalidMemberRole)
}

func TestCreateTeamRejectsUnknownMember(t *testing.T) {
	svc, supID, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), &CreateTeamRequest{
		Name:        "Station One",
		Supervisors: []uuid.UUID{supID},
		Cooks:       []uuid.UUID{uuid.New()},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainTeam.ErrInvalidMemberRole)
}

func TestUpdateTeamRevalidatesMembership(t *testing.T) {
	svc, supID, riderID, cookID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateTeamRequest{
		Name:        "Station One",
		Supervisors: []uuid.UUID{supID},
		Cooks:       []uuid.UUID{cookID},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, &UpdateTeamRequest{
		Cooks: []uuid.UUID{riderID},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainTeam.ErrInvalidMemberRole)

	updated, err := svc.Update(ctx, created.ID, &UpdateTeamRequest{
		Riders: []uuid.UUID{riderID},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{riderID}, updated.Riders)
	assert.Equal(t, []uuid.UUID{cookID}, updated.Cooks)
}
