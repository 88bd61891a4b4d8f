package team

import "errors"

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamAlreadyExists = errors.New("team already exists")
	ErrInvalidMemberRole = errors.New("one or more member IDs are invalid or have a different role")
)
