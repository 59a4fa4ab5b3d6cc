package services

import "errors"

// Shared sentinel errors used across services and HTTP mapping.
var (
	// Validation and business rules
	ErrChampionshipNameRequired = errors.New("championship name is required")
	ErrInvalidChampionshipType  = errors.New("invalid championship type")
	ErrTeamNameRequired         = errors.New("team name is required")
	ErrTeamNameTaken            = errors.New("team name is already in use in this championship")
	ErrTeamInMatches            = errors.New("team appears in matches and cannot be removed")
	ErrPlayerNameRequired       = errors.New("player name is required")
	ErrInvalidPlayerSkill       = errors.New("player skill must be between 1 and 5")
	ErrInvalidTotalRounds       = errors.New("total rounds must be positive")
	ErrInvalidMatchesPerTeam    = errors.New("matches per team must be positive")
	ErrMatchesPerTeamTooHigh    = errors.New("matches per team exceeds what the team count and rounds allow")
	ErrScoresRequired           = errors.New("both home and away scores are required")
	ErrNegativeScore            = errors.New("scores must not be negative")

	// Entity lookups inside the aggregate
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")

	// Lifecycle transitions
	ErrAlreadyFinished      = errors.New("championship is already finished")
	ErrFinishedIsImmutable  = errors.New("championship is finished and cannot be modified")
	ErrPauseRequiresRunning = errors.New("only an in-progress championship can be paused")
	ErrResumeRequiresPaused = errors.New("only a paused championship can be resumed")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
)
