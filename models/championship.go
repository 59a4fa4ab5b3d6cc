package models

import "time"

// ChampionshipType selects the point scheme. Round-robin awards 3/1/0,
// every other type awards 1/0/0.
type ChampionshipType string

const (
	TypeRoundRobin ChampionshipType = "round_robin"
	TypeKnockout   ChampionshipType = "knockout"
	TypeGroups     ChampionshipType = "groups"
)

func (t ChampionshipType) Valid() bool {
	switch t {
	case TypeRoundRobin, TypeKnockout, TypeGroups:
		return true
	}
	return false
}

// WinPoints and DrawPoints implement the type-dependent scoring scheme.
func (t ChampionshipType) WinPoints() int {
	if t == TypeRoundRobin {
		return 3
	}
	return 1
}

func (t ChampionshipType) DrawPoints() int {
	if t == TypeRoundRobin {
		return 1
	}
	return 0
}

type ChampionshipStatus string

const (
	StatusCreated    ChampionshipStatus = "created"
	StatusInProgress ChampionshipStatus = "in_progress"
	StatusPaused     ChampionshipStatus = "paused"
	StatusFinished   ChampionshipStatus = "finished"
)

// GenerationConfig records the last fixture-generation call made against a
// championship, so a schedule can be grown incrementally with the same settings.
type GenerationConfig struct {
	Mode           string    `json:"mode"`
	TotalRounds    int       `json:"total_rounds,omitempty"`
	MatchesPerTeam int       `json:"matches_per_team,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// Championship is the aggregate document: teams and matches are nested and the
// whole record is read and written as one unit. Ownership (the user id) lives
// on the store document, not on the aggregate itself.
type Championship struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Type           ChampionshipType   `json:"type"`
	Status         ChampionshipStatus `json:"status"`
	Teams          []Team             `json:"teams"`
	Matches        []Match            `json:"matches"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	FinishedAt     *time.Time         `json:"finished_at,omitempty"`
	LastGeneration *GenerationConfig  `json:"last_generation,omitempty"`

	BadgeKey *string `json:"badge_key,omitempty"`
	BadgeURL *string `json:"badge_url,omitempty"`
}

// TeamByID returns the nested team, or nil.
func (c *Championship) TeamByID(id string) *Team {
	for i := range c.Teams {
		if c.Teams[i].ID == id {
			return &c.Teams[i]
		}
	}
	return nil
}

// MatchByID returns the nested match, or nil.
func (c *Championship) MatchByID(id string) *Match {
	for i := range c.Matches {
		if c.Matches[i].ID == id {
			return &c.Matches[i]
		}
	}
	return nil
}

// TeamInAnyMatch reports whether the team id appears on either side of any
// match, played or not.
func (c *Championship) TeamInAnyMatch(id string) bool {
	for i := range c.Matches {
		if c.Matches[i].HomeTeamID == id || c.Matches[i].AwayTeamID == id {
			return true
		}
	}
	return false
}
