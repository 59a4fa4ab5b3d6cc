package models

// Player is owned by exactly one team. Card counters are mutated only by
// result recording; identity fields change only through explicit edits.
type Player struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Skill       int     `json:"skill"` // 1..5
	Position    string  `json:"position,omitempty"`
	YellowCards int     `json:"yellow_cards"`
	RedCards    int     `json:"red_cards"`
	NationalID  *string `json:"national_id,omitempty"`
}

const (
	MinPlayerSkill = 1
	MaxPlayerSkill = 5
)
