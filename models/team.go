package models

// Team belongs to exactly one championship. Players keep roster insertion
// order; the order carries no ranking meaning.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   *string  `json:"color,omitempty"`
	Players []Player `json:"players"`

	BadgeKey *string `json:"badge_key,omitempty"`
	BadgeURL *string `json:"badge_url,omitempty"`
}

// PlayerByID returns the rostered player, or nil.
func (t *Team) PlayerByID(id string) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}
