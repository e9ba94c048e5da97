package model

// Player is an entry in the NFL player directory. Defenses are players too,
// their ID is the team abbreviation and they usually have no FullName.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	FullName  string
	Position  Position
	Team      string
	Active    bool
}

// DisplayName returns the full name, falling back to the last name and then
// the player id.
func (p *Player) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.LastName != "" {
		return p.LastName
	}
	return p.ID
}

// PlayerDirectory maps player ids to players. It is loaded once per run and
// passed explicitly to anything that needs to resolve a player id.
type PlayerDirectory map[string]Player

// Lookup returns the player with the given id, if present.
func (d PlayerDirectory) Lookup(id string) (*Player, bool) {
	p, found := d[id]
	if !found {
		return nil, false
	}
	return &p, true
}
