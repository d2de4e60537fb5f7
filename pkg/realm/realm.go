// Package realm holds the read-only world model the diplomacy scorer works
// over: clans, kingdoms, wars and fortifications as seen at one instant of
// the campaign.
package realm

// FactionID identifies a clan or a kingdom. Both share one namespace since war
// sides mix the two.
type FactionID string

// Culture is an opaque culture tag. Two factions share a culture when their
// tags are equal.
type Culture string

// CampaignTime is a point on the campaign clock, in days since the campaign
// started.
type CampaignTime float64

// Elapsed returns the number of days from t until now.
func (t CampaignTime) Elapsed(now CampaignTime) float64 {
	return float64(now - t)
}

// Hero is a clan leader. Reliability is the honor-derived constant the world
// reports for this hero.
type Hero struct {
	ID          string
	Name        string
	Reliability float64
}

// Fortification is a town or castle owned by a clan.
type Fortification struct {
	ID     string
	Name   string
	Owner  *Clan
	IsTown bool
}

// Clan is a noble family. Kingdom is nil for unaffiliated clans.
type Clan struct {
	ID                      FactionID
	Name                    string
	Culture                 Culture
	Kingdom                 *Kingdom
	CommanderHeroes         int
	TotalStrength           float64
	Fortifications          []*Fortification
	LastFactionChange       CampaignTime
	Leader                  *Hero
	IsMinorFaction          bool
	IsUnderMercenaryService bool
}

// IsRulingClan reports whether c rules the kingdom it belongs to.
func (c *Clan) IsRulingClan() bool {
	return c.Kingdom != nil && c.Kingdom.RulingClan == c
}

// Kingdom is a top-level faction made of member clans, one of which rules.
type Kingdom struct {
	ID             FactionID
	Name           string
	Culture        Culture
	RulingClan     *Clan
	Clans          []*Clan
	Fortifications []*Fortification
	TotalStrength  float64
	Wars           []*War
}

// HasClan reports whether c is a member of k.
func (k *Kingdom) HasClan(c *Clan) bool {
	for _, member := range k.Clans {
		if member == c {
			return true
		}
	}
	return false
}

// WarTally is one faction's running totals within a war.
type WarTally struct {
	WarScore         float64
	SuccessfulRaids  int
	SuccessfulSieges int
	Casualties       int
}

// War is an active conflict between two disjoint sets of factions.
type War struct {
	ID      string
	Side1   []FactionID
	Side2   []FactionID
	Tallies map[FactionID]WarTally
}

// Tally returns the totals of the given faction, zero if it has none yet.
func (w *War) Tally(id FactionID) WarTally {
	return w.Tallies[id]
}

// Sides returns the side containing id and the opposing side. ok is false
// when id is on neither side.
func (w *War) Sides(id FactionID) (own, opposition []FactionID, ok bool) {
	if containsFaction(w.Side1, id) {
		return w.Side1, w.Side2, true
	}
	if containsFaction(w.Side2, id) {
		return w.Side2, w.Side1, true
	}
	return nil, nil, false
}

func containsFaction(side []FactionID, id FactionID) bool {
	for _, f := range side {
		if f == id {
			return true
		}
	}
	return false
}

// World answers the queries whose algorithms belong to the simulation rather
// than to the scorer. Implementations must be safe for concurrent readers as
// long as the underlying state is not mutated.
type World interface {
	// Now is the current campaign time.
	Now() CampaignTime
	// PlayerClan is the player's clan, or nil.
	PlayerClan() *Clan
	// Relation is the signed relation between two clans, roughly [-100, 100].
	Relation(a, b *Clan) int
	// SettlementValue is the value of c's settlements were it a member of k.
	// k may be nil for "no kingdom".
	SettlementValue(c *Clan, k *Kingdom) float64
	// FortificationValue is the value of f to faction k.
	FortificationValue(f *Fortification, k *Kingdom) float64
	// ReliabilityConstant is the honor-derived constant for h.
	ReliabilityConstant(h *Hero) float64
	// PowerRatioToEnemies is k's military power divided by its enemies'.
	PowerRatioToEnemies(k *Kingdom) float64
	// TotalEnemyPower is the combined power of every faction at war with k.
	TotalEnemyPower(k *Kingdom) float64
}

// Diplomacy answers the relationship questions used when valuing barters.
type Diplomacy interface {
	World
	IsClan(id FactionID) bool
	AtWar(a, b FactionID) bool
	Allied(a, b FactionID) bool
	// MercenaryLeaveScore is the world's score for a mercenary clan leaving k.
	MercenaryLeaveScore(c *Clan, k *Kingdom) float64
}
