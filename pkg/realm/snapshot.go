package realm

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrUnknownClan    = errors.New("unknown clan")
	ErrUnknownKingdom = errors.New("unknown kingdom")
)

type factionPair struct{ a, b FactionID }

func orderedPair(a, b FactionID) factionPair {
	if b < a {
		a, b = b, a
	}
	return factionPair{a, b}
}

// noKingdom keys settlement values computed for a clan outside any kingdom.
const noKingdom FactionID = ""

// Snapshot is an in-memory World built from decoded data or assembled by hand.
// It must not be mutated while scoring calls are reading it.
type Snapshot struct {
	now    CampaignTime
	player *Clan

	heroes         map[string]*Hero
	clans          map[FactionID]*Clan
	kingdoms       map[FactionID]*Kingdom
	fortifications map[string]*Fortification
	wars           map[string]*War

	relations       map[factionPair]int
	alliances       map[factionPair]bool
	settlementValue map[FactionID]map[FactionID]float64
	fortValue       map[string]map[FactionID]float64
	enemyPower      map[FactionID]float64
	powerRatio      map[FactionID]float64
	mercenaryLeave  map[FactionID]float64
}

// NewSnapshot returns an empty world at campaign time now.
func NewSnapshot(now CampaignTime) *Snapshot {
	return &Snapshot{
		now:             now,
		heroes:          make(map[string]*Hero),
		clans:           make(map[FactionID]*Clan),
		kingdoms:        make(map[FactionID]*Kingdom),
		fortifications:  make(map[string]*Fortification),
		wars:            make(map[string]*War),
		relations:       make(map[factionPair]int),
		alliances:       make(map[factionPair]bool),
		settlementValue: make(map[FactionID]map[FactionID]float64),
		fortValue:       make(map[string]map[FactionID]float64),
		enemyPower:      make(map[FactionID]float64),
		powerRatio:      make(map[FactionID]float64),
		mercenaryLeave:  make(map[FactionID]float64),
	}
}

// AddHero registers h.
func (s *Snapshot) AddHero(h *Hero) *Hero {
	s.heroes[h.ID] = h
	return h
}

// AddKingdom registers k.
func (s *Snapshot) AddKingdom(k *Kingdom) *Kingdom {
	s.kingdoms[k.ID] = k
	return k
}

// AddClan registers c and adds it to the member list of c.Kingdom.
func (s *Snapshot) AddClan(c *Clan) *Clan {
	s.clans[c.ID] = c
	if c.Kingdom != nil && !c.Kingdom.HasClan(c) {
		c.Kingdom.Clans = append(c.Kingdom.Clans, c)
	}
	return c
}

// AddFortification registers f under its owner and the owner's kingdom.
func (s *Snapshot) AddFortification(f *Fortification) *Fortification {
	s.fortifications[f.ID] = f
	if f.Owner != nil {
		f.Owner.Fortifications = append(f.Owner.Fortifications, f)
		if k := f.Owner.Kingdom; k != nil {
			k.Fortifications = append(k.Fortifications, f)
		}
	}
	return f
}

// AddWar registers w with every kingdom on either side.
func (s *Snapshot) AddWar(w *War) *War {
	if w.Tallies == nil {
		w.Tallies = make(map[FactionID]WarTally)
	}
	s.wars[w.ID] = w
	for _, side := range [][]FactionID{w.Side1, w.Side2} {
		for _, id := range side {
			if k, ok := s.kingdoms[id]; ok {
				k.Wars = append(k.Wars, w)
			}
		}
	}
	return w
}

// SetPlayerClan marks c as the player's clan.
func (s *Snapshot) SetPlayerClan(c *Clan) { s.player = c }

// SetRelation sets the symmetric relation between two clans.
func (s *Snapshot) SetRelation(a, b *Clan, value int) {
	s.relations[orderedPair(a.ID, b.ID)] = value
}

// SetAllied marks two factions as allies.
func (s *Snapshot) SetAllied(a, b FactionID) {
	s.alliances[orderedPair(a, b)] = true
}

// SetSettlementValue records the value of c's settlements under k (nil for
// no kingdom).
func (s *Snapshot) SetSettlementValue(c *Clan, k *Kingdom, value float64) {
	byKingdom, ok := s.settlementValue[c.ID]
	if !ok {
		byKingdom = make(map[FactionID]float64)
		s.settlementValue[c.ID] = byKingdom
	}
	byKingdom[kingdomKey(k)] = value
}

// SetFortificationValue records the value of f to kingdom k.
func (s *Snapshot) SetFortificationValue(f *Fortification, k *Kingdom, value float64) {
	byKingdom, ok := s.fortValue[f.ID]
	if !ok {
		byKingdom = make(map[FactionID]float64)
		s.fortValue[f.ID] = byKingdom
	}
	byKingdom[k.ID] = value
}

// SetEnemyPower overrides the derived enemy power of k.
func (s *Snapshot) SetEnemyPower(k *Kingdom, power float64) { s.enemyPower[k.ID] = power }

// SetPowerRatio overrides the derived power ratio of k.
func (s *Snapshot) SetPowerRatio(k *Kingdom, ratio float64) { s.powerRatio[k.ID] = ratio }

// SetMercenaryLeaveScore records the world's score for mercenary clan c
// leaving its kingdom.
func (s *Snapshot) SetMercenaryLeaveScore(c *Clan, score float64) { s.mercenaryLeave[c.ID] = score }

func kingdomKey(k *Kingdom) FactionID {
	if k == nil {
		return noKingdom
	}
	return k.ID
}

// Clan looks up a clan by id.
func (s *Snapshot) Clan(id FactionID) (*Clan, error) {
	c, ok := s.clans[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClan, id)
	}
	return c, nil
}

// Kingdom looks up a kingdom by id.
func (s *Snapshot) Kingdom(id FactionID) (*Kingdom, error) {
	k, ok := s.kingdoms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKingdom, id)
	}
	return k, nil
}

// Clans returns every clan sorted by id.
func (s *Snapshot) Clans() []*Clan {
	out := make([]*Clan, 0, len(s.clans))
	for _, c := range s.clans {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Kingdoms returns every kingdom sorted by id.
func (s *Snapshot) Kingdoms() []*Kingdom {
	out := make([]*Kingdom, 0, len(s.kingdoms))
	for _, k := range s.kingdoms {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Snapshot) sortedHeroes() []*Hero {
	out := make([]*Hero, 0, len(s.heroes))
	for _, h := range s.heroes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Wars returns every war sorted by id.
func (s *Snapshot) Wars() []*War {
	out := make([]*War, 0, len(s.wars))
	for _, w := range s.wars {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- World ---

func (s *Snapshot) Now() CampaignTime { return s.now }

func (s *Snapshot) PlayerClan() *Clan { return s.player }

func (s *Snapshot) Relation(a, b *Clan) int {
	if a == nil || b == nil || a == b {
		return 0
	}
	return s.relations[orderedPair(a.ID, b.ID)]
}

func (s *Snapshot) SettlementValue(c *Clan, k *Kingdom) float64 {
	return s.settlementValue[c.ID][kingdomKey(k)]
}

func (s *Snapshot) FortificationValue(f *Fortification, k *Kingdom) float64 {
	return s.fortValue[f.ID][k.ID]
}

func (s *Snapshot) ReliabilityConstant(h *Hero) float64 {
	if h == nil {
		return 1
	}
	return h.Reliability
}

// TotalEnemyPower sums the strength of every distinct faction opposing k in
// its wars unless an explicit value was recorded. A clan fighting for a
// kingdom counts as that kingdom.
func (s *Snapshot) TotalEnemyPower(k *Kingdom) float64 {
	if p, ok := s.enemyPower[k.ID]; ok {
		return p
	}
	seen := make(map[FactionID]bool)
	total := 0.0
	for _, w := range k.Wars {
		_, opposition, ok := w.Sides(k.ID)
		if !ok {
			continue
		}
		for _, id := range opposition {
			id = s.mapFaction(id)
			if seen[id] {
				continue
			}
			seen[id] = true
			total += s.factionStrength(id)
		}
	}
	return total
}

// PowerRatioToEnemies is k's strength over its enemies' unless an explicit
// value was recorded. A kingdom without enemy power has an infinite ratio.
func (s *Snapshot) PowerRatioToEnemies(k *Kingdom) float64 {
	if r, ok := s.powerRatio[k.ID]; ok {
		return r
	}
	enemy := s.TotalEnemyPower(k)
	if enemy <= 0 {
		return math.Inf(1)
	}
	return k.TotalStrength / enemy
}

func (s *Snapshot) factionStrength(id FactionID) float64 {
	if k, ok := s.kingdoms[id]; ok {
		return k.TotalStrength
	}
	if c, ok := s.clans[id]; ok {
		return c.TotalStrength
	}
	return 0
}

// --- Diplomacy ---

func (s *Snapshot) IsClan(id FactionID) bool {
	_, ok := s.clans[id]
	return ok
}

// mapFaction resolves a clan to the kingdom it fights for.
func (s *Snapshot) mapFaction(id FactionID) FactionID {
	if c, ok := s.clans[id]; ok && c.Kingdom != nil {
		return c.Kingdom.ID
	}
	return id
}

func (s *Snapshot) AtWar(a, b FactionID) bool {
	a, b = s.mapFaction(a), s.mapFaction(b)
	if a == b {
		return false
	}
	for _, w := range s.wars {
		_, opposition, ok := w.Sides(a)
		if ok && containsFaction(opposition, b) {
			return true
		}
	}
	return false
}

func (s *Snapshot) Allied(a, b FactionID) bool {
	a, b = s.mapFaction(a), s.mapFaction(b)
	if a == b {
		return true
	}
	return s.alliances[orderedPair(a, b)]
}

func (s *Snapshot) MercenaryLeaveScore(c *Clan, _ *Kingdom) float64 {
	return s.mercenaryLeave[c.ID]
}
