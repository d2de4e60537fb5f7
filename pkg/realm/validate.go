package realm

import (
	"fmt"
	"strings"
)

// ValidationError lists every way a snapshot breaks the world invariants the
// scorer relies on.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks the snapshot against the world invariants. Returns nil if
// valid, or a *ValidationError naming each problem.
func (s *Snapshot) Validate() error {
	verr := &ValidationError{}

	for _, c := range s.Clans() {
		validateClan(verr, s, c)
	}
	for _, k := range s.Kingdoms() {
		validateKingdom(verr, s, k)
	}
	for _, w := range s.Wars() {
		validateWar(verr, s, w)
	}
	for _, h := range s.sortedHeroes() {
		if h.Reliability <= 0 {
			verr.addf("hero %q: reliability %v must be positive", h.ID, h.Reliability)
		}
	}
	if s.player != nil {
		if _, ok := s.clans[s.player.ID]; !ok {
			verr.addf("player clan %q is not registered", s.player.ID)
		}
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

func validateClan(verr *ValidationError, s *Snapshot, c *Clan) {
	if c.CommanderHeroes < 0 {
		verr.addf("clan %q: negative commander hero count %d", c.ID, c.CommanderHeroes)
	}
	if c.CommanderHeroes > 0 && c.Leader == nil {
		verr.addf("clan %q: has heroes but no leader", c.ID)
	}
	if float64(c.LastFactionChange) > float64(s.now) {
		verr.addf("clan %q: last faction change %v is after now %v", c.ID, c.LastFactionChange, s.now)
	}
	if c.Kingdom != nil {
		if _, ok := s.kingdoms[c.Kingdom.ID]; !ok {
			verr.addf("clan %q: unknown kingdom %q", c.ID, c.Kingdom.ID)
		} else if !c.Kingdom.HasClan(c) {
			verr.addf("clan %q: missing from members of kingdom %q", c.ID, c.Kingdom.ID)
		}
	}
}

func validateKingdom(verr *ValidationError, s *Snapshot, k *Kingdom) {
	if k.RulingClan == nil {
		verr.addf("kingdom %q: no ruling clan", k.ID)
	} else if !k.HasClan(k.RulingClan) {
		verr.addf("kingdom %q: ruling clan %q is not a member", k.ID, k.RulingClan.ID)
	}
	members := make(map[FactionID]bool, len(k.Clans))
	for _, c := range k.Clans {
		if members[c.ID] {
			verr.addf("kingdom %q: clan %q is listed twice", k.ID, c.ID)
		}
		members[c.ID] = true
		if s.clans[c.ID] != c {
			verr.addf("kingdom %q: member clan %q is not the registered clan", k.ID, c.ID)
		}
		if c.Kingdom != k {
			verr.addf("kingdom %q: member clan %q belongs to another kingdom", k.ID, c.ID)
		}
	}
	wars := make(map[string]bool, len(k.Wars))
	for _, w := range k.Wars {
		if wars[w.ID] {
			verr.addf("kingdom %q: war %q is listed twice", k.ID, w.ID)
		}
		wars[w.ID] = true
		if s.wars[w.ID] != w {
			verr.addf("kingdom %q: war %q is not the registered war", k.ID, w.ID)
		}
		in1, in2 := containsFaction(w.Side1, k.ID), containsFaction(w.Side2, k.ID)
		if in1 == in2 {
			verr.addf("kingdom %q: must be on exactly one side of war %q", k.ID, w.ID)
		}
	}
}

func validateWar(verr *ValidationError, s *Snapshot, w *War) {
	if len(w.Side1) == 0 || len(w.Side2) == 0 {
		verr.addf("war %q: both sides need at least one faction", w.ID)
	}
	for _, id := range w.Side1 {
		if containsFaction(w.Side2, id) {
			verr.addf("war %q: faction %q is on both sides", w.ID, id)
		}
	}
	for _, side := range [][]FactionID{w.Side1, w.Side2} {
		for _, id := range side {
			if _, isKingdom := s.kingdoms[id]; !isKingdom && !s.IsClan(id) {
				verr.addf("war %q: unknown faction %q", w.ID, id)
			}
		}
	}
	for id, t := range w.Tallies {
		if t.SuccessfulRaids < 0 || t.SuccessfulSieges < 0 || t.Casualties < 0 {
			verr.addf("war %q: faction %q has negative tallies", w.ID, id)
		}
	}
}
