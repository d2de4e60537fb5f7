package realm

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Snapshot JSON layout. Entities reference each other by id; Decode resolves
// the references into pointers.

type heroDoc struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Reliability float64 `json:"reliability"`
}

type kingdomDoc struct {
	ID         FactionID `json:"id"`
	Name       string    `json:"name,omitempty"`
	Culture    Culture   `json:"culture"`
	RulingClan FactionID `json:"rulingClan"`
	Strength   float64   `json:"strength"`
	EnemyPower *float64  `json:"enemyPower,omitempty"`
	PowerRatio *float64  `json:"powerRatio,omitempty"`
}

type clanDoc struct {
	ID                  FactionID             `json:"id"`
	Name                string                `json:"name,omitempty"`
	Culture             Culture               `json:"culture"`
	Kingdom             FactionID             `json:"kingdom,omitempty"`
	Heroes              int                   `json:"heroes"`
	Strength            float64               `json:"strength"`
	LastFactionChange   CampaignTime          `json:"lastFactionChange"`
	Leader              string                `json:"leader,omitempty"`
	Minor               bool                  `json:"minor,omitempty"`
	Mercenary           bool                  `json:"mercenary,omitempty"`
	SettlementValues    map[FactionID]float64 `json:"settlementValues,omitempty"`
	MercenaryLeaveScore float64               `json:"mercenaryLeaveScore,omitempty"`
}

type fortificationDoc struct {
	ID     string                `json:"id"`
	Name   string                `json:"name,omitempty"`
	Owner  FactionID             `json:"owner"`
	Town   bool                  `json:"town,omitempty"`
	Values map[FactionID]float64 `json:"values,omitempty"`
}

type tallyDoc struct {
	WarScore   float64 `json:"warScore"`
	Raids      int     `json:"raids"`
	Sieges     int     `json:"sieges"`
	Casualties int     `json:"casualties"`
}

type warDoc struct {
	ID      string                 `json:"id"`
	Side1   []FactionID            `json:"side1"`
	Side2   []FactionID            `json:"side2"`
	Tallies map[FactionID]tallyDoc `json:"tallies,omitempty"`
}

type relationDoc struct {
	A     FactionID `json:"a"`
	B     FactionID `json:"b"`
	Value int       `json:"value"`
}

type snapshotDoc struct {
	Now            CampaignTime       `json:"now"`
	PlayerClan     FactionID          `json:"playerClan,omitempty"`
	Heroes         []heroDoc          `json:"heroes"`
	Kingdoms       []kingdomDoc       `json:"kingdoms"`
	Clans          []clanDoc          `json:"clans"`
	Fortifications []fortificationDoc `json:"fortifications"`
	Wars           []warDoc           `json:"wars"`
	Relations      []relationDoc      `json:"relations,omitempty"`
	Alliances      [][2]FactionID     `json:"alliances,omitempty"`
}

// Decode reads a JSON snapshot, resolves references and validates it.
func Decode(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (*Snapshot, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	s, err := build(&doc)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// uniqueByID drops every entry whose id was already seen in items, recording
// a problem for each.
func uniqueByID[T any](verr *ValidationError, kind string, items []T, id func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, it := range items {
		key := id(it)
		if seen[key] {
			verr.addf("%s %q: duplicate id", kind, key)
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

func build(doc *snapshotDoc) (*Snapshot, error) {
	s := NewSnapshot(doc.Now)
	verr := &ValidationError{}

	doc.Heroes = uniqueByID(verr, "hero", doc.Heroes, func(d heroDoc) string { return d.ID })
	doc.Kingdoms = uniqueByID(verr, "kingdom", doc.Kingdoms, func(d kingdomDoc) string { return string(d.ID) })
	doc.Clans = uniqueByID(verr, "clan", doc.Clans, func(d clanDoc) string { return string(d.ID) })
	doc.Fortifications = uniqueByID(verr, "fortification", doc.Fortifications, func(d fortificationDoc) string { return d.ID })
	doc.Wars = uniqueByID(verr, "war", doc.Wars, func(d warDoc) string { return d.ID })

	// Clans and kingdoms share the faction namespace of war sides.
	kingdomIDs := make(map[FactionID]bool, len(doc.Kingdoms))
	for _, kd := range doc.Kingdoms {
		kingdomIDs[kd.ID] = true
	}
	clans := doc.Clans[:0:0]
	for _, cd := range doc.Clans {
		if kingdomIDs[cd.ID] {
			verr.addf("clan %q: id is already used by a kingdom", cd.ID)
			continue
		}
		clans = append(clans, cd)
	}
	doc.Clans = clans

	for _, hd := range doc.Heroes {
		s.AddHero(&Hero{ID: hd.ID, Name: hd.Name, Reliability: hd.Reliability})
	}

	// Kingdoms first so clans can join them; ruling clans are linked after
	// every clan exists.
	for _, kd := range doc.Kingdoms {
		k := s.AddKingdom(&Kingdom{ID: kd.ID, Name: kd.Name, Culture: kd.Culture, TotalStrength: kd.Strength})
		if kd.EnemyPower != nil {
			s.SetEnemyPower(k, *kd.EnemyPower)
		}
		if kd.PowerRatio != nil {
			s.SetPowerRatio(k, *kd.PowerRatio)
		}
	}

	for _, cd := range doc.Clans {
		c := &Clan{
			ID:                      cd.ID,
			Name:                    cd.Name,
			Culture:                 cd.Culture,
			CommanderHeroes:         cd.Heroes,
			TotalStrength:           cd.Strength,
			LastFactionChange:       cd.LastFactionChange,
			IsMinorFaction:          cd.Minor,
			IsUnderMercenaryService: cd.Mercenary,
		}
		if cd.Kingdom != "" {
			k, ok := s.kingdoms[cd.Kingdom]
			if !ok {
				verr.addf("clan %q: unknown kingdom %q", cd.ID, cd.Kingdom)
			}
			c.Kingdom = k
		}
		if cd.Leader != "" {
			h, ok := s.heroes[cd.Leader]
			if !ok {
				verr.addf("clan %q: unknown leader %q", cd.ID, cd.Leader)
			}
			c.Leader = h
		}
		s.AddClan(c)
		if cd.MercenaryLeaveScore != 0 {
			s.SetMercenaryLeaveScore(c, cd.MercenaryLeaveScore)
		}
	}

	for _, kd := range doc.Kingdoms {
		ruler, ok := s.clans[kd.RulingClan]
		if !ok {
			verr.addf("kingdom %q: unknown ruling clan %q", kd.ID, kd.RulingClan)
			continue
		}
		s.kingdoms[kd.ID].RulingClan = ruler
	}

	// Settlement values may name any kingdom, so they resolve once all exist.
	for _, cd := range doc.Clans {
		c := s.clans[cd.ID]
		for kid, v := range cd.SettlementValues {
			var k *Kingdom
			if kid != noKingdom {
				var ok bool
				if k, ok = s.kingdoms[kid]; !ok {
					verr.addf("clan %q: settlement value for unknown kingdom %q", cd.ID, kid)
					continue
				}
			}
			s.SetSettlementValue(c, k, v)
		}
	}

	for _, fd := range doc.Fortifications {
		owner, ok := s.clans[fd.Owner]
		if !ok {
			verr.addf("fortification %q: unknown owner %q", fd.ID, fd.Owner)
			continue
		}
		f := s.AddFortification(&Fortification{ID: fd.ID, Name: fd.Name, Owner: owner, IsTown: fd.Town})
		for kid, v := range fd.Values {
			k, ok := s.kingdoms[kid]
			if !ok {
				verr.addf("fortification %q: value for unknown kingdom %q", fd.ID, kid)
				continue
			}
			s.SetFortificationValue(f, k, v)
		}
	}

	for _, wd := range doc.Wars {
		w := &War{ID: wd.ID, Side1: wd.Side1, Side2: wd.Side2, Tallies: make(map[FactionID]WarTally, len(wd.Tallies))}
		for id, td := range wd.Tallies {
			w.Tallies[id] = WarTally{
				WarScore:         td.WarScore,
				SuccessfulRaids:  td.Raids,
				SuccessfulSieges: td.Sieges,
				Casualties:       td.Casualties,
			}
		}
		s.AddWar(w)
	}

	for _, rd := range doc.Relations {
		a, okA := s.clans[rd.A]
		b, okB := s.clans[rd.B]
		if !okA || !okB {
			verr.addf("relation %q-%q: unknown clan", rd.A, rd.B)
			continue
		}
		s.SetRelation(a, b, rd.Value)
	}

	for _, pair := range doc.Alliances {
		s.SetAllied(pair[0], pair[1])
	}

	if doc.PlayerClan != "" {
		p, ok := s.clans[doc.PlayerClan]
		if !ok {
			verr.addf("unknown player clan %q", doc.PlayerClan)
		}
		s.SetPlayerClan(p)
	}

	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return s, nil
}

// Encode writes s as JSON. Output is deterministic: every list is sorted by id.
func Encode(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDoc(s)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func toDoc(s *Snapshot) *snapshotDoc {
	doc := &snapshotDoc{Now: s.now}
	if s.player != nil {
		doc.PlayerClan = s.player.ID
	}

	for _, h := range s.sortedHeroes() {
		doc.Heroes = append(doc.Heroes, heroDoc{ID: h.ID, Name: h.Name, Reliability: h.Reliability})
	}

	for _, k := range s.Kingdoms() {
		kd := kingdomDoc{ID: k.ID, Name: k.Name, Culture: k.Culture, Strength: k.TotalStrength}
		if k.RulingClan != nil {
			kd.RulingClan = k.RulingClan.ID
		}
		if p, ok := s.enemyPower[k.ID]; ok {
			kd.EnemyPower = &p
		}
		if r, ok := s.powerRatio[k.ID]; ok {
			kd.PowerRatio = &r
		}
		doc.Kingdoms = append(doc.Kingdoms, kd)
	}

	for _, c := range s.Clans() {
		cd := clanDoc{
			ID:                  c.ID,
			Name:                c.Name,
			Culture:             c.Culture,
			Heroes:              c.CommanderHeroes,
			Strength:            c.TotalStrength,
			LastFactionChange:   c.LastFactionChange,
			Minor:               c.IsMinorFaction,
			Mercenary:           c.IsUnderMercenaryService,
			SettlementValues:    s.settlementValue[c.ID],
			MercenaryLeaveScore: s.mercenaryLeave[c.ID],
		}
		if c.Kingdom != nil {
			cd.Kingdom = c.Kingdom.ID
		}
		if c.Leader != nil {
			cd.Leader = c.Leader.ID
		}
		doc.Clans = append(doc.Clans, cd)
	}

	fortIDs := make([]string, 0, len(s.fortifications))
	for id := range s.fortifications {
		fortIDs = append(fortIDs, id)
	}
	sort.Strings(fortIDs)
	for _, id := range fortIDs {
		f := s.fortifications[id]
		fd := fortificationDoc{ID: f.ID, Name: f.Name, Town: f.IsTown, Values: s.fortValue[f.ID]}
		if f.Owner != nil {
			fd.Owner = f.Owner.ID
		}
		doc.Fortifications = append(doc.Fortifications, fd)
	}

	for _, w := range s.Wars() {
		wd := warDoc{ID: w.ID, Side1: w.Side1, Side2: w.Side2}
		if len(w.Tallies) > 0 {
			wd.Tallies = make(map[FactionID]tallyDoc, len(w.Tallies))
			for id, t := range w.Tallies {
				wd.Tallies[id] = tallyDoc{WarScore: t.WarScore, Raids: t.SuccessfulRaids, Sieges: t.SuccessfulSieges, Casualties: t.Casualties}
			}
		}
		doc.Wars = append(doc.Wars, wd)
	}

	for pair, v := range s.relations {
		doc.Relations = append(doc.Relations, relationDoc{A: pair.a, B: pair.b, Value: v})
	}
	sort.Slice(doc.Relations, func(i, j int) bool {
		if doc.Relations[i].A != doc.Relations[j].A {
			return doc.Relations[i].A < doc.Relations[j].A
		}
		return doc.Relations[i].B < doc.Relations[j].B
	})

	for pair := range s.alliances {
		doc.Alliances = append(doc.Alliances, [2]FactionID{pair.a, pair.b})
	}
	sort.Slice(doc.Alliances, func(i, j int) bool {
		if doc.Alliances[i][0] != doc.Alliances[j][0] {
			return doc.Alliances[i][0] < doc.Alliances[j][0]
		}
		return doc.Alliances[i][1] < doc.Alliances[j][1]
	})

	return doc
}
