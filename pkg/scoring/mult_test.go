package scoring

import (
	"math"
	"testing"

	"github.com/freeeve/fealty/pkg/realm"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{math.Inf(1), 0.1, 2.5, 2.5},
		{math.Inf(-1), 0.1, 2.5, 0.1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRelationMult(t *testing.T) {
	tests := []struct {
		relation int
		want     float64
	}{
		{0, 1.0},
		{25, 1.2},
		{100, 1.4},
		{-25, 0.7},
		{-100, 0.5}, // 0.4 clamped
		{-4, 0.88},
	}
	for _, tt := range tests {
		tw := newTestWorld(t)
		tw.s.SetRelation(tw.ruler, tw.wanderers, tt.relation)
		got := RelationMult(tw.s, tw.wanderers, tw.vlandia)
		if !approx(got, tt.want) {
			t.Errorf("relation %d: RelationMult = %v, want %v", tt.relation, got, tt.want)
		}
	}
}

func TestRelationMultMonotonicAndBounded(t *testing.T) {
	tw := newTestWorld(t)
	prev := math.Inf(-1)
	for rel := -150; rel <= 150; rel++ {
		tw.s.SetRelation(tw.ruler, tw.wanderers, rel)
		got := RelationMult(tw.s, tw.wanderers, tw.vlandia)
		if got < 0.5 || got > 2.0 {
			t.Fatalf("relation %d: RelationMult = %v outside [0.5, 2]", rel, got)
		}
		if got < prev {
			t.Fatalf("relation %d: RelationMult = %v decreased from %v", rel, got, prev)
		}
		prev = got
	}
}

func TestCultureMult(t *testing.T) {
	tw := newTestWorld(t)
	if got := CultureMult(tw.wanderers, tw.vlandia); got != 1.15 {
		t.Errorf("same culture: got %v, want 1.15", got)
	}
	tw.wanderers.Culture = "B"
	if got := CultureMult(tw.wanderers, tw.vlandia); got != 0.85 {
		t.Errorf("different culture: got %v, want 0.85", got)
	}
}

func TestRecruitMultipliers(t *testing.T) {
	tw := newTestWorld(t)

	tests := []struct {
		relation int
		want     float64
	}{
		{0, 1},
		{25, 1.5},
		{50, 2},
		{100, 2}, // clamped
		{-25, 0.5},
		{-50, 0.33}, // clamped
	}
	for _, tt := range tests {
		tw.s.SetRelation(tw.ruler, tw.wanderers, tt.relation)
		if got := RecruitRelationMult(tw.s, tw.vlandia, tw.wanderers); !approx(got, tt.want) {
			t.Errorf("relation %d: RecruitRelationMult = %v, want %v", tt.relation, got, tt.want)
		}
	}

	if got := RecruitCultureMult(tw.vlandia, tw.wanderers); got != 2 {
		t.Errorf("same culture: RecruitCultureMult = %v, want 2", got)
	}
	tw.wanderers.Culture = "B"
	if got := RecruitCultureMult(tw.vlandia, tw.wanderers); got != 1 {
		t.Errorf("different culture: RecruitCultureMult = %v, want 1", got)
	}
}

func TestNeedFactor(t *testing.T) {
	tests := []struct {
		ratio, want float64
	}{
		{0.05, 10},
		{0.5, 2},
		{1, 1},
		{4, 0.5},
		{100, 0.4},
		{math.Inf(1), 0.4},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		if got := NeedFactor(tt.ratio); !approx(got, tt.want) {
			t.Errorf("NeedFactor(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestClanStrength(t *testing.T) {
	c := &realm.Clan{TotalStrength: 100, CommanderHeroes: 2}
	if got := ClanStrength(c); got != 4000 {
		t.Errorf("ClanStrength = %v, want 4000", got)
	}
}

func TestHeroesInKingdom(t *testing.T) {
	tw := newTestWorld(t)
	tw.vassal("mercs", tw.vlandia, 2, 50).IsMinorFaction = true
	player := tw.vassal("player", tw.vlandia, 4, 50)
	player.IsMinorFaction = true

	// Minor factions never count, so only the ruler's 3 heroes.
	if got := HeroesInKingdom(tw.s, tw.vlandia); got != 3 {
		t.Errorf("without player clan: got %d, want 3", got)
	}

	// The player's minor faction counts.
	tw.s.SetPlayerClan(player)
	if got := HeroesInKingdom(tw.s, tw.vlandia); got != 7 {
		t.Errorf("with player clan: got %d, want 7", got)
	}
}

func TestKingdomFortificationValue(t *testing.T) {
	tw := newTestWorld(t)
	pravend := tw.s.AddFortification(&realm.Fortification{ID: "pravend", Owner: tw.ruler, IsTown: true})
	ocs := tw.s.AddFortification(&realm.Fortification{ID: "ocs_hall", Owner: tw.ruler})
	tw.s.SetFortificationValue(pravend, tw.vlandia, 3000)
	tw.s.SetFortificationValue(ocs, tw.vlandia, 1200)

	if got := KingdomFortificationValue(tw.s, tw.vlandia); got != 4200 {
		t.Errorf("KingdomFortificationValue = %v, want 4200", got)
	}
}
