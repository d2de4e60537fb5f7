package scoring

import (
	"testing"

	"github.com/freeeve/fealty/pkg/realm"
)

func TestJoinBarterWithoutTarget(t *testing.T) {
	tw := newTestWorld(t)
	b := JoinKingdomBarter{Owner: tw.wanderers}
	if got := b.ValueFor(NewDefaultScorer(), tw.s, tw.wanderers.ID); got != Worthless {
		t.Errorf("got %v, want Worthless", got)
	}
}

func TestJoinBarterUnaffiliatedOwner(t *testing.T) {
	tw := newTestWorld(t)
	tw.s.SetSettlementValue(tw.wanderers, tw.vlandia, 120)
	sc := NewDefaultScorer()
	b := JoinKingdomBarter{Owner: tw.wanderers, Target: tw.vlandia}

	if got := b.ValueFor(sc, tw.s, tw.wanderers.ID); got != -330 {
		t.Errorf("owner value = %v, want -330", got)
	}
	if got, want := b.ValueFor(sc, tw.s, tw.vlandia.ID), ScoreKingdomRecruitsClan(tw.s, tw.vlandia, tw.wanderers); got != want {
		t.Errorf("target value = %v, want %v", got, want)
	}
	if got := b.ValueFor(sc, tw.s, "someone_else"); got != Worthless {
		t.Errorf("third party value = %v, want Worthless", got)
	}
}

func TestJoinBarterOwnerLeavingKingdom(t *testing.T) {
	tw := newTestWorld(t)
	battania := tw.addKingdom("battania", "B", 800, 4)
	clan := tw.vassal("ocs", battania, 2, 100)
	tw.s.SetSettlementValue(clan, battania, 600)
	sc := NewDefaultScorer()
	b := JoinKingdomBarter{Owner: clan, Target: tw.vlandia}

	join := ScoreClanJoinsKingdom(tw.s, clan, tw.vlandia)
	leave := ScoreClanLeavesKingdom(tw.s, clan, battania)

	// At peace the clan leaves its settlements behind.
	if got, want := b.ValueFor(sc, tw.s, clan.ID), join+leave-600; !approx(got, want) {
		t.Errorf("at peace: owner value = %v, want %v", got, want)
	}

	// At war it takes them along.
	tw.s.AddWar(&realm.War{ID: "w1", Side1: []realm.FactionID{"vlandia"}, Side2: []realm.FactionID{"battania"}})
	join = ScoreClanJoinsKingdom(tw.s, clan, tw.vlandia)
	leave = ScoreClanLeavesKingdom(tw.s, clan, battania)
	if got, want := b.ValueFor(sc, tw.s, clan.ID), join+leave; !approx(got, want) {
		t.Errorf("at war: owner value = %v, want %v", got, want)
	}
}

func TestLeaveBarter(t *testing.T) {
	tw := newTestWorld(t)
	ocs := tw.vassal("ocs", tw.vlandia, 2, 100)
	battania := tw.addKingdom("battania", "B", 800, 4)
	sturgia := tw.addKingdom("sturgia", "C", 800, 4)
	aserai := tw.addKingdom("aserai", "D", 800, 4)
	tw.s.AddWar(&realm.War{ID: "w1", Side1: []realm.FactionID{"vlandia"}, Side2: []realm.FactionID{"battania"}})
	tw.s.SetAllied(sturgia.ID, tw.vlandia.ID)

	sc := NewDefaultScorer()
	b := LeaveKingdomBarter{Owner: ocs}
	leave := ScoreClanLeavesKingdom(tw.s, ocs, tw.vlandia)
	strength := ClanStrength(ocs)

	tests := []struct {
		name    string
		faction realm.FactionID
		want    float64
	}{
		{"owner", ocs.ID, leave},
		{"owner's kingdom", tw.vlandia.ID, -leave},
		{"clan at war", battania.RulingClan.ID, strength * 0.5},
		{"kingdom at war", battania.ID, strength * 0.01},
		{"ally", sturgia.ID, strength * -0.5},
		{"bystander", aserai.ID, strength * 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ValueFor(sc, tw.s, tt.faction); !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLeaveBarterMercenary(t *testing.T) {
	tw := newTestWorld(t)
	mercs := tw.vassal("mercs", tw.vlandia, 2, 100)
	mercs.IsMinorFaction = true
	mercs.IsUnderMercenaryService = true
	tw.s.SetMercenaryLeaveScore(mercs, -2500)

	sc := NewDefaultScorer()
	b := LeaveKingdomBarter{Owner: mercs}
	if got := b.ValueFor(sc, tw.s, mercs.ID); got != -2500 {
		t.Errorf("owner value = %v, want -2500", got)
	}
	if got := b.ValueFor(sc, tw.s, tw.vlandia.ID); got != 2500 {
		t.Errorf("kingdom value = %v, want 2500", got)
	}
}

func TestLeaveBarterUnaffiliated(t *testing.T) {
	tw := newTestWorld(t)
	b := LeaveKingdomBarter{Owner: tw.wanderers}
	if got := b.ValueFor(NewDefaultScorer(), tw.s, tw.wanderers.ID); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}
