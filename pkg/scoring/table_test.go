package scoring

import (
	"testing"

	"github.com/freeeve/fealty/pkg/realm"
)

func TestJoinTable(t *testing.T) {
	tw := newTestWorld(t)
	battania := tw.addKingdom("battania", "B", 800, 1)
	tw.s.SetSettlementValue(tw.wanderers, battania, 400)

	sc := NewDefaultScorer()
	clans := []*realm.Clan{tw.wanderers, tw.ruler}
	kingdoms := []*realm.Kingdom{tw.vlandia, battania}
	table := JoinTable(sc, tw.s, clans, kingdoms)

	if shape := table.Shape(); shape[0] != 2 || shape[1] != 2 {
		t.Fatalf("shape = %v, want (2, 2)", shape)
	}
	for i, c := range clans {
		for j, k := range kingdoms {
			got, err := Cell(table, i, j)
			if err != nil {
				t.Fatalf("cell (%d, %d): %v", i, j, err)
			}
			if want := ScoreClanJoinsKingdom(tw.s, c, k); got != want {
				t.Errorf("cell (%d, %d) = %v, want %v", i, j, got, want)
			}
		}
	}

	// vlandia: −3² × 50; battania: −1² × 50 + 400. The smaller kingdom wins.
	col, score, ok := BestKingdom(table, 0)
	if !ok || col != 1 {
		t.Errorf("best kingdom for wanderers = %d (%v, ok=%v), want 1", col, score, ok)
	}

	// The ruler of vlandia can never join battania, nor rejoin its own.
	if _, _, ok := BestKingdom(table, 1); ok {
		t.Error("expected no acceptable kingdom for a ruling clan")
	}
}

func TestLeaveTableOnlyScoresOwnKingdom(t *testing.T) {
	tw := newTestWorld(t)
	battania := tw.addKingdom("battania", "B", 800, 1)
	ocs := tw.vassal("ocs", tw.vlandia, 2, 100)

	table := LeaveTable(NewDefaultScorer(), tw.s, []*realm.Clan{ocs}, []*realm.Kingdom{tw.vlandia, battania})
	own, _ := Cell(table, 0, 0)
	other, _ := Cell(table, 0, 1)
	if own != ScoreClanLeavesKingdom(tw.s, ocs, tw.vlandia) {
		t.Errorf("own kingdom cell = %v", own)
	}
	if other != Reject {
		t.Errorf("other kingdom cell = %v, want Reject", other)
	}
}

func TestRecruitTable(t *testing.T) {
	tw := newTestWorld(t)
	table := RecruitTable(NewDefaultScorer(), tw.s, []*realm.Clan{tw.wanderers}, []*realm.Kingdom{tw.vlandia})
	got, err := Cell(table, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := ScoreKingdomRecruitsClan(tw.s, tw.vlandia, tw.wanderers); got != want {
		t.Errorf("cell = %v, want %v", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	tw := newTestWorld(t)
	if table := JoinTable(NewDefaultScorer(), tw.s, nil, []*realm.Kingdom{tw.vlandia}); table != nil {
		t.Errorf("expected nil table for no clans, got shape %v", table.Shape())
	}
}
