package scoring

import (
	"github.com/freeeve/fealty/pkg/realm"
)

// Worthless is what a barter is worth to a faction that is not party to it.
const Worthless = -1e6

const (
	enemyLossShare  = 0.5
	allyLossShare   = -0.5
	rivalLossShare  = 0.01
	ownerLossFactor = -1.0
)

// JoinKingdomBarter offers Owner's membership to Target.
type JoinKingdomBarter struct {
	Owner  *realm.Clan
	Target *realm.Kingdom
}

// ValueFor is what the barter is worth to faction.
//
// For the owning clan it is the join score, plus, when the clan already
// serves a kingdom, what leaving that kingdom is worth to it. Unless the
// target is at war with the old kingdom the clan also gives up its
// settlements there. For the target kingdom it is the recruit score.
func (b JoinKingdomBarter) ValueFor(sc DiplomacyScorer, w realm.Diplomacy, faction realm.FactionID) float64 {
	if b.Target == nil {
		return Worthless
	}

	switch faction {
	case b.Owner.ID:
		join := sc.ScoreClanJoinsKingdom(w, b.Owner, b.Target)
		current := b.Owner.Kingdom
		if current == nil {
			return join
		}
		leave := LeaveKingdomBarter{Owner: b.Owner}.ValueFor(sc, w, b.Owner.ID)
		if !w.AtWar(b.Target.ID, current.ID) {
			// At war, the clan takes its settlements along.
			leave -= w.SettlementValue(b.Owner, current)
		}
		return join + leave
	case b.Target.ID:
		return sc.ScoreKingdomRecruitsClan(w, b.Target, b.Owner)
	}
	return Worthless
}

// LeaveKingdomBarter offers Owner's departure from its kingdom.
type LeaveKingdomBarter struct {
	Owner *realm.Clan
}

// ValueFor is what the barter is worth to faction.
//
// The owning clan uses the leave score, or the world's mercenary score for a
// minor faction. The owner's kingdom loses what the clan would gain. Any
// other faction gains half the clan's strength if it is a clan at war with
// the owner's kingdom, loses half of it if allied with that kingdom, and
// gains a token 1% otherwise.
func (b LeaveKingdomBarter) ValueFor(sc DiplomacyScorer, w realm.Diplomacy, faction realm.FactionID) float64 {
	clan := b.Owner
	kingdom := clan.Kingdom
	if kingdom == nil {
		// Nothing to leave.
		return 0
	}

	switch faction {
	case clan.ID:
		if clan.IsMinorFaction {
			return w.MercenaryLeaveScore(clan, kingdom)
		}
		return sc.ScoreClanLeavesKingdom(w, clan, kingdom)
	case kingdom.ID:
		if clan.IsUnderMercenaryService {
			return w.MercenaryLeaveScore(clan, kingdom) * ownerLossFactor
		}
		return sc.ScoreClanLeavesKingdom(w, clan, kingdom) * ownerLossFactor
	}

	strength := ClanStrength(clan)
	if w.IsClan(faction) && w.AtWar(faction, kingdom.ID) {
		return strength * enemyLossShare
	}
	if w.Allied(faction, kingdom.ID) {
		return strength * allyLossShare
	}
	return strength * rivalLossShare
}
