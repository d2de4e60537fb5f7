package scoring

import (
	"math"

	"github.com/freeeve/fealty/pkg/realm"
)

const (
	baseLoyaltyCost          = 40000.0
	loyaltyCostPerFortress   = 20000.0
	kingdomSwapPenalty       = 100000.0
	kingdomSwapPenaltyWindow = 365.0 // days
)

// ScoreClanLeavesKingdom is the utility for clan of leaving kingdom. The more
// negative, the less willing the clan is; Reject means never.
func ScoreClanLeavesKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) float64 {
	return ExplainLeave(w, clan, kingdom).Score
}

// ExplainLeave computes ScoreClanLeavesKingdom along with its terms.
//
// Leaving costs the clan its slice of the kingdom's fortifications, a loyalty
// cost that grows with its fortifications and its strength, and a penalty for
// switching again within a year. All of these scale with the leader's
// reliability. The accumulated cost is then scaled by relation and culture,
// and the change in settlement value is added.
func ExplainLeave(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) Breakdown {
	heroes := clan.CommanderHeroes

	switch {
	case kingdom == nil:
		return rejected(ReasonNotInKingdom)
	case kingdom.RulingClan == clan:
		return rejected(ReasonRulingClan)
	case heroes == 0:
		return rejected(ReasonNoHeroes)
	}

	var b Breakdown
	value := 0.0

	if !clan.IsMinorFaction {
		warMult := WarMult(w, clan, kingdom)
		existing := HeroesInKingdom(w, kingdom)
		perHero := valuePerHero(KingdomFortificationValue(w, kingdom), existing, heroes)
		share := perHero * math.Sqrt(float64(heroes)) * pieShareWeight * warMult
		value -= share

		b.add("existingHeroes", float64(existing))
		b.add("valuePerHero", perHero)
		b.add("warMult", warMult)
	}

	reliability := w.ReliabilityConstant(clan.Leader)
	b.add("reliability", reliability)

	loyalty := (baseLoyaltyCost + loyaltyCostPerFortress*float64(len(clan.Fortifications))) * reliability
	value -= loyalty
	b.add("loyaltyCost", loyalty)

	strength := ClanStrength(clan) * reliability
	value -= strength
	b.add("strengthCost", strength)

	swap := kingdomSwapPenalty * reliability * swapPenaltyRemaining(clan, w.Now())
	value -= swap
	b.add("swapPenalty", swap)

	relationMult := RelationMult(w, clan, kingdom)
	value *= relationMult
	b.add("relationMult", relationMult)

	cultureMult := CultureMult(clan, kingdom)
	value *= cultureMult
	b.add("cultureMult", cultureMult)

	delta := w.SettlementValue(clan, nil) - w.SettlementValue(clan, clan.Kingdom)
	value += delta
	b.add("settlementDelta", delta)

	b.Score = value
	return b
}

// swapPenaltyRemaining is the fraction of the kingdom-swap penalty still in
// force: 1 right after a faction change, falling linearly to 0 after a year.
func swapPenaltyRemaining(clan *realm.Clan, now realm.CampaignTime) float64 {
	days := Clamp(clan.LastFactionChange.Elapsed(now), 0, kingdomSwapPenaltyWindow)
	return (kingdomSwapPenaltyWindow - days) / kingdomSwapPenaltyWindow
}
