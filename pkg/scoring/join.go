package scoring

import (
	"math"

	"github.com/freeeve/fealty/pkg/realm"
)

const (
	pieShareWeight     = 0.3
	crowdedHeroPenalty = 50.0
)

// ScoreClanJoinsKingdom is the utility for clan of joining kingdom. Larger is
// more attractive; Reject means never.
func ScoreClanJoinsKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) float64 {
	return ExplainJoin(w, clan, kingdom).Score
}

// ExplainJoin computes ScoreClanJoinsKingdom along with its terms.
//
// A clan that is not a minor faction values its expected slice of the
// kingdom's fortifications (per hero, after it joins), weighted by the
// kingdom's war performance, relation and culture, minus a quadratic penalty
// on the kingdom's existing head-count. Every clan then adds the change in its
// own settlement value.
func ExplainJoin(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) Breakdown {
	heroes := clan.CommanderHeroes
	existing := HeroesInKingdom(w, kingdom)

	switch {
	case clan.IsRulingClan():
		return rejected(ReasonRulingClan)
	case heroes == 0:
		return rejected(ReasonNoHeroes)
	case existing == 0:
		return rejected(ReasonEmptyKingdom)
	}

	var b Breakdown
	value := 0.0

	if !clan.IsMinorFaction {
		perHero := valuePerHero(KingdomFortificationValue(w, kingdom), existing, heroes)
		warMult := WarMult(w, clan, kingdom)
		value += perHero * math.Sqrt(float64(heroes)) * pieShareWeight * warMult

		relationMult := RelationMult(w, clan, kingdom)
		value *= relationMult

		cultureMult := CultureMult(clan, kingdom)
		value *= cultureMult

		penalty := float64(existing*existing) * crowdedHeroPenalty
		value -= penalty

		b.add("existingHeroes", float64(existing))
		b.add("valuePerHero", perHero)
		b.add("warMult", warMult)
		b.add("relationMult", relationMult)
		b.add("cultureMult", cultureMult)
		b.add("heroPenalty", penalty)
	}

	// A clan outside any kingdom has nothing to give up.
	before := 0.0
	if clan.Kingdom != nil {
		before = w.SettlementValue(clan, clan.Kingdom)
	}
	delta := w.SettlementValue(clan, kingdom) - before
	value += delta
	b.add("settlementDelta", delta)

	b.Score = value
	return b
}
