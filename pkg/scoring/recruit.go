package scoring

import (
	"github.com/freeeve/fealty/pkg/realm"
)

const recruitSettlementWeight = 0.1

// ScoreKingdomRecruitsClan is the utility for kingdom of taking clan in.
func ScoreKingdomRecruitsClan(w realm.World, kingdom *realm.Kingdom, clan *realm.Clan) float64 {
	return ExplainRecruit(w, kingdom, clan).Score
}

// ExplainRecruit computes ScoreKingdomRecruitsClan along with its terms.
//
// The kingdom values the settlements the clan brings and its strength, the
// latter weighted by how badly the kingdom needs support against its
// enemies. The sum is scaled by relation, culture and the leader's
// reliability.
func ExplainRecruit(w realm.World, kingdom *realm.Kingdom, clan *realm.Clan) Breakdown {
	existing := HeroesInKingdom(w, kingdom)

	switch {
	case clan.CommanderHeroes == 0:
		return rejected(ReasonNoHeroes)
	case existing == 0:
		return rejected(ReasonEmptyKingdom)
	}

	var b Breakdown

	settlements := w.SettlementValue(clan, kingdom)
	need := NeedFactor(w.PowerRatioToEnemies(kingdom))
	adjustedStrength := ClanStrength(clan) * need
	value := settlements*recruitSettlementWeight + adjustedStrength
	b.add("existingHeroes", float64(existing))
	b.add("settlementValue", settlements)
	b.add("needFactor", need)
	b.add("adjustedStrength", adjustedStrength)

	relationMult := RecruitRelationMult(w, kingdom, clan)
	value *= relationMult
	b.add("relationMult", relationMult)

	cultureMult := RecruitCultureMult(kingdom, clan)
	value *= cultureMult
	b.add("cultureMult", cultureMult)

	reliability := w.ReliabilityConstant(clan.Leader)
	value *= reliability
	b.add("reliability", reliability)

	b.Score = value
	return b
}
