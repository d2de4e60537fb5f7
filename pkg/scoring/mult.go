package scoring

import (
	"math"

	"github.com/freeeve/fealty/pkg/realm"
)

const (
	minRelationMult = 0.5
	maxRelationMult = 2.0
	friendlySlope   = 0.04
	hostileSlope    = -0.06

	sameCultureMult    = 1.15
	foreignCultureMult = 0.85

	minRecruitRelationMult = 0.33
	maxRecruitRelationMult = 2.0
	recruitRelationSlope   = 0.02

	minNeedRatio = 0.1
	maxNeedRatio = 2.5

	strengthPerHero = 150.0
	strengthScale   = 10.0
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}

// RelationMult scales join and leave scores by how the kingdom's ruler feels
// about the clan. Hostility weighs more than friendship: sqrt(|relation|) is
// multiplied by -0.06 below zero and 0.04 above, then clamped to [0.5, 2].
func RelationMult(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) float64 {
	relation := w.Relation(kingdom.RulingClan, clan)
	slope := friendlySlope
	if relation < 0 {
		slope = hostileSlope
	}
	return Clamp(1+math.Sqrt(math.Abs(float64(relation)))*slope, minRelationMult, maxRelationMult)
}

// CultureMult is 1.15 when clan and kingdom share a culture, 0.85 otherwise.
func CultureMult(clan *realm.Clan, kingdom *realm.Kingdom) float64 {
	if clan.Culture == kingdom.Culture {
		return sameCultureMult
	}
	return foreignCultureMult
}

// RecruitRelationMult is the kingdom-side relation multiplier: linear in the
// ruler's relation with the clan, clamped to [0.33, 2].
func RecruitRelationMult(w realm.World, kingdom *realm.Kingdom, clan *realm.Clan) float64 {
	relation := w.Relation(kingdom.RulingClan, clan)
	return Clamp(1+recruitRelationSlope*float64(relation), minRecruitRelationMult, maxRecruitRelationMult)
}

// RecruitCultureMult doubles the kingdom's interest in a clan of its own
// culture.
func RecruitCultureMult(kingdom *realm.Kingdom, clan *realm.Clan) float64 {
	if kingdom.Culture == clan.Culture {
		return 2
	}
	return 1
}

// NeedFactor is how badly a kingdom with the given power ratio to its enemies
// needs support. Ratios above 1 are dampened by a square root before the
// ratio is clamped to [0.1, 2.5] and inverted.
func NeedFactor(powerRatio float64) float64 {
	if math.IsNaN(powerRatio) {
		powerRatio = 1
	}
	if powerRatio > 1 {
		powerRatio = math.Sqrt(powerRatio)
	}
	return 1 / Clamp(powerRatio, minNeedRatio, maxNeedRatio)
}

// ClanStrength is (total strength + 150 per commander hero) × 10.
func ClanStrength(clan *realm.Clan) float64 {
	return (clan.TotalStrength + strengthPerHero*float64(clan.CommanderHeroes)) * strengthScale
}

// KingdomFortificationValue sums the value of each of the kingdom's
// fortifications to the kingdom itself.
func KingdomFortificationValue(w realm.World, kingdom *realm.Kingdom) float64 {
	total := 0.0
	for _, f := range kingdom.Fortifications {
		total += w.FortificationValue(f, kingdom)
	}
	return total
}

// HeroesInKingdom counts commander heroes of the kingdom's clans. Minor
// factions are left out, except the player's clan which always counts.
func HeroesInKingdom(w realm.World, kingdom *realm.Kingdom) int {
	player := w.PlayerClan()
	n := 0
	for _, c := range kingdom.Clans {
		if c.IsMinorFaction && c != player {
			continue
		}
		n += c.CommanderHeroes
	}
	return n
}

// valuePerHero splits the kingdom's fortification value across its heroes
// plus the clan's. A non-positive head-count yields no share.
func valuePerHero(fortificationValue float64, existingHeroes, clanHeroes int) float64 {
	heroes := existingHeroes + clanHeroes
	if heroes <= 0 {
		return 0
	}
	return fortificationValue / float64(heroes)
}
