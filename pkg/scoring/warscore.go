package scoring

import (
	"github.com/freeeve/fealty/pkg/realm"
)

const (
	renownPoints   = 1.0
	raidPoints     = 50.0
	siegePoints    = 300.0
	casualtyPoints = 1.0
	maxWarMult     = 1.5
	neutralWarMult = 1.0
)

// WarMult reflects how well a kingdom is doing in its current wars, as seen by
// a clan weighing its share of the kingdom's land. Returns 1 when the kingdom
// is at peace. Otherwise the kingdom's strength plus war scores is divided by
// its enemies' power plus war scores and clamped to [0, 1.5]. A clan never
// judges a kingdom of its own culture as losing: ratios below 1 become 1.
func WarMult(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) float64 {
	if len(kingdom.Wars) == 0 {
		return neutralWarMult
	}

	kingdomScore, oppositionScore := TotalWarScores(w, kingdom)
	if oppositionScore <= 0 {
		// Nobody to lose against: the largest ratio there is.
		return maxWarMult
	}
	mult := kingdomScore / oppositionScore

	if mult < 1 && clan.Culture == kingdom.Culture {
		return neutralWarMult
	}
	return Clamp(mult, 0, maxWarMult)
}

// TotalWarScores returns the kingdom's strength and the total enemy power,
// each raised by the side's war score in every war the kingdom fights.
func TotalWarScores(w realm.World, kingdom *realm.Kingdom) (kingdomScore, oppositionScore float64) {
	kingdomScore = kingdom.TotalStrength
	oppositionScore = w.TotalEnemyPower(kingdom)
	for _, war := range kingdom.Wars {
		own, opposition, ok := war.Sides(kingdom.ID)
		if !ok {
			continue
		}
		kingdomScore += SideWarScore(war, own, opposition)
		oppositionScore += SideWarScore(war, opposition, own)
	}
	return kingdomScore, oppositionScore
}

// SideWarScore scores one side of a war against the other. Each point of
// renown is worth 1, each successful raid 50, each successful siege 300 and
// each enemy casualty 1. The sum is scaled by CasualtyMult.
func SideWarScore(war *realm.War, side, opposition []realm.FactionID) float64 {
	score := 0.0
	suffered := 0
	for _, id := range side {
		t := war.Tally(id)
		score += t.WarScore * renownPoints
		score += float64(t.SuccessfulRaids) * raidPoints
		score += float64(t.SuccessfulSieges) * siegePoints
		suffered += t.Casualties
	}

	inflicted := 0
	for _, id := range opposition {
		inflicted += war.Tally(id).Casualties
	}
	score += float64(inflicted) * casualtyPoints

	return score * CasualtyMult(inflicted, suffered)
}

// CasualtyMult is the share of all losses in a war borne by the opposing
// side. With no losses at all it is 1.
func CasualtyMult(inflicted, suffered int) float64 {
	total := inflicted + suffered
	if total <= 0 {
		return 1
	}
	return float64(inflicted) / float64(total)
}
