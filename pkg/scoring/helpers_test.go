package scoring

import (
	"math"
	"testing"

	"github.com/freeeve/fealty/pkg/realm"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// testWorld is a small campaign: kingdom "vlandia" (culture A) ruled by
// "dey_meroc" with 3 heroes, at peace, no fortifications. "wanderers" is an
// unaffiliated clan of culture A with 2 heroes and strength 100.
type testWorld struct {
	s         *realm.Snapshot
	vlandia   *realm.Kingdom
	ruler     *realm.Clan
	wanderers *realm.Clan
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	s := realm.NewSnapshot(1000)
	vlandia := s.AddKingdom(&realm.Kingdom{ID: "vlandia", Culture: "A", TotalStrength: 1000})
	derthert := s.AddHero(&realm.Hero{ID: "derthert", Reliability: 1})
	ruler := s.AddClan(&realm.Clan{
		ID:              "dey_meroc",
		Culture:         "A",
		Kingdom:         vlandia,
		CommanderHeroes: 3,
		TotalStrength:   500,
		Leader:          derthert,
	})
	vlandia.RulingClan = ruler

	lucon := s.AddHero(&realm.Hero{ID: "lucon", Reliability: 1})
	wanderers := s.AddClan(&realm.Clan{
		ID:                "wanderers",
		Culture:           "A",
		CommanderHeroes:   2,
		TotalStrength:     100,
		Leader:            lucon,
		LastFactionChange: 0,
	})
	return &testWorld{s: s, vlandia: vlandia, ruler: ruler, wanderers: wanderers}
}

// addKingdom adds a kingdom with a single ruling clan of the given size.
func (tw *testWorld) addKingdom(id realm.FactionID, culture realm.Culture, strength float64, heroes int) *realm.Kingdom {
	k := tw.s.AddKingdom(&realm.Kingdom{ID: id, Culture: culture, TotalStrength: strength})
	leader := tw.s.AddHero(&realm.Hero{ID: string(id) + "_leader", Reliability: 1})
	ruler := tw.s.AddClan(&realm.Clan{
		ID:              id + "_rulers",
		Culture:         culture,
		Kingdom:         k,
		CommanderHeroes: heroes,
		TotalStrength:   strength / 2,
		Leader:          leader,
	})
	k.RulingClan = ruler
	return k
}

// vassal adds a non-ruling clan to k.
func (tw *testWorld) vassal(id realm.FactionID, k *realm.Kingdom, heroes int, strength float64) *realm.Clan {
	leader := tw.s.AddHero(&realm.Hero{ID: string(id) + "_leader", Reliability: 1})
	return tw.s.AddClan(&realm.Clan{
		ID:              id,
		Culture:         k.Culture,
		Kingdom:         k,
		CommanderHeroes: heroes,
		TotalStrength:   strength,
		Leader:          leader,
	})
}
