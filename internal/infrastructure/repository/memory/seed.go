package memory

import "github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"

const DefaultLeagueName = "Bob Uecker League"

// SeedTeams returns the league's draft order for the non-snake rounds.
func SeedTeams() []string {
	return []string{
		"Runtime Terror",
		"Dawg",
		"Long Balls",
		"Simba's Dublin Green Sox",
		"Young Guns",
		"Gashouse Gang",
		"Magnum GI",
		"Trex",
		"Like a Nightmare",
		"Big Sticks",
		"MAGA DOGE",
		"Guillotine",
		"Rieken Havoc",
	}
}

// SeedPlayers returns a compact development pool covering every position.
// Real deployments replace it via the projections ingest.
func SeedPlayers() []player.Player {
	f := func(v float64) *float64 { return &v }

	hitter := func(id, name string, pos player.Position, team string, adp, hr, obp, r, rbi, sb float64) player.Player {
		return player.Player{
			ID: id, Name: name, Position: pos, MLBTeam: team, ADP: f(adp),
			Projection: player.Projection{
				HomeRuns: f(hr), OBP: f(obp), Runs: f(r), RBI: f(rbi), StolenBases: f(sb),
			},
		}
	}
	pitcher := func(id, name string, pos player.Position, team string, adp, ip, w, qs, k, sv, hld, era, whip float64) player.Player {
		return player.Player{
			ID: id, Name: name, Position: pos, MLBTeam: team, ADP: f(adp),
			Projection: player.Projection{
				InningsPitched: f(ip), Wins: f(w), QualityStarts: f(qs), Strikeouts: f(k),
				Saves: f(sv), Holds: f(hld), ERA: f(era), WHIP: f(whip),
			},
		}
	}

	return []player.Player{
		hitter("seed-judge", "Aaron Judge", player.PositionOutfield, "NYY", 1.5, 52, 0.425, 118, 124, 8),
		hitter("seed-witt", "Bobby Witt Jr.", player.PositionShortstop, "KC", 2.1, 30, 0.370, 112, 98, 34),
		hitter("seed-soto", "Juan Soto", player.PositionOutfield, "NYM", 3.0, 40, 0.419, 110, 105, 10),
		hitter("seed-henderson", "Gunnar Henderson", player.PositionShortstop, "BAL", 6.2, 35, 0.365, 108, 95, 18),
		hitter("seed-alvarez", "Yordan Alvarez", player.PositionDH, "HOU", 9.8, 38, 0.400, 98, 110, 1),
		hitter("seed-freeman", "Freddie Freeman", player.PositionFirstBase, "LAD", 22.4, 25, 0.390, 95, 96, 9),
		hitter("seed-marte", "Ketel Marte", player.PositionSecondBase, "ARI", 28.0, 32, 0.375, 100, 94, 6),
		hitter("seed-riley", "Austin Riley", player.PositionThirdBase, "ATL", 35.5, 33, 0.350, 92, 100, 2),
		hitter("seed-realmuto", "J.T. Realmuto", player.PositionCatcher, "PHI", 88.0, 18, 0.330, 65, 62, 12),
		hitter("seed-carroll", "Corbin Carroll", player.PositionOutfield, "ARI", 11.0, 25, 0.360, 105, 80, 40),
		hitter("seed-tucker", "Kyle Tucker", player.PositionOutfield, "CHC", 5.5, 33, 0.395, 102, 104, 22),
		hitter("seed-turner", "Trea Turner", player.PositionShortstop, "PHI", 14.2, 24, 0.350, 99, 78, 30),
		pitcher("seed-skubal", "Tarik Skubal", player.PositionStarter, "DET", 12.5, 200, 16, 24, 235, 0, 0, 2.85, 1.00),
		pitcher("seed-wheeler", "Zack Wheeler", player.PositionStarter, "PHI", 16.0, 195, 14, 23, 220, 0, 0, 3.05, 1.02),
		pitcher("seed-skenes", "Paul Skenes", player.PositionStarter, "PIT", 15.1, 185, 13, 22, 225, 0, 0, 2.70, 1.01),
		pitcher("seed-sale", "Chris Sale", player.PositionStarter, "ATL", 30.0, 180, 14, 21, 215, 0, 0, 3.20, 1.05),
		pitcher("seed-clase", "Emmanuel Clase", player.PositionReliever, "CLE", 70.0, 70, 4, 0, 72, 42, 2, 2.10, 0.92),
		pitcher("seed-hader", "Josh Hader", player.PositionReliever, "HOU", 85.0, 65, 3, 0, 90, 35, 1, 2.95, 1.03),
		pitcher("seed-duran", "Jhoan Duran", player.PositionReliever, "PHI", 110.0, 68, 4, 0, 80, 28, 6, 2.60, 0.98),
		pitcher("seed-miller", "Mason Miller", player.PositionReliever, "ATH", 95.0, 62, 2, 0, 95, 25, 3, 2.80, 0.95),
	}
}
