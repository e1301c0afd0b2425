package storage

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "game_results",
		sql: `
			CREATE TABLE game_results (
				id TEXT PRIMARY KEY,
				policy0 TEXT NOT NULL,
				policy1 TEXT NOT NULL,
				winner INTEGER NOT NULL,
				reason TEXT NOT NULL,
				turns INTEGER NOT NULL,
				seed INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_game_results_created ON game_results(created_at);
		`,
	},
	{
		id:   2,
		name: "game_results_policies",
		sql: `
			CREATE INDEX idx_game_results_policy0 ON game_results(policy0);
			CREATE INDEX idx_game_results_policy1 ON game_results(policy1);
		`,
	},
}
