package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
    scenario_id          TEXT PRIMARY KEY,
    name                 TEXT NOT NULL UNIQUE,
    scenario_json        TEXT NOT NULL,
    starting_funds       REAL NOT NULL,
    initial_burn         REAL NOT NULL,
    runway_months        INTEGER NOT NULL,
    depletes_on          TEXT,
    truncated            INTEGER NOT NULL DEFAULT 0,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scenario_points (
    scenario_id          TEXT NOT NULL REFERENCES scenarios(scenario_id) ON DELETE CASCADE,
    month_index          INTEGER NOT NULL,
    label                TEXT NOT NULL,
    remaining_funds      REAL NOT NULL,
    monthly_burn         REAL NOT NULL,
    PRIMARY KEY (scenario_id, month_index)
);

CREATE INDEX IF NOT EXISTS idx_scenarios_updated ON scenarios(updated_at);
`
