package sqlite

import "database/sql"

// schema sets up the tables on startup. The profile table holds at most one
// row; entries are keyed by their "YYYY-MM-DD" day.
const schema = `
CREATE TABLE IF NOT EXISTS profile (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    age INTEGER NOT NULL,
    height REAL NOT NULL,
    starting_weight REAL NOT NULL,
    target_weight REAL NOT NULL,
    start_date TEXT NOT NULL,
    goal_date TEXT NOT NULL,
    daily_step_goal INTEGER NOT NULL,
    daily_calorie_goal INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    day TEXT PRIMARY KEY,
    weight REAL,
    steps INTEGER,
    calories_burned INTEGER,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
