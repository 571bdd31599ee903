package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - named sets of engine tuning parameters
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			smooth_window INTEGER NOT NULL DEFAULT 3,
			extend_tolerance REAL NOT NULL DEFAULT 0.02,
			ghost_distance REAL NOT NULL DEFAULT 0.12,
			swipe_cooldown_ms INTEGER NOT NULL DEFAULT 1200,
			swipe_min_dx REAL NOT NULL DEFAULT 0.04,
			swipe_axis_ratio REAL NOT NULL DEFAULT 0.8,
			palm_hold_ms INTEGER NOT NULL DEFAULT 1200,
			rotate_settle_ms INTEGER NOT NULL DEFAULT 50,
			rotate_gain REAL NOT NULL DEFAULT 2.5,
			still_threshold REAL NOT NULL DEFAULT 0.002,
			still_timeout_ms INTEGER NOT NULL DEFAULT 300,
			zoom_clamp_lo REAL NOT NULL DEFAULT 0.85,
			zoom_clamp_hi REAL NOT NULL DEFAULT 1.15,
			zoom_gain REAL NOT NULL DEFAULT 1.5,
			zoom_deadband REAL NOT NULL DEFAULT 0.0005,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
