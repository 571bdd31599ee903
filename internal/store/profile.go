package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mudralabs/mudra/internal/gesture"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile represents a named set of engine tuning parameters stored in
// the database.
type Profile struct {
	ID        string
	Name      string
	Params    gesture.Params
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepository provides CRUD operations for tuning profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

const profileColumns = `id, name, smooth_window, extend_tolerance, ghost_distance,
	swipe_cooldown_ms, swipe_min_dx, swipe_axis_ratio, palm_hold_ms,
	rotate_settle_ms, rotate_gain, still_threshold, still_timeout_ms,
	zoom_clamp_lo, zoom_clamp_hi, zoom_gain, zoom_deadband,
	created_at, updated_at`

// scanProfile reads one profile row. Durations are stored as integer
// milliseconds.
func scanProfile(row interface{ Scan(...any) error }) (*Profile, error) {
	p := &Profile{}
	var swipeCooldownMs, palmHoldMs, rotateSettleMs, stillTimeoutMs int64

	err := row.Scan(
		&p.ID, &p.Name,
		&p.Params.SmoothWindow, &p.Params.ExtendTolerance, &p.Params.GhostDistance,
		&swipeCooldownMs, &p.Params.SwipeMinDX, &p.Params.SwipeAxisRatio, &palmHoldMs,
		&rotateSettleMs, &p.Params.RotateGain, &p.Params.StillThreshold, &stillTimeoutMs,
		&p.Params.ZoomClampLo, &p.Params.ZoomClampHi, &p.Params.ZoomGain, &p.Params.ZoomDeadband,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Params.SwipeCooldown = time.Duration(swipeCooldownMs) * time.Millisecond
	p.Params.PalmHold = time.Duration(palmHoldMs) * time.Millisecond
	p.Params.RotateSettle = time.Duration(rotateSettleMs) * time.Millisecond
	p.Params.StillTimeout = time.Duration(stillTimeoutMs) * time.Millisecond

	return p, nil
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name,
		p.Params.SmoothWindow, p.Params.ExtendTolerance, p.Params.GhostDistance,
		p.Params.SwipeCooldown.Milliseconds(), p.Params.SwipeMinDX, p.Params.SwipeAxisRatio,
		p.Params.PalmHold.Milliseconds(),
		p.Params.RotateSettle.Milliseconds(), p.Params.RotateGain,
		p.Params.StillThreshold, p.Params.StillTimeout.Milliseconds(),
		p.Params.ZoomClampLo, p.Params.ZoomClampHi, p.Params.ZoomGain, p.Params.ZoomDeadband,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	row := r.db.QueryRow(
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id,
	)
	return scanProfile(row)
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	row := r.db.QueryRow(
		`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name,
	)
	return scanProfile(row)
}

// List retrieves all profiles from the database.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update updates an existing profile in the database.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, smooth_window = ?, extend_tolerance = ?,
			ghost_distance = ?, swipe_cooldown_ms = ?, swipe_min_dx = ?,
			swipe_axis_ratio = ?, palm_hold_ms = ?, rotate_settle_ms = ?,
			rotate_gain = ?, still_threshold = ?, still_timeout_ms = ?,
			zoom_clamp_lo = ?, zoom_clamp_hi = ?, zoom_gain = ?,
			zoom_deadband = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name,
		p.Params.SmoothWindow, p.Params.ExtendTolerance, p.Params.GhostDistance,
		p.Params.SwipeCooldown.Milliseconds(), p.Params.SwipeMinDX, p.Params.SwipeAxisRatio,
		p.Params.PalmHold.Milliseconds(),
		p.Params.RotateSettle.Milliseconds(), p.Params.RotateGain,
		p.Params.StillThreshold, p.Params.StillTimeout.Milliseconds(),
		p.Params.ZoomClampLo, p.Params.ZoomClampHi, p.Params.ZoomGain, p.Params.ZoomDeadband,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a profile from the database by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
