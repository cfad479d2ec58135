package repository

import (
	"context"
	"database/sql"

	"github.com/musclemap/musclemap/internal/model"
)

type MuscleRepo struct{ DB *sql.DB }

func NewMuscleRepo(db *sql.DB) *MuscleRepo { return &MuscleRepo{DB: db} }

const muscleCols = "id,name,description,COALESCE(image,''),COALESCE(large_image,''),group_id"

func scanMuscle(row interface{ Scan(...any) error }, m *model.Muscle) error {
	return row.Scan(&m.ID, &m.Name, &m.Description, &m.Image, &m.LargeImage, &m.GroupID)
}

// Create validates the referenced group eagerly and inserts the muscle,
// populating its generated ID. An unresolvable group_id fails with
// ErrInvalidReference before anything is written.
func (r *MuscleRepo) Create(ctx context.Context, m *model.Muscle) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM muscle_groups WHERE id=?)", m.GroupID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidReference
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO muscles (name, description, image, large_image, group_id) VALUES (?,?,NULLIF(?,''),NULLIF(?,''),?)",
		m.Name, m.Description, m.Image, m.LargeImage, m.GroupID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a muscle by id. Returns sql.ErrNoRows on a miss.
func (r *MuscleRepo) GetByID(ctx context.Context, id uint64) (model.Muscle, error) {
	var m model.Muscle
	err := scanMuscle(r.DB.QueryRowContext(ctx,
		"SELECT "+muscleCols+" FROM muscles WHERE id=? LIMIT 1", id), &m)
	return m, err
}

// List returns muscles paginated by (limit, offset).
func (r *MuscleRepo) List(ctx context.Context, limit, offset int) ([]model.Muscle, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+muscleCols+" FROM muscles ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMuscles(rows, limit)
}

// ListByGroup returns the muscles attached to a group. The group must
// exist; otherwise sql.ErrNoRows is returned. A group with no muscles
// yields an empty slice.
func (r *MuscleRepo) ListByGroup(ctx context.Context, groupID uint64) ([]model.Muscle, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM muscle_groups WHERE id=?)", groupID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, sql.ErrNoRows
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+muscleCols+" FROM muscles WHERE group_id=? ORDER BY id", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMuscles(rows, 0)
}

// Delete removes a muscle by id. Returns sql.ErrNoRows when the id does
// not exist.
func (r *MuscleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM muscles WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func collectMuscles(rows *sql.Rows, capHint int) ([]model.Muscle, error) {
	out := make([]model.Muscle, 0, capHint)
	for rows.Next() {
		var m model.Muscle
		if err := scanMuscle(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
