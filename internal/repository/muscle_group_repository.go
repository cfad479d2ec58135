package repository

import (
	"context"
	"database/sql"

	"github.com/musclemap/musclemap/internal/model"
)

type MuscleGroupRepo struct{ DB *sql.DB }

func NewMuscleGroupRepo(db *sql.DB) *MuscleGroupRepo { return &MuscleGroupRepo{DB: db} }

// Create inserts a muscle group and populates its generated ID.
func (r *MuscleGroupRepo) Create(ctx context.Context, g *model.MuscleGroup) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO muscle_groups (name, description, image) VALUES (?,?,?)",
		g.Name, g.Description, g.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID fetches a muscle group by id. Returns sql.ErrNoRows on a miss.
func (r *MuscleGroupRepo) GetByID(ctx context.Context, id uint64) (model.MuscleGroup, error) {
	var g model.MuscleGroup
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,COALESCE(description,''),image FROM muscle_groups WHERE id=? LIMIT 1",
		id).Scan(&g.ID, &g.Name, &g.Description, &g.Image)
	return g, err
}

// ListAll returns every muscle group. The empty slice is a valid result;
// the handler owns the empty-collection contract.
func (r *MuscleGroupRepo) ListAll(ctx context.Context) ([]model.MuscleGroup, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,COALESCE(description,''),image FROM muscle_groups ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MuscleGroup{}
	for rows.Next() {
		var g model.MuscleGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Image); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
