package repository

import (
	"context"
	"database/sql"

	"github.com/musclemap/musclemap/internal/model"
)

type ProgramRepo struct{ DB *sql.DB }

func NewProgramRepo(db *sql.DB) *ProgramRepo { return &ProgramRepo{DB: db} }

// Create inserts a program and populates its generated ID.
func (r *ProgramRepo) Create(ctx context.Context, p *model.Program) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO programs (name, description) VALUES (?,?)", p.Name, p.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// ListAll returns every program. Unlike the muscle endpoints, an empty
// catalog is served as an empty array, not 404.
func (r *ProgramRepo) ListAll(ctx context.Context) ([]model.Program, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,COALESCE(description,'') FROM programs ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Program{}
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches a program by id. Returns sql.ErrNoRows on a miss.
func (r *ProgramRepo) GetByID(ctx context.Context, id uint64) (model.Program, error) {
	var p model.Program
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,COALESCE(description,'') FROM programs WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Name, &p.Description)
	return p, err
}

// Delete removes a program by id. Returns sql.ErrNoRows when the id does
// not exist.
func (r *ProgramRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM programs WHERE id=?", id)
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
