package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/musclemap/musclemap/internal/model"
)

type ExerciseRepo struct{ DB *sql.DB }

func NewExerciseRepo(db *sql.DB) *ExerciseRepo { return &ExerciseRepo{DB: db} }

const exerciseCols = "id,name,description,image,COALESCE(video,''),created_by,created_at,votes"

func scanExercise(row interface{ Scan(...any) error }, e *model.Exercise) error {
	return row.Scan(&e.ID, &e.Name, &e.Description, &e.Image, &e.Video,
		&e.CreatedBy, &e.CreatedAt, &e.Votes)
}

// Create inserts an exercise and its link rows in one transaction. Every
// supplied muscle and group id is resolved first; any miss aborts with
// ErrInvalidReference and nothing is written. On success the generated ID
// and created_at are populated on e.
func (r *ExerciseRepo) Create(ctx context.Context, e *model.Exercise) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := resolveAll(ctx, tx, "muscles", e.MuscleIDs); err != nil {
		return err
	}
	if err := resolveAll(ctx, tx, "muscle_groups", e.GroupIDs); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO exercises (name, description, image, video, created_by) VALUES (?,?,?,NULLIF(?,''),?)",
		e.Name, e.Description, e.Image, e.Video, e.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	if err := insertLinks(ctx, tx, "exercise_muscle_links", "muscle_id", e.ID, e.MuscleIDs); err != nil {
		return err
	}
	if err := insertLinks(ctx, tx, "exercise_group_links", "group_id", e.ID, e.GroupIDs); err != nil {
		return err
	}

	// Read back DB-assigned defaults.
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at, votes FROM exercises WHERE id=?", e.ID).
		Scan(&e.CreatedAt, &e.Votes); err != nil {
		return err
	}
	return tx.Commit()
}

// resolveAll verifies each id exists in table, failing with
// ErrInvalidReference on the first miss.
func resolveAll(ctx context.Context, tx *sql.Tx, table string, ids []uint64) error {
	for _, id := range ids {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM "+table+" WHERE id=?)", id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return ErrInvalidReference
		}
	}
	return nil
}

// insertLinks bulk-inserts association rows for one link table.
func insertLinks(ctx context.Context, tx *sql.Tx, table, col string, exerciseID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	q := "INSERT INTO " + table + " (exercise_id, " + col + ") VALUES "
	args := make([]any, 0, len(ids)*2)
	for i, id := range ids {
		if i > 0 {
			q += ","
		}
		q += "(?,?)"
		args = append(args, exerciseID, id)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// GetByID fetches an exercise with its link-table associations. Returns
// sql.ErrNoRows on a miss.
func (r *ExerciseRepo) GetByID(ctx context.Context, id uint64) (model.Exercise, error) {
	var e model.Exercise
	err := scanExercise(r.DB.QueryRowContext(ctx,
		"SELECT "+exerciseCols+" FROM exercises WHERE id=? LIMIT 1", id), &e)
	if err != nil {
		return model.Exercise{}, err
	}
	if e.MuscleIDs, err = linkIDs(ctx, r.DB, "exercise_muscle_links", "muscle_id", id); err != nil {
		return model.Exercise{}, err
	}
	if e.GroupIDs, err = linkIDs(ctx, r.DB, "exercise_group_links", "group_id", id); err != nil {
		return model.Exercise{}, err
	}
	return e, nil
}

func linkIDs(ctx context.Context, db *sql.DB, table, col string, exerciseID uint64) ([]uint64, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT "+col+" FROM "+table+" WHERE exercise_id=? ORDER BY "+col, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// List returns exercises paginated by (limit, offset), optionally
// filtered by a case-insensitive substring match on name.
func (r *ExerciseRepo) List(ctx context.Context, limit, offset int, search string) ([]model.Exercise, error) {
	q := "SELECT " + exerciseCols + " FROM exercises"
	args := []any{}
	if search != "" {
		q += " WHERE LOWER(name) LIKE ?"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	q += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExercises(rows, limit)
}

// ListByGroup returns exercises linked to a muscle group. The group must
// exist; otherwise sql.ErrNoRows is returned.
func (r *ExerciseRepo) ListByGroup(ctx context.Context, groupID uint64, limit, offset int) ([]model.Exercise, error) {
	return r.listLinked(ctx, "muscle_groups", "exercise_group_links", "group_id", groupID, limit, offset)
}

// ListByMuscle returns exercises linked to a muscle. The muscle must
// exist; otherwise sql.ErrNoRows is returned.
func (r *ExerciseRepo) ListByMuscle(ctx context.Context, muscleID uint64, limit, offset int) ([]model.Exercise, error) {
	return r.listLinked(ctx, "muscles", "exercise_muscle_links", "muscle_id", muscleID, limit, offset)
}

func (r *ExerciseRepo) listLinked(ctx context.Context, parent, link, col string, id uint64, limit, offset int) ([]model.Exercise, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM "+parent+" WHERE id=?)", id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, sql.ErrNoRows
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT e.id,e.name,e.description,e.image,COALESCE(e.video,''),e.created_by,e.created_at,e.votes "+
			"FROM exercises e JOIN "+link+" l ON l.exercise_id = e.id "+
			"WHERE l."+col+"=? ORDER BY e.id LIMIT ? OFFSET ?",
		id, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExercises(rows, limit)
}

// ListLatest returns exercises ordered by created_at ascending. Oldest
// first matches the long-standing behavior of this endpoint.
func (r *ExerciseRepo) ListLatest(ctx context.Context, limit, offset int) ([]model.Exercise, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+exerciseCols+" FROM exercises ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExercises(rows, limit)
}

// Delete removes an exercise and both sets of link rows in one
// transaction so no dangling links survive. Returns sql.ErrNoRows when
// the id does not exist.
func (r *ExerciseRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM exercise_muscle_links WHERE exercise_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM exercise_group_links WHERE exercise_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM exercises WHERE id=?", id)
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
	return tx.Commit()
}

func collectExercises(rows *sql.Rows, capHint int) ([]model.Exercise, error) {
	out := make([]model.Exercise, 0, capHint)
	for rows.Next() {
		var e model.Exercise
		if err := scanExercise(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
