package router

// In-memory store fakes used by the HTTP tests. They mirror the
// repository contracts: sentinel errors, eager foreign-key validation
// and cascade removal of link rows on exercise delete.

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/musclemap/musclemap/internal/model"
	"github.com/musclemap/musclemap/internal/repository"
	"github.com/musclemap/musclemap/internal/utils"
)

type fakeUsers struct {
	byEmail map[string]model.User
	nextID  uint64
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byEmail: map[string]model.User{}} }

func (f *fakeUsers) Create(_ context.Context, email, password, role string, cost int) (uint64, error) {
	if _, ok := f.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.byEmail[email] = model.User{
		ID: f.nextID, Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now(),
	}
	return f.nextID, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

type fakeGroups struct {
	rows   map[uint64]model.MuscleGroup
	nextID uint64
}

func newFakeGroups() *fakeGroups { return &fakeGroups{rows: map[uint64]model.MuscleGroup{}} }

func (f *fakeGroups) Create(_ context.Context, g *model.MuscleGroup) error {
	f.nextID++
	g.ID = f.nextID
	f.rows[g.ID] = *g
	return nil
}

func (f *fakeGroups) GetByID(_ context.Context, id uint64) (model.MuscleGroup, error) {
	g, ok := f.rows[id]
	if !ok {
		return model.MuscleGroup{}, sql.ErrNoRows
	}
	return g, nil
}

func (f *fakeGroups) ListAll(_ context.Context) ([]model.MuscleGroup, error) {
	out := make([]model.MuscleGroup, 0, len(f.rows))
	for _, id := range sortedKeys(f.rows) {
		out = append(out, f.rows[id])
	}
	return out, nil
}

type fakeMuscles struct {
	rows   map[uint64]model.Muscle
	groups *fakeGroups
	nextID uint64
}

func newFakeMuscles(groups *fakeGroups) *fakeMuscles {
	return &fakeMuscles{rows: map[uint64]model.Muscle{}, groups: groups}
}

func (f *fakeMuscles) Create(_ context.Context, m *model.Muscle) error {
	if _, ok := f.groups.rows[m.GroupID]; !ok {
		return repository.ErrInvalidReference
	}
	f.nextID++
	m.ID = f.nextID
	f.rows[m.ID] = *m
	return nil
}

func (f *fakeMuscles) GetByID(_ context.Context, id uint64) (model.Muscle, error) {
	m, ok := f.rows[id]
	if !ok {
		return model.Muscle{}, sql.ErrNoRows
	}
	return m, nil
}

func (f *fakeMuscles) List(_ context.Context, limit, offset int) ([]model.Muscle, error) {
	all := make([]model.Muscle, 0, len(f.rows))
	for _, id := range sortedKeys(f.rows) {
		all = append(all, f.rows[id])
	}
	return page(all, limit, offset), nil
}

func (f *fakeMuscles) ListByGroup(_ context.Context, groupID uint64) ([]model.Muscle, error) {
	if _, ok := f.groups.rows[groupID]; !ok {
		return nil, sql.ErrNoRows
	}
	out := []model.Muscle{}
	for _, id := range sortedKeys(f.rows) {
		if f.rows[id].GroupID == groupID {
			out = append(out, f.rows[id])
		}
	}
	return out, nil
}

func (f *fakeMuscles) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

type fakeExercises struct {
	rows    map[uint64]model.Exercise
	groups  *fakeGroups
	muscles *fakeMuscles
	nextID  uint64
	clock   time.Time
}

func newFakeExercises(groups *fakeGroups, muscles *fakeMuscles) *fakeExercises {
	return &fakeExercises{
		rows:    map[uint64]model.Exercise{},
		groups:  groups,
		muscles: muscles,
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeExercises) Create(_ context.Context, e *model.Exercise) error {
	for _, id := range e.MuscleIDs {
		if _, ok := f.muscles.rows[id]; !ok {
			return repository.ErrInvalidReference
		}
	}
	for _, id := range e.GroupIDs {
		if _, ok := f.groups.rows[id]; !ok {
			return repository.ErrInvalidReference
		}
	}
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	e.ID = f.nextID
	e.CreatedAt = f.clock
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeExercises) GetByID(_ context.Context, id uint64) (model.Exercise, error) {
	e, ok := f.rows[id]
	if !ok {
		return model.Exercise{}, sql.ErrNoRows
	}
	return e, nil
}

func (f *fakeExercises) List(_ context.Context, limit, offset int, search string) ([]model.Exercise, error) {
	all := []model.Exercise{}
	for _, id := range sortedKeys(f.rows) {
		e := f.rows[id]
		if search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(search)) {
			continue
		}
		all = append(all, e)
	}
	return page(all, limit, offset), nil
}

func (f *fakeExercises) ListByGroup(_ context.Context, groupID uint64, limit, offset int) ([]model.Exercise, error) {
	if _, ok := f.groups.rows[groupID]; !ok {
		return nil, sql.ErrNoRows
	}
	all := []model.Exercise{}
	for _, id := range sortedKeys(f.rows) {
		if containsID(f.rows[id].GroupIDs, groupID) {
			all = append(all, f.rows[id])
		}
	}
	return page(all, limit, offset), nil
}

func (f *fakeExercises) ListByMuscle(_ context.Context, muscleID uint64, limit, offset int) ([]model.Exercise, error) {
	if _, ok := f.muscles.rows[muscleID]; !ok {
		return nil, sql.ErrNoRows
	}
	all := []model.Exercise{}
	for _, id := range sortedKeys(f.rows) {
		if containsID(f.rows[id].MuscleIDs, muscleID) {
			all = append(all, f.rows[id])
		}
	}
	return page(all, limit, offset), nil
}

func (f *fakeExercises) ListLatest(_ context.Context, limit, offset int) ([]model.Exercise, error) {
	all := make([]model.Exercise, 0, len(f.rows))
	for _, id := range sortedKeys(f.rows) {
		all = append(all, f.rows[id])
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (f *fakeExercises) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

type fakePrograms struct {
	rows   map[uint64]model.Program
	nextID uint64
}

func newFakePrograms() *fakePrograms { return &fakePrograms{rows: map[uint64]model.Program{}} }

func (f *fakePrograms) Create(_ context.Context, p *model.Program) error {
	f.nextID++
	p.ID = f.nextID
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePrograms) ListAll(_ context.Context) ([]model.Program, error) {
	out := []model.Program{}
	for _, id := range sortedKeys(f.rows) {
		out = append(out, f.rows[id])
	}
	return out, nil
}

func (f *fakePrograms) GetByID(_ context.Context, id uint64) (model.Program, error) {
	p, ok := f.rows[id]
	if !ok {
		return model.Program{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePrograms) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func sortedKeys[V any](m map[uint64]V) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
