package router

import (
	"net/http"
	"testing"

	"github.com/musclemap/musclemap/internal/model"
)

func TestMuscleGroupAndMuscleLifecycle(t *testing.T) {
	ts := newTestServer()
	admin := ts.token(t, 1, "admin@example.com", "admin")

	// Empty catalog: the list endpoints 404 rather than serving [].
	if rec := ts.do(t, http.MethodGet, "/muscles/groups", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("empty group list: expected 404, got %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/muscles", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("empty muscle list: expected 404, got %d", rec.Code)
	}

	rec := ts.do(t, http.MethodPost, "/muscles/groups", admin,
		map[string]string{"name": "Chest", "image": "x.png"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodPost, "/muscles", admin,
		map[string]any{"name": "Pectoralis", "description": "chest muscle", "group_id": 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create muscle: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/muscles/by_groups/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("muscles by group: expected 200, got %d", rec.Code)
	}
	muscles := decodeItems[model.Muscle](t, rec)
	if len(muscles) != 1 || muscles[0].Name != "Pectoralis" {
		t.Fatalf("expected Pectoralis in group 1, got %+v", muscles)
	}

	if rec := ts.do(t, http.MethodGet, "/muscles/by_groups/99", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown group: expected 404, got %d", rec.Code)
	}

	if rec := ts.do(t, http.MethodGet, "/muscles/groups/1", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("get group by id: expected 200, got %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/muscles/1", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("get muscle by id: expected 200, got %d", rec.Code)
	}
}

func TestCreateMuscleUnknownGroup(t *testing.T) {
	ts := newTestServer()
	admin := ts.token(t, 1, "admin@example.com", "admin")
	rec := ts.do(t, http.MethodPost, "/muscles", admin,
		map[string]any{"name": "Pec", "description": "d", "group_id": 42})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unresolvable group_id: expected 400, got %d", rec.Code)
	}
	if len(ts.muscles.rows) != 0 {
		t.Fatalf("failed create must not persist a muscle")
	}
}

func TestDeleteMuscle(t *testing.T) {
	ts := newTestServer()
	admin := ts.token(t, 1, "admin@example.com", "admin")
	ts.do(t, http.MethodPost, "/muscles/groups", admin, map[string]string{"name": "Back", "image": "b.png"})
	ts.do(t, http.MethodPost, "/muscles", admin, map[string]any{"name": "Lats", "description": "d", "group_id": 1})

	if rec := ts.do(t, http.MethodDelete, "/muscles/1", admin, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete muscle: expected 204, got %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodDelete, "/muscles/1", admin, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing muscle: expected 404, got %d", rec.Code)
	}
}

func TestProgramsEmptyListIsOK(t *testing.T) {
	ts := newTestServer()

	// Programs keep their original contract: empty list is 200 + [].
	rec := ts.do(t, http.MethodGet, "/programs", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("empty program list: expected 200, got %d", rec.Code)
	}
	if items := decodeItems[model.Program](t, rec); len(items) != 0 {
		t.Fatalf("expected empty items, got %+v", items)
	}

	if rec := ts.do(t, http.MethodPost, "/programs", "", map[string]string{"name": "PPL"}); rec.Code != http.StatusCreated {
		t.Fatalf("create program: expected 201, got %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/programs/1", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("get program: expected 200, got %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodDelete, "/programs/1", "", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete program: expected 204, got %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/programs/1", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted program: expected 404, got %d", rec.Code)
	}
}
