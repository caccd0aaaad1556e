package sync

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/examgraph/exam-graph-backend/internal/graph"
	"github.com/examgraph/exam-graph-backend/internal/ontology"
	"github.com/examgraph/exam-graph-backend/internal/source"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *fakeExecutor, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	exec := &fakeExecutor{}
	syncer := NewSyncer(
		source.NewSQLSource(db),
		graph.NewWriter(exec),
		graph.NewLinker(exec),
		ontology.Default(),
		zap.NewNop(),
		1,
		time.Second,
	)
	tracker := NewStatusTracker(rdb, zap.NewNop())
	coord := NewCoordinator(syncer, exec, ontology.Default(), tracker, zap.NewNop())

	r := gin.New()
	Register(r.Group("/api/v1/sync"), coord)
	return r, mock, exec, db
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestEntitiesEndpoint(t *testing.T) {
	r, _, _, db := newTestRouter(t)
	defer db.Close()

	w := doRequest(r, http.MethodGet, "/api/v1/sync/entities")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OK       bool     `json:"ok"`
		Entities []string `json:"entities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Len(t, body.Entities, 19)
	assert.Equal(t, "candidates", body.Entities[0])
}

func TestSyncNodeEndpoint(t *testing.T) {
	t.Run("syncs one record", func(t *testing.T) {
		r, mock, exec, db := newTestRouter(t)
		defer db.Close()

		mock.ExpectQuery("FROM school").
			WithArgs("S01").
			WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_name", "address", "education_level"}).
				AddRow("S01", "THPT Le Loi", nil, nil))
		exec.reply(oneRow("merged", int64(1)), nil)
		exec.reply(oneRow("linked", int64(1)), nil)

		w := doRequest(r, http.MethodPost, "/api/v1/sync/schools/nodes/S01")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
	})

	t.Run("unknown entity is 404", func(t *testing.T) {
		r, _, _, db := newTestRouter(t)
		defer db.Close()

		w := doRequest(r, http.MethodPost, "/api/v1/sync/wizards/nodes/W01")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing record is 404", func(t *testing.T) {
		r, mock, _, db := newTestRouter(t)
		defer db.Close()

		mock.ExpectQuery("FROM school").
			WithArgs("S404").
			WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_name", "address", "education_level"}))

		w := doRequest(r, http.MethodPost, "/api/v1/sync/schools/nodes/S404")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSyncNodesEndpoint(t *testing.T) {
	t.Run("invalid limit is 400", func(t *testing.T) {
		r, _, _, db := newTestRouter(t)
		defer db.Close()

		w := doRequest(r, http.MethodPost, "/api/v1/sync/schools/nodes?limit=banana")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns batch counts", func(t *testing.T) {
		r, mock, exec, db := newTestRouter(t)
		defer db.Close()

		mock.ExpectQuery("FROM school").
			WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_name", "address", "education_level"}).
				AddRow("S01", "A", nil, nil))
		exec.reply(oneRow("merged", int64(1)), nil)
		exec.reply(oneRow("linked", int64(1)), nil)

		w := doRequest(r, http.MethodPost, "/api/v1/sync/schools/nodes")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			OK    bool        `json:"ok"`
			Nodes BatchResult `json:"nodes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, BatchResult{Total: 1, Success: 1}, body.Nodes)
	})
}

func TestSyncRelationshipsEndpoint(t *testing.T) {
	r, mock, exec, db := newTestRouter(t)
	defer db.Close()

	mock.ExpectQuery("FROM exam_room").
		WithArgs("R1").
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_name", "location_id", "capacity"}).
			AddRow("R1", "Room 101", "L1", 30))
	exec.reply(oneRow("merged", int64(1)), nil)

	w := doRequest(r, http.MethodPost, "/api/v1/sync/exam_rooms/relationships/R1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OK            bool      `json:"ok"`
		Relationships RelCounts `json:"relationships"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, RelCounts{
		Written: 1,
		ByType:  map[string]EdgeTally{"LOCATED_IN": {Written: 1}},
	}, body.Relationships)
}

func TestStatusEndpoint(t *testing.T) {
	r, _, _, db := newTestRouter(t)
	defer db.Close()

	w := doRequest(r, http.MethodGet, "/api/v1/sync/status")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
