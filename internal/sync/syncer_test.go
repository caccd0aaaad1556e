package sync

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/examgraph/exam-graph-backend/internal/graph"
	"github.com/examgraph/exam-graph-backend/internal/ontology"
	"github.com/examgraph/exam-graph-backend/internal/source"
)

func newTestSyncer(t *testing.T, workers int) (*Syncer, sqlmock.Sqlmock, *fakeExecutor, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	exec := &fakeExecutor{}
	s := NewSyncer(
		source.NewSQLSource(db),
		graph.NewWriter(exec),
		graph.NewLinker(exec),
		ontology.Default(),
		zap.NewNop(),
		workers,
		time.Second,
	)
	return s, mock, exec, db
}

func TestSyncNodeByID(t *testing.T) {
	s, mock, exec, db := newTestSyncer(t, 1)
	defer db.Close()

	d, err := DescriptorFor("schools")
	require.NoError(t, err)

	mock.ExpectQuery("FROM school").
		WithArgs("S01").
		WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_name", "address", "education_level"}).
			AddRow("S01", "THPT Le Loi", "12 Tran Phu", "THPT"))
	exec.reply(oneRow("merged", int64(1)), nil)
	exec.reply(oneRow("linked", int64(1)), nil)

	require.NoError(t, s.SyncNodeByID(context.Background(), d, "S01"))

	upserts := exec.callsMatching("MERGE (n:School {school_id: $key})")
	require.Len(t, upserts, 1)
	props := upserts[0].params["props"].(map[string]any)
	assert.Equal(t, "THPT Le Loi", props["school_name"])

	links := exec.callsMatching("INSTANCE_OF")
	require.Len(t, links, 1)
	assert.Equal(t, "school-class", links[0].params["class_id"])
}

func TestSyncNodeByID_NotFound(t *testing.T) {
	s, mock, _, db := newTestSyncer(t, 1)
	defer db.Close()

	d, _ := DescriptorFor("schools")
	mock.ExpectQuery("FROM school").
		WithArgs("S404").
		WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_name", "address", "education_level"}))

	err := s.SyncNodeByID(context.Background(), d, "S404")
	assert.ErrorIs(t, err, source.ErrNotFound)
}

func TestSyncAllNodes(t *testing.T) {
	t.Run("counts successes and failures separately", func(t *testing.T) {
		s, mock, exec, db := newTestSyncer(t, 1)
		defer db.Close()

		d, _ := DescriptorFor("schools")
		mock.ExpectQuery("FROM school").
			WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_name", "address", "education_level"}).
				AddRow("S01", "A", nil, nil).
				AddRow(nil, "no key", nil, nil))
		// Only the first record reaches the graph.
		exec.reply(oneRow("merged", int64(1)), nil)
		exec.reply(oneRow("linked", int64(1)), nil)

		res, err := s.SyncAllNodes(context.Background(), d, 0)
		require.NoError(t, err)
		assert.Equal(t, BatchResult{Total: 2, Success: 1, Failed: 1}, res)
	})

	t.Run("store outage aborts the batch", func(t *testing.T) {
		s, mock, exec, db := newTestSyncer(t, 1)
		defer db.Close()

		d, _ := DescriptorFor("schools")
		mock.ExpectQuery("FROM school").
			WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_name", "address", "education_level"}).
				AddRow("S01", "A", nil, nil).
				AddRow("S02", "B", nil, nil))
		exec.reply(nil, graph.ErrStoreUnavailable)

		_, err := s.SyncAllNodes(context.Background(), d, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, graph.ErrStoreUnavailable))
	})
}

func TestSyncRelationshipsByID(t *testing.T) {
	t.Run("record as source", func(t *testing.T) {
		s, mock, exec, db := newTestSyncer(t, 1)
		defer db.Close()

		d, _ := DescriptorFor("exam_rooms")
		mock.ExpectQuery("FROM exam_room").
			WithArgs("R1").
			WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_name", "location_id", "capacity"}).
				AddRow("R1", "Room 101", "L1", 30))
		exec.reply(oneRow("merged", int64(1)), nil)

		counts, err := s.SyncRelationshipsByID(context.Background(), d, "R1")
		require.NoError(t, err)
		assert.Equal(t, RelCounts{Written: 1, ByType: map[string]EdgeTally{"LOCATED_IN": {Written: 1}}}, counts)

		edges := exec.callsMatching("MERGE (a)-[r:LOCATED_IN]->(b)")
		require.Len(t, edges, 1)
		assert.Equal(t, "R1", edges[0].params["source_key"])
		assert.Equal(t, "L1", edges[0].params["target_key"])
	})

	t.Run("record as target", func(t *testing.T) {
		s, mock, exec, db := newTestSyncer(t, 1)
		defer db.Close()

		d, _ := DescriptorFor("credentials")
		mock.ExpectQuery("FROM candidate_credential").
			WithArgs("CR1").
			WillReturnRows(sqlmock.NewRows([]string{
				"credential_id", "candidate_id", "credential_type", "title",
				"issuing_organization", "issue_date", "description", "external_reference",
			}).AddRow("CR1", "C001", "language", "IELTS 7.0", "IDP", nil, nil, nil))
		exec.reply(oneRow("merged", int64(1)), nil)

		counts, err := s.SyncRelationshipsByID(context.Background(), d, "CR1")
		require.NoError(t, err)
		assert.Equal(t, RelCounts{Written: 1, ByType: map[string]EdgeTally{"PROVIDES_CREDENTIAL": {Written: 1}}}, counts)

		edges := exec.callsMatching("MERGE (a)-[r:PROVIDES_CREDENTIAL]->(b)")
		require.Len(t, edges, 1)
		assert.Equal(t, "C001", edges[0].params["source_key"])
		assert.Equal(t, "CR1", edges[0].params["target_key"])
	})

	t.Run("absent foreign key skips the edge without a store call", func(t *testing.T) {
		s, mock, exec, db := newTestSyncer(t, 1)
		defer db.Close()

		d, _ := DescriptorFor("exam_rooms")
		mock.ExpectQuery("FROM exam_room").
			WithArgs("R2").
			WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_name", "location_id", "capacity"}).
				AddRow("R2", "Room 102", nil, 20))

		counts, err := s.SyncRelationshipsByID(context.Background(), d, "R2")
		require.NoError(t, err)
		assert.Equal(t, RelCounts{Skipped: 1, ByType: map[string]EdgeTally{"LOCATED_IN": {Skipped: 1}}}, counts)
		assert.Empty(t, exec.callsMatching("LOCATED_IN"))
	})

	t.Run("missing endpoint counts as skipped", func(t *testing.T) {
		s, mock, exec, db := newTestSyncer(t, 1)
		defer db.Close()

		d, _ := DescriptorFor("exam_rooms")
		mock.ExpectQuery("FROM exam_room").
			WithArgs("R3").
			WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_name", "location_id", "capacity"}).
				AddRow("R3", "Room 103", "L404", 20))
		exec.reply(nil, nil) // endpoint MATCH found nothing

		counts, err := s.SyncRelationshipsByID(context.Background(), d, "R3")
		require.NoError(t, err)
		assert.Equal(t, RelCounts{Skipped: 1, ByType: map[string]EdgeTally{"LOCATED_IN": {Skipped: 1}}}, counts)
	})

	t.Run("breakdown names the edge that was skipped", func(t *testing.T) {
		recognitionRows := func() *sqlmock.Rows {
			return sqlmock.NewRows([]string{
				"recognition_id", "title", "issuing_organization", "issue_date",
				"recognition_type", "description", "candidate_id", "exam_id",
			})
		}

		s, mock, exec, db := newTestSyncer(t, 1)
		defer db.Close()
		d, _ := DescriptorFor("recognitions")

		// Candidate in the graph, exam not yet synced.
		mock.ExpectQuery("FROM recognition").
			WithArgs("RG1").
			WillReturnRows(recognitionRows().
				AddRow("RG1", "Top score", "DoE", nil, "merit", nil, "C001", "E404"))
		exec.reply(oneRow("merged", int64(1)), nil)
		exec.reply(nil, nil)

		examMissing, err := s.SyncRelationshipsByID(context.Background(), d, "RG1")
		require.NoError(t, err)

		// Exam in the graph, candidate not yet synced.
		mock.ExpectQuery("FROM recognition").
			WithArgs("RG2").
			WillReturnRows(recognitionRows().
				AddRow("RG2", "Top score", "DoE", nil, "merit", nil, "C404", "E01"))
		exec.reply(nil, nil)
		exec.reply(oneRow("merged", int64(1)), nil)

		candidateMissing, err := s.SyncRelationshipsByID(context.Background(), d, "RG2")
		require.NoError(t, err)

		// Identical totals, but the breakdown tells the two runs apart.
		assert.Equal(t, EdgeTally{Written: 1}, examMissing.ByType["RECEIVES_RECOGNITION"])
		assert.Equal(t, EdgeTally{Skipped: 1}, examMissing.ByType["RECOGNITION_FOR_EXAM"])
		assert.Equal(t, EdgeTally{Skipped: 1}, candidateMissing.ByType["RECEIVES_RECOGNITION"])
		assert.Equal(t, EdgeTally{Written: 1}, candidateMissing.ByType["RECOGNITION_FOR_EXAM"])
		assert.NotEqual(t, examMissing.ByType, candidateMissing.ByType)
	})

	t.Run("score edges fan out to candidate, subject, exam and attempt", func(t *testing.T) {
		s, mock, exec, db := newTestSyncer(t, 1)
		defer db.Close()
		d, _ := DescriptorFor("scores")

		mock.ExpectQuery("FROM exam_score").
			WithArgs("SC1").
			WillReturnRows(sqlmock.NewRows([]string{
				"score_id", "score", "exam_id", "subject_id", "candidate_id", "attempt_id",
			}).AddRow("SC1", 8.5, "E01", "SU1", "C001", "AT1"))
		for i := 0; i < 4; i++ {
			exec.reply(oneRow("merged", int64(1)), nil)
		}

		counts, err := s.SyncRelationshipsByID(context.Background(), d, "SC1")
		require.NoError(t, err)
		assert.Equal(t, RelCounts{Written: 4, ByType: map[string]EdgeTally{
			"RECEIVES_SCORE": {Written: 1},
			"FOR_SUBJECT":    {Written: 1},
			"IN_EXAM":        {Written: 1},
			"FOR_ATTEMPT":    {Written: 1},
		}}, counts)

		attempts := exec.callsMatching("MERGE (a)-[r:FOR_ATTEMPT]->(b)")
		require.Len(t, attempts, 1)
		assert.Equal(t, "SC1", attempts[0].params["source_key"])
		assert.Equal(t, "AT1", attempts[0].params["target_key"])
	})
}

func TestSyncAllRelationships(t *testing.T) {
	s, mock, exec, db := newTestSyncer(t, 2)
	defer db.Close()

	d, _ := DescriptorFor("exam_rooms")
	mock.ExpectQuery("FROM exam_room").
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_name", "location_id", "capacity"}).
			AddRow("R1", "Room 101", "L1", 30).
			AddRow("R2", "Room 102", nil, 20))
	exec.reply(oneRow("merged", int64(1)), nil)

	counts, err := s.SyncAllRelationships(context.Background(), d, 0)
	require.NoError(t, err)
	assert.Equal(t, RelCounts{
		Written: 1,
		Skipped: 1,
		ByType:  map[string]EdgeTally{"LOCATED_IN": {Written: 1, Skipped: 1}},
	}, counts)
}

func TestSyncNodeAppliesAncestorLabels(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reg := ontology.NewRegistry([]ontology.Class{
		{Name: ontology.RootClassName, KeyField: "id"},
		{Name: "Person", Parent: ontology.RootClassName, KeyField: "person_id"},
		{Name: "Candidate", Parent: "Person", KeyField: "candidate_id"},
	}, nil)

	exec := &fakeExecutor{}
	s := NewSyncer(
		source.NewSQLSource(db),
		graph.NewWriter(exec),
		graph.NewLinker(exec),
		reg,
		zap.NewNop(),
		1,
		time.Second,
	)
	d := Descriptor{
		EntityType: "candidates",
		Class:      "Candidate",
		Queries:    source.CandidateQueries,
		PropFields: []string{"full_name"},
	}

	mock.ExpectQuery("FROM candidate").
		WithArgs("C001").
		WillReturnRows(sqlmock.NewRows([]string{"candidate_id", "full_name"}).
			AddRow("C001", "Nguyen Van A"))
	exec.reply(oneRow("merged", int64(1)), nil)
	exec.reply(oneRow("linked", int64(1)), nil)

	require.NoError(t, s.SyncNodeByID(context.Background(), d, "C001"))

	upserts := exec.callsMatching("MERGE (n:Candidate {candidate_id: $key})")
	require.Len(t, upserts, 1)
	assert.Contains(t, upserts[0].cypher, "n:OntologyInstance, n:Person,")
	assert.NotContains(t, upserts[0].cypher, "n:Thing")
}
