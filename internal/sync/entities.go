package sync

import (
	"github.com/examgraph/exam-graph-backend/internal/source"
)

// descriptors registers every syncable entity type, keyed by the wire name
// used in routes and status keys. PropFields mirror the property catalog the
// ontology declares for the class, and hint PropFields mirror the
// relationship's. The order of entityOrder is the dependency order for bulk
// sync: referenced-first so most edges land on the first pass, with anything
// left behind healed by the relationship passes.

var descriptors = map[string]Descriptor{
	"candidates": {
		EntityType: "candidates",
		Class:      "Candidate",
		Queries:    source.CandidateQueries,
		PropFields: []string{"full_name", "birth_date", "id_number", "phone_number", "email", "primary_address", "secondary_address"},
		Hints: []RelHint{
			{Rel: "STUDIES_AT", FKField: "school_id", PropFields: []string{"start_year", "end_year", "education_level", "academic_performance"}},
		},
	},
	"schools": {
		EntityType: "schools",
		Class:      "School",
		Queries:    source.SchoolQueries,
		PropFields: []string{"school_name", "address", "education_level"},
	},
	"majors": {
		EntityType: "majors",
		Class:      "Major",
		Queries:    source.MajorQueries,
		PropFields: []string{"major_name", "ministry_code", "description"},
	},
	"subjects": {
		EntityType: "subjects",
		Class:      "Subject",
		Queries:    source.SubjectQueries,
		PropFields: []string{"subject_name", "education_level", "description"},
	},
	"exams": {
		EntityType: "exams",
		Class:      "Exam",
		Queries:    source.ExamQueries,
		PropFields: []string{"exam_name", "start_date", "end_date", "scope", "education_level"},
		Hints: []RelHint{
			{Rel: "ORGANIZED_BY", FKField: "organizing_unit_id", PropFields: []string{"start_date", "end_date"}},
		},
	},
	"exam_locations": {
		EntityType: "exam_locations",
		Class:      "ExamLocation",
		Queries:    source.ExamLocationQueries,
		PropFields: []string{"location_name", "address", "capacity"},
		Hints: []RelHint{
			{Rel: "HELD_AT", FKField: "exam_id", RecordIsTarget: true},
		},
	},
	"exam_rooms": {
		EntityType: "exam_rooms",
		Class:      "ExamRoom",
		Queries:    source.ExamRoomQueries,
		PropFields: []string{"room_name", "capacity"},
		Hints: []RelHint{
			{Rel: "LOCATED_IN", FKField: "location_id"},
		},
	},
	"exam_schedules": {
		EntityType: "exam_schedules",
		Class:      "ExamSchedule",
		Queries:    source.ExamScheduleQueries,
		PropFields: []string{"start_time", "end_time", "description", "status"},
		Hints: []RelHint{
			{Rel: "FOLLOWS_SCHEDULE", FKField: "exam_id", RecordIsTarget: true},
		},
	},
	"exam_attempts": {
		EntityType: "exam_attempts",
		Class:      "ExamAttempt",
		Queries:    source.ExamAttemptQueries,
		PropFields: []string{"attempt_number", "attempt_date", "result", "notes"},
		Hints: []RelHint{
			{Rel: "HAS_ATTEMPT", FKField: "candidate_id", RecordIsTarget: true},
			{Rel: "FOR_EXAM", FKField: "exam_id"},
		},
	},
	"scores": {
		EntityType: "scores",
		Class:      "Score",
		Queries:    source.ScoreQueries,
		PropFields: []string{"score"},
		Hints: []RelHint{
			{Rel: "RECEIVES_SCORE", FKField: "candidate_id", RecordIsTarget: true},
			{Rel: "FOR_SUBJECT", FKField: "subject_id"},
			{Rel: "IN_EXAM", FKField: "exam_id"},
			{Rel: "FOR_ATTEMPT", FKField: "attempt_id"},
		},
	},
	"score_reviews": {
		EntityType: "score_reviews",
		Class:      "ScoreReview",
		Queries:    source.ScoreReviewQueries,
		PropFields: []string{"request_date", "review_status", "original_score", "reviewed_score", "review_result", "review_date"},
		Hints: []RelHint{
			{Rel: "REQUESTS_REVIEW", FKField: "candidate_id", RecordIsTarget: true},
			{Rel: "REVIEWS", FKField: "score_id"},
		},
	},
	"score_histories": {
		EntityType: "score_histories",
		Class:      "ScoreHistory",
		Queries:    source.ScoreHistoryQueries,
		PropFields: []string{"previous_score", "new_score", "change_date", "change_reason", "changed_by"},
		Hints: []RelHint{
			{Rel: "HISTORY_OF", FKField: "score_id"},
		},
	},
	"certificates": {
		EntityType: "certificates",
		Class:      "Certificate",
		Queries:    source.CertificateQueries,
		PropFields: []string{"certificate_number", "issue_date", "score", "expiry_date"},
		Hints: []RelHint{
			{Rel: "EARNS_CERTIFICATE", FKField: "candidate_id", RecordIsTarget: true},
			{Rel: "CERTIFICATE_FOR_EXAM", FKField: "exam_id"},
		},
	},
	"recognitions": {
		EntityType: "recognitions",
		Class:      "Recognition",
		Queries:    source.RecognitionQueries,
		PropFields: []string{"title", "issuing_organization", "issue_date", "recognition_type", "description"},
		Hints: []RelHint{
			{Rel: "RECEIVES_RECOGNITION", FKField: "candidate_id", RecordIsTarget: true},
			{Rel: "RECOGNITION_FOR_EXAM", FKField: "exam_id"},
		},
	},
	"awards": {
		EntityType: "awards",
		Class:      "Award",
		Queries:    source.AwardQueries,
		PropFields: []string{"award_type", "achievement", "education_level", "award_date"},
		Hints: []RelHint{
			{Rel: "EARNS_AWARD", FKField: "candidate_id", RecordIsTarget: true},
			{Rel: "AWARD_FOR_EXAM", FKField: "exam_id"},
		},
	},
	"achievements": {
		EntityType: "achievements",
		Class:      "Achievement",
		Queries:    source.AchievementQueries,
		PropFields: []string{"achievement_name", "achievement_type", "description", "achievement_date", "organization", "education_level"},
		Hints: []RelHint{
			{Rel: "ACHIEVES", FKField: "candidate_id", RecordIsTarget: true},
			{Rel: "ACHIEVEMENT_FOR_EXAM", FKField: "exam_id"},
		},
	},
	"degrees": {
		EntityType: "degrees",
		Class:      "Degree",
		Queries:    source.DegreeQueries,
		PropFields: []string{"education_level", "start_year", "end_year", "academic_performance"},
		Hints: []RelHint{
			{Rel: "HOLDS_DEGREE", FKField: "candidate_id", RecordIsTarget: true},
			{Rel: "IN_MAJOR", FKField: "major_id"},
			{Rel: "ISSUED_BY", FKField: "school_id"},
		},
	},
	"credentials": {
		EntityType: "credentials",
		Class:      "Credential",
		Queries:    source.CredentialQueries,
		PropFields: []string{"credential_type", "title", "issuing_organization", "issue_date", "description", "external_reference"},
		Hints: []RelHint{
			{Rel: "PROVIDES_CREDENTIAL", FKField: "candidate_id", RecordIsTarget: true},
		},
	},
	"management_units": {
		EntityType: "management_units",
		Class:      "ManagementUnit",
		Queries:    source.ManagementUnitQueries,
		PropFields: []string{"unit_name", "unit_type"},
		Hints: []RelHint{
			{Rel: "UNIT_BELONGS_TO", FKField: "parent_id"},
		},
	},
}

// entityOrder is the bulk sync phase order.
var entityOrder = []string{
	"candidates",
	"schools",
	"exams",
	"subjects",
	"majors",
	"exam_locations",
	"exam_rooms",
	"exam_schedules",
	"exam_attempts",
	"scores",
	"score_reviews",
	"score_histories",
	"certificates",
	"awards",
	"achievements",
	"recognitions",
	"degrees",
	"credentials",
	"management_units",
}

// associations are edge-only passes driven by join tables rather than either
// endpoint's own record: one row, one edge, row facts as edge properties.
var associations = []Descriptor{
	{
		EntityType: "registrations",
		Class:      "Candidate",
		Queries:    source.ExamRegistrationQueries,
		Hints: []RelHint{
			{Rel: "ATTENDS_EXAM", FKField: "exam_id", PropFields: []string{"registration_number", "registration_date", "status", "attempt_number"}},
		},
	},
	{
		EntityType: "school_majors",
		Class:      "School",
		Queries:    source.SchoolMajorQueries,
		Hints: []RelHint{
			{Rel: "OFFERS_MAJOR", FKField: "major_id", PropFields: []string{"start_year"}},
		},
	},
	{
		EntityType: "exam_subjects",
		Class:      "Exam",
		Queries:    source.ExamSubjectQueries,
		Hints: []RelHint{
			{Rel: "INCLUDES_SUBJECT", FKField: "subject_id", PropFields: []string{"exam_date", "duration_minutes"}},
		},
	},
}

// EntityTypes returns the registered wire names in bulk sync order.
func EntityTypes() []string {
	out := make([]string, len(entityOrder))
	copy(out, entityOrder)
	return out
}
