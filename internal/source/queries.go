package source

// Per-entity SQL. Each entity's queries project the relational row into the
// flat shape the graph side expects: natural keys aliased to the graph key
// field where the table names them differently, and foreign keys from parent
// tables denormalized in via joins so relationship hints can read them off
// the record directly.

var CandidateQueries = Queries{
	ByID: `SELECT c.candidate_id, c.full_name,
       p.birth_date, p.id_number, p.phone_number, p.email,
       p.primary_address, p.secondary_address,
       eh.school_id, eh.education_level, eh.start_year, eh.end_year, eh.academic_performance
FROM candidate c
LEFT JOIN personal_info p ON p.candidate_id = c.candidate_id
LEFT JOIN LATERAL (
    SELECT school_id, education_level, start_year, end_year, academic_performance
    FROM education_history
    WHERE candidate_id = c.candidate_id
    ORDER BY start_year DESC NULLS LAST
    LIMIT 1
) eh ON TRUE
WHERE c.candidate_id = $1`,
	All: `SELECT c.candidate_id, c.full_name,
       p.birth_date, p.id_number, p.phone_number, p.email,
       p.primary_address, p.secondary_address,
       eh.school_id, eh.education_level, eh.start_year, eh.end_year, eh.academic_performance
FROM candidate c
LEFT JOIN personal_info p ON p.candidate_id = c.candidate_id
LEFT JOIN LATERAL (
    SELECT school_id, education_level, start_year, end_year, academic_performance
    FROM education_history
    WHERE candidate_id = c.candidate_id
    ORDER BY start_year DESC NULLS LAST
    LIMIT 1
) eh ON TRUE
ORDER BY c.candidate_id
LIMIT $1`,
	Count: `SELECT count(*) FROM candidate`,
}

var SchoolQueries = Queries{
	ByID: `SELECT school_id, school_name, address, education_level
FROM school
WHERE school_id = $1`,
	All: `SELECT school_id, school_name, address, education_level
FROM school
ORDER BY school_id
LIMIT $1`,
	Count: `SELECT count(*) FROM school`,
}

var MajorQueries = Queries{
	ByID: `SELECT major_id, major_name, ministry_code, description
FROM major
WHERE major_id = $1`,
	All: `SELECT major_id, major_name, ministry_code, description
FROM major
ORDER BY major_id
LIMIT $1`,
	Count: `SELECT count(*) FROM major`,
}

var SubjectQueries = Queries{
	ByID: `SELECT subject_id, subject_name, education_level, description
FROM subject
WHERE subject_id = $1`,
	All: `SELECT subject_id, subject_name, education_level, description
FROM subject
ORDER BY subject_id
LIMIT $1`,
	Count: `SELECT count(*) FROM subject`,
}

var ExamQueries = Queries{
	ByID: `SELECT exam_id, exam_name, start_date, end_date, scope, education_level,
       organizing_unit_id
FROM exam
WHERE exam_id = $1`,
	All: `SELECT exam_id, exam_name, start_date, end_date, scope, education_level,
       organizing_unit_id
FROM exam
ORDER BY exam_id
LIMIT $1`,
	Count: `SELECT count(*) FROM exam`,
}

// Exam locations carry the exam they primarily host, resolved through the
// active mapping table. Locations mapped to several exams keep the primary
// one; the rest are reachable from the exam side.
var ExamLocationQueries = Queries{
	ByID: `SELECT l.location_id, l.location_name, l.address, l.capacity,
       m.exam_id
FROM exam_location l
LEFT JOIN LATERAL (
    SELECT exam_id FROM exam_location_mapping
    WHERE location_id = l.location_id AND is_active
    ORDER BY is_primary DESC, created_at DESC
    LIMIT 1
) m ON TRUE
WHERE l.location_id = $1`,
	All: `SELECT l.location_id, l.location_name, l.address, l.capacity,
       m.exam_id
FROM exam_location l
LEFT JOIN LATERAL (
    SELECT exam_id FROM exam_location_mapping
    WHERE location_id = l.location_id AND is_active
    ORDER BY is_primary DESC, created_at DESC
    LIMIT 1
) m ON TRUE
ORDER BY l.location_id
LIMIT $1`,
	Count: `SELECT count(*) FROM exam_location`,
}

var ExamRoomQueries = Queries{
	ByID: `SELECT room_id, room_name, location_id, capacity
FROM exam_room
WHERE room_id = $1`,
	All: `SELECT room_id, room_name, location_id, capacity
FROM exam_room
ORDER BY room_id
LIMIT $1`,
	Count: `SELECT count(*) FROM exam_room`,
}

var ExamScheduleQueries = Queries{
	ByID: `SELECT s.exam_schedule_id AS schedule_id, s.start_time, s.end_time,
       s.description, s.status, s.room_id,
       es.exam_id, es.subject_id
FROM exam_schedule s
LEFT JOIN exam_subject es ON es.exam_subject_id = s.exam_subject_id
WHERE s.exam_schedule_id = $1`,
	All: `SELECT s.exam_schedule_id AS schedule_id, s.start_time, s.end_time,
       s.description, s.status, s.room_id,
       es.exam_id, es.subject_id
FROM exam_schedule s
LEFT JOIN exam_subject es ON es.exam_subject_id = s.exam_subject_id
ORDER BY s.exam_schedule_id
LIMIT $1`,
	Count: `SELECT count(*) FROM exam_schedule`,
}

var ExamAttemptQueries = Queries{
	ByID: `SELECT h.attempt_history_id AS attempt_id, h.attempt_number, h.attempt_date,
       h.result, h.notes,
       ce.candidate_id, ce.exam_id
FROM exam_attempt_history h
JOIN candidate_exam ce ON ce.candidate_exam_id = h.candidate_exam_id
WHERE h.attempt_history_id = $1`,
	All: `SELECT h.attempt_history_id AS attempt_id, h.attempt_number, h.attempt_date,
       h.result, h.notes,
       ce.candidate_id, ce.exam_id
FROM exam_attempt_history h
JOIN candidate_exam ce ON ce.candidate_exam_id = h.candidate_exam_id
ORDER BY h.attempt_history_id
LIMIT $1`,
	Count: `SELECT count(*) FROM exam_attempt_history`,
}

// Scores live three joins away from the candidate; the chain mirrors how the
// registration tables relate (score -> exam subject -> exam -> registration).
// The registration's most recent attempt rides along so the score can be tied
// to the attempt that produced it.
var ScoreQueries = Queries{
	ByID: `SELECT sc.exam_score_id AS score_id, sc.score,
       es.exam_id, es.subject_id,
       ce.candidate_id,
       ah.attempt_history_id AS attempt_id
FROM exam_score sc
JOIN exam_subject es ON es.exam_subject_id = sc.exam_subject_id
JOIN candidate_exam ce ON ce.exam_id = es.exam_id
LEFT JOIN LATERAL (
    SELECT attempt_history_id FROM exam_attempt_history
    WHERE candidate_exam_id = ce.candidate_exam_id
    ORDER BY attempt_number DESC
    LIMIT 1
) ah ON TRUE
WHERE sc.exam_score_id = $1`,
	All: `SELECT sc.exam_score_id AS score_id, sc.score,
       es.exam_id, es.subject_id,
       ce.candidate_id,
       ah.attempt_history_id AS attempt_id
FROM exam_score sc
JOIN exam_subject es ON es.exam_subject_id = sc.exam_subject_id
JOIN candidate_exam ce ON ce.exam_id = es.exam_id
LEFT JOIN LATERAL (
    SELECT attempt_history_id FROM exam_attempt_history
    WHERE candidate_exam_id = ce.candidate_exam_id
    ORDER BY attempt_number DESC
    LIMIT 1
) ah ON TRUE
ORDER BY sc.exam_score_id
LIMIT $1`,
	Count: `SELECT count(*) FROM exam_score`,
}

var ScoreReviewQueries = Queries{
	ByID: `SELECT r.score_review_id AS review_id, r.score_id, r.request_date,
       r.review_status, r.original_score, r.reviewed_score, r.review_result, r.review_date,
       ce.candidate_id
FROM score_review r
JOIN exam_score sc ON sc.exam_score_id = r.score_id
JOIN exam_subject es ON es.exam_subject_id = sc.exam_subject_id
JOIN candidate_exam ce ON ce.exam_id = es.exam_id
WHERE r.score_review_id = $1`,
	All: `SELECT r.score_review_id AS review_id, r.score_id, r.request_date,
       r.review_status, r.original_score, r.reviewed_score, r.review_result, r.review_date,
       ce.candidate_id
FROM score_review r
JOIN exam_score sc ON sc.exam_score_id = r.score_id
JOIN exam_subject es ON es.exam_subject_id = sc.exam_subject_id
JOIN candidate_exam ce ON ce.exam_id = es.exam_id
ORDER BY r.score_review_id
LIMIT $1`,
	Count: `SELECT count(*) FROM score_review`,
}

var ScoreHistoryQueries = Queries{
	ByID: `SELECT history_id, score_id, previous_score, new_score,
       change_date, change_reason, changed_by
FROM exam_score_history
WHERE history_id = $1`,
	All: `SELECT history_id, score_id, previous_score, new_score,
       change_date, change_reason, changed_by
FROM exam_score_history
ORDER BY history_id
LIMIT $1`,
	Count: `SELECT count(*) FROM exam_score_history`,
}

var CertificateQueries = Queries{
	ByID: `SELECT c.certificate_id, c.certificate_number, c.issue_date, c.score,
       c.expiry_date,
       ce.candidate_id, ce.exam_id
FROM certificate c
JOIN candidate_exam ce ON ce.candidate_exam_id = c.candidate_exam_id
WHERE c.certificate_id = $1`,
	All: `SELECT c.certificate_id, c.certificate_number, c.issue_date, c.score,
       c.expiry_date,
       ce.candidate_id, ce.exam_id
FROM certificate c
JOIN candidate_exam ce ON ce.candidate_exam_id = c.candidate_exam_id
ORDER BY c.certificate_id
LIMIT $1`,
	Count: `SELECT count(*) FROM certificate`,
}

var RecognitionQueries = Queries{
	ByID: `SELECT r.recognition_id, r.title, r.issuing_organization, r.issue_date,
       r.recognition_type, r.description,
       ce.candidate_id, ce.exam_id
FROM recognition r
JOIN candidate_exam ce ON ce.candidate_exam_id = r.candidate_exam_id
WHERE r.recognition_id = $1`,
	All: `SELECT r.recognition_id, r.title, r.issuing_organization, r.issue_date,
       r.recognition_type, r.description,
       ce.candidate_id, ce.exam_id
FROM recognition r
JOIN candidate_exam ce ON ce.candidate_exam_id = r.candidate_exam_id
ORDER BY r.recognition_id
LIMIT $1`,
	Count: `SELECT count(*) FROM recognition`,
}

var AwardQueries = Queries{
	ByID: `SELECT a.award_id, a.award_type, a.achievement, a.education_level, a.award_date,
       ce.candidate_id, ce.exam_id
FROM award a
JOIN candidate_exam ce ON ce.candidate_exam_id = a.candidate_exam_id
WHERE a.award_id = $1`,
	All: `SELECT a.award_id, a.award_type, a.achievement, a.education_level, a.award_date,
       ce.candidate_id, ce.exam_id
FROM award a
JOIN candidate_exam ce ON ce.candidate_exam_id = a.candidate_exam_id
ORDER BY a.award_id
LIMIT $1`,
	Count: `SELECT count(*) FROM award`,
}

var AchievementQueries = Queries{
	ByID: `SELECT a.achievement_id, a.achievement_name, a.achievement_type, a.description,
       a.achievement_date, a.organization, a.education_level,
       ce.candidate_id, ce.exam_id
FROM achievement a
JOIN candidate_exam ce ON ce.candidate_exam_id = a.candidate_exam_id
WHERE a.achievement_id = $1`,
	All: `SELECT a.achievement_id, a.achievement_name, a.achievement_type, a.description,
       a.achievement_date, a.organization, a.education_level,
       ce.candidate_id, ce.exam_id
FROM achievement a
JOIN candidate_exam ce ON ce.candidate_exam_id = a.candidate_exam_id
ORDER BY a.achievement_id
LIMIT $1`,
	Count: `SELECT count(*) FROM achievement`,
}

// Degrees have no direct candidate or school column; when the owning record
// carries them in its additional info they are surfaced here, otherwise the
// hints skip those edges.
var DegreeQueries = Queries{
	ByID: `SELECT d.degree_id, d.major_id, d.education_level, d.start_year, d.end_year,
       d.academic_performance,
       d.additional_info->>'candidate_id' AS candidate_id,
       d.additional_info->>'school_id' AS school_id
FROM degree d
WHERE d.degree_id = $1`,
	All: `SELECT d.degree_id, d.major_id, d.education_level, d.start_year, d.end_year,
       d.academic_performance,
       d.additional_info->>'candidate_id' AS candidate_id,
       d.additional_info->>'school_id' AS school_id
FROM degree d
ORDER BY d.degree_id
LIMIT $1`,
	Count: `SELECT count(*) FROM degree`,
}

var CredentialQueries = Queries{
	ByID: `SELECT credential_id, candidate_id, credential_type, title,
       issuing_organization, issue_date, description, external_reference
FROM candidate_credential
WHERE credential_id = $1`,
	All: `SELECT credential_id, candidate_id, credential_type, title,
       issuing_organization, issue_date, description, external_reference
FROM candidate_credential
ORDER BY credential_id
LIMIT $1`,
	Count: `SELECT count(*) FROM candidate_credential`,
}

var ManagementUnitQueries = Queries{
	ByID: `SELECT unit_id, unit_name, unit_type,
       additional_info->>'parent_id' AS parent_id
FROM management_unit
WHERE unit_id = $1`,
	All: `SELECT unit_id, unit_name, unit_type,
       additional_info->>'parent_id' AS parent_id
FROM management_unit
ORDER BY unit_id
LIMIT $1`,
	Count: `SELECT count(*) FROM management_unit`,
}

// The remaining queries drive the association passes: join tables replayed
// row by row, each row becoming one edge with the row's facts as edge
// properties.

var SchoolMajorQueries = Queries{
	ByID: `SELECT school_major_id, school_id, major_id, start_year, is_active
FROM school_major
WHERE school_major_id = $1`,
	All: `SELECT school_major_id, school_id, major_id, start_year, is_active
FROM school_major
ORDER BY school_major_id
LIMIT $1`,
	Count: `SELECT count(*) FROM school_major`,
}

var ExamSubjectQueries = Queries{
	ByID: `SELECT exam_subject_id, exam_id, subject_id, exam_date, duration_minutes
FROM exam_subject
WHERE exam_subject_id = $1`,
	All: `SELECT exam_subject_id, exam_id, subject_id, exam_date, duration_minutes
FROM exam_subject
ORDER BY exam_subject_id
LIMIT $1`,
	Count: `SELECT count(*) FROM exam_subject`,
}

var ExamRegistrationQueries = Queries{
	ByID: `SELECT candidate_exam_id, candidate_id, exam_id,
       registration_number, registration_date, status, attempt_number
FROM candidate_exam
WHERE candidate_exam_id = $1`,
	All: `SELECT candidate_exam_id, candidate_id, exam_id,
       registration_number, registration_date, status, attempt_number
FROM candidate_exam
ORDER BY candidate_exam_id
LIMIT $1`,
	Count: `SELECT count(*) FROM candidate_exam`,
}
