package ontology

// Class describes one entity class in the knowledge graph ontology. Classes
// form a single-parent chain terminating at the Thing root.
type Class struct {
	Name        string
	Parent      string
	Description string
	// KeyField is the property that holds the natural key of an instance,
	// reused verbatim from the relational primary key.
	KeyField string
	// Properties are the declared property names, excluding the key field
	// and the created_at/updated_at timestamps managed by the writer.
	Properties []string
}

// Relationship describes one edge type. Name is the registry key; Type is the
// label written to the graph store (two registry entries may share a Type,
// e.g. BELONGS_TO for both school->unit and unit->parent-unit).
type Relationship struct {
	Name        string
	Type        string
	Description string
	Source      string
	Target      string
	Properties  []string
}

// RootClassName is the root of the class hierarchy.
const RootClassName = "Thing"

// RootNodeID is the graph-store id of the seeded root class node.
const RootNodeID = "thing-root"

// InstanceLabel marks every projected node regardless of class.
const InstanceLabel = "OntologyInstance"

// ClassLabel marks every seeded class-definition node.
const ClassLabel = "OntologyClass"

// InstanceOfType links a projected node to its class node.
const InstanceOfType = "INSTANCE_OF"

// IsAType links a class node to its parent class node.
const IsAType = "IS_A"

// DomainRelationType carries the class-to-class relationship catalog on the
// ontology backbone, one edge per declared relationship, keyed by the
// relationship_type edge property.
const DomainRelationType = "DOMAIN_RELATION"

var classes = []Class{
	{
		Name:        RootClassName,
		Description: "Root class for all entities",
		KeyField:    "id",
		Properties:  []string{"name"},
	},
	{
		Name:        "Candidate",
		Parent:      RootClassName,
		Description: "Student/candidate information",
		KeyField:    "candidate_id",
		Properties:  []string{"full_name", "birth_date", "id_number", "phone_number", "email", "primary_address", "secondary_address"},
	},
	{
		Name:        "School",
		Parent:      RootClassName,
		Description: "Educational institution",
		KeyField:    "school_id",
		Properties:  []string{"school_name", "address", "education_level"},
	},
	{
		Name:        "Major",
		Parent:      RootClassName,
		Description: "Field of study",
		KeyField:    "major_id",
		Properties:  []string{"major_name", "ministry_code", "description"},
	},
	{
		Name:        "Subject",
		Parent:      RootClassName,
		Description: "Academic subject",
		KeyField:    "subject_id",
		Properties:  []string{"subject_name", "education_level", "description"},
	},
	{
		Name:        "Exam",
		Parent:      RootClassName,
		Description: "Examination event",
		KeyField:    "exam_id",
		Properties:  []string{"exam_name", "start_date", "end_date", "scope", "education_level"},
	},
	{
		Name:        "ExamLocation",
		Parent:      RootClassName,
		Description: "Location where exams are held",
		KeyField:    "location_id",
		Properties:  []string{"location_name", "address", "capacity"},
	},
	{
		Name:        "ExamRoom",
		Parent:      RootClassName,
		Description: "Room within an exam location",
		KeyField:    "room_id",
		Properties:  []string{"room_name", "capacity"},
	},
	{
		Name:        "ExamSchedule",
		Parent:      RootClassName,
		Description: "Schedule for an exam",
		KeyField:    "schedule_id",
		Properties:  []string{"start_time", "end_time", "description", "status"},
	},
	{
		Name:        "ExamAttempt",
		Parent:      RootClassName,
		Description: "Candidate's attempt at an exam",
		KeyField:    "attempt_id",
		Properties:  []string{"attempt_number", "attempt_date", "result", "notes"},
	},
	{
		Name:        "Score",
		Parent:      RootClassName,
		Description: "Exam score for a subject",
		KeyField:    "score_id",
		Properties:  []string{"score"},
	},
	{
		Name:        "ScoreReview",
		Parent:      RootClassName,
		Description: "Review of an exam score",
		KeyField:    "review_id",
		Properties:  []string{"request_date", "review_status", "original_score", "reviewed_score", "review_result", "review_date"},
	},
	{
		Name:        "ScoreHistory",
		Parent:      RootClassName,
		Description: "History of score changes",
		KeyField:    "history_id",
		Properties:  []string{"previous_score", "new_score", "change_date", "change_reason", "changed_by"},
	},
	{
		Name:        "Certificate",
		Parent:      RootClassName,
		Description: "Certificate earned by candidate",
		KeyField:    "certificate_id",
		Properties:  []string{"certificate_number", "issue_date", "score", "expiry_date"},
	},
	{
		Name:        "Recognition",
		Parent:      RootClassName,
		Description: "Formal acknowledgment of achievement",
		KeyField:    "recognition_id",
		Properties:  []string{"title", "issuing_organization", "issue_date", "recognition_type", "description"},
	},
	{
		Name:        "Award",
		Parent:      RootClassName,
		Description: "Award received in competition",
		KeyField:    "award_id",
		Properties:  []string{"award_type", "achievement", "education_level", "award_date"},
	},
	{
		Name:        "Achievement",
		Parent:      RootClassName,
		Description: "General achievement outside exams",
		KeyField:    "achievement_id",
		Properties:  []string{"achievement_name", "achievement_type", "description", "achievement_date", "organization", "education_level"},
	},
	{
		Name:        "Degree",
		Parent:      RootClassName,
		Description: "Higher education degree",
		KeyField:    "degree_id",
		Properties:  []string{"education_level", "start_year", "end_year", "academic_performance"},
	},
	{
		Name:        "Credential",
		Parent:      RootClassName,
		Description: "External credential provided by candidate",
		KeyField:    "credential_id",
		Properties:  []string{"credential_type", "title", "issuing_organization", "issue_date", "description", "external_reference"},
	},
	{
		Name:        "ManagementUnit",
		Parent:      RootClassName,
		Description: "Administrative unit",
		KeyField:    "unit_id",
		Properties:  []string{"unit_name", "unit_type"},
	},
}

var relationships = []Relationship{
	{
		Name: "STUDIES_AT", Type: "STUDIES_AT",
		Description: "Candidate studies at a school",
		Source:      "Candidate", Target: "School",
		Properties: []string{"start_year", "end_year", "education_level", "academic_performance"},
	},
	{
		Name: "STUDIES_MAJOR", Type: "STUDIES_MAJOR",
		Description: "Candidate studies a major",
		Source:      "Candidate", Target: "Major",
		Properties: []string{"school_id", "start_year"},
	},
	{
		Name: "ATTENDS_EXAM", Type: "ATTENDS_EXAM",
		Description: "Candidate attends an exam",
		Source:      "Candidate", Target: "Exam",
		Properties: []string{"registration_number", "registration_date", "status", "attempt_number"},
	},
	{
		Name: "RECEIVES_SCORE", Type: "RECEIVES_SCORE",
		Description: "Candidate receives a score",
		Source:      "Candidate", Target: "Score",
	},
	{
		Name: "FOR_SUBJECT", Type: "FOR_SUBJECT",
		Description: "Score is for a subject",
		Source:      "Score", Target: "Subject",
	},
	{
		Name: "IN_EXAM", Type: "IN_EXAM",
		Description: "Score was earned in an exam",
		Source:      "Score", Target: "Exam",
	},
	{
		Name: "FOR_ATTEMPT", Type: "FOR_ATTEMPT",
		Description: "Score belongs to an exam attempt",
		Source:      "Score", Target: "ExamAttempt",
	},
	{
		Name: "HISTORY_OF", Type: "HISTORY_OF",
		Description: "Score history entry records a change to a score",
		Source:      "ScoreHistory", Target: "Score",
	},
	{
		Name: "REQUESTS_REVIEW", Type: "REQUESTS_REVIEW",
		Description: "Candidate requests a score review",
		Source:      "Candidate", Target: "ScoreReview",
	},
	{
		Name: "REVIEWS", Type: "REVIEWS",
		Description: "Score review concerns a score",
		Source:      "ScoreReview", Target: "Score",
	},
	{
		Name: "HAS_ATTEMPT", Type: "HAS_ATTEMPT",
		Description: "Candidate has an exam attempt",
		Source:      "Candidate", Target: "ExamAttempt",
	},
	{
		Name: "FOR_EXAM", Type: "FOR_EXAM",
		Description: "Exam attempt is for an exam",
		Source:      "ExamAttempt", Target: "Exam",
	},
	{
		Name: "ATTEMPT_FOLLOWS_SCHEDULE", Type: "FOLLOWS_SCHEDULE",
		Description: "Exam attempt follows an exam schedule",
		Source:      "ExamAttempt", Target: "ExamSchedule",
	},
	{
		Name: "IN_ROOM", Type: "IN_ROOM",
		Description: "Exam attempt takes place in an exam room",
		Source:      "ExamAttempt", Target: "ExamRoom",
	},
	{
		Name: "EARNS_CERTIFICATE", Type: "EARNS_CERTIFICATE",
		Description: "Candidate earns a certificate",
		Source:      "Candidate", Target: "Certificate",
	},
	{
		Name: "CERTIFICATE_FOR_EXAM", Type: "CERTIFICATE_FOR_EXAM",
		Description: "Certificate was earned in an exam",
		Source:      "Certificate", Target: "Exam",
	},
	{
		Name: "RECEIVES_RECOGNITION", Type: "RECEIVES_RECOGNITION",
		Description: "Candidate receives a recognition",
		Source:      "Candidate", Target: "Recognition",
	},
	{
		Name: "RECOGNITION_FOR_EXAM", Type: "RECOGNITION_FOR_EXAM",
		Description: "Recognition was granted for an exam",
		Source:      "Recognition", Target: "Exam",
	},
	{
		Name: "EARNS_AWARD", Type: "EARNS_AWARD",
		Description: "Candidate earns an award",
		Source:      "Candidate", Target: "Award",
	},
	{
		Name: "AWARD_FOR_EXAM", Type: "AWARD_FOR_EXAM",
		Description: "Award was earned in an exam",
		Source:      "Award", Target: "Exam",
	},
	{
		Name: "ACHIEVES", Type: "ACHIEVES",
		Description: "Candidate achieves an achievement",
		Source:      "Candidate", Target: "Achievement",
	},
	{
		Name: "ACHIEVEMENT_FOR_EXAM", Type: "ACHIEVEMENT_FOR_EXAM",
		Description: "Achievement relates to an exam",
		Source:      "Achievement", Target: "Exam",
	},
	{
		Name: "HOLDS_DEGREE", Type: "HOLDS_DEGREE",
		Description: "Candidate holds a degree",
		Source:      "Candidate", Target: "Degree",
	},
	{
		Name: "IN_MAJOR", Type: "IN_MAJOR",
		Description: "Degree was earned in a major",
		Source:      "Degree", Target: "Major",
	},
	{
		Name: "ISSUED_BY", Type: "ISSUED_BY",
		Description: "Degree was issued by a school",
		Source:      "Degree", Target: "School",
	},
	{
		Name: "PROVIDES_CREDENTIAL", Type: "PROVIDES_CREDENTIAL",
		Description: "Candidate provides an external credential",
		Source:      "Candidate", Target: "Credential",
	},
	{
		Name: "OFFERS_MAJOR", Type: "OFFERS_MAJOR",
		Description: "School offers a major",
		Source:      "School", Target: "Major",
		Properties: []string{"start_year"},
	},
	{
		Name: "TEACHES_SUBJECT", Type: "TEACHES_SUBJECT",
		Description: "Major teaches a subject",
		Source:      "Major", Target: "Subject",
		Properties: []string{"is_mandatory", "credits"},
	},
	{
		Name: "INCLUDES_SUBJECT", Type: "INCLUDES_SUBJECT",
		Description: "Exam includes a subject",
		Source:      "Exam", Target: "Subject",
		Properties: []string{"exam_date", "duration_minutes"},
	},
	{
		Name: "FOLLOWS_SCHEDULE", Type: "FOLLOWS_SCHEDULE",
		Description: "Exam follows a schedule",
		Source:      "Exam", Target: "ExamSchedule",
	},
	{
		Name: "HELD_AT", Type: "HELD_AT",
		Description: "Exam is held at a location",
		Source:      "Exam", Target: "ExamLocation",
	},
	{
		Name: "LOCATED_IN", Type: "LOCATED_IN",
		Description: "Exam room is located in an exam location",
		Source:      "ExamRoom", Target: "ExamLocation",
	},
	{
		Name: "ORGANIZED_BY", Type: "ORGANIZED_BY",
		Description: "Exam is organized by a management unit",
		Source:      "Exam", Target: "ManagementUnit",
		Properties: []string{"start_date", "end_date"},
	},
	{
		Name: "BELONGS_TO", Type: "BELONGS_TO",
		Description: "School belongs to a management unit",
		Source:      "School", Target: "ManagementUnit",
	},
	{
		Name: "UNIT_BELONGS_TO", Type: "BELONGS_TO",
		Description: "Management unit belongs to a parent unit",
		Source:      "ManagementUnit", Target: "ManagementUnit",
	},
}
