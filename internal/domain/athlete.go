package domain

import "time"

type Athlete struct {
	ID             string
	Name           string
	GraduationYear int
	Committed      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GradeLevel derives the athlete's grade (9..12) at now from the graduation
// year. The academic year rolls over on August 1st.
func (a *Athlete) GradeLevel(now time.Time) int {
	return GradeLevelFor(a.GraduationYear, now)
}

// GradeLevelFor derives a grade from a graduation year, clamped to 9..12.
func GradeLevelFor(graduationYear int, now time.Time) int {
	academicYearEnd := now.Year()
	if now.Month() >= time.August {
		academicYearEnd++
	}
	grade := 12 - (graduationYear - academicYearEnd)
	if grade < 9 {
		return 9
	}
	if grade > 12 {
		return 12
	}
	return grade
}

type School struct {
	ID        string
	AthleteID string
	Name      string
	Priority  Priority
	Status    SchoolStatus
	Division  Division
	FitScore  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Interaction struct {
	ID              string
	AthleteID       string
	SchoolID        *string
	CoachID         *string
	InteractionType string
	OccurredAt      time.Time
	RelatedEventID  *string
	Notes           string
	CreatedAt       time.Time
}

type Task struct {
	ID    string
	Title string
	Phase string
}

type AthleteTask struct {
	AthleteID   string
	TaskID      string
	Status      TaskStatus
	CompletedAt *time.Time
}

type Video struct {
	ID           string
	AthleteID    string
	Title        string
	URL          string
	HealthStatus VideoHealth
	CreatedAt    time.Time
}

type Event struct {
	ID        string
	AthleteID string
	SchoolID  *string
	Name      string
	EventDate time.Time
	Attended  bool
	CreatedAt time.Time
}
