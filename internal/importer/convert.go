package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/scoutline/internal/domain"
)

// AthleteRecords is a converted import file ready for persistence.
type AthleteRecords struct {
	Athlete        *domain.Athlete
	Schools        []*domain.School
	Events         []*domain.Event
	Interactions   []*domain.Interaction
	Videos         []*domain.Video
	CompletedTasks []*domain.AthleteTask
}

// Convert transforms a validated ImportSchema into domain records with fresh
// IDs. Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, now time.Time) (*AthleteRecords, error) {
	athlete := &domain.Athlete{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(schema.Athlete.Name),
		GraduationYear: schema.Athlete.GraduationYear,
		Committed:      schema.Athlete.Committed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	out := &AthleteRecords{Athlete: athlete}

	schoolIDs := make(map[string]string, len(schema.Schools))
	for _, s := range schema.Schools {
		school := &domain.School{
			ID:        uuid.New().String(),
			AthleteID: athlete.ID,
			Name:      strings.TrimSpace(s.Name),
			Priority:  domain.Priority(domain.CoalesceStr(strings.ToUpper(s.Priority), string(domain.PriorityC))),
			Status:    domain.SchoolStatus(domain.CoalesceStr(s.Status, string(domain.SchoolInterested))),
			Division:  domain.Division(strings.ToUpper(s.Division)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if s.FitScore != nil {
			school.FitScore = *s.FitScore
		}
		schoolIDs[s.Ref] = school.ID
		out.Schools = append(out.Schools, school)
	}

	eventIDs := make(map[string]string, len(schema.Events))
	for _, e := range schema.Events {
		date, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return nil, fmt.Errorf("event %q: parsing date: %w", e.Ref, err)
		}
		event := &domain.Event{
			ID:        uuid.New().String(),
			AthleteID: athlete.ID,
			SchoolID:  resolveRef(e.SchoolRef, schoolIDs),
			Name:      strings.TrimSpace(e.Name),
			EventDate: date,
			Attended:  e.Attended,
			CreatedAt: now,
		}
		eventIDs[e.Ref] = event.ID
		out.Events = append(out.Events, event)
	}

	for i, in := range schema.Interactions {
		occurred, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, fmt.Errorf("interaction %d: parsing date: %w", i, err)
		}
		out.Interactions = append(out.Interactions, &domain.Interaction{
			ID:              uuid.New().String(),
			AthleteID:       athlete.ID,
			SchoolID:        resolveRef(in.SchoolRef, schoolIDs),
			CoachID:         in.CoachID,
			InteractionType: in.Type,
			OccurredAt:      occurred,
			RelatedEventID:  resolveRef(in.EventRef, eventIDs),
			Notes:           in.Notes,
			CreatedAt:       now,
		})
	}

	for _, v := range schema.Videos {
		out.Videos = append(out.Videos, &domain.Video{
			ID:           uuid.New().String(),
			AthleteID:    athlete.ID,
			Title:        domain.CoalesceStr(strings.TrimSpace(v.Title), v.URL),
			URL:          v.URL,
			HealthStatus: domain.VideoHealth(domain.CoalesceStr(v.Health, string(domain.VideoHealthUnknown))),
			CreatedAt:    now,
		})
	}

	for _, id := range schema.CompletedTasks {
		completedAt := now
		out.CompletedTasks = append(out.CompletedTasks, &domain.AthleteTask{
			AthleteID:   athlete.ID,
			TaskID:      id,
			Status:      domain.TaskCompleted,
			CompletedAt: &completedAt,
		})
	}

	return out, nil
}

func resolveRef(ref *string, ids map[string]string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	id, ok := ids[*ref]
	if !ok {
		return nil
	}
	return &id
}
