package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/repository"
	"github.com/alexanderramin/scoutline/internal/rules"
)

// ContextLoader assembles the RuleContext for one athlete. The seven reads
// run in parallel; any failure fails the whole load.
type ContextLoader struct {
	athletes     repository.AthleteRepo
	schools      repository.SchoolRepo
	interactions repository.InteractionRepo
	tasks        repository.TaskRepo
	videos       repository.VideoRepo
	events       repository.EventRepo
}

// NewContextLoader wires the loader. tasks is typically a cache.TaskCatalog
// so the global catalog is not re-read every cycle.
func NewContextLoader(
	athletes repository.AthleteRepo,
	schools repository.SchoolRepo,
	interactions repository.InteractionRepo,
	tasks repository.TaskRepo,
	videos repository.VideoRepo,
	events repository.EventRepo,
) *ContextLoader {
	return &ContextLoader{
		athletes:     athletes,
		schools:      schools,
		interactions: interactions,
		tasks:        tasks,
		videos:       videos,
		events:       events,
	}
}

// Load reads everything the rules need as of now.
func (cl *ContextLoader) Load(ctx context.Context, athleteID string, now time.Time) (*rules.RuleContext, error) {
	var snap rules.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := cl.athletes.GetByID(gctx, athleteID)
		if err != nil {
			return fmt.Errorf("loading athlete: %w", err)
		}
		snap.Athlete = a
		return nil
	})
	g.Go(func() error {
		s, err := cl.schools.ListByAthlete(gctx, athleteID)
		if err != nil {
			return fmt.Errorf("loading schools: %w", err)
		}
		snap.Schools = s
		return nil
	})
	g.Go(func() error {
		in, err := cl.interactions.ListByAthlete(gctx, athleteID)
		if err != nil {
			return fmt.Errorf("loading interactions: %w", err)
		}
		snap.Interactions = in
		return nil
	})
	g.Go(func() error {
		t, err := cl.tasks.ListCatalog(gctx)
		if err != nil {
			return fmt.Errorf("loading task catalog: %w", err)
		}
		snap.Tasks = t
		return nil
	})
	g.Go(func() error {
		t, err := cl.tasks.ListByAthlete(gctx, athleteID)
		if err != nil {
			return fmt.Errorf("loading athlete tasks: %w", err)
		}
		snap.AthleteTasks = t
		return nil
	})
	g.Go(func() error {
		v, err := cl.videos.ListByAthlete(gctx, athleteID)
		if err != nil {
			return fmt.Errorf("loading videos: %w", err)
		}
		snap.Videos = v
		return nil
	})
	g.Go(func() error {
		e, err := cl.events.ListByAthlete(gctx, athleteID)
		if err != nil {
			return fmt.Errorf("loading events: %w", err)
		}
		snap.Events = e
		return nil
	})

	if err := g.Wait(); err != nil {
		code := contract.TriggerErrContextLoad
		if errors.Is(err, repository.ErrNotFound) {
			code = contract.TriggerErrMissingAthlete
		}
		return nil, &contract.TriggerError{Code: code, Message: "assembling context for " + athleteID, Err: err}
	}
	return rules.NewRuleContext(snap, now)
}

// completedTaskIDs lists the task ids an athlete has finished.
func completedTaskIDs(tasks []domain.AthleteTask) []string {
	var ids []string
	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			ids = append(ids, t.TaskID)
		}
	}
	return ids
}
