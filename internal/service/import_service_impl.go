package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/scoutline/internal/contract"
	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/importer"
	"github.com/alexanderramin/scoutline/internal/repository"
)

type importService struct {
	uow     db.UnitOfWork
	sb      sq.StatementBuilderType
	tasks   repository.TaskRepo
	trigger TriggerService
}

// NewImportService builds the athlete import flow. tasks supplies the catalog
// that completed_tasks entries are checked against.
func NewImportService(uow db.UnitOfWork, sb sq.StatementBuilderType, tasks repository.TaskRepo, trigger TriggerService) ImportService {
	return &importService{uow: uow, sb: sb, tasks: tasks, trigger: trigger}
}

func (s *importService) ImportAthlete(ctx context.Context, filePath string) (*contract.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportAthleteFromSchema(ctx, schema)
}

func (s *importService) ImportAthleteFromSchema(ctx context.Context, schema *importer.ImportSchema) (*contract.ImportResult, error) {
	errs := importer.ValidateImportSchema(schema)
	catalogErrs, err := s.checkCatalog(ctx, schema.CompletedTasks)
	if err != nil {
		return nil, err
	}
	if errs = append(errs, catalogErrs...); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	records, err := importer.Convert(schema, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	if err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.persist(ctx, tx, records)
	}); err != nil {
		return nil, err
	}

	result := &contract.ImportResult{
		Athlete:          records.Athlete,
		SchoolCount:      len(records.Schools),
		EventCount:       len(records.Events),
		InteractionCount: len(records.Interactions),
		VideoCount:       len(records.Videos),
		TaskCount:        len(records.CompletedTasks),
	}
	result.Trigger, err = s.trigger.TriggerSuggestionUpdate(ctx,
		contract.NewTriggerRequest(records.Athlete.ID, domain.TriggerProfileChange))
	if err != nil {
		return result, fmt.Errorf("athlete imported but suggestion refresh failed: %w", err)
	}
	return result, nil
}

func (s *importService) persist(ctx context.Context, tx db.DBTX, r *importer.AthleteRecords) error {
	if err := repository.NewSQLAthleteRepo(tx, s.sb).Create(ctx, r.Athlete); err != nil {
		return fmt.Errorf("creating athlete: %w", err)
	}

	schools := repository.NewSQLSchoolRepo(tx, s.sb)
	for _, school := range r.Schools {
		if err := schools.Create(ctx, school); err != nil {
			return fmt.Errorf("creating school %q: %w", school.Name, err)
		}
	}

	events := repository.NewSQLEventRepo(tx, s.sb)
	for _, e := range r.Events {
		if err := events.Create(ctx, e); err != nil {
			return fmt.Errorf("creating event %q: %w", e.Name, err)
		}
	}

	interactions := repository.NewSQLInteractionRepo(tx, s.sb)
	for _, in := range r.Interactions {
		if err := interactions.Create(ctx, in); err != nil {
			return fmt.Errorf("creating interaction: %w", err)
		}
	}

	videos := repository.NewSQLVideoRepo(tx, s.sb)
	for _, v := range r.Videos {
		if err := videos.Create(ctx, v); err != nil {
			return fmt.Errorf("creating video %q: %w", v.Title, err)
		}
	}

	tasks := repository.NewSQLTaskRepo(tx, s.sb)
	for _, t := range r.CompletedTasks {
		if err := tasks.Upsert(ctx, t); err != nil {
			return fmt.Errorf("completing task %s: %w", t.TaskID, err)
		}
	}
	return nil
}

func (s *importService) checkCatalog(ctx context.Context, ids []string) ([]error, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	catalog, err := s.tasks.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading task catalog: %w", err)
	}
	var errs []error
	for i, id := range ids {
		if id != "" && !catalogHas(catalog, id) {
			errs = append(errs, fmt.Errorf("completed_tasks[%d]: unknown task %q", i, id))
		}
	}
	return errs, nil
}

// ErrImportInvalid is wrapped by errors describing a rejected import file.
var ErrImportInvalid = errors.New("import validation failed")

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("(%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w %s", ErrImportInvalid, msg)
}
