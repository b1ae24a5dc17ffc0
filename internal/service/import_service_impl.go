package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/importer"
	"github.com/abramin/Victus-sub005/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	cat      *catalog.Catalog
	observer UseCaseObserver
	now      func() time.Time
}

// NewImportService creates the bulk-import use case. An import is atomic:
// either every log lands with its snapshot or nothing does.
func NewImportService(uow db.UnitOfWork, cat *catalog.Catalog, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		cat:      cat,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *importService) ImportLogs(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadSchema(filePath)
	if err != nil {
		return nil, Validationf("%v", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

func (s *importService) ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	start := s.now()
	defer func() {
		fields := map[string]any{"source": schema.Source}
		if result != nil {
			fields["log_count"] = result.LogCount
		}
		reportUseCase(ctx, s.observer, "logs_import", start, fields, err)
	}()

	if errs := importer.ValidateImportSchema(schema, s.cat); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return nil, Validationf("import rejected: %s", strings.Join(msgs, "; "))
	}

	logs, err := importer.Convert(schema)
	if err != nil {
		return nil, Validationf("%v", err)
	}
	if len(logs) == 0 {
		return nil, Validationf("import contains no logs")
	}

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs := repository.NewSQLiteLogRepo(tx)
		for _, log := range logs {
			if _, err := txLogs.GetByDate(ctx, log.Date); err == nil {
				return Conflictf("a log already exists for %s", domain.FormatDate(log.Date))
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			log.CreatedAt = now
			log.UpdatedAt = now
			if err := txLogs.Create(ctx, log); err != nil {
				return err
			}
		}
		// Snapshots are recomputed after every log is in place so each date's
		// estimate sees the imported history behind it.
		for _, log := range logs {
			if _, err := recomputeSnapshot(ctx, log, tx, s.cat, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		LogCount:  len(logs),
		FirstDate: logs[0].Date,
		LastDate:  logs[len(logs)-1].Date,
	}, nil
}
