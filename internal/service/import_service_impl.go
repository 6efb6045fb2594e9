package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/importer"
	"github.com/alexanderramin/examplan/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	imported, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	// Plan and topics land together or not at all.
	err = s.uow.WithinTx(ctx, func(txCtx context.Context, tx db.DBTX) error {
		planRepo := repository.NewSQLitePlanRepo(tx)
		if err := planRepo.Create(txCtx, imported.Plan); err != nil {
			return fmt.Errorf("creating plan: %w", err)
		}
		topicRepo := repository.NewSQLiteTopicRepo(tx)
		for _, topic := range imported.Topics {
			if err := topicRepo.Create(txCtx, topic); err != nil {
				return fmt.Errorf("creating topic %q: %w", topic.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	partCount := 0
	for _, topic := range imported.Topics {
		partCount += len(topic.Parts)
	}

	return &ImportResult{
		Plan:       imported.Plan,
		TopicCount: len(imported.Topics),
		PartCount:  partCount,
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
