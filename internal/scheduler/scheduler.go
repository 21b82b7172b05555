package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

// TargetSource looks up the sales target of a month.
type TargetSource interface {
	Get(ctx context.Context, year, month int) (*domain.SalesTarget, error)
}

// Publisher renders a plan and uploads it, returning the object key.
type Publisher interface {
	Publish(ctx context.Context, in service.PlanInput, format string, mode costing.PurchaseMode) (string, error)
}

// Scheduler publishes requirement workbooks for every row of the current
// month's sales target.
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	mode      costing.PurchaseMode
	targets   TargetSource
	publisher Publisher
	now       func() time.Time
}

func NewScheduler(cfg config.SchedulerConfig, targets TargetSource, publisher Publisher) (*Scheduler, error) {
	mode, ok := costing.ParsePurchaseMode(cfg.ReportMode)
	if !ok {
		return nil, fmt.Errorf("invalid report mode %q", cfg.ReportMode)
	}
	spec := cfg.ReportSpec
	if spec == "" {
		spec = "0 6 1 * *"
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	return &Scheduler{
		cron:      cron.New(),
		spec:      spec,
		mode:      mode,
		targets:   targets,
		publisher: publisher,
		now:       time.Now,
	}, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	log.Info().Str("spec", s.spec).Msg("starting scheduler")
	if _, err := s.cron.AddFunc(s.spec, s.runMonthlyReport); err != nil {
		return fmt.Errorf("failed to schedule monthly report: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	log.Info().Msg("stopping scheduler")
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Warn().Msg("scheduler stop timed out with a job still running")
	}
}

func (s *Scheduler) runMonthlyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	keys, err := s.RunOnce(ctx, s.now())
	if err != nil {
		log.Error().Err(err).Msg("monthly report failed")
		return
	}
	log.Info().Int("reports", len(keys)).Msg("monthly report published")
}

// RunOnce publishes one XLSX report per sales target row of the month
// containing at. A month without a target publishes nothing. Failed rows are
// logged and skipped.
func (s *Scheduler) RunOnce(ctx context.Context, at time.Time) ([]string, error) {
	target, err := s.targets.Get(ctx, at.Year(), int(at.Month()))
	if err != nil {
		if repository.IsNotFound(err) {
			log.Info().Int("year", at.Year()).Int("month", int(at.Month())).Msg("no sales target for month, skipping report")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load sales target: %w", err)
	}

	var keys []string
	for _, row := range target.Rows {
		if row.TargetUnits <= 0 {
			continue
		}
		in := service.PlanInput{SKUID: row.SKUID, TargetQuantity: row.TargetUnits, PackType: row.PackType}
		key, err := s.publisher.Publish(ctx, in, service.FormatXLSX, s.mode)
		if err != nil {
			log.Error().Err(err).Str("sku_id", row.SKUID).Str("pack_type", string(row.PackType)).Msg("failed to publish requirement report")
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
