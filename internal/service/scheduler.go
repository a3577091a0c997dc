package service

import (
	"context"

	"algotradex/config"
	"algotradex/pkg/logger"

	"github.com/robfig/cron/v3"
)

type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg          *config.Config
	log          *logger.Logger
	stockService StockService
	cron         *cron.Cron
}

// NewSchedulerService wires the nightly data sync. The schedule comes from
// sync.cron_schedule, by default after NSE market close on weekdays.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, stockService StockService) SchedulerService {
	return &schedulerService{
		cfg:          cfg,
		log:          log,
		stockService: stockService,
		cron:         cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if !s.cfg.Sync.Enabled {
		s.log.Info("Scheduled sync disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Sync.CronSchedule, func() {
		s.log.InfoContext(ctx, "Starting scheduled universe sync")
		resp, err := s.stockService.SyncUniverse(ctx, s.cfg.Sync.Years)
		if err != nil {
			s.log.ErrorContext(ctx, "Scheduled sync failed", logger.ErrorField(err))
			return
		}
		s.log.InfoContext(ctx, "Scheduled sync finished",
			logger.IntField("symbols", resp.Symbols),
			logger.IntField("bars_saved", resp.BarsSaved),
			logger.IntField("failed", resp.Failed))
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scheduled sync enabled", logger.StringField("schedule", s.cfg.Sync.CronSchedule))
	return nil
}

func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
}
