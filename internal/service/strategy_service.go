package service

import (
	"context"
	"encoding/json"
	"fmt"

	"algotradex/internal/dto"
	"algotradex/internal/engine"
	"algotradex/internal/model"
	"algotradex/internal/repository"
	"algotradex/pkg/logger"
)

type StrategyService interface {
	Create(ctx context.Context, req dto.CreateStrategyRequest) (*model.Strategy, error)
	Update(ctx context.Context, id uint, req dto.UpdateStrategyRequest) (*model.Strategy, error)
	Get(ctx context.Context, id uint) (*model.Strategy, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Strategy, error)
	Delete(ctx context.Context, id uint) error
	Templates() []dto.StrategyTemplate
}

type strategyService struct {
	log          *logger.Logger
	strategyRepo repository.StrategyRepository
}

func NewStrategyService(log *logger.Logger, strategyRepo repository.StrategyRepository) StrategyService {
	return &strategyService{
		log:          log,
		strategyRepo: strategyRepo,
	}
}

// Create validates the parameters with the engine before anything is stored,
// so a saved strategy is always runnable.
func (s *strategyService) Create(ctx context.Context, req dto.CreateStrategyRequest) (*model.Strategy, error) {
	cfg := engine.StrategyConfig{
		Kind:   engine.StrategyKind(req.StrategyType),
		Params: req.Parameters,
		Risk:   req.RiskParams,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	paramsJSON, err := json.Marshal(req.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameters: %w", err)
	}
	riskJSON, err := json.Marshal(req.RiskParams)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal risk params: %w", err)
	}

	strategy := &model.Strategy{
		Name:         req.Name,
		Description:  req.Description,
		StrategyType: req.StrategyType,
		Parameters:   paramsJSON,
		RiskParams:   riskJSON,
		IsActive:     true,
	}
	if err := s.strategyRepo.Create(ctx, strategy); err != nil {
		s.log.ErrorContext(ctx, "Failed to create strategy", logger.ErrorField(err))
		return nil, err
	}

	s.log.InfoContext(ctx, "Strategy created",
		logger.IntField("strategy_id", int(strategy.ID)),
		logger.StringField("strategy_type", strategy.StrategyType))

	return strategy, nil
}

// Update applies the provided fields, then revalidates the merged
// configuration. A partial update can never leave a strategy unrunnable.
func (s *strategyService) Update(ctx context.Context, id uint, req dto.UpdateStrategyRequest) (*model.Strategy, error) {
	strategy, err := s.strategyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		strategy.Name = *req.Name
	}
	if req.Description != nil {
		strategy.Description = *req.Description
	}
	if req.IsActive != nil {
		strategy.IsActive = *req.IsActive
	}

	var params engine.Params
	if err := json.Unmarshal(strategy.Parameters, &params); err != nil {
		return nil, fmt.Errorf("stored parameters are corrupt for strategy %d: %w", id, err)
	}
	var risk engine.RiskParams
	if err := json.Unmarshal(strategy.RiskParams, &risk); err != nil {
		return nil, fmt.Errorf("stored risk params are corrupt for strategy %d: %w", id, err)
	}

	if req.Parameters != nil {
		params = *req.Parameters
	}
	if req.RiskParams != nil {
		risk = *req.RiskParams
	}

	cfg := engine.StrategyConfig{
		Kind:   engine.StrategyKind(strategy.StrategyType),
		Params: params,
		Risk:   risk,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if strategy.Parameters, err = json.Marshal(params); err != nil {
		return nil, err
	}
	if strategy.RiskParams, err = json.Marshal(risk); err != nil {
		return nil, err
	}

	if err := s.strategyRepo.Update(ctx, strategy); err != nil {
		s.log.ErrorContext(ctx, "Failed to update strategy",
			logger.IntField("strategy_id", int(id)),
			logger.ErrorField(err))
		return nil, err
	}

	return strategy, nil
}

func (s *strategyService) Get(ctx context.Context, id uint) (*model.Strategy, error) {
	return s.strategyRepo.GetByID(ctx, id)
}

func (s *strategyService) List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Strategy, error) {
	return s.strategyRepo.List(ctx, activeOnly, limit, offset)
}

func (s *strategyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.strategyRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.strategyRepo.Delete(ctx, id)
}

func (s *strategyService) Templates() []dto.StrategyTemplate {
	return dto.StrategyTemplates()
}
