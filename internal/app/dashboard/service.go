package dashboard

import (
	"context"
	"math"

	"github.com/pitstop/oficina-api/internal/domain/model"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Repository define as leituras agregadas do banco
type Repository interface {
	CountClients(ctx context.Context) (int64, error)
	CountVehicles(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountParts(ctx context.Context) (int64, error)
	CountServices(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	SumFinishedRevenue(ctx context.Context) (float64, error)
}

// Metrics é o resumo exibido no painel administrativo
type Metrics struct {
	TotalClients   int64            `json:"totalClients"`
	TotalVehicles  int64            `json:"totalVehicles"`
	TotalOrders    int64            `json:"totalOrders"`
	TotalRevenue   float64          `json:"totalRevenue"`
	PartsCount     int64            `json:"partsCount"`
	ServicesCount  int64            `json:"servicesCount"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
	CompletionRate float64          `json:"completionRate"`
}

// Service agrega as métricas do painel
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetMetrics dispara as contagens de forma concorrente; as leituras são
// independentes e não há garantia de consistência ponto-no-tempo entre elas
func (s *Service) GetMetrics(ctx context.Context) (*Metrics, error) {
	metrics := &Metrics{
		OrdersByStatus: make(map[string]int64, 4),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		metrics.TotalClients, err = s.repo.CountClients(gctx)
		return err
	})
	g.Go(func() (err error) {
		metrics.TotalVehicles, err = s.repo.CountVehicles(gctx)
		return err
	})
	g.Go(func() (err error) {
		metrics.TotalOrders, err = s.repo.CountOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		metrics.PartsCount, err = s.repo.CountParts(gctx)
		return err
	})
	g.Go(func() (err error) {
		metrics.ServicesCount, err = s.repo.CountServices(gctx)
		return err
	})
	g.Go(func() (err error) {
		metrics.TotalRevenue, err = s.repo.SumFinishedRevenue(gctx)
		return err
	})

	var statusCounts [4]int64
	statuses := [4]model.OrderStatus{
		model.StatusOpen,
		model.StatusInProgress,
		model.StatusFinished,
		model.StatusCanceled,
	}
	for i, status := range statuses {
		i, status := i, status
		g.Go(func() (err error) {
			statusCounts[i], err = s.repo.CountOrdersByStatus(gctx, status)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("falha ao agregar métricas do painel", zap.Error(err))
		return nil, apperrors.InternalServer("Não foi possível carregar as métricas.", err)
	}

	for i, status := range statuses {
		metrics.OrdersByStatus[string(status)] = statusCounts[i]
	}

	// Evita divisão por zero quando não há ordens
	if metrics.TotalOrders > 0 {
		finished := metrics.OrdersByStatus[string(model.StatusFinished)]
		rate := float64(finished) / float64(metrics.TotalOrders) * 100
		metrics.CompletionRate = math.Round(rate*100) / 100
	}

	return metrics, nil
}
