package database

import (
	"context"

	"github.com/pitstop/oficina-api/internal/domain/model"
	"gorm.io/gorm"
)

// DashboardRepository executa as leituras agregadas do painel
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountClients(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Client{})
}

func (r *DashboardRepository) CountVehicles(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Vehicle{})
}

func (r *DashboardRepository) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Order{})
}

func (r *DashboardRepository) CountParts(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Part{})
}

func (r *DashboardRepository) CountServices(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Service{})
}

// CountOrdersByStatus conta as ordens em um determinado status
func (r *DashboardRepository) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, TranslateError(err)
	}
	return count, nil
}

// SumFinishedRevenue soma o valor total das ordens finalizadas;
// zero quando não há nenhuma
func (r *DashboardRepository) SumFinishedRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", model.StatusFinished).
		Select("COALESCE(SUM(total_value), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, TranslateError(err)
	}
	return revenue, nil
}

func (r *DashboardRepository) count(ctx context.Context, entity interface{}) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(entity).Count(&count).Error; err != nil {
		return 0, TranslateError(err)
	}
	return count, nil
}
