package reports

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/pkg/logger"
)

// DashboardStatsKey clave del panel en el cache.
const DashboardStatsKey = "dashboard:stats"

// DashboardUseCase arma los indicadores del panel principal.
// Con cache configurado guarda el resultado por ttl; las escrituras lo invalidan.
type DashboardUseCase struct {
	reports repository.ReportRepository
	cache   Cache
	ttl     time.Duration
	log     *logger.Logger
	now     func() time.Time
	// gen avanza con cada Invalidate; un cálculo que empezó antes no se guarda.
	gen atomic.Uint64
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(reports repository.ReportRepository, cache Cache, ttl time.Duration, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{reports: reports, cache: cache, ttl: ttl, log: log.Component("dashboard"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Stats devuelve los indicadores. Una falla del cache no impide responder desde la BD.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if uc.cache != nil {
		var cached dto.DashboardStatsDTO
		hit, err := uc.cache.Get(ctx, DashboardStatsKey, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Msg("cache no disponible, se consulta la base")
		} else if hit {
			cached.Cached = true
			return &cached, nil
		}
	}

	gen := uc.gen.Load()
	now := uc.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	c, err := uc.reports.DashboardCounters(ctx, dayStart, monthStart)
	if err != nil {
		return nil, err
	}
	stats := &dto.DashboardStatsDTO{
		SalesToday:        c.SalesToday,
		SalesTodayCount:   c.SalesTodayCount,
		SalesMonth:        c.SalesMonth,
		SalesMonthCount:   c.SalesMonthCount,
		ProductsInStock:   c.ProductsInStock,
		ActiveCustomers:   c.ActiveCustomers,
		LowStockProducts:  c.LowStockProducts,
		OutstandingCredit: c.OutstandingCredit,
	}

	if uc.cache != nil && uc.gen.Load() == gen {
		if err := uc.cache.Set(ctx, DashboardStatsKey, stats, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el panel en cache")
		}
		// Invalidate pudo correr entre la verificación y el Set.
		if uc.gen.Load() != gen {
			uc.Invalidate(ctx)
		}
	}
	return stats, nil
}

// Invalidate descarta los indicadores cacheados.
func (uc *DashboardUseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	uc.gen.Add(1)
	if err := uc.cache.Delete(ctx, DashboardStatsKey); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el cache del panel")
	}
}
