package controllers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/util"
)

const StatsRefreshInterval = time.Minute * 5

// DashboardController serves the stat cards from an in-process cache so
// every console load does not fan out into nine COUNT queries.
type DashboardController struct {
	db              db.DashboardDatabase
	cachedStats     *model.DashboardStats
	cachedStatsLock sync.Mutex
	refreshTicker   *time.Ticker
}

func NewDashboardController(c context.Context, db db.DashboardDatabase) (*DashboardController, error) {
	controller := &DashboardController{
		db: db,
	}
	if err := controller.refreshStats(c); err != nil {
		return nil, err
	}

	refreshTicker := time.NewTicker(StatsRefreshInterval)
	controller.refreshTicker = refreshTicker
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Println("recovered while attempting to refresh dashboard stats", r)
			}
		}()
		for {
			select {
			case <-refreshTicker.C:
				controller.attemptToRefreshStats(c)
			}
		}
	}()

	return controller, nil
}

func (dc *DashboardController) GetStats(c context.Context) (*model.DashboardStats, *util.HTTPError) {
	dc.cachedStatsLock.Lock()
	defer dc.cachedStatsLock.Unlock()
	return dc.cachedStats, nil
}

// Invalidate forces a refresh off the request path after a mutation.
func (dc *DashboardController) Invalidate(c context.Context) {
	go dc.attemptToRefreshStats(c)
}

func (dc *DashboardController) attemptToRefreshStats(c context.Context) {
	if err := dc.refreshStats(c); err != nil {
		log.Println("an error occurred while refreshing dashboard stats", err)
	}
}

func (dc *DashboardController) refreshStats(c context.Context) error {
	stats, err := dc.db.GetDashboardStats(c)
	if err != nil {
		return err
	}

	dc.cachedStatsLock.Lock()
	defer dc.cachedStatsLock.Unlock()
	if dc.cachedStats == nil || stats.RefreshedAt.After(dc.cachedStats.RefreshedAt) {
		dc.cachedStats = stats
	}
	return nil
}
