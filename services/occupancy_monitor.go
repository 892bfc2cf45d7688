package services

import (
	"os"
	"time"

	"github.com/julian-of-21twelve-interactive/bytServer-sub001/hub"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
	"gorm.io/gorm"
)

// OccupancyMonitor periodically pushes a table stats snapshot to the hub so
// passive dashboards stay warm without polling the REST API. Purely additive
// instrumentation: request handling never reads these snapshots back, and the
// per-request availability view is still computed fresh from the store.
type OccupancyMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewOccupancyMonitor(db *gorm.DB) *OccupancyMonitor {
	interval := 30 * time.Second
	if raw := os.Getenv("OCCUPANCY_SNAPSHOT_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			interval = d
		}
	}
	return &OccupancyMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: interval,
	}
}

func (om *OccupancyMonitor) Start() {
	go func() {
		ticker := time.NewTicker(om.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				om.snapshot()
			case <-om.StopChan:
				return
			}
		}
	}()
}

func (om *OccupancyMonitor) Stop() {
	close(om.StopChan)
}

func (om *OccupancyMonitor) snapshot() {
	if hub.ClientCount() == 0 {
		return
	}

	var totalTables, bookedTables, restaurants int64
	if err := om.DB.Model(&models.Table{}).Count(&totalTables).Error; err != nil {
		utils.ErrorLogger.Printf("Error counting tables for snapshot: %v", err)
		return
	}
	om.DB.Model(&models.Table{}).Where("booking_status = ?", true).Count(&bookedTables)
	om.DB.Model(&models.Restaurant{}).Count(&restaurants)

	hub.Publish("", hub.ActionStatsSnapshot, map[string]interface{}{
		"total_tables":  totalTables,
		"booked_tables": bookedTables,
		"restaurants":   restaurants,
	})
}
