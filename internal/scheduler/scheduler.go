package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/climashield/climashield/internal/climate"
)

// Scheduler periodically regenerates the predictions export file so the
// flat-file copy tracks edits to the source CSVs.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	service    *climate.Service
	exportPath string
	interval   time.Duration
}

// New creates a Scheduler. An empty exportPath disables scheduling entirely.
func New(service *climate.Service, exportPath string, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		service:    service,
		exportPath: exportPath,
		interval:   interval,
	}
}

// Start runs the export once immediately, then on the configured interval.
func (s *Scheduler) Start() error {
	if s.exportPath == "" {
		log.Println("scheduler: no export path configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	job := func() {
		log.Println("scheduler: regenerating predictions export")
		if err := s.service.ExportPredictions(s.exportPath); err != nil {
			log.Printf("scheduler: export failed: %v", err)
			return
		}
		log.Printf("scheduler: predictions written to %s", s.exportPath)
	}

	job()

	if _, err := s.scheduler.Every(minutes).Minutes().Do(job); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
