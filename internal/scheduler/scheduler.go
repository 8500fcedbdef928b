package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/puntosbot/pkg/models"
)

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	startDay  int
	location  *time.Location
}

// Notifier interface for sending period announcements
type Notifier interface {
	AnnouncePeriodStart(month string) error
}

// New creates a new scheduler instance. The start day decides which
// calendar day opens a new scoring period.
func New(notifier Notifier, startDay int, location *time.Location) *Scheduler {
	s := gocron.NewScheduler(location)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
		startDay:  startDay,
		location:  location,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Check shortly after midnight whether a new period opens today
	s.scheduler.Every(1).Day().At("00:05").Do(s.checkPeriodRollover)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkPeriodRollover announces the new scoring period on its first day.
func (s *Scheduler) checkPeriodRollover() {
	now := time.Now().In(s.location)
	if now.Day() != s.startDay {
		return
	}

	month := models.MonthName(now.Month())
	if err := s.notifier.AnnouncePeriodStart(month); err != nil {
		log.Printf("Error announcing period start for %s: %v", month, err)
	}
}

// RunManualCheck forces the rollover check regardless of schedule
func (s *Scheduler) RunManualCheck() {
	s.checkPeriodRollover()
}
