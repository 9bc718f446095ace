// File: /jobs/pending_reminder_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"garagehub-api/repositories"
	"garagehub-api/services"
)

// PendingReminderJob periodically emails customers whose vehicle has been
// sitting in the shop with a pending service past the threshold.
type PendingReminderJob struct {
	repo      *repositories.StatsRepository
	mailer    services.Mailer
	threshold time.Duration
	ticker    *time.Ticker
	done      chan bool
}

// NewPendingReminderJob creates a new reminder job
func NewPendingReminderJob(db *gorm.DB, mailer services.Mailer, interval, threshold time.Duration) *PendingReminderJob {
	return &PendingReminderJob{
		repo:      repositories.NewStatsRepository(db),
		mailer:    mailer,
		threshold: threshold,
		ticker:    time.NewTicker(interval),
		done:      make(chan bool),
	}
}

// Start begins the reminder job
func (j *PendingReminderJob) Start() {
	fmt.Println("Pending service reminder job started")

	go func() {
		// Run immediately on start
		j.run()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.run()
			case <-j.done:
				fmt.Println("Pending service reminder job stopped")
				return
			}
		}
	}()
}

// Stop stops the reminder job
func (j *PendingReminderJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *PendingReminderJob) run() {
	cutoff := time.Now().Add(-j.threshold)

	pending, err := j.repo.PendingServicesOlderThan(cutoff)
	if err != nil {
		fmt.Printf("Error loading pending services for reminders: %v\n", err)
		return
	}

	for _, service := range pending {
		if service.Customer == nil || service.Customer.Email == nil {
			continue
		}
		vehicleModel := ""
		if service.Vehicle != nil {
			vehicleModel = service.Vehicle.Model
		}

		daysPending := int(time.Since(service.SubmissionDate).Hours() / 24)
		if err := j.mailer.SendPendingReminderEmail(*service.Customer.Email, service.Customer.Name, vehicleModel, daysPending); err != nil {
			fmt.Printf("Error sending pending reminder for service %s: %v\n", service.ID, err)
			continue
		}

		if err := j.repo.MarkReminderSent(service.ID, time.Now()); err != nil {
			fmt.Printf("Error marking reminder sent for service %s: %v\n", service.ID, err)
		}
	}
}
