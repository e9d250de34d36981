package service

import (
	"fmt"
	"log"
	"time"

	"fleetreserve/internal/repository"
)

// JobService runs the scheduled fleet housekeeping tasks.
type JobService struct {
	repo      *repository.JobRepository
	notifier  *NotifyService
	lookahead time.Duration
}

func NewJobService(repo *repository.JobRepository, notifier *NotifyService, lookahead time.Duration) *JobService {
	return &JobService{repo: repo, notifier: notifier, lookahead: lookahead}
}

// SendInspectionReminders emails fleet administrators about vehicles
// whose inspections or vignettes expire within the lookahead window.
func (s *JobService) SendInspectionReminders() error {
	cutoff := time.Now().UTC().Add(s.lookahead)

	vehicles, err := s.repo.ListVehiclesWithExpiringInspections(cutoff)
	if err != nil {
		return fmt.Errorf("inspection sweep: %w", err)
	}
	if len(vehicles) == 0 {
		log.Println("inspection sweep: no vehicles expiring soon")
		return nil
	}

	admins, err := s.repo.ListAdminEmails()
	if err != nil {
		return fmt.Errorf("inspection sweep: %w", err)
	}
	if len(admins) == 0 {
		log.Println("inspection sweep: no fleet administrators to notify")
		return nil
	}

	log.Printf("inspection sweep: notifying %d administrator(s) about %d vehicle(s)", len(admins), len(vehicles))
	s.notifier.SendInspectionSummary(vehicles, admins)
	return nil
}
