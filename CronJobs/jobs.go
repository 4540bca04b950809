package CronJobs

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"Frota/Models"
	"Frota/Notifications"
	"Frota/email"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ComplianceChecker represents the scheduled fleet compliance service. It
// reports drivers that skipped the daily checklist and vehicles with
// documents close to expiring.
type ComplianceChecker struct {
	db             *gorm.DB
	cronScheduler  *cron.Cron
	expiryWindow   int
	runImmediately bool
	jobID          cron.EntryID
}

// NewComplianceChecker creates a new compliance checker with the given configuration
func NewComplianceChecker(db *gorm.DB, expiryWindowDays int, runImmediately bool) *ComplianceChecker {
	return &ComplianceChecker{
		db:             db,
		cronScheduler:  cron.New(cron.WithSeconds()),
		expiryWindow:   expiryWindowDays,
		runImmediately: runImmediately,
	}
}

// Start initiates the compliance cron job
func (s *ComplianceChecker) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 7 * * *", func() {
		log.Println("Running scheduled daily compliance check")
		s.runComplianceCheck()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	fmt.Println("Compliance scheduler started - will run daily at 7:00 AM")

	if s.runImmediately {
		fmt.Println("Running initial compliance check")
		s.runComplianceCheck()
	}

	return nil
}

// Stop terminates the compliance checker
func (s *ComplianceChecker) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Compliance scheduler stopped")
	}
}

// UpdateSchedule changes the schedule of the compliance checker
// Format: "0 0 7 * * *" = At 07:00:00 AM every day
func (s *ComplianceChecker) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled compliance check")
		s.runComplianceCheck()
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Compliance schedule updated to: %s\n", schedule)
	return nil
}

// RunManualCheck executes a manual compliance check
func (s *ComplianceChecker) RunManualCheck() {
	log.Println("Running manual compliance check")
	s.runComplianceCheck()
}

func (s *ComplianceChecker) runComplianceCheck() {
	missing, err := s.driversWithoutChecklist()
	if err != nil {
		log.Printf("Error checking daily checklists: %v\n", err)
	}

	expiring, err := Models.ExpiringDocuments(s.db, s.expiryWindow)
	if err != nil {
		log.Printf("Error checking document expirations: %v\n", err)
	}

	if len(missing) == 0 && len(expiring) == 0 {
		log.Println("Compliance check passed - nothing to report")
		return
	}

	report := s.buildReport(missing, expiring)
	s.notify(len(missing), len(expiring), report)
}

// driversWithoutChecklist lists approved drivers with no submitted
// checklist for the current day.
func (s *ComplianceChecker) driversWithoutChecklist() ([]Models.User, error) {
	day := time.Now().UTC().Format("2006-01-02")

	var drivers []Models.User
	err := s.db.
		Where("permission = ? AND is_approved = ?", Models.PermissionDriver, true).
		Where("id NOT IN (?)", s.db.Model(&Models.ChecklistSubmission{}).
			Select("driver_id").
			Where("submission_day = ? AND submitted = ?", day, true)).
		Find(&drivers).Error
	return drivers, err
}

func (s *ComplianceChecker) buildReport(missing []Models.User, expiring []Models.Vehicle) string {
	var report strings.Builder
	report.WriteString(fmt.Sprintf("Fleet compliance report for %s\n\n", time.Now().UTC().Format("2006-01-02")))

	if len(missing) > 0 {
		report.WriteString("Drivers without a checklist today:\n")
		for _, driver := range missing {
			report.WriteString(fmt.Sprintf("- %s (%s)\n", driver.Name, driver.Email))
		}
		report.WriteString("\n")
	}

	if len(expiring) > 0 {
		report.WriteString(fmt.Sprintf("Vehicles with documents expiring within %d days:\n", s.expiryWindow))
		for _, vehicle := range expiring {
			if vehicle.LicenseExpirationDate != nil {
				report.WriteString(fmt.Sprintf("- %s license expires %s\n",
					vehicle.PlateNumber, vehicle.LicenseExpirationDate.Format("2006-01-02")))
			}
			if vehicle.InspectionExpirationDate != nil {
				report.WriteString(fmt.Sprintf("- %s inspection expires %s\n",
					vehicle.PlateNumber, vehicle.InspectionExpirationDate.Format("2006-01-02")))
			}
		}
	}

	return report.String()
}

func (s *ComplianceChecker) notify(missingCount, expiringCount int, report string) {
	title := "Fleet compliance alert"
	body := fmt.Sprintf("%d drivers missing checklists, %d vehicles with expiring documents",
		missingCount, expiringCount)

	if err := Notifications.SendToAll(s.db, title, body, map[string]string{
		"missing_checklists": strconv.Itoa(missingCount),
		"expiring_documents": strconv.Itoa(expiringCount),
	}); err != nil {
		log.Printf("Error sending push notifications: %v\n", err)
	}

	recipients, err := s.managerEmails()
	if err != nil {
		log.Printf("Error loading manager emails: %v\n", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	config := email.ConfigFromEnv()
	if config.SMTPServer == "" {
		log.Println("SMTP not configured, skipping email report")
		return
	}

	err = email.SendEmail(config, Models.EmailMessage{
		To:      recipients,
		Subject: title,
		Body:    report,
		IsHTML:  false,
	})
	if err != nil {
		log.Printf("Error sending compliance email: %v\n", err)
	} else {
		log.Printf("Compliance report emailed to %d managers\n", len(recipients))
	}
}

func (s *ComplianceChecker) managerEmails() ([]string, error) {
	var managers []Models.User
	err := s.db.
		Where("permission >= ? AND is_approved = ?", Models.PermissionManager, true).
		Find(&managers).Error
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(managers))
	for _, manager := range managers {
		if manager.Email != "" {
			emails = append(emails, manager.Email)
		}
	}
	return emails, nil
}
