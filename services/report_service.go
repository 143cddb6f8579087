package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/wasteeasy/api/db"
	apiError "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/models"
	"gorm.io/gorm"
)

const defaultReportLimit = 50

// statusRank orders the report lifecycle. A status may only advance to the
// next rank; skipping or moving backwards is rejected.
var statusRank = map[string]int{
	models.StatusPending:   0,
	models.StatusCollected: 1,
	models.StatusVerified:  2,
}

// InvalidTransitionError reports a disallowed report status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change report status from %q to %q", e.From, e.To)
}

// ReportService manages the waste report lifecycle.
type ReportService interface {
	SubmitReport(userID uint, req *models.CreateReportRequest, imageURL string) (*models.Report, *apiError.Error)
	UpdateStatus(reportID uint, req *models.UpdateStatusRequest) (*models.Report, *apiError.Error)
	CollectWaste(collectorID uint, reportID uint) (*models.CollectedWaste, *apiError.Error)
	GetRecentReports(limit int) ([]models.Report, error)
	GetCollectionTasks(limit int) ([]models.CollectionTask, error)
}

type reportService struct {
	reportRepo       db.ReportRepository
	rewardService    RewardService
	notificationRepo db.NotificationRepository
}

// NewReportService instantiate a reportService
func NewReportService(reportRepo db.ReportRepository, rewardService RewardService, notificationRepo db.NotificationRepository) ReportService {
	return &reportService{
		reportRepo:       reportRepo,
		rewardService:    rewardService,
		notificationRepo: notificationRepo,
	}
}

// SubmitReport stores a new pending report and credits the reporter. The
// report write is authoritative; reward and notification failures are logged
// and do not fail the submission.
func (s *reportService) SubmitReport(userID uint, req *models.CreateReportRequest, imageURL string) (*models.Report, *apiError.Error) {
	report := &models.Report{
		UserID:             userID,
		Location:           req.Location,
		WasteType:          req.WasteType,
		Amount:             req.Amount,
		ImageURL:           imageURL,
		VerificationResult: req.VerificationResult,
		Status:             models.StatusPending,
	}

	report, err := s.reportRepo.SaveReport(report)
	if err != nil {
		log.Printf("SubmitReport error saving report: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.rewardService.EarnPoints(userID, models.PointsPerReport, models.TxEarnedReport,
		fmt.Sprintf("Points earned for reporting waste at %s", report.Location)); err != nil {
		log.Printf("SubmitReport error crediting points for report %d: %v", report.ID, err)
	} else {
		s.notify(userID, fmt.Sprintf("You've earned %d points for reporting waste!", models.PointsPerReport))
	}

	return report, nil
}

// UpdateStatus advances a report one step along pending, collected, verified.
// Re-submitting the current status is a no-op.
func (s *reportService) UpdateStatus(reportID uint, req *models.UpdateStatusRequest) (*models.Report, *apiError.Error) {
	next, ok := statusRank[req.Status]
	if !ok {
		return nil, apiError.New(fmt.Sprintf("unknown status %q", req.Status), http.StatusBadRequest)
	}

	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("report not found", http.StatusNotFound)
		}
		log.Printf("UpdateStatus error fetching report %d: %v", reportID, err)
		return nil, apiError.ErrInternalServerError
	}

	if report.Status == req.Status {
		return report, nil
	}
	if next != statusRank[report.Status]+1 {
		transitionErr := &InvalidTransitionError{From: report.Status, To: req.Status}
		return nil, apiError.New(transitionErr.Error(), http.StatusConflict)
	}

	updated, err := s.reportRepo.UpdateReportStatus(reportID, req.Status, req.CollectorID)
	if err != nil {
		log.Printf("UpdateStatus error updating report %d: %v", reportID, err)
		return nil, apiError.ErrInternalServerError
	}
	return updated, nil
}

// CollectWaste records a pickup by the collector and credits them. It does not
// touch the report status; collectors confirm that separately through
// UpdateStatus.
func (s *reportService) CollectWaste(collectorID uint, reportID uint) (*models.CollectedWaste, *apiError.Error) {
	if _, err := s.reportRepo.GetReportByID(reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("report not found", http.StatusNotFound)
		}
		log.Printf("CollectWaste error fetching report %d: %v", reportID, err)
		return nil, apiError.ErrInternalServerError
	}

	collected, err := s.reportRepo.SaveCollectedWaste(&models.CollectedWaste{
		ReportID:    reportID,
		CollectorID: collectorID,
	})
	if err != nil {
		log.Printf("CollectWaste error saving collection for report %d: %v", reportID, err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.rewardService.EarnPoints(collectorID, models.PointsPerCollection, models.TxEarnedCollect,
		fmt.Sprintf("Points earned for collecting waste (report %d)", reportID)); err != nil {
		log.Printf("CollectWaste error crediting points for report %d: %v", reportID, err)
	} else {
		s.notify(collectorID, fmt.Sprintf("You've earned %d points for collecting waste!", models.PointsPerCollection))
	}

	return collected, nil
}

func (s *reportService) GetRecentReports(limit int) ([]models.Report, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}
	return s.reportRepo.GetRecentReports(limit)
}

func (s *reportService) GetCollectionTasks(limit int) ([]models.CollectionTask, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}
	return s.reportRepo.GetCollectionTasks(limit)
}

func (s *reportService) notify(userID uint, message string) {
	_, err := s.notificationRepo.CreateNotification(&models.Notification{
		UserID:  userID,
		Message: message,
		Type:    "Reward Earned!",
	})
	if err != nil {
		log.Printf("error creating notification for user %d: %v", userID, err)
	}
}
