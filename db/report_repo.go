package db

import (
	"time"

	"github.com/pkg/errors"
	"github.com/wasteeasy/api/models"
	"gorm.io/gorm"
)

type ReportRepository interface {
	SaveReport(report *models.Report) (*models.Report, error)
	GetReportByID(reportID uint) (*models.Report, error)
	GetRecentReports(limit int) ([]models.Report, error)
	GetCollectionTasks(limit int) ([]models.CollectionTask, error)
	UpdateReportStatus(reportID uint, status string, collectorID *uint) (*models.Report, error)
	SaveCollectedWaste(collected *models.CollectedWaste) (*models.CollectedWaste, error)
	CountReports() (int64, error)
	GetAmountsByStatus(statuses ...string) ([]string, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

func (r *reportRepo) SaveReport(report *models.Report) (*models.Report, error) {
	if report.Status == "" {
		report.Status = models.StatusPending
	}
	if err := r.DB.Create(report).Error; err != nil {
		return nil, errors.Wrap(err, "could not save report")
	}
	return report, nil
}

func (r *reportRepo) GetReportByID(reportID uint) (*models.Report, error) {
	var report models.Report
	if err := r.DB.First(&report, reportID).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) GetRecentReports(limit int) ([]models.Report, error) {
	var reports []models.Report
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepo) GetCollectionTasks(limit int) ([]models.CollectionTask, error) {
	var tasks []models.CollectionTask
	err := r.DB.Model(&models.Report{}).
		Select("id, location, waste_type, amount, status, created_at AS date, collector_id").
		Order("created_at DESC").
		Limit(limit).
		Scan(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *reportRepo) UpdateReportStatus(reportID uint, status string, collectorID *uint) (*models.Report, error) {
	updates := map[string]interface{}{"status": status}
	if collectorID != nil {
		updates["collector_id"] = *collectorID
	}

	result := r.DB.Model(&models.Report{}).Where("id = ?", reportID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetReportByID(reportID)
}

func (r *reportRepo) SaveCollectedWaste(collected *models.CollectedWaste) (*models.CollectedWaste, error) {
	if collected.CollectionDate.IsZero() {
		collected.CollectionDate = time.Now()
	}
	if collected.Status == "" {
		collected.Status = models.StatusVerified
	}
	if err := r.DB.Create(collected).Error; err != nil {
		return nil, errors.Wrap(err, "could not save collected waste")
	}
	return collected, nil
}

// GetAmountsByStatus returns the raw amount strings of reports in the given
// statuses. Amounts are free text from the classifier, parsing is left to the
// caller.
func (r *reportRepo) GetAmountsByStatus(statuses ...string) ([]string, error) {
	var amounts []string
	err := r.DB.Model(&models.Report{}).
		Where("status IN ?", statuses).
		Pluck("amount", &amounts).Error
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *reportRepo) CountReports() (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Report{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
