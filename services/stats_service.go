package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/wasteeasy/api/db"
	"github.com/wasteeasy/api/models"
)

// CO2 offset factor: each kilogram of waste kept out of the environment is
// counted as half a kilogram of CO2 avoided.
const co2PerKg = 0.5

// StatsService aggregates the community impact figures.
type StatsService interface {
	GetImpactStats() (*models.ImpactStats, error)
}

type statsService struct {
	reportRepo db.ReportRepository
	ledgerRepo db.LedgerRepository
}

// NewStatsService instantiate a statsService
func NewStatsService(reportRepo db.ReportRepository, ledgerRepo db.LedgerRepository) StatsService {
	return &statsService{
		reportRepo: reportRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *statsService) GetImpactStats() (*models.ImpactStats, error) {
	amounts, err := s.reportRepo.GetAmountsByStatus(models.StatusCollected, models.StatusVerified)
	if err != nil {
		return nil, err
	}

	var wasteKg float64
	for _, amount := range amounts {
		wasteKg += parseLeadingKg(amount)
	}

	reportCount, err := s.reportRepo.CountReports()
	if err != nil {
		return nil, err
	}

	totalPoints, err := s.ledgerRepo.SumAllPoints()
	if err != nil {
		return nil, err
	}

	return &models.ImpactStats{
		WasteCollectedKg: round1(wasteKg),
		ReportsSubmitted: reportCount,
		TokensEarned:     totalPoints,
		CO2OffsetKg:      round1(wasteKg * co2PerKg),
	}, nil
}

// parseLeadingKg pulls the leading numeric out of a classifier amount string
// such as "2.5 kg" or "3kg approx". Unparseable amounts count as zero.
func parseLeadingKg(amount string) float64 {
	trimmed := strings.TrimSpace(amount)
	end := 0
	for end < len(trimmed) {
		ch := trimmed[end]
		if (ch >= '0' && ch <= '9') || ch == '.' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed[:end], 64)
	if err != nil {
		return 0
	}
	return value
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
