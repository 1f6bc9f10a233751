package monthlysummary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/validator"
)

type MonthlySummaryServiceImpl struct {
	transactor   database.Transactor
	employeeRepo employee.EmployeeRepository
	dailyRepo    summary.DailySummaryRepository
	usedRepo     attendance.UsedAttendanceRepository
	typeRepo     attendance.AttendanceTypeRepository
	monthlyRepo  summary.MonthlySummaryRepository
	aggregator   *Aggregator
}

func NewMonthlySummaryService(
	transactor database.Transactor,
	employeeRepo employee.EmployeeRepository,
	dailyRepo summary.DailySummaryRepository,
	usedRepo attendance.UsedAttendanceRepository,
	typeRepo attendance.AttendanceTypeRepository,
	monthlyRepo summary.MonthlySummaryRepository,
	aggregator *Aggregator,
) summary.MonthlySummaryService {
	return &MonthlySummaryServiceImpl{
		transactor:   transactor,
		employeeRepo: employeeRepo,
		dailyRepo:    dailyRepo,
		usedRepo:     usedRepo,
		typeRepo:     typeRepo,
		monthlyRepo:  monthlyRepo,
		aggregator:   aggregator,
	}
}

// GenerateMonthlySummary implements summary.MonthlySummaryService.
func (s *MonthlySummaryServiceImpl) GenerateMonthlySummary(ctx context.Context, employeeID string, yyyymm string) (summary.MonthlySummary, error) {
	if validator.IsEmpty(employeeID) {
		return summary.MonthlySummary{}, validator.Single("employee_id", "employee_id is required")
	}
	ym, err := summary.ParseYearMonth(yyyymm)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	catalog, err := attendance.LoadCatalog(ctx, s.typeRepo)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	var stored summary.MonthlySummary
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		stored, err = s.generate(txCtx, employeeID, ym, &catalog)
		return err
	})
	if err != nil {
		return summary.MonthlySummary{}, err
	}
	return stored, nil
}

// GenerateMonthlySummaries implements summary.MonthlySummaryService.
func (s *MonthlySummaryServiceImpl) GenerateMonthlySummaries(ctx context.Context, req summary.GenerateMonthlyRequest) (summary.GenerateMonthlyResult, error) {
	if err := req.Validate(); err != nil {
		return summary.GenerateMonthlyResult{}, err
	}
	ym, err := summary.ParseYearMonth(req.YearMonth)
	if err != nil {
		return summary.GenerateMonthlyResult{}, err
	}

	start := time.Now()
	result := summary.GenerateMonthlyResult{YearMonth: ym.String(), Summaries: []summary.MonthlySummary{}}

	catalog, err := attendance.LoadCatalog(ctx, s.typeRepo)
	if err != nil {
		return summary.GenerateMonthlyResult{}, err
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var employeeIDs []string
		if req.EmployeeID != nil {
			employeeIDs = []string{*req.EmployeeID}
		} else {
			employeeIDs, err = s.dailyRepo.ListEmployeeIDsBetween(txCtx, ym.Start(), ym.End())
			if err != nil {
				return fmt.Errorf("failed to list employees of %s: %w", ym, err)
			}
		}

		for _, id := range employeeIDs {
			stored, err := s.generate(txCtx, id, ym, &catalog)
			if err != nil {
				return err
			}
			result.Summaries = append(result.Summaries, stored)
		}
		return nil
	})
	if err != nil {
		return summary.GenerateMonthlyResult{}, err
	}

	slog.Info("Monthly summaries generated",
		"yyyymm", ym.String(),
		"count", len(result.Summaries),
		"duration", time.Since(start),
	)
	return result, nil
}

// GetMonthlySummary implements summary.MonthlySummaryService.
func (s *MonthlySummaryServiceImpl) GetMonthlySummary(ctx context.Context, employeeID string, yyyymm string) (summary.MonthlySummary, error) {
	ym, err := summary.ParseYearMonth(yyyymm)
	if err != nil {
		return summary.MonthlySummary{}, err
	}
	return s.monthlyRepo.Get(ctx, employeeID, ym)
}

// UpdateNote implements summary.MonthlySummaryService.
func (s *MonthlySummaryServiceImpl) UpdateNote(ctx context.Context, req summary.UpdateNoteRequest) (summary.MonthlySummary, error) {
	if err := req.Validate(); err != nil {
		return summary.MonthlySummary{}, err
	}
	ym, err := summary.ParseYearMonth(req.YearMonth)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	updated, err := s.monthlyRepo.UpdateNote(ctx, req.EmployeeID, ym, req.Note)
	if err != nil {
		return summary.MonthlySummary{}, err
	}
	slog.Info("Monthly summary note updated", "employee_id", req.EmployeeID, "yyyymm", ym.String())
	return updated, nil
}

func (s *MonthlySummaryServiceImpl) generate(ctx context.Context, employeeID string, ym summary.YearMonth, catalog *attendance.Catalog) (summary.MonthlySummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return summary.MonthlySummary{}, fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, employeeID)
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to get employee: %w", err)
	}

	dailies, err := s.dailyRepo.ListByEmployeeBetween(ctx, employeeID, ym.Start(), ym.End())
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to load daily summaries: %w", err)
	}

	used, err := s.usedRepo.ListByEmployeeBetween(ctx, employeeID, ym.Start(), ym.End())
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to load attendance records: %w", err)
	}
	// A refreshed catalog is kept for the remaining employees of the run
	*catalog, used, err = attendance.JoinWithReload(ctx, s.typeRepo, *catalog, used)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	aggregated := s.aggregator.Aggregate(employeeID, ym, dailies, used, *catalog)

	stored, err := s.monthlyRepo.Upsert(ctx, aggregated)
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to write monthly summary: %w", err)
	}
	return stored, nil
}
