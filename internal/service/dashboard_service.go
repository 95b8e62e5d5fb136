package service

import (
	"context"
	"fmt"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"go.uber.org/zap"
)

// topCompaniesLimit bounds the dashboard company ranking
const topCompaniesLimit = 5

// DashboardService aggregates record counts for the overview endpoints
type DashboardService struct {
	companyRepo    *repository.CompanyRepository
	repRepo        *repository.RepresentativeRepository
	categoryRepo   *repository.CategoryRepository
	typeRepo       *repository.MachineryTypeRepository
	procedureRepo  *repository.ProcedureRepository
	requestRepo    *repository.RequestRepository
	itemRepo       *repository.RequestItemRepository
	employeeRepo   *repository.EmployeeRepository
	assignmentRepo *repository.AssignmentRepository
	reportRepo     *repository.ReportRepository
	logger         *zap.Logger
}

func NewDashboardService(
	companyRepo *repository.CompanyRepository,
	repRepo *repository.RepresentativeRepository,
	categoryRepo *repository.CategoryRepository,
	typeRepo *repository.MachineryTypeRepository,
	procedureRepo *repository.ProcedureRepository,
	requestRepo *repository.RequestRepository,
	itemRepo *repository.RequestItemRepository,
	employeeRepo *repository.EmployeeRepository,
	assignmentRepo *repository.AssignmentRepository,
	reportRepo *repository.ReportRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		companyRepo:    companyRepo,
		repRepo:        repRepo,
		categoryRepo:   categoryRepo,
		typeRepo:       typeRepo,
		procedureRepo:  procedureRepo,
		requestRepo:    requestRepo,
		itemRepo:       itemRepo,
		employeeRepo:   employeeRepo,
		assignmentRepo: assignmentRepo,
		reportRepo:     reportRepo,
		logger:         logger,
	}
}

// Totals counts records per entity
func (s *DashboardService) Totals(ctx context.Context) (*domain.DashboardTotals, error) {
	totals := &domain.DashboardTotals{}

	counts := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&totals.Companies, s.companyRepo.Count},
		{&totals.Representatives, s.repRepo.Count},
		{&totals.Categories, s.categoryRepo.Count},
		{&totals.MachineryTypes, s.typeRepo.Count},
		{&totals.Procedures, s.procedureRepo.Count},
		{&totals.Requests, s.requestRepo.Count},
		{&totals.RequestItems, s.itemRepo.Count},
		{&totals.Employees, s.employeeRepo.Count},
		{&totals.Assignments, s.assignmentRepo.Count},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count records: %w", err)
		}
		*c.dst = n
	}

	return totals, nil
}

// RequestsByStatus buckets requests per lifecycle status
func (s *DashboardService) RequestsByStatus(ctx context.Context) ([]domain.RequestStatusCount, error) {
	rows, err := s.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by status: %w", err)
	}
	return rows, nil
}

// TopCompanies ranks companies by request count
func (s *DashboardService) TopCompanies(ctx context.Context) ([]domain.CompanyRequestCount, error) {
	rows, err := s.reportRepo.TopCompaniesByRequests(ctx, topCompaniesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank companies: %w", err)
	}
	return rows, nil
}
