package service

import (
	"context"
	"fmt"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/mapper"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/validation"
	"go.uber.org/zap"
)

// ReportService answers the fixed set of business queries (consultas). All of
// them are read-only.
type ReportService struct {
	reportRepo  *repository.ReportRepository
	requestRepo *repository.RequestRepository
	logger      *zap.Logger
}

func NewReportService(reportRepo *repository.ReportRepository, requestRepo *repository.RequestRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// EmployeesByLastName lists employees sorted by last name
func (s *ReportService) EmployeesByLastName(ctx context.Context) ([]domain.EmployeeReportRow, error) {
	rows, err := s.reportRepo.EmployeesByLastName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	return rows, nil
}

// ExpensiveHeavyProcedures lists heavy-category procedures above the cost
// threshold
func (s *ReportService) ExpensiveHeavyProcedures(ctx context.Context) ([]domain.ExpensiveProcedureRow, error) {
	rows, err := s.reportRepo.ExpensiveHeavyProcedures(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query procedures: %w", err)
	}
	return rows, nil
}

// CompanyWithMostRequests returns the top company by request count, or nil
// when no companies exist
func (s *ReportService) CompanyWithMostRequests(ctx context.Context) (*domain.TopCompanyRow, error) {
	row, err := s.reportRepo.CompanyWithMostRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query top company: %w", err)
	}
	return row, nil
}

// ArgosMachineQuantity sums machine quantities across line-items of requests
// made by companies whose name contains "argos"
func (s *ReportService) ArgosMachineQuantity(ctx context.Context) (*domain.ArgosMachinesResult, error) {
	total, err := s.reportRepo.ArgosMachineQuantity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query argos machines: %w", err)
	}
	return &domain.ArgosMachinesResult{ArgosMachines: total}, nil
}

// RequestsOfAssignedEmployee lists the requests assigned to the fixed report
// employee
func (s *ReportService) RequestsOfAssignedEmployee(ctx context.Context) ([]domain.RequestDTO, error) {
	reqs, err := s.reportRepo.RequestsAssignedToEmployee(ctx, repository.AssignedEmployeeDocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned requests: %w", err)
	}

	dtos := make([]domain.RequestDTO, len(reqs))
	for i := range reqs {
		dtos[i] = mapper.ToRequestDTO(&reqs[i])
	}
	return dtos, nil
}

// RepresentativesOfIdleCompanies lists representatives whose company has no
// requests
func (s *ReportService) RepresentativesOfIdleCompanies(ctx context.Context) ([]domain.RepresentativeCompanyRow, error) {
	rows, err := s.reportRepo.RepresentativesOfIdleCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query representatives: %w", err)
	}
	return rows, nil
}

// RequestItemsFlat lists every line-item with its company and request code
func (s *ReportService) RequestItemsFlat(ctx context.Context) ([]domain.RequestItemFlatRow, error) {
	rows, err := s.reportRepo.RequestItemsFlat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query request items: %w", err)
	}
	return rows, nil
}

// RequestByCode returns the partial-field aggregate of one request looked up
// by its code
func (s *ReportService) RequestByCode(ctx context.Context, input *domain.RequestByCodeInput) (*domain.RequestByCodeDTO, error) {
	if ve := validation.Struct(input); ve != nil {
		return nil, ve
	}

	req, err := s.requestRepo.GetByCode(ctx, input.Code)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("request", "Solicitud no encontrada", 0)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	dto := &domain.RequestByCodeDTO{
		Code:        req.Code,
		RequestDate: req.RequestDate.Format(dateLayout),
		Status:      req.Status,
		Items:       make([]domain.RequestByCodeItem, 0, len(req.Items)),
		Employees:   make([]domain.AssignedEmployeeDTO, 0, len(req.Assignments)),
	}
	if req.Company != nil {
		dto.Company = domain.RequestByCodeCompany{
			Name:  req.Company.Name,
			TaxID: req.Company.TaxID,
		}
	}
	for i := range req.Items {
		item := &req.Items[i]
		out := domain.RequestByCodeItem{
			Quantity:  item.Quantity,
			TotalCost: item.TotalCost,
		}
		if item.Procedure != nil {
			out.Procedure = domain.RequestByCodeProcedure{
				Code: item.Procedure.Code,
				Name: item.Procedure.Name,
				Cost: item.Procedure.Cost,
			}
			if item.Procedure.MachineryType != nil {
				out.Procedure.MachineryType = item.Procedure.MachineryType.Name
			}
		}
		dto.Items = append(dto.Items, out)
	}
	for i := range req.Assignments {
		a := &req.Assignments[i]
		if a.Employee == nil {
			continue
		}
		dto.Employees = append(dto.Employees, domain.AssignedEmployeeDTO{
			ID:         a.Employee.ID,
			FirstName:  a.Employee.FirstName,
			LastName:   a.Employee.LastName,
			DocumentID: a.Employee.DocumentID,
			Status:     a.Status,
		})
	}

	return dto, nil
}

// BackhoeItemCount counts line-items whose machinery type is a backhoe
func (s *ReportService) BackhoeItemCount(ctx context.Context) (*domain.BackhoeItemsResult, error) {
	count, err := s.reportRepo.BackhoeItemCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count backhoe items: %w", err)
	}
	return &domain.BackhoeItemsResult{TotalItems: int(count)}, nil
}

// RequestsOfOctober2023 lists request detail rows dated in October 2023
func (s *ReportService) RequestsOfOctober2023(ctx context.Context) ([]domain.OctoberRequestRow, error) {
	details, err := s.reportRepo.RequestsOfOctober2023(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query october requests: %w", err)
	}

	rows := make([]domain.OctoberRequestRow, len(details))
	for i, d := range details {
		rows[i] = domain.OctoberRequestRow{
			Company:       d.Company,
			RequestCode:   d.RequestCode,
			RequestDate:   d.RequestDate.Format(dateLayout),
			MachineryType: d.MachineryType,
			Procedure:     d.ProcedureName,
			Quantity:      d.Quantity,
		}
	}
	return rows, nil
}
