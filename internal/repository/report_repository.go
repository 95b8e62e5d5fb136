package repository

import (
	"context"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

// Fixed parameters of the canned business queries.
const (
	// ExpensiveProcedureThreshold is the cost floor of the heavy-category
	// procedure report, in currency units.
	ExpensiveProcedureThreshold = 1_000_000
	// AssignedEmployeeDocumentID is the employee document the
	// requests-by-employee report is pinned to.
	AssignedEmployeeDocumentID = "1002003004"
)

// ReportRepository answers the fixed set of read-only business queries. It
// never mutates the schema.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// EmployeesByLastName projects employees sorted ascending by last name
func (r *ReportRepository) EmployeesByLastName(ctx context.Context) ([]domain.EmployeeReportRow, error) {
	var rows []domain.EmployeeReportRow
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Select("first_name, last_name, document_id, email").
		Order("last_name ASC").
		Scan(&rows).Error
	return rows, err
}

// ExpensiveHeavyProcedures lists procedures whose machinery-type category name
// contains "heavy" (case-insensitive) and whose cost exceeds the threshold
func (r *ReportRepository) ExpensiveHeavyProcedures(ctx context.Context) ([]domain.ExpensiveProcedureRow, error) {
	var rows []domain.ExpensiveProcedureRow
	err := r.db.WithContext(ctx).
		Table("mantenimientos AS m").
		Select("m.code, m.name, m.cost, t.name AS machinery_type, c.name AS category").
		Joins("JOIN tipos_maquinaria t ON t.id = m.machinery_type_id").
		Joins("JOIN categorias_maquinaria c ON c.id = t.category_id").
		Where("LOWER(c.name) LIKE ?", "%heavy%").
		Where("m.cost > ?", float64(ExpensiveProcedureThreshold)).
		Scan(&rows).Error
	return rows, err
}

// CompanyWithMostRequests returns the single company with the highest request
// count (ties broken by first encountered), or nil when no companies exist
func (r *ReportRepository) CompanyWithMostRequests(ctx context.Context) (*domain.TopCompanyRow, error) {
	var rows []domain.TopCompanyRow
	err := r.db.WithContext(ctx).
		Table("empresas AS e").
		Select("e.id, e.name, e.tax_id, e.email, COUNT(s.id) AS total_requests").
		Joins("LEFT JOIN solicitudes s ON s.company_id = e.id").
		Group("e.id, e.name, e.tax_id, e.email").
		Order("total_requests DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ArgosMachineQuantity sums line-item machine quantities across requests of
// companies whose name contains "argos" (case-insensitive)
func (r *ReportRepository) ArgosMachineQuantity(ctx context.Context) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Table("detalle_solicitudes AS d").
		Select("SUM(d.quantity)").
		Joins("JOIN solicitudes s ON s.id = d.request_id").
		Joins("JOIN empresas e ON e.id = s.company_id").
		Where("LOWER(e.name) LIKE ?", "%argos%").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// RequestsAssignedToEmployee returns every request having at least one
// assignment to the employee with the given document id, with assigned
// employees eager-loaded
func (r *ReportRepository) RequestsAssignedToEmployee(ctx context.Context, documentID string) ([]domain.MaintenanceRequest, error) {
	var reqs []domain.MaintenanceRequest
	sub := r.db.
		Table("solicitud_empleado AS a").
		Select("a.request_id").
		Joins("JOIN empleados emp ON emp.id = a.employee_id").
		Where("emp.document_id = ?", documentID)
	err := r.db.WithContext(ctx).
		Preload("Assignments.Employee").
		Where("id IN (?)", sub).
		Find(&reqs).Error
	return reqs, err
}

// RepresentativesOfIdleCompanies joins representatives with their company,
// restricted to companies with zero requests (left join + null check)
func (r *ReportRepository) RepresentativesOfIdleCompanies(ctx context.Context) ([]domain.RepresentativeCompanyRow, error) {
	var rows []domain.RepresentativeCompanyRow
	err := r.db.WithContext(ctx).
		Table("representantes AS r").
		Select("r.first_name, r.last_name, r.email, e.name AS company, e.tax_id").
		Joins("JOIN empresas e ON e.id = r.company_id").
		Joins("LEFT JOIN solicitudes s ON s.company_id = e.id").
		Where("s.id IS NULL").
		Scan(&rows).Error
	return rows, err
}

// RequestItemsFlat lists (company, request code, quantity, total cost) across
// all requests with line-items
func (r *ReportRepository) RequestItemsFlat(ctx context.Context) ([]domain.RequestItemFlatRow, error) {
	var rows []domain.RequestItemFlatRow
	err := r.db.WithContext(ctx).
		Table("detalle_solicitudes AS d").
		Select("e.name AS company, s.code AS request_code, d.quantity, d.total_cost").
		Joins("JOIN solicitudes s ON s.id = d.request_id").
		Joins("JOIN empresas e ON e.id = s.company_id").
		Scan(&rows).Error
	return rows, err
}

// BackhoeItemCount counts line-items whose procedure's machinery-type name
// contains "retroexcavadora" (case-insensitive)
func (r *ReportRepository) BackhoeItemCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("detalle_solicitudes AS d").
		Joins("JOIN mantenimientos m ON m.id = d.procedure_id").
		Joins("JOIN tipos_maquinaria t ON t.id = m.machinery_type_id").
		Where("LOWER(t.name) LIKE ?", "%retroexcavadora%").
		Count(&count).Error
	return count, err
}

// OctoberRequestDetail is a scan target carrying the raw request date; the
// service formats it for the wire.
type OctoberRequestDetail struct {
	Company       string
	RequestCode   string
	RequestDate   time.Time
	MachineryType string
	ProcedureName string
	Quantity      int
}

// RequestsOfOctober2023 projects request/company/type/procedure/quantity for
// every request dated in October 2023, joined through line-items
func (r *ReportRepository) RequestsOfOctober2023(ctx context.Context) ([]OctoberRequestDetail, error) {
	from := time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var rows []OctoberRequestDetail
	err := r.db.WithContext(ctx).
		Table("solicitudes AS s").
		Select("e.name AS company, s.code AS request_code, s.request_date, t.name AS machinery_type, m.name AS procedure_name, d.quantity").
		Joins("JOIN empresas e ON e.id = s.company_id").
		Joins("JOIN detalle_solicitudes d ON d.request_id = s.id").
		Joins("JOIN mantenimientos m ON m.id = d.procedure_id").
		Joins("JOIN tipos_maquinaria t ON t.id = m.machinery_type_id").
		Where("s.request_date >= ? AND s.request_date < ?", from, to).
		Scan(&rows).Error
	return rows, err
}

// TopCompaniesByRequests ranks companies by request count, for the dashboard
func (r *ReportRepository) TopCompaniesByRequests(ctx context.Context, limit int) ([]domain.CompanyRequestCount, error) {
	var rows []domain.CompanyRequestCount
	err := r.db.WithContext(ctx).
		Table("empresas AS e").
		Select("e.id, e.name, COUNT(s.id) AS total_requests").
		Joins("LEFT JOIN solicitudes s ON s.company_id = e.id").
		Group("e.id, e.name").
		Order("total_requests DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
