// Package mapper converts persistence models into wire DTOs. Relations are
// only mapped when they were eager-loaded by the caller.
package mapper

import (
	"time"

	"github.com/tecnimaq/maintenance-api/internal/domain"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	dateLayout      = "2006-01-02"
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: formatTimestamp(user.CreatedAt),
	}
}

// ToCategoryDTO converts MachineryCategory to CategoryDTO
func ToCategoryDTO(category *domain.MachineryCategory) domain.CategoryDTO {
	dto := domain.CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   formatTimestamp(category.CreatedAt),
		UpdatedAt:   formatTimestamp(category.UpdatedAt),
	}
	for i := range category.Types {
		dto.Types = append(dto.Types, ToMachineryTypeDTO(&category.Types[i]))
	}
	return dto
}

// ToMachineryTypeDTO converts MachineryType to MachineryTypeDTO
func ToMachineryTypeDTO(mt *domain.MachineryType) domain.MachineryTypeDTO {
	dto := domain.MachineryTypeDTO{
		ID:          mt.ID,
		Name:        mt.Name,
		Description: mt.Description,
		CategoryID:  mt.CategoryID,
		CreatedAt:   formatTimestamp(mt.CreatedAt),
		UpdatedAt:   formatTimestamp(mt.UpdatedAt),
	}
	if mt.Category != nil {
		cat := ToCategoryDTO(mt.Category)
		dto.Category = &cat
	}
	for i := range mt.Procedures {
		dto.Procedures = append(dto.Procedures, ToProcedureDTO(&mt.Procedures[i]))
	}
	return dto
}

// ToProcedureDTO converts MaintenanceProcedure to ProcedureDTO
func ToProcedureDTO(proc *domain.MaintenanceProcedure) domain.ProcedureDTO {
	dto := domain.ProcedureDTO{
		ID:              proc.ID,
		Code:            proc.Code,
		Name:            proc.Name,
		Description:     proc.Description,
		Cost:            proc.Cost,
		DurationHours:   proc.DurationHours,
		Manual:          proc.Manual,
		MachineryTypeID: proc.MachineryTypeID,
		CreatedAt:       formatTimestamp(proc.CreatedAt),
		UpdatedAt:       formatTimestamp(proc.UpdatedAt),
	}
	if proc.MachineryType != nil {
		mt := ToMachineryTypeDTO(proc.MachineryType)
		dto.MachineryType = &mt
	}
	return dto
}

// ToCompanyDTO converts Company to CompanyDTO
func ToCompanyDTO(company *domain.Company) domain.CompanyDTO {
	dto := domain.CompanyDTO{
		ID:        company.ID,
		Name:      company.Name,
		TaxID:     company.TaxID,
		Address:   company.Address,
		Phone:     company.Phone,
		Email:     company.Email,
		City:      company.City,
		CreatedAt: formatTimestamp(company.CreatedAt),
		UpdatedAt: formatTimestamp(company.UpdatedAt),
	}
	if company.Representative != nil {
		rep := ToRepresentativeDTO(company.Representative)
		dto.Representative = &rep
	}
	return dto
}

// ToRepresentativeDTO converts Representative to RepresentativeDTO
func ToRepresentativeDTO(rep *domain.Representative) domain.RepresentativeDTO {
	dto := domain.RepresentativeDTO{
		ID:         rep.ID,
		FirstName:  rep.FirstName,
		LastName:   rep.LastName,
		DocumentID: rep.DocumentID,
		Phone:      rep.Phone,
		Email:      rep.Email,
		CompanyID:  rep.CompanyID,
		CreatedAt:  formatTimestamp(rep.CreatedAt),
		UpdatedAt:  formatTimestamp(rep.UpdatedAt),
	}
	if rep.Company != nil {
		company := ToCompanyDTO(rep.Company)
		dto.Company = &company
	}
	return dto
}

// ToEmployeeDTO converts Employee to EmployeeDTO
func ToEmployeeDTO(employee *domain.Employee) domain.EmployeeDTO {
	return domain.EmployeeDTO{
		ID:         employee.ID,
		FirstName:  employee.FirstName,
		LastName:   employee.LastName,
		DocumentID: employee.DocumentID,
		Email:      employee.Email,
		Address:    employee.Address,
		Phone:      employee.Phone,
		Role:       employee.Role,
		CreatedAt:  formatTimestamp(employee.CreatedAt),
		UpdatedAt:  formatTimestamp(employee.UpdatedAt),
	}
}

// ToRequestDTO converts MaintenanceRequest to RequestDTO, folding each
// assignment's employee and status into the empleados list
func ToRequestDTO(req *domain.MaintenanceRequest) domain.RequestDTO {
	dto := domain.RequestDTO{
		ID:          req.ID,
		Code:        req.Code,
		RequestDate: formatDate(req.RequestDate),
		Status:      req.Status,
		Notes:       req.Notes,
		Description: req.Description,
		CompanyID:   req.CompanyID,
		CreatedAt:   formatTimestamp(req.CreatedAt),
		UpdatedAt:   formatTimestamp(req.UpdatedAt),
	}
	if req.DesiredBy != nil {
		d := formatDate(*req.DesiredBy)
		dto.DesiredBy = &d
	}
	if req.Company != nil {
		company := ToCompanyDTO(req.Company)
		dto.Company = &company
	}
	for i := range req.Items {
		dto.Items = append(dto.Items, ToRequestItemDTO(&req.Items[i]))
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
	return dto
}

// ToRequestItemDTO converts RequestItem to RequestItemDTO
func ToRequestItemDTO(item *domain.RequestItem) domain.RequestItemDTO {
	dto := domain.RequestItemDTO{
		ID:          item.ID,
		RequestID:   item.RequestID,
		ProcedureID: item.ProcedureID,
		Quantity:    item.Quantity,
		TotalCost:   item.TotalCost,
		PhotoPath:   item.PhotoPath,
		CreatedAt:   formatTimestamp(item.CreatedAt),
		UpdatedAt:   formatTimestamp(item.UpdatedAt),
	}
	if item.Procedure != nil {
		proc := ToProcedureDTO(item.Procedure)
		dto.Procedure = &proc
	}
	return dto
}

// ToAssignmentDTO converts RequestAssignment to AssignmentDTO
func ToAssignmentDTO(assignment *domain.RequestAssignment) domain.AssignmentDTO {
	dto := domain.AssignmentDTO{
		ID:         assignment.ID,
		RequestID:  assignment.RequestID,
		EmployeeID: assignment.EmployeeID,
		Status:     assignment.Status,
		CreatedAt:  formatTimestamp(assignment.CreatedAt),
		UpdatedAt:  formatTimestamp(assignment.UpdatedAt),
	}
	if assignment.Employee != nil {
		emp := ToEmployeeDTO(assignment.Employee)
		dto.Employee = &emp
	}
	if assignment.Request != nil {
		req := ToRequestDTO(assignment.Request)
		dto.Request = &req
	}
	return dto
}
