package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixtureSeq atomic.Int64

// nextSeq returns a process-unique number for generating distinct documents,
// emails and codes across fixtures.
func nextSeq() int64 {
	return fixtureSeq.Add(1)
}

// CreateCategory inserts a machinery category
func CreateCategory(t *testing.T, db *gorm.DB, name string) *domain.MachineryCategory {
	t.Helper()
	category := &domain.MachineryCategory{
		Name:        name,
		Description: "categoría de prueba",
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateMachineryType inserts a machinery type under the given category
func CreateMachineryType(t *testing.T, db *gorm.DB, name string, categoryID uint) *domain.MachineryType {
	t.Helper()
	mt := &domain.MachineryType{
		Name:       name,
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(mt).Error)
	return mt
}

// CreateProcedure inserts a maintenance procedure for the given machinery type
func CreateProcedure(t *testing.T, db *gorm.DB, code string, cost float64, typeID uint) *domain.MaintenanceProcedure {
	t.Helper()
	proc := &domain.MaintenanceProcedure{
		Code:            code,
		Name:            "Mantenimiento " + code,
		Cost:            cost,
		MachineryTypeID: typeID,
	}
	require.NoError(t, db.Create(proc).Error)
	return proc
}

// CreateCompany inserts a company with unique NIT and email
func CreateCompany(t *testing.T, db *gorm.DB, name string) *domain.Company {
	t.Helper()
	n := nextSeq()
	company := &domain.Company{
		Name:    name,
		TaxID:   fmt.Sprintf("900%06d", n),
		Address: "Calle 1 # 2-3",
		Phone:   "6015551234",
		Email:   fmt.Sprintf("empresa%d@example.com", n),
		City:    "Bogotá",
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

// CreateRepresentative inserts a representative for the given company
func CreateRepresentative(t *testing.T, db *gorm.DB, companyID uint) *domain.Representative {
	t.Helper()
	n := nextSeq()
	rep := &domain.Representative{
		FirstName:  "Ana",
		LastName:   "García",
		DocumentID: fmt.Sprintf("10%07d", n),
		Phone:      "3001234567",
		Email:      fmt.Sprintf("rep%d@example.com", n),
		CompanyID:  companyID,
	}
	require.NoError(t, db.Create(rep).Error)
	return rep
}

// CreateEmployee inserts an employee with unique document and email
func CreateEmployee(t *testing.T, db *gorm.DB, firstName, lastName string) *domain.Employee {
	t.Helper()
	n := nextSeq()
	employee := &domain.Employee{
		FirstName:  firstName,
		LastName:   lastName,
		DocumentID: fmt.Sprintf("20%07d", n),
		Email:      fmt.Sprintf("empleado%d@example.com", n),
		Address:    "Carrera 4 # 5-6",
		Phone:      "3012345678",
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

// CreateEmployeeWithDocument inserts an employee with a fixed document id
func CreateEmployeeWithDocument(t *testing.T, db *gorm.DB, documentID string) *domain.Employee {
	t.Helper()
	n := nextSeq()
	employee := &domain.Employee{
		FirstName:  "Luis",
		LastName:   "Pérez",
		DocumentID: documentID,
		Email:      fmt.Sprintf("empleado%d@example.com", n),
		Address:    "Carrera 4 # 5-6",
		Phone:      "3012345678",
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

// CreateRequest inserts a maintenance request for the given company
func CreateRequest(t *testing.T, db *gorm.DB, companyID uint, code string, date time.Time) *domain.MaintenanceRequest {
	t.Helper()
	request := &domain.MaintenanceRequest{
		Code:        code,
		RequestDate: date,
		Status:      domain.RequestStatusPending,
		CompanyID:   companyID,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

// CreateRequestItem inserts a line-item with its derived total cost
func CreateRequestItem(t *testing.T, db *gorm.DB, requestID, procedureID uint, quantity int, totalCost float64) *domain.RequestItem {
	t.Helper()
	item := &domain.RequestItem{
		RequestID:   requestID,
		ProcedureID: procedureID,
		Quantity:    quantity,
		TotalCost:   totalCost,
		PhotoPath:   fmt.Sprintf("solicitudes/%d/foto%d.jpg", requestID, nextSeq()),
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// CreateAssignment inserts a request-employee assignment
func CreateAssignment(t *testing.T, db *gorm.DB, requestID, employeeID uint) *domain.RequestAssignment {
	t.Helper()
	assignment := &domain.RequestAssignment{
		RequestID:  requestID,
		EmployeeID: employeeID,
		Status:     domain.AssignmentStatusAssigned,
	}
	require.NoError(t, db.Create(assignment).Error)
	return assignment
}

// CreateUser inserts an API user with the given bcrypt hash
func CreateUser(t *testing.T, db *gorm.DB, email, passwordHash string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         "Usuario Prueba",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleEmployee,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
