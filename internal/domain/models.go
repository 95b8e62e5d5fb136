package domain

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// MachineryCategory is the top level of the two-level equipment classification
type MachineryCategory struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Types       []MachineryType `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name
func (MachineryCategory) TableName() string {
	return "categorias_maquinaria"
}

// MachineryType is a concrete kind of equipment within a category
type MachineryType struct {
	BaseModel
	Name        string                 `gorm:"type:varchar(200);not null;index"`
	Description string                 `gorm:"type:text"`
	CategoryID  uint                   `gorm:"not null;index;column:category_id"`
	Category    *MachineryCategory     `gorm:"foreignKey:CategoryID"`
	Procedures  []MaintenanceProcedure `gorm:"foreignKey:MachineryTypeID;constraint:OnDelete:CASCADE"`
}

func (MachineryType) TableName() string {
	return "tipos_maquinaria"
}

// MaintenanceProcedure is a named maintenance task with a cost, scoped to one
// machinery type. The same code may repeat across types but never within one:
// (code, machinery_type_id) carries a composite unique index, mirrored by the
// migration so concurrent writers cannot race past the service-level check.
type MaintenanceProcedure struct {
	BaseModel
	Code            string         `gorm:"type:varchar(50);not null;uniqueIndex:ux_mantenimientos_code_type"`
	Name            string         `gorm:"type:varchar(200);not null"`
	Description     string         `gorm:"type:text"`
	Cost            float64        `gorm:"type:decimal(15,2);not null"`
	DurationHours   *int           `gorm:"column:duration_hours"`
	Manual          string         `gorm:"type:text"`
	MachineryTypeID uint           `gorm:"not null;uniqueIndex:ux_mantenimientos_code_type;column:machinery_type_id"`
	MachineryType   *MachineryType `gorm:"foreignKey:MachineryTypeID"`
}

func (MaintenanceProcedure) TableName() string {
	return "mantenimientos"
}

// Company represents a customer company submitting maintenance requests
type Company struct {
	BaseModel
	Name           string               `gorm:"type:varchar(200);not null;index"`
	TaxID          string               `gorm:"type:varchar(30);not null;unique;column:tax_id"`
	Address        string               `gorm:"type:varchar(500);not null"`
	Phone          string               `gorm:"type:varchar(50);not null"`
	Email          string               `gorm:"type:varchar(255);not null;unique"`
	City           string               `gorm:"type:varchar(100)"`
	Representative *Representative      `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Requests       []MaintenanceRequest `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

func (Company) TableName() string {
	return "empresas"
}

// Representative is a company's single contact person. The unique index on
// company_id enforces at most one representative per company at the storage
// layer.
type Representative struct {
	BaseModel
	FirstName  string   `gorm:"type:varchar(100);not null;column:first_name"`
	LastName   string   `gorm:"type:varchar(100);not null;column:last_name"`
	DocumentID string   `gorm:"type:varchar(30);not null;unique;column:document_id"`
	Phone      string   `gorm:"type:varchar(50);not null"`
	Email      string   `gorm:"type:varchar(255);not null;unique"`
	CompanyID  uint     `gorm:"not null;uniqueIndex;column:company_id"`
	Company    *Company `gorm:"foreignKey:CompanyID"`
}

func (Representative) TableName() string {
	return "representantes"
}

// FullName returns the representative's full name
func (r *Representative) FullName() string {
	return r.FirstName + " " + r.LastName
}

// Role is the closed set of roles shared by employees and API users
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
)

// IsValid checks if the Role is a valid enum value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleSupervisor:
		return true
	}
	return false
}

// Employee fulfills maintenance requests through assignments
type Employee struct {
	BaseModel
	FirstName   string              `gorm:"type:varchar(100);not null;column:first_name"`
	LastName    string              `gorm:"type:varchar(100);not null;index;column:last_name"`
	DocumentID  string              `gorm:"type:varchar(30);not null;unique;column:document_id"`
	Email       string              `gorm:"type:varchar(255);not null;unique"`
	Address     string              `gorm:"type:varchar(500);not null"`
	Phone       string              `gorm:"type:varchar(50);not null"`
	Role        *Role               `gorm:"type:varchar(50)"`
	Assignments []RequestAssignment `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (Employee) TableName() string {
	return "empleados"
}

// FullName returns the employee's full name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// RequestStatus represents the lifecycle status of a maintenance request
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// IsValid checks if the RequestStatus is a valid enum value
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// MaintenanceRequest (solicitud) is a company's submission asking for one or
// more maintenance procedures to be performed
type MaintenanceRequest struct {
	BaseModel
	Code        string              `gorm:"type:varchar(50);not null;unique"`
	RequestDate time.Time           `gorm:"type:date;not null;column:request_date"`
	Status      RequestStatus       `gorm:"type:varchar(50);not null;default:'pending';index"`
	Notes       string              `gorm:"type:text"`
	Description string              `gorm:"type:text"`
	DesiredBy   *time.Time          `gorm:"type:date;column:desired_by"`
	CompanyID   uint                `gorm:"not null;index;column:company_id"`
	Company     *Company            `gorm:"foreignKey:CompanyID"`
	Items       []RequestItem       `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Assignments []RequestAssignment `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (MaintenanceRequest) TableName() string {
	return "solicitudes"
}

// RequestItem (detalle de solicitud) is one procedure-for-N-machines entry
// within a request. TotalCost is derived: procedure cost times quantity,
// recomputed whenever quantity or the procedure reference changes. PhotoPath
// is the blob-store locator of the uploaded machine photo; the blob is owned
// by the item and removed when the item is deleted.
type RequestItem struct {
	BaseModel
	RequestID   uint                  `gorm:"not null;index;column:request_id"`
	Request     *MaintenanceRequest   `gorm:"foreignKey:RequestID"`
	ProcedureID uint                  `gorm:"not null;index;column:procedure_id"`
	Procedure   *MaintenanceProcedure `gorm:"foreignKey:ProcedureID;constraint:OnDelete:CASCADE"`
	Quantity    int                   `gorm:"not null"`
	TotalCost   float64               `gorm:"type:decimal(15,2);not null;column:total_cost"`
	PhotoPath   string                `gorm:"type:varchar(500);not null;column:photo_path"`
}

func (RequestItem) TableName() string {
	return "detalle_solicitudes"
}

// AssignmentStatus represents the progress of an employee on a request
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "assigned"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
)

// IsValid checks if the AssignmentStatus is a valid enum value
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusAssigned, AssignmentStatusInProgress, AssignmentStatusCompleted:
		return true
	}
	return false
}

// RequestAssignment links an employee to a request with its own progress
// status. A given (request, employee) pair may appear at most once; the
// composite unique index is the storage backstop for duplicate assignments.
type RequestAssignment struct {
	BaseModel
	RequestID  uint                `gorm:"not null;uniqueIndex:ux_solicitud_empleado;column:request_id"`
	Request    *MaintenanceRequest `gorm:"foreignKey:RequestID"`
	EmployeeID uint                `gorm:"not null;uniqueIndex:ux_solicitud_empleado;column:employee_id"`
	Employee   *Employee           `gorm:"foreignKey:EmployeeID"`
	Status     AssignmentStatus    `gorm:"type:varchar(50);not null;default:'assigned'"`
}

func (RequestAssignment) TableName() string {
	return "solicitud_empleado"
}

// User is an API account able to authenticate against the service
type User struct {
	BaseModel
	Name         string        `gorm:"type:varchar(200);not null"`
	Email        string        `gorm:"type:varchar(255);not null;unique"`
	PasswordHash string        `gorm:"type:varchar(255);not null;column:password_hash"`
	Role         Role          `gorm:"type:varchar(50);not null;default:'employee'"`
	Tokens       []AccessToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// AccessToken is the persisted record backing an issued bearer token. The
// token's jti claim maps to TokenID; logout revokes the row, which invalidates
// the token even before its expiry.
type AccessToken struct {
	BaseModel
	TokenID   string     `gorm:"type:varchar(100);not null;unique;column:token_id"`
	UserID    uint       `gorm:"not null;index;column:user_id"`
	User      *User      `gorm:"foreignKey:UserID"`
	ExpiresAt time.Time  `gorm:"not null;column:expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}

// Active reports whether the token can still authenticate requests
func (t *AccessToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
