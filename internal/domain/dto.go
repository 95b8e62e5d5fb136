package domain

// APIResponse is the uniform JSON envelope shared by success and error
// responses: {status, message?, data?, errors?}.
type APIResponse struct {
	Status  bool                `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin employee supervisor"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	User      UserDTO `json:"user"`
	Token     string  `json:"token"`
	TokenType string  `json:"token_type"`
}

// ---------------------------------------------------------------------------
// Machinery categories and types
// ---------------------------------------------------------------------------

type CreateCategoryInput struct {
	Name        string `json:"nombre" validate:"required,max=200"`
	Description string `json:"descripcion" validate:"max=2000"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description *string `json:"descripcion" validate:"omitempty,max=2000"`
}

type CreateMachineryTypeInput struct {
	Name        string `json:"nombre" validate:"required,max=200"`
	Description string `json:"descripcion" validate:"max=2000"`
	CategoryID  uint   `json:"categoriaId" validate:"required"`
}

type UpdateMachineryTypeInput struct {
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description *string `json:"descripcion" validate:"omitempty,max=2000"`
	CategoryID  *uint   `json:"categoriaId" validate:"omitempty,gt=0"`
}

type CategoryDTO struct {
	ID          uint               `json:"id"`
	Name        string             `json:"nombre"`
	Description string             `json:"descripcion,omitempty"`
	Types       []MachineryTypeDTO `json:"tiposMaquinaria,omitempty"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
}

type MachineryTypeDTO struct {
	ID          uint           `json:"id"`
	Name        string         `json:"nombre"`
	Description string         `json:"descripcion,omitempty"`
	CategoryID  uint           `json:"categoriaId"`
	Category    *CategoryDTO   `json:"categoria,omitempty"`
	Procedures  []ProcedureDTO `json:"mantenimientos,omitempty"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

// ---------------------------------------------------------------------------
// Maintenance procedures
// ---------------------------------------------------------------------------

type CreateProcedureInput struct {
	Code            string   `json:"codigo" validate:"required,max=50"`
	Name            string   `json:"nombre" validate:"required,max=200"`
	Description     string   `json:"descripcion" validate:"required,max=2000"`
	Cost            *float64 `json:"costo" validate:"required,gte=0"`
	DurationHours   *int     `json:"duracionEstimada" validate:"omitempty,gt=0"`
	Manual          string   `json:"manual" validate:"max=10000"`
	MachineryTypeID uint     `json:"tipoMaquinariaId" validate:"required"`
}

type UpdateProcedureInput struct {
	Code            *string  `json:"codigo" validate:"omitempty,min=1,max=50"`
	Name            *string  `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"descripcion" validate:"omitempty,min=1,max=2000"`
	Cost            *float64 `json:"costo" validate:"omitempty,gte=0"`
	DurationHours   *int     `json:"duracionEstimada" validate:"omitempty,gt=0"`
	Manual          *string  `json:"manual" validate:"omitempty,max=10000"`
	MachineryTypeID *uint    `json:"tipoMaquinariaId" validate:"omitempty,gt=0"`
}

type ProcedureDTO struct {
	ID              uint              `json:"id"`
	Code            string            `json:"codigo"`
	Name            string            `json:"nombre"`
	Description     string            `json:"descripcion"`
	Cost            float64           `json:"costo"`
	DurationHours   *int              `json:"duracionEstimada,omitempty"`
	Manual          string            `json:"manual,omitempty"`
	MachineryTypeID uint              `json:"tipoMaquinariaId"`
	MachineryType   *MachineryTypeDTO `json:"tipoMaquinaria,omitempty"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
}

// ---------------------------------------------------------------------------
// Companies and representatives
// ---------------------------------------------------------------------------

type CreateCompanyInput struct {
	Name    string `json:"nombre" validate:"required,max=200"`
	TaxID   string `json:"nit" validate:"required,max=30"`
	Address string `json:"direccion" validate:"required,max=500"`
	Phone   string `json:"telefono" validate:"required,max=50"`
	Email   string `json:"correo" validate:"required,email,max=255"`
	City    string `json:"ciudad" validate:"max=100"`
}

type UpdateCompanyInput struct {
	Name    *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	TaxID   *string `json:"nit" validate:"omitempty,min=1,max=30"`
	Address *string `json:"direccion" validate:"omitempty,min=1,max=500"`
	Phone   *string `json:"telefono" validate:"omitempty,min=1,max=50"`
	Email   *string `json:"correo" validate:"omitempty,email,max=255"`
	City    *string `json:"ciudad" validate:"omitempty,max=100"`
}

type CompanyDTO struct {
	ID             uint               `json:"id"`
	Name           string             `json:"nombre"`
	TaxID          string             `json:"nit"`
	Address        string             `json:"direccion"`
	Phone          string             `json:"telefono"`
	Email          string             `json:"correo"`
	City           string             `json:"ciudad,omitempty"`
	Representative *RepresentativeDTO `json:"representante,omitempty"`
	CreatedAt      string             `json:"createdAt"`
	UpdatedAt      string             `json:"updatedAt"`
}

type CreateRepresentativeInput struct {
	FirstName  string `json:"nombre" validate:"required,max=100"`
	LastName   string `json:"apellido" validate:"required,max=100"`
	DocumentID string `json:"documento" validate:"required,max=30"`
	Phone      string `json:"telefono" validate:"required,max=50"`
	Email      string `json:"correo" validate:"required,email,max=255"`
	CompanyID  uint   `json:"empresaId" validate:"required"`
}

type UpdateRepresentativeInput struct {
	FirstName  *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"apellido" validate:"omitempty,min=1,max=100"`
	DocumentID *string `json:"documento" validate:"omitempty,min=1,max=30"`
	Phone      *string `json:"telefono" validate:"omitempty,min=1,max=50"`
	Email      *string `json:"correo" validate:"omitempty,email,max=255"`
	CompanyID  *uint   `json:"empresaId" validate:"omitempty,gt=0"`
}

type RepresentativeDTO struct {
	ID         uint        `json:"id"`
	FirstName  string      `json:"nombre"`
	LastName   string      `json:"apellido"`
	DocumentID string      `json:"documento"`
	Phone      string      `json:"telefono"`
	Email      string      `json:"correo"`
	CompanyID  uint        `json:"empresaId"`
	Company    *CompanyDTO `json:"empresa,omitempty"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
}

// ---------------------------------------------------------------------------
// Employees
// ---------------------------------------------------------------------------

type CreateEmployeeInput struct {
	FirstName  string  `json:"nombre" validate:"required,max=100"`
	LastName   string  `json:"apellido" validate:"required,max=100"`
	DocumentID string  `json:"documento" validate:"required,max=30"`
	Email      string  `json:"correo" validate:"required,email,max=255"`
	Address    string  `json:"direccion" validate:"required,max=500"`
	Phone      string  `json:"telefono" validate:"required,max=50"`
	Role       *string `json:"rol" validate:"omitempty,oneof=admin employee supervisor"`
}

type UpdateEmployeeInput struct {
	FirstName  *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"apellido" validate:"omitempty,min=1,max=100"`
	DocumentID *string `json:"documento" validate:"omitempty,min=1,max=30"`
	Email      *string `json:"correo" validate:"omitempty,email,max=255"`
	Address    *string `json:"direccion" validate:"omitempty,min=1,max=500"`
	Phone      *string `json:"telefono" validate:"omitempty,min=1,max=50"`
	Role       *string `json:"rol" validate:"omitempty,oneof=admin employee supervisor"`
}

type EmployeeDTO struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"nombre"`
	LastName   string `json:"apellido"`
	DocumentID string `json:"documento"`
	Email      string `json:"correo"`
	Address    string `json:"direccion"`
	Phone      string `json:"telefono"`
	Role       *Role  `json:"rol,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// ---------------------------------------------------------------------------
// Requests, line-items, assignments
// ---------------------------------------------------------------------------

type CreateRequestInput struct {
	Code        string  `json:"codigo" validate:"required,max=50"`
	RequestDate string  `json:"fechaSolicitud" validate:"required,datetime=2006-01-02"`
	Status      *string `json:"estado" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Notes       string  `json:"observaciones" validate:"max=2000"`
	Description string  `json:"descripcion" validate:"max=2000"`
	DesiredBy   *string `json:"fechaDeseada" validate:"omitempty,datetime=2006-01-02"`
	CompanyID   uint    `json:"empresaId" validate:"required"`
}

type UpdateRequestInput struct {
	Code        *string `json:"codigo" validate:"omitempty,min=1,max=50"`
	RequestDate *string `json:"fechaSolicitud" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"estado" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Notes       *string `json:"observaciones" validate:"omitempty,max=2000"`
	Description *string `json:"descripcion" validate:"omitempty,max=2000"`
	DesiredBy   *string `json:"fechaDeseada" validate:"omitempty,datetime=2006-01-02"`
	CompanyID   *uint   `json:"empresaId" validate:"omitempty,gt=0"`
}

type RequestDTO struct {
	ID          uint                  `json:"id"`
	Code        string                `json:"codigo"`
	RequestDate string                `json:"fechaSolicitud"`
	Status      RequestStatus         `json:"estado"`
	Notes       string                `json:"observaciones,omitempty"`
	Description string                `json:"descripcion,omitempty"`
	DesiredBy   *string               `json:"fechaDeseada,omitempty"`
	CompanyID   uint                  `json:"empresaId"`
	Company     *CompanyDTO           `json:"empresa,omitempty"`
	Items       []RequestItemDTO      `json:"detalles,omitempty"`
	Employees   []AssignedEmployeeDTO `json:"empleados,omitempty"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   string                `json:"updatedAt"`
}

// CreateRequestItemInput arrives as a multipart form: the handler stores the
// uploaded photo first and fills PhotoPath with the blob locator.
type CreateRequestItemInput struct {
	RequestID   uint   `json:"solicitudId" validate:"required"`
	ProcedureID uint   `json:"mantenimientoId" validate:"required"`
	Quantity    int    `json:"cantidadMaquinas" validate:"required,gte=1"`
	PhotoPath   string `json:"foto" validate:"required"`
}

type UpdateRequestItemInput struct {
	ProcedureID *uint   `json:"mantenimientoId" validate:"omitempty,gt=0"`
	Quantity    *int    `json:"cantidadMaquinas" validate:"omitempty,gte=1"`
	PhotoPath   *string `json:"foto" validate:"omitempty,min=1"`
}

type RequestItemDTO struct {
	ID          uint          `json:"id"`
	RequestID   uint          `json:"solicitudId"`
	ProcedureID uint          `json:"mantenimientoId"`
	Procedure   *ProcedureDTO `json:"mantenimiento,omitempty"`
	Quantity    int           `json:"cantidadMaquinas"`
	TotalCost   float64       `json:"costoTotal"`
	PhotoPath   string        `json:"foto"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

type CreateAssignmentInput struct {
	RequestID  uint    `json:"solicitudId" validate:"required"`
	EmployeeID uint    `json:"empleadoId" validate:"required"`
	Status     *string `json:"estado" validate:"omitempty,oneof=assigned in_progress completed"`
}

type UpdateAssignmentInput struct {
	Status *string `json:"estado" validate:"omitempty,oneof=assigned in_progress completed"`
}

type AssignmentDTO struct {
	ID         uint             `json:"id"`
	RequestID  uint             `json:"solicitudId"`
	EmployeeID uint             `json:"empleadoId"`
	Employee   *EmployeeDTO     `json:"empleado,omitempty"`
	Request    *RequestDTO      `json:"solicitud,omitempty"`
	Status     AssignmentStatus `json:"estado"`
	CreatedAt  string           `json:"createdAt"`
	UpdatedAt  string           `json:"updatedAt"`
}

// AssignedEmployeeDTO is an employee as shown inside a request, carrying the
// assignment's own status alongside the employee fields
type AssignedEmployeeDTO struct {
	ID         uint             `json:"id"`
	FirstName  string           `json:"nombre"`
	LastName   string           `json:"apellido"`
	DocumentID string           `json:"documento"`
	Status     AssignmentStatus `json:"estado"`
}

// ---------------------------------------------------------------------------
// Reporting (consultas)
// ---------------------------------------------------------------------------

// EmployeeReportRow projects the fixed field subset of consulta 1
type EmployeeReportRow struct {
	FirstName  string `json:"nombre"`
	LastName   string `json:"apellido"`
	DocumentID string `json:"documento"`
	Email      string `json:"correo"`
}

// ExpensiveProcedureRow is one row of consulta 2 (heavy-category procedures
// above the cost threshold)
type ExpensiveProcedureRow struct {
	Code          string  `json:"codigo"`
	Name          string  `json:"nombre"`
	Cost          float64 `json:"costo"`
	MachineryType string  `json:"tipoMaquinaria"`
	Category      string  `json:"categoria"`
}

// TopCompanyRow is the result of consulta 3 (company with most requests)
type TopCompanyRow struct {
	ID            uint   `json:"id"`
	Name          string `json:"nombre"`
	TaxID         string `json:"nit"`
	Email         string `json:"correo"`
	TotalRequests int    `json:"totalSolicitudes"`
}

// ArgosMachinesResult is the result of consulta 4
type ArgosMachinesResult struct {
	ArgosMachines int `json:"maquinasArgos"`
}

// RepresentativeCompanyRow is one row of consulta 6 (representatives of
// companies without requests)
type RepresentativeCompanyRow struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo"`
	Company   string `json:"empresa"`
	TaxID     string `json:"nit"`
}

// RequestItemFlatRow is one row of consulta 7
type RequestItemFlatRow struct {
	Company     string  `json:"empresa"`
	RequestCode string  `json:"codigoSolicitud"`
	Quantity    int     `json:"cantidadMaquinas"`
	TotalCost   float64 `json:"costoTotal"`
}

// RequestByCodeInput is the body of consulta 8
type RequestByCodeInput struct {
	Code string `json:"codigo" validate:"required,max=50"`
}

// RequestByCodeDTO is the partial-field aggregate returned by consulta 8
type RequestByCodeDTO struct {
	Code        string                `json:"codigo"`
	RequestDate string                `json:"fechaSolicitud"`
	Status      RequestStatus         `json:"estado"`
	Company     RequestByCodeCompany  `json:"empresa"`
	Items       []RequestByCodeItem   `json:"detalles"`
	Employees   []AssignedEmployeeDTO `json:"empleados"`
}

type RequestByCodeCompany struct {
	Name  string `json:"nombre"`
	TaxID string `json:"nit"`
}

type RequestByCodeItem struct {
	Quantity  int                    `json:"cantidadMaquinas"`
	TotalCost float64                `json:"costoTotal"`
	Procedure RequestByCodeProcedure `json:"mantenimiento"`
}

type RequestByCodeProcedure struct {
	Code          string  `json:"codigo"`
	Name          string  `json:"nombre"`
	Cost          float64 `json:"costo"`
	MachineryType string  `json:"tipoMaquinaria"`
}

// BackhoeItemsResult is the result of consulta 9
type BackhoeItemsResult struct {
	TotalItems int `json:"totalDetalles"`
}

// OctoberRequestRow is one row of consulta 10
type OctoberRequestRow struct {
	Company       string `json:"empresa"`
	RequestCode   string `json:"codigoSolicitud"`
	RequestDate   string `json:"fechaSolicitud"`
	MachineryType string `json:"tipoMaquinaria"`
	Procedure     string `json:"mantenimiento"`
	Quantity      int    `json:"cantidadMaquinas"`
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

// DashboardTotals holds the per-entity record counts
type DashboardTotals struct {
	Companies       int64 `json:"empresas"`
	Representatives int64 `json:"representantes"`
	Categories      int64 `json:"categorias"`
	MachineryTypes  int64 `json:"tiposMaquinaria"`
	Procedures      int64 `json:"mantenimientos"`
	Requests        int64 `json:"solicitudes"`
	RequestItems    int64 `json:"detalles"`
	Employees       int64 `json:"empleados"`
	Assignments     int64 `json:"asignaciones"`
}

// RequestStatusCount is one bucket of the requests-by-status aggregate
type RequestStatusCount struct {
	Status RequestStatus `json:"estado"`
	Total  int64         `json:"total"`
}

// CompanyRequestCount is one row of the top-companies-by-requests aggregate
type CompanyRequestCount struct {
	ID            uint   `json:"id"`
	Name          string `json:"nombre"`
	TotalRequests int64  `json:"totalSolicitudes"`
}
