package domain

// ==================== EMPLOYEE ====================

// Employee is the record owned by the employee backend.
type Employee struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	JobTitle     string `json:"job_title"`
	StartDate    string `json:"start_date"`
	ContractType string `json:"contract_type"`
	Status       string `json:"status"`
	Age          int    `json:"age"`
}

// EmployeeCreate is the creation payload; every field is required.
type EmployeeCreate struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	JobTitle     string `json:"job_title"`
	StartDate    string `json:"start_date"`
	ContractType string `json:"contract_type"`
	Age          int    `json:"age"`
}

// EmployeeUpdate is a partial payload. Nil fields are not sent.
type EmployeeUpdate struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Department   *string `json:"department,omitempty"`
	JobTitle     *string `json:"job_title,omitempty"`
	ContractType *string `json:"contract_type,omitempty"`
	Status       *string `json:"status,omitempty"`
	Age          *int    `json:"age,omitempty"`
}

// ==================== ATTENDANCE ====================

// Attendance is one employee-day. Check-in/out times stay empty until the
// corresponding action has happened.
type Attendance struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employee_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       string  `json:"status"`
}

type CheckInRequest struct {
	EmployeeID int `json:"employee_id"`
}

type CheckOutRequest struct {
	EmployeeID int `json:"employee_id"`
}

// MonthlySummary is the aggregate attendance view for employee+month.
type MonthlySummary struct {
	EmployeeID      int          `json:"employee_id"`
	Month           string       `json:"month"`
	TotalDaysWorked int          `json:"total_days_worked"`
	TotalPresent    int          `json:"total_present"`
	TotalAbsent     int          `json:"total_absent"`
	TotalLate       int          `json:"total_late"`
	WorkingHours    float64      `json:"working_hours"`
	Records         []Attendance `json:"records"`
}

// ==================== LEAVE ====================

const (
	LeaveStatusPending  = "PENDING"
	LeaveStatusApproved = "APPROVED"
	LeaveStatusRejected = "REJECTED"
)

type Leave struct {
	ID              int     `json:"id"`
	EmployeeID      int     `json:"employee_id"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *int    `json:"approved_by,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type LeaveCreate struct {
	EmployeeID int    `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

// LeaveStatusUpdate drives the PENDING -> APPROVED/REJECTED transition.
type LeaveStatusUpdate struct {
	Status          string  `json:"status"`
	ApprovedBy      *int    `json:"approved_by,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// LeaveFilter narrows GET /leaves/. An empty Status is not sent.
type LeaveFilter struct {
	Offset int
	Limit  int
	Status string
}

// ==================== USER ====================

const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID         int     `json:"id"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	EmployeeID *int    `json:"employee_id,omitempty"`
	LastLogin  *string `json:"last_login,omitempty"`
}

// UserListResponse is the user backend envelope; items live under "users".
type UserListResponse struct {
	Total int    `json:"total"`
	Users []User `json:"users"`
}

type UserRoleUpdate struct {
	Role string `json:"role"`
}

type UserSuspend struct {
	Reason string `json:"reason"`
}

// UserDelete is sent as the body of DELETE /users/{id}.
type UserDelete struct {
	Reason string `json:"reason,omitempty"`
}

type UserFilter struct {
	Offset int
	Limit  int
	Role   string
	Status string
}

// ==================== AUDIT ====================

const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
	AuditActionLogout = "LOGOUT"
)

type AuditLog struct {
	ID           int     `json:"id"`
	UserID       int     `json:"user_id"`
	Action       string  `json:"action"`
	ResourceType string  `json:"resource_type"`
	ResourceID   string  `json:"resource_id"`
	Description  string  `json:"description"`
	OldValue     *string `json:"old_value,omitempty"`
	NewValue     *string `json:"new_value,omitempty"`
	CreatedAt    string  `json:"created_at"`
	IPAddress    *string `json:"ip_address,omitempty"`
}

// AuditLogListResponse is the audit backend envelope; items live under "logs".
type AuditLogListResponse struct {
	Total int        `json:"total"`
	Logs  []AuditLog `json:"logs"`
}

type AuditFilter struct {
	Offset       int
	Limit        int
	Action       string
	ResourceType string
}

// ==================== NOTIFICATION ====================

const (
	NotificationStatusPending = "PENDING"
	NotificationStatusSent    = "SENT"
	NotificationStatusFailed  = "FAILED"
)

type Notification struct {
	ID             int     `json:"id"`
	EmployeeID     int     `json:"employee_id"`
	RecipientEmail string  `json:"recipient_email"`
	RecipientName  string  `json:"recipient_name"`
	Subject        string  `json:"subject"`
	Body           string  `json:"body"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	SentAt         *string `json:"sent_at,omitempty"`
	ErrorMessage   *string `json:"error_message,omitempty"`
}

// NotificationListResponse is the notification backend envelope; items live
// under "items".
type NotificationListResponse struct {
	Total int            `json:"total"`
	Items []Notification `json:"items"`
}

type NotificationFilter struct {
	Offset int
	Limit  int
	Status string
}

// ==================== OVERVIEW ====================

// EmployeeOverview combines what several backends know about one employee.
// Failures holds per-section errors for sections that could not be loaded.
type EmployeeOverview struct {
	Employee      *Employee                 `json:"employee"`
	Today         *Attendance               `json:"today,omitempty"`
	Summary       *MonthlySummary           `json:"summary,omitempty"`
	Leaves        []Leave                   `json:"leaves,omitempty"`
	Notifications *NotificationListResponse `json:"notifications,omitempty"`
	Failures      map[string]string         `json:"failures,omitempty"`
}
