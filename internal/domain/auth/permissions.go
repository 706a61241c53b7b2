package auth

const (
	RoleAdmin    = "Admin"
	RoleHR       = "HR"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

const (
	PermEmployeesRead     = "employees.read"
	PermEmployeesWrite    = "employees.write"
	PermTeamRead          = "employees.team"
	PermSalaryRead        = "salary.read"
	PermSalaryWrite       = "salary.write"
	PermPayrollRun        = "payroll.run"
	PermPayrollRead       = "payroll.read"
	PermPayrollReadAll    = "payroll.read_all"
	PermLeaveApply        = "leave.apply"
	PermLeaveApprove      = "leave.approve"
	PermLeaveReadAll      = "leave.read_all"
	PermReviewsStartCycle = "reviews.start_cycle"
	PermReviewsSubmit     = "reviews.submit"
	PermReviewsRead       = "reviews.read"
	PermReviewsReadAll    = "reviews.read_all"
	PermDashboardRead     = "dashboard.read"
	PermAuditRead         = "audit.read"
)

var Roles = []string{RoleAdmin, RoleHR, RoleManager, RoleEmployee}

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermTeamRead,
	PermSalaryRead,
	PermSalaryWrite,
	PermPayrollRun,
	PermPayrollRead,
	PermPayrollReadAll,
	PermLeaveApply,
	PermLeaveApprove,
	PermLeaveReadAll,
	PermReviewsStartCycle,
	PermReviewsSubmit,
	PermReviewsRead,
	PermReviewsReadAll,
	PermDashboardRead,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermPayrollRead,
		PermLeaveApply,
		PermReviewsRead,
		PermDashboardRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermTeamRead,
		PermSalaryRead,
		PermSalaryWrite,
		PermPayrollRead,
		PermLeaveApply,
		PermLeaveApprove,
		PermReviewsSubmit,
		PermReviewsRead,
		PermDashboardRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermTeamRead,
		PermSalaryRead,
		PermSalaryWrite,
		PermPayrollRun,
		PermPayrollRead,
		PermPayrollReadAll,
		PermLeaveApply,
		PermLeaveApprove,
		PermLeaveReadAll,
		PermReviewsStartCycle,
		PermReviewsSubmit,
		PermReviewsRead,
		PermReviewsReadAll,
		PermDashboardRead,
	},
	RoleAdmin: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermTeamRead,
		PermSalaryRead,
		PermSalaryWrite,
		PermPayrollRun,
		PermPayrollRead,
		PermPayrollReadAll,
		PermLeaveApply,
		PermLeaveApprove,
		PermLeaveReadAll,
		PermReviewsStartCycle,
		PermReviewsSubmit,
		PermReviewsRead,
		PermReviewsReadAll,
		PermDashboardRead,
		PermAuditRead,
	},
}

// HasPermission reports whether role grants permission.
func HasPermission(role, permission string) bool {
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
