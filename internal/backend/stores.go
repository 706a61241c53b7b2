package backend

import (
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
	"ems/internal/domain/salary"
)

var (
	_ employee.StoreAPI    = (*Client)(nil)
	_ salary.StoreAPI      = (*Client)(nil)
	_ payroll.StoreAPI     = (*Client)(nil)
	_ leave.StoreAPI       = (*Client)(nil)
	_ performance.StoreAPI = (*Client)(nil)
)
