package leave

import "time"

type Request struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName,omitempty"`
	Type         string     `json:"type"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Days         int        `json:"days"`
	Reason       string     `json:"reason"`
	Attachment   string     `json:"attachment,omitempty"`
	Status       string     `json:"status"`
	Remarks      string     `json:"remarks,omitempty"`
	DecidedBy    string     `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	SubmittedAt  time.Time  `json:"submittedAt"`
}

// NewRequest is what an employee submits.
type NewRequest struct {
	Type       string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Attachment string
}

type Balance struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Taken     int    `json:"taken"`
	Remaining int    `json:"remaining"`
}

type Stats struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}

// Filter narrows ListLeaves. Zero values match everything.
type Filter struct {
	EmployeeIDs []string
	Status      string
}

type StatusChanged struct {
	RequestID  string `json:"requestId"`
	EmployeeID string `json:"employeeId"`
	From       string `json:"from"`
	To         string `json:"to"`
	ActorID    string `json:"actorId"`
}
