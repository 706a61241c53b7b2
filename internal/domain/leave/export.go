package leave

import (
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
)

const (
	requestsSheet = "Requests"
	balancesSheet = "Balances"
)

// WriteReport writes requests and the resulting balances per employee as XLSX.
func WriteReport(w io.Writer, requests []Request, entitlements Entitlements) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", requestsSheet); err != nil {
		return err
	}
	header := []interface{}{"Request ID", "Employee ID", "Employee", "Type", "Start", "End", "Days", "Status", "Reason", "Remarks"}
	if err := f.SetSheetRow(requestsSheet, "A1", &header); err != nil {
		return err
	}
	byEmployee := map[string][]Request{}
	names := map[string]string{}
	for i, req := range requests {
		row := []interface{}{
			req.ID, req.EmployeeID, req.EmployeeName, req.Type,
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
			req.Days, req.Status, req.Reason, req.Remarks,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(requestsSheet, cell, &row); err != nil {
			return err
		}
		byEmployee[req.EmployeeID] = append(byEmployee[req.EmployeeID], req)
		if req.EmployeeName != "" {
			names[req.EmployeeID] = req.EmployeeName
		}
	}

	if _, err := f.NewSheet(balancesSheet); err != nil {
		return err
	}
	balanceHeader := []interface{}{"Employee ID", "Employee", "Type", "Total", "Taken", "Remaining"}
	if err := f.SetSheetRow(balancesSheet, "A1", &balanceHeader); err != nil {
		return err
	}
	ids := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rowIdx := 2
	for _, id := range ids {
		for _, b := range Accumulate(byEmployee[id], entitlements) {
			row := []interface{}{id, names[id], b.Type, b.Total, b.Taken, b.Remaining}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(balancesSheet, cell, &row); err != nil {
				return err
			}
			rowIdx++
		}
	}
	return f.Write(w)
}
