package auth

import "testing"

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		allowed[perm] = struct{}{}
	}

	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestDefaultPermissionsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		if _, ok := seen[perm]; ok {
			t.Fatalf("duplicate permission %s", perm)
		}
		seen[perm] = struct{}{}
	}
}

func TestEveryRoleIsKnown(t *testing.T) {
	for _, role := range Roles {
		if !ValidRole(role) {
			t.Fatalf("role %s missing from RolePermissions", role)
		}
	}
	if ValidRole("Contractor") {
		t.Fatal("unexpected role accepted")
	}
}

func TestSessionScopes(t *testing.T) {
	employee := Session{EmployeeID: "e1", Role: RoleEmployee}
	if employee.Can(PermPayrollRun) || employee.IsPrivileged() {
		t.Fatal("employee must not run payroll")
	}
	if !employee.Can(PermLeaveApply) {
		t.Fatal("employee must be able to apply for leave")
	}

	manager := Session{EmployeeID: "m1", Role: RoleManager}
	if !manager.Can(PermLeaveApprove) || !manager.IsManager() {
		t.Fatal("manager must approve leave")
	}
	if manager.Can(PermLeaveReadAll) {
		t.Fatal("manager must only see their team")
	}

	hr := Session{EmployeeID: "h1", Role: RoleHR}
	if !hr.IsPrivileged() || !hr.Can(PermPayrollRun) {
		t.Fatal("hr must run payroll")
	}
}
