package policy

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"ems/internal/domain/leave"
	"ems/internal/domain/salary"
)

// Policy bundles the tunable payroll and leave rules.
type Policy struct {
	Salary salary.Policy
	Leave  leave.Entitlements
}

type file struct {
	Salary struct {
		ProvidentFundRate string `yaml:"provident_fund_rate"`
		ProfessionalTax   string `yaml:"professional_tax"`
		BasicShare        string `yaml:"basic_share"`
		HRAShare          string `yaml:"hra_share"`
	} `yaml:"salary"`
	Leave struct {
		Casual *int `yaml:"casual"`
		Sick   *int `yaml:"sick"`
		Earned *int `yaml:"earned"`
	} `yaml:"leave"`
}

func Default() Policy {
	return Policy{Salary: salary.DefaultPolicy(), Leave: leave.DefaultEntitlements()}
}

// Load reads overrides from path on top of the defaults. An empty path
// yields the defaults.
func Load(path string) (Policy, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Policy, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Policy{}, fmt.Errorf("parse policy file: %w", err)
	}

	p := Default()
	overrides := []struct {
		name   string
		value  string
		target *decimal.Decimal
	}{
		{"salary.provident_fund_rate", f.Salary.ProvidentFundRate, &p.Salary.ProvidentFundRate},
		{"salary.professional_tax", f.Salary.ProfessionalTax, &p.Salary.ProfessionalTax},
		{"salary.basic_share", f.Salary.BasicShare, &p.Salary.BasicShare},
		{"salary.hra_share", f.Salary.HRAShare, &p.Salary.HRAShare},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		d, err := decimal.NewFromString(o.value)
		if err != nil {
			return Policy{}, fmt.Errorf("%s: %w", o.name, err)
		}
		if d.IsNegative() {
			return Policy{}, fmt.Errorf("%s must not be negative", o.name)
		}
		*o.target = d
	}

	days := []struct {
		name   string
		value  *int
		target *int
	}{
		{"leave.casual", f.Leave.Casual, &p.Leave.Casual},
		{"leave.sick", f.Leave.Sick, &p.Leave.Sick},
		{"leave.earned", f.Leave.Earned, &p.Leave.Earned},
	}
	for _, d := range days {
		if d.value == nil {
			continue
		}
		if *d.value < 0 {
			return Policy{}, fmt.Errorf("%s must not be negative", d.name)
		}
		*d.target = *d.value
	}
	return p, nil
}
