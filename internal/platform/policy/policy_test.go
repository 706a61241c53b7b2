package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
	assert.Equal(t, 12, p.Leave.Casual)
}

func TestParseOverrides(t *testing.T) {
	p, err := Parse([]byte(`
salary:
  professional_tax: "250"
  provident_fund_rate: 0.10
leave:
  earned: 20
  sick: 0
`))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(p.Salary.ProfessionalTax))
	assert.True(t, decimal.RequireFromString("0.1").Equal(p.Salary.ProvidentFundRate))
	assert.True(t, decimal.RequireFromString("0.4").Equal(p.Salary.BasicShare))
	assert.Equal(t, 20, p.Leave.Earned)
	assert.Equal(t, 0, p.Leave.Sick)
	assert.Equal(t, 12, p.Leave.Casual)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse([]byte("salary:\n  basic_share: lots\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("salary:\n  professional_tax: \"-5\"\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("leave:\n  casual: -1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("salary: [unterminated"))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("leave:\n  casual: 15\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Leave.Casual)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
