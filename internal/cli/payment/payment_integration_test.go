package payment

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/testutil"
	clitest "github.com/thenoetrevino/cafe/internal/testutil/cli"
)

func TestPayroll(t *testing.T) {
	a := clitest.SetupCLITest(t)
	repo := clitest.Repo(t, a)
	pos := testutil.CreateTestPosition(t, repo, "Barista", 15.5)
	empID := testutil.CreateTestEmployee(t, repo, pos, "Ana")
	emp := "--employee=" + strconv.Itoa(empID)

	for _, day := range []string{"2024-03-04", "2024-03-05"} {
		_, err := repo.CreateShift(context.Background(), empID,
			testutil.Instant(t, day+"T07:00:00Z"), testutil.Instant(t, day+"T14:30:00Z"))
		require.NoError(t, err)
	}

	out, err := clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{"hours", emp, "--from=2024-03-01", "--to=2024-03-15", "--json"})
	require.NoError(t, err)
	assert.Equal(t, 15.0, clitest.Data(t, out)["hours"])

	out, err = clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{
		"payroll", emp, "--from=2024-03-01", "--to=2024-03-15", "--paid=2024-03-16", "--json",
	})
	require.NoError(t, err)
	data := clitest.Data(t, out)
	assert.Equal(t, 15.0, data["hours"])
	assert.Equal(t, 15.5, data["hourly_rate"])
	payment, ok := data["payment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 232.5, payment["amount"])

	_, err = clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{
		"create", emp, "--from=2024-03-15", "--to=2024-03-31", "--amount=100", "--paid=2024-04-01", "--json",
	})
	assert.Equal(t, cli.ExitConflict, cli.ExitCode(err), "overlaps the payroll period on the 15th")

	_, err = clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{
		"payroll", emp, "--from=2024-03-16", "--to=2024-03-31", "--paid=2024-04-01", "--json",
	})
	assert.Equal(t, cli.ExitConflict, cli.ExitCode(err), "no shifts in the second half")

	out, err = clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{"list", emp})
	require.NoError(t, err)
	assert.Contains(t, out, "Total paid: 232.50")
}

func TestPaymentCreate(t *testing.T) {
	a := clitest.SetupCLITest(t)
	repo := clitest.Repo(t, a)
	emp := "--employee=" + strconv.Itoa(testutil.CreateTestEmployee(t, repo, testutil.CreateTestPosition(t, repo, "Cook", 17), "Ben"))

	_, err := clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{
		"create", emp, "--from=2024-03-01", "--to=2024-03-15", "--amount=900", "--paid=2024-02-28", "--json",
	})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err), "paid before the period starts")

	_, err = clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{
		"create", emp, "--from=2024-03-15", "--to=2024-03-01", "--amount=900", "--json",
	})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{
		"create", emp, "--from=2024-03-01", "--to=2024-03-15", "--amount=-5", "--json",
	})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	out, err := clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{
		"create", emp, "--from=2024-03-01", "--to=2024-03-15", "--amount=900.004", "--paid=2024-03-16", "--json",
	})
	require.NoError(t, err)
	data := clitest.Data(t, out)
	assert.Equal(t, 900.0, data["amount"])
	id := "--id=" + strconv.Itoa(clitest.ID(t, data))

	_, err = clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{"delete", id, "--json"})
	require.NoError(t, err)

	_, err = clitest.ExecuteCLICommand(t, a, PaymentCmd(), []string{"get", id, "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}
