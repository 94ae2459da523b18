package cost

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/testutil"
	clitest "github.com/thenoetrevino/cafe/internal/testutil/cli"
)

func TestCostItemAndMenu(t *testing.T) {
	a := clitest.SetupCLITest(t)
	repo := clitest.Repo(t, a)
	ctx := context.Background()

	espresso := testutil.CreateTestMenuItem(t, repo, "Espresso", 2.5)
	testutil.CreateTestMenuItem(t, repo, "Americano", 3)
	beans := testutil.CreateTestItem(t, repo, "Beans", 1000, 0.03)
	_, err := repo.AddRecipeItem(ctx, espresso, beans, 18)
	require.NoError(t, err)

	out, err := clitest.ExecuteCLICommand(t, a, CostCmd(), []string{"item", "--menu=" + strconv.Itoa(espresso), "--json"})
	require.NoError(t, err)
	data := clitest.Data(t, out)
	assert.Equal(t, 0.54, data["ingredient_cost"])
	assert.Equal(t, 1.96, data["margin"])
	assert.Equal(t, 78.4, data["margin_percent"])

	out, err = clitest.ExecuteCLICommand(t, a, CostCmd(), []string{"menu", "--json"})
	require.NoError(t, err)
	assert.Len(t, clitest.List(t, out), 2)

	_, err = clitest.ExecuteCLICommand(t, a, CostCmd(), []string{"item", "--menu=999", "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestCostPeriodAndReport(t *testing.T) {
	a := clitest.SetupCLITest(t)
	repo := clitest.Repo(t, a)
	ctx := context.Background()

	_, err := repo.CreateExpense(ctx, models.ExpenseInput{
		Category: models.ExpenseRent, Amount: 1500, IncurredOn: testutil.Date(t, "2024-03-01"),
	})
	require.NoError(t, err)
	empID := testutil.CreateTestEmployee(t, repo, testutil.CreateTestPosition(t, repo, "Barista", 15), "Ana")
	_, err = repo.CreatePayment(ctx, models.PaymentInput{
		EmployeeID:  empID,
		PeriodStart: testutil.Date(t, "2024-03-01"),
		PeriodEnd:   testutil.Date(t, "2024-03-15"),
		Amount:      450,
		PaidOn:      testutil.Date(t, "2024-03-16"),
	})
	require.NoError(t, err)

	out, err := clitest.ExecuteCLICommand(t, a, CostCmd(), []string{"period", "--from=2024-03-01", "--to=2024-03-31", "--json"})
	require.NoError(t, err)
	data := clitest.Data(t, out)
	assert.Equal(t, 450.0, data["payroll"])
	assert.Equal(t, 1950.0, data["total"])

	_, err = clitest.ExecuteCLICommand(t, a, CostCmd(), []string{"period", "--from=2024-03-31", "--to=2024-03-01", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	out, err = clitest.ExecuteCLICommand(t, a, CostCmd(), []string{"report", "--from=2024-03-01", "--to=2024-03-31", "--json"})
	require.NoError(t, err)
	data = clitest.Data(t, out)
	assert.Equal(t, "USD", data["currency"])
	assert.Contains(t, data["markdown"], "| Expenses | 1500.00 USD |")

	out, err = clitest.ExecuteCLICommand(t, a, CostCmd(), []string{"report", "--from=2024-03-01", "--to=2024-03-31", "--style=notty"})
	require.NoError(t, err)
	assert.Contains(t, out, "1950.00 USD")
	assert.Contains(t, out, "rent")
}
