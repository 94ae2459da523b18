package expense

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/cli"
	clitest "github.com/thenoetrevino/cafe/internal/testutil/cli"
)

func TestExpenseLifecycle(t *testing.T) {
	a := clitest.SetupCLITest(t)

	out, err := clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{
		"create", "--category=Rent", "--amount=1800", "--on=2024-03-01", "--json",
	})
	require.NoError(t, err)
	data := clitest.Data(t, out)
	assert.Equal(t, "rent", data["category"])
	assert.Equal(t, "2024-03-01T00:00:00Z", data["incurred_on"])
	rent := strconv.Itoa(clitest.ID(t, data))

	_, err = clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{
		"create", "--category=maintenance", "--amount=85.5", "--description=Grinder burrs", "--on=2024-04-02", "--json",
	})
	require.NoError(t, err)

	out, err = clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{"list", "--from=2024-03-01", "--to=2024-03-31", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, rent+"\n", out)

	out, err = clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{"list"})
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1885.50")

	_, err = clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{"list", "--from=2024-04-01", "--to=2024-03-01", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{"delete", "--id=" + rent, "--json"})
	require.NoError(t, err)

	_, err = clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{"get", "--id=" + rent, "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestExpenseCreate_Rejects(t *testing.T) {
	a := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{"create", "--category=coffee", "--amount=5", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, a, ExpenseCmd(), []string{"create", "--category=other", "--amount=-5", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}
