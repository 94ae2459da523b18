package supplier

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/cli"
	clitest "github.com/thenoetrevino/cafe/internal/testutil/cli"
)

func TestSupplierLifecycle(t *testing.T) {
	a := clitest.SetupCLITest(t)

	out, err := clitest.ExecuteCLICommand(t, a, SupplierCmd(), []string{
		"create", "--name=Bean  Co", "--email=Orders@BeanCo.example", "--phone=+1 (555) 010-0100", "--json",
	})
	require.NoError(t, err)
	data := clitest.Data(t, out)
	assert.Equal(t, "Bean Co", data["name"])
	assert.Equal(t, "orders@beanco.example", data["email"])
	id := strconv.Itoa(clitest.ID(t, data))

	_, err = clitest.ExecuteCLICommand(t, a, SupplierCmd(), []string{"create", "--name=bean co", "--json"})
	assert.Equal(t, cli.ExitConflict, cli.ExitCode(err), "names are unique regardless of case")

	_, err = clitest.ExecuteCLICommand(t, a, SupplierCmd(), []string{"create", "--name=Milk", "--email=nope", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	out, err = clitest.ExecuteCLICommand(t, a, SupplierCmd(), []string{"update", "--id=" + id, "--email=", "--json"})
	require.NoError(t, err)
	_, hasEmail := clitest.Data(t, out)["email"]
	assert.False(t, hasEmail, "empty email is cleared")

	out, err = clitest.ExecuteCLICommand(t, a, SupplierCmd(), []string{"list"})
	require.NoError(t, err)
	assert.Contains(t, out, "Bean Co")

	_, err = clitest.ExecuteCLICommand(t, a, SupplierCmd(), []string{"delete", "--id=" + id, "--json"})
	require.NoError(t, err)

	_, err = clitest.ExecuteCLICommand(t, a, SupplierCmd(), []string{"get", "--id=" + id, "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestSupplierUpdate_NeedsAField(t *testing.T) {
	a := clitest.SetupCLITest(t)
	_, err := clitest.ExecuteCLICommand(t, a, SupplierCmd(), []string{"update", "--id=1", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
