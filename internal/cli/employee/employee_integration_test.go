package employee

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/testutil"
	clitest "github.com/thenoetrevino/cafe/internal/testutil/cli"
)

func TestEmployeeLifecycle(t *testing.T) {
	a := clitest.SetupCLITest(t)
	repo := clitest.Repo(t, a)
	barista := strconv.Itoa(testutil.CreateTestPosition(t, repo, "Barista", 15.5))
	cook := strconv.Itoa(testutil.CreateTestPosition(t, repo, "Cook", 17))

	out, err := clitest.ExecuteCLICommand(t, a, EmployeeCmd(), []string{
		"create", "--first=Ana", "--last=Silva", "--position=" + barista,
		"--email=Ana@Cafe.example", "--hired=2024-01-08", "--json",
	})
	require.NoError(t, err)
	data := clitest.Data(t, out)
	assert.Equal(t, "Barista", data["position"])
	assert.Equal(t, "ana@cafe.example", data["email"])
	assert.Equal(t, "2024-01-08T00:00:00Z", data["hired_on"])
	id := strconv.Itoa(clitest.ID(t, data))

	_, err = clitest.ExecuteCLICommand(t, a, EmployeeCmd(), []string{
		"create", "--first=Ben", "--last=Ng", "--position=" + barista, "--email=ana@cafe.example", "--json",
	})
	assert.Equal(t, cli.ExitConflict, cli.ExitCode(err), "email is unique")

	_, err = clitest.ExecuteCLICommand(t, a, EmployeeCmd(), []string{
		"create", "--first=Ben", "--last=Ng", "--position=999", "--json",
	})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	out, err = clitest.ExecuteCLICommand(t, a, EmployeeCmd(), []string{"update", "--id=" + id, "--position=" + cook, "--json"})
	require.NoError(t, err)
	assert.Equal(t, "Cook", clitest.Data(t, out)["position"])

	out, err = clitest.ExecuteCLICommand(t, a, EmployeeCmd(), []string{"list", "--position=" + barista, "--quiet"})
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = clitest.ExecuteCLICommand(t, a, EmployeeCmd(), []string{"get", "--id=" + id})
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Silva")

	_, err = clitest.ExecuteCLICommand(t, a, EmployeeCmd(), []string{"delete", "--id=" + id, "--json"})
	require.NoError(t, err)
}

func TestEmployeeCreate_BadHireDate(t *testing.T) {
	a := clitest.SetupCLITest(t)
	_, err := clitest.ExecuteCLICommand(t, a, EmployeeCmd(), []string{
		"create", "--first=Ana", "--last=Silva", "--position=1", "--hired=08/01/2024", "--json",
	})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
