package shift

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/testutil"
	clitest "github.com/thenoetrevino/cafe/internal/testutil/cli"
)

func TestShiftLifecycle(t *testing.T) {
	a := clitest.SetupCLITest(t)
	repo := clitest.Repo(t, a)
	pos := testutil.CreateTestPosition(t, repo, "Barista", 15)
	emp := "--employee=" + strconv.Itoa(testutil.CreateTestEmployee(t, repo, pos, "Ana"))

	out, err := clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{
		"create", emp, "--start=2024-03-04T07:00:00Z", "--end=2024-03-04T14:30:00Z", "--json",
	})
	require.NoError(t, err)
	data := clitest.Data(t, out)
	assert.Equal(t, "2024-03-04T07:00:00Z", data["starts_at"])
	id := "--id=" + strconv.Itoa(clitest.ID(t, data))

	_, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{
		"create", emp, "--start=2024-03-04T14:00:00Z", "--end=2024-03-04T18:00:00Z", "--json",
	})
	assert.Equal(t, cli.ExitConflict, cli.ExitCode(err), "overlaps the morning shift")

	_, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{
		"create", emp, "--start=2024-03-05T14:30:00Z", "--end=2024-03-05T07:00:00Z", "--json",
	})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err), "end before start")

	_, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{
		"create", emp, "--start=2024-03-05T06:00:00Z", "--end=2024-03-05T20:00:00Z", "--json",
	})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err), "longer than the default maximum")

	_, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{
		"create", emp, "--start=yesterday", "--end=2024-03-05T20:00:00Z", "--json",
	})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	out, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{"update", id, "--end=2024-03-04T15:00:00Z", "--json"})
	require.NoError(t, err)
	data = clitest.Data(t, out)
	assert.Equal(t, "2024-03-04T07:00:00Z", data["starts_at"], "start kept")
	assert.Equal(t, "2024-03-04T15:00:00Z", data["ends_at"])

	_, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{
		"create", emp, "--start=2024-03-06T07:00:00Z", "--end=2024-03-06T11:00:00Z", "--json",
	})
	require.NoError(t, err)

	out, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{"list", emp, "--from=2024-03-04", "--to=2024-03-04", "--json"})
	require.NoError(t, err)
	assert.Len(t, clitest.List(t, out), 1, "--to is inclusive and only the 4th matches")

	out, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{"list", emp})
	require.NoError(t, err)
	assert.Contains(t, out, "Total hours: 12.00")

	_, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{"list", "--from=2024-03-05", "--to=2024-03-04", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{"delete", id, "--json"})
	require.NoError(t, err)

	_, err = clitest.ExecuteCLICommand(t, a, ShiftCmd(), []string{"get", id, "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}
