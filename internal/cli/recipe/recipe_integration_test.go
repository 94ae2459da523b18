package recipe

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/testutil"
	clitest "github.com/thenoetrevino/cafe/internal/testutil/cli"
)

func TestRecipeEditing(t *testing.T) {
	a := clitest.SetupCLITest(t)
	repo := clitest.Repo(t, a)
	menu := "--menu=" + strconv.Itoa(testutil.CreateTestMenuItem(t, repo, "Latte", 3.5))
	beans := strconv.Itoa(testutil.CreateTestItem(t, repo, "Beans", 1000, 0.03))
	milk := strconv.Itoa(testutil.CreateTestItem(t, repo, "Milk", 5000, 0.001))

	out, err := clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"add", menu, "--inventory=" + beans, "--amount=18", "--json"})
	require.NoError(t, err)
	assert.Equal(t, 18.0, clitest.Data(t, out)["amount"])

	_, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"add", menu, "--inventory=" + beans, "--amount=20", "--json"})
	assert.Equal(t, cli.ExitConflict, cli.ExitCode(err), "ingredient already on the recipe")

	_, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"update", menu, "--inventory=" + milk, "--amount=200", "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"add", menu, "--inventory=" + milk, "--amount=0", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	out, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{
		"set", menu, "--ingredient=" + beans + ":18", "--ingredient=" + milk + ":200", "--json",
	})
	require.NoError(t, err)
	assert.Len(t, clitest.List(t, out), 2)

	out, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"show", menu})
	require.NoError(t, err)
	assert.Contains(t, out, "Ingredient cost: 0.74")

	_, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"remove", menu, "--inventory=" + beans, "--json"})
	require.NoError(t, err)

	out, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"show", menu, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, milk+"\n", out)
}

func TestRecipeSet_Rejects(t *testing.T) {
	a := clitest.SetupCLITest(t)
	repo := clitest.Repo(t, a)
	menu := "--menu=" + strconv.Itoa(testutil.CreateTestMenuItem(t, repo, "Mocha", 4))
	beans := strconv.Itoa(testutil.CreateTestItem(t, repo, "Beans", 1000, 0.03))

	_, err := clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"set", menu, "--ingredient=beans", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{
		"set", menu, "--ingredient=" + beans + ":18", "--ingredient=" + beans + ":2", "--json",
	})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err), "same ingredient twice")

	_, err = clitest.ExecuteCLICommand(t, a, RecipeCmd(), []string{"set", menu, "--ingredient=999:1", "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestParseIngredients(t *testing.T) {
	lines, err := parseIngredients([]string{"1:18", " 2 : 0.5 "})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[1].InventoryID)
	assert.Equal(t, 0.5, lines[1].Amount)

	for _, bad := range []string{"1", "x:1", "1:y"} {
		_, err := parseIngredients([]string{bad})
		assert.Error(t, err, bad)
	}
}
