package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
tables:
  - name: users
    columns:
      - name: id
        type: int
      - name: email
        type: string
      - name: is_admin
        type: bool
      - name: status
        type: enum
        options: [active, banned]
      - name: deleted_at
        type: string
        nullable: true
`

const testModels = `
models:
  - identity: App\Models\User
    table: users
    dates: [deleted_at]
  - identity: App\Models\Ghost
    table: ghosts
`

// writeProject lays out a schema and manifest in a temp dir
func writeProject(t *testing.T, configBody string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.yml"), []byte(testSchema), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.yml"), []byte(testModels), 0644))
	if configBody != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "modeltypes.yml"), []byte(configBody), 0644))
	}
	return dir
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestInferCommand_Docblock(t *testing.T) {
	dir := writeProject(t, "")

	stdout, stderr, err := runRoot(t, "infer",
		"--config", dir,
		"--schema", filepath.Join(dir, "schema.yml"),
		"--models", filepath.Join(dir, "models.yml"),
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "@property int $id")
	assert.Contains(t, stdout, "@property string $email")
	assert.Contains(t, stdout, "@property-read 0|1 $is_admin")
	assert.Contains(t, stdout, "@property-write 0|1|bool $is_admin")
	assert.Contains(t, stdout, "@property 'active'|'banned' $status")
	assert.Contains(t, stdout, `@property \Illuminate\Support\Carbon|null $deleted_at`)
	assert.Contains(t, stdout, `@method static \Illuminate\Database\Eloquent\Builder|\App\Models\User whereIsAdmin($value)`)
	assert.NotContains(t, stdout, "Ghost")

	assert.Contains(t, stderr, "Inferred 1 model(s)")
	assert.Contains(t, stderr, "skipped 1")
	assert.Contains(t, stderr, `App\Models\Ghost: table "ghosts" not found`)
}

func TestInferCommand_SuggestsTable(t *testing.T) {
	dir := writeProject(t, "")
	models := "models:\n  - identity: App\\Models\\User\n    table: usrs\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typo.yml"), []byte(models), 0644))

	stdout, stderr, err := runRoot(t, "infer",
		"--config", dir,
		"--schema", filepath.Join(dir, "schema.yml"),
		"--models", filepath.Join(dir, "typo.yml"),
	)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "did you mean: users?")
}

func TestInferCommand_Table(t *testing.T) {
	dir := writeProject(t, "")

	stdout, _, err := runRoot(t, "infer",
		"--config", dir,
		"--schema", filepath.Join(dir, "schema.yml"),
		"--models", filepath.Join(dir, "models.yml"),
		"--table",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "App\\Models\\User\n")
	assert.Contains(t, stdout, "PROPERTY")
	assert.Contains(t, stdout, "whereIsAdmin")
	assert.Contains(t, stdout, "0|1|bool")
}

func TestInferCommand_PostgresTypeScript(t *testing.T) {
	dir := writeProject(t, "database:\n  dialect: pgsql\n")

	stdout, _, err := runRoot(t, "infer",
		"--config", dir,
		"--schema", filepath.Join(dir, "schema.yml"),
		"--models", filepath.Join(dir, "models.yml"),
		"--format", "typescript",
		"--no-accessors",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "export interface User {")
	assert.Contains(t, stdout, "is_admin: boolean;")
	assert.Contains(t, stdout, `status: "active" | "banned";`)
	assert.Contains(t, stdout, "deleted_at: Date | null;")
	assert.NotContains(t, stdout, "whereIsAdmin")
}

func TestInferCommand_JSON(t *testing.T) {
	dir := writeProject(t, "")

	stdout, _, err := runRoot(t, "infer",
		"--config", dir,
		"--schema", filepath.Join(dir, "schema.yml"),
		"--models", filepath.Join(dir, "models.yml"),
		"--json",
		"--workers", "2",
	)
	require.NoError(t, err)

	var models []jsonModel
	require.NoError(t, json.Unmarshal([]byte(stdout), &models))
	require.Len(t, models, 1)

	user := models[0]
	assert.Equal(t, `App\Models\User`, user.Model)
	assert.Equal(t, []string{"deleted_at"}, user.Nullable)
	require.Len(t, user.Properties, 5)

	isAdmin := user.Properties[2]
	assert.Equal(t, "is_admin", isAdmin.Name)
	assert.Equal(t, "0|1", isAdmin.Get)
	assert.Equal(t, "0|1|bool", isAdmin.Set)
	require.NotNil(t, isAdmin.Accessor)
	assert.Equal(t, "whereIsAdmin", isAdmin.Accessor.Name)
	assert.Equal(t, []string{"$value"}, isAdmin.Accessor.Params)
}

func TestInferCommand_Errors(t *testing.T) {
	dir := writeProject(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{"missing schema", []string{"--schema", filepath.Join(dir, "nope.yml")}},
		{"missing models", []string{"--models", filepath.Join(dir, "nope.yml")}},
		{"bad format", []string{"--format", "xml"}},
		{"zero workers", []string{"--workers", "0"}},
		{"unsupported driver", []string{"--driver", "oracle", "--database-url", "oracle://x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"infer", "--config", dir,
				"--schema", filepath.Join(dir, "schema.yml"),
				"--models", filepath.Join(dir, "models.yml"),
			}
			args = append(args, tt.args...)
			_, _, err := runRoot(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestInferCommand_FlagsOverrideInvalidConfig(t *testing.T) {
	dir := writeProject(t, "inference:\n  workers: 0\nannotations:\n  format: xml\n")

	stdout, _, err := runRoot(t, "infer",
		"--config", dir,
		"--schema", filepath.Join(dir, "schema.yml"),
		"--models", filepath.Join(dir, "models.yml"),
		"--workers", "2",
		"--format", "docblock",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "@property int $id")

	_, _, err = runRoot(t, "infer",
		"--config", dir,
		"--schema", filepath.Join(dir, "schema.yml"),
		"--models", filepath.Join(dir, "models.yml"),
	)
	assert.Error(t, err)
}
