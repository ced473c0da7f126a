package integration

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const kubectlYAML = `version: 1
commands:
  - name: kubectl
    aliases:
      - name: k
    args:
      - long_name: --help
        short_name: -h
    sub_commands:
      - name: get
        aliases:
          - name: g
        args:
          - arg_type: OPTION
            long_name: --output
            short_name: -o
            description: Output format
            opts:
              - name: json
              - name: wide
      - name: describe
`

const gitJSON = `{"version": 1, "commands": [{"name": "git", "sub_commands": [{"name": "status"}, {"name": "commit"}]}]}`

// importKubectl stores the kubectl grammar in env.
func importKubectl(t *testing.T, env *TestEnv) {
	t.Helper()
	path := env.WriteFile("kubectl.yaml", kubectlYAML)
	env.MustRunBCE("import", "--file", path)
}

func TestInit(t *testing.T) {
	env := NewTestEnv(t)
	result := env.MustRunBCE("init")

	assert.Contains(t, result.Stdout, "bce initialized")
	assert.FileExists(t, filepath.Join(env.Config, "config.yaml"))
	assert.FileExists(t, env.DBPath())

	env.MustRunBCE("init")
}

func TestComplete_KubectlScenario(t *testing.T) {
	env := NewTestEnv(t)
	importKubectl(t, env)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "option values", line: "kubectl get -o ", want: []string{"json", "wide"}},
		{name: "alias root", line: "k g --output=", want: []string{"json", "wide"}},
		{
			name: "sub-commands and flags",
			line: "kubectl ",
			want: []string{"describe", "get (g)", "--help (-h)", "--output (-o)"},
		},
		{
			name: "partial word is not filtered",
			line: "kubectl d",
			want: []string{"describe", "get (g)", "--help (-h)", "--output (-o)"},
		},
		{name: "unknown command", line: "helm ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := env.Complete(tt.line, len(tt.line))
			require.Equal(t, 0, result.ExitCode, result.Stderr)
			assert.Equal(t, tt.want, result.Lines())
		})
	}
}

func TestComplete_RegisteredAtRoot(t *testing.T) {
	env := NewTestEnv(t)
	importKubectl(t, env)

	// Bash runs `bce <cmd> <word> <prev>` for `complete -C bce <cmd>`.
	tests := []struct {
		name string
		line string
		args []string
		want []string
	}{
		{
			name: "flag as previous word",
			line: "kubectl get -o ",
			args: []string{"kubectl", "", "-o"},
			want: []string{"json", "wide"},
		},
		{
			name: "help flag as current word",
			line: "kubectl --help",
			args: []string{"kubectl", "--help", "kubectl"},
			want: []string{"describe", "get (g)", "--output (-o)"},
		},
		{
			name: "bce verbose flag is not bce's",
			line: "kubectl -v",
			args: []string{"kubectl", "-v", "kubectl"},
			want: []string{"describe", "get (g)", "--help (-h)", "--output (-o)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]string{"COMP_LINE": tt.line, "COMP_POINT": strconv.Itoa(len(tt.line))}
			result := env.run(vars, tt.args...)
			require.Equal(t, 0, result.ExitCode, result.Stderr)
			assert.Equal(t, tt.want, result.Lines())
			assert.NotContains(t, result.Stdout, "Usage")
			assert.Empty(t, result.Stderr)
		})
	}
}

func TestComplete_Errors(t *testing.T) {
	env := NewTestEnv(t)
	importKubectl(t, env)

	tests := []struct {
		name string
		vars map[string]string
		code int
	}{
		{name: "no line", vars: map[string]string{"COMP_POINT": "3"}, code: 2},
		{name: "no point", vars: map[string]string{"COMP_LINE": "kubectl "}, code: 2},
		{name: "bad point", vars: map[string]string{"COMP_LINE": "kubectl ", "COMP_POINT": "eight"}, code: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := env.run(tt.vars, "complete", "--", "kubectl", "", "kubectl")
			assert.Equal(t, tt.code, result.ExitCode)
			assert.Empty(t, result.Stdout, "nothing may reach the completion channel on error")
			assert.NotEmpty(t, result.Stderr)
		})
	}
}

func TestComplete_SchemaMismatch(t *testing.T) {
	env := NewTestEnv(t)
	require.NoError(t, os.MkdirAll(env.DataDir, 0o755))

	db, err := sql.Open("sqlite", env.DBPath())
	require.NoError(t, err)
	_, err = db.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	result := env.Complete("kubectl ", 8)
	assert.Equal(t, 5, result.ExitCode)
	assert.Empty(t, result.Stdout)
}

func TestComplete_StoreOpenFailure(t *testing.T) {
	env := NewTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.TempDir, "data"), []byte("not a dir"), 0o644))

	result := env.Complete("kubectl ", 8)
	assert.Equal(t, 4, result.ExitCode)
	assert.Empty(t, result.Stdout)
}

func TestExportImportRoundTrip(t *testing.T) {
	env := NewTestEnv(t)
	importKubectl(t, env)

	for _, name := range []string{"kubectl.json", "kubectl.toml", "backup.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(env.TempDir, name)
			env.MustRunBCE("export", "--file", path, "kubectl")

			other := NewTestEnv(t)
			result := other.MustRunBCE("import", "--file", path)
			assert.Contains(t, result.Stdout, "Imported 1 command(s)")

			complete := other.Complete("kubectl get -o ", 15)
			require.Equal(t, 0, complete.ExitCode, complete.Stderr)
			assert.Equal(t, []string{"json", "wide"}, complete.Lines())
		})
	}
}

func TestImport_ReplacesRoot(t *testing.T) {
	env := NewTestEnv(t)
	importKubectl(t, env)

	path := env.WriteFile("small.json", `{"commands": [{"name": "kubectl", "sub_commands": [{"name": "logs"}]}]}`)
	env.MustRunBCE("import", "--file", path)

	result := env.Complete("kubectl ", 8)
	assert.Equal(t, []string{"logs"}, result.Lines())
}

func TestImport_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/git.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(gitJSON))
	}))
	defer srv.Close()

	env := NewTestEnv(t)
	env.MustRunBCE("import", "--url", srv.URL+"/git.json")
	assert.Equal(t, []string{"git"}, env.MustRunBCE("list").Lines())

	result := env.RunBCE("import", "--url", srv.URL+"/missing.json")
	assert.Equal(t, 7, result.ExitCode)
}

func TestImport_Errors(t *testing.T) {
	env := NewTestEnv(t)

	bad := env.WriteFile("bad.json", `{"commands": [{"name": "x", "args": [{"description": "nameless"}]}]}`)
	assert.Equal(t, 7, env.RunBCE("import", "--file", bad).ExitCode)

	unknown := env.WriteFile("grammar.txt", "whatever")
	assert.Equal(t, 7, env.RunBCE("import", "--file", unknown).ExitCode)

	assert.Equal(t, 1, env.RunBCE("import").ExitCode, "--file or --url is required")

	assert.Empty(t, env.MustRunBCE("list").Lines(), "failed imports store nothing")
}

func TestListDeleteTree(t *testing.T) {
	env := NewTestEnv(t)
	importKubectl(t, env)
	env.MustRunBCE("import", "--file", env.WriteFile("git.json", gitJSON))

	assert.Equal(t, []string{"git", "kubectl"}, env.MustRunBCE("list").Lines())

	tree := env.MustRunBCE("tree", "k").Stdout
	assert.Contains(t, tree, "kubectl (k)")
	assert.Contains(t, tree, "--output, -o  OPTION [json|wide]")

	env.MustRunBCE("delete", "kubectl")
	assert.Equal(t, []string{"git"}, env.MustRunBCE("list").Lines())
	assert.Equal(t, 1, env.RunBCE("delete", "kubectl").ExitCode)
	assert.Empty(t, env.Complete("kubectl ", 8).Lines())
}

func TestHook(t *testing.T) {
	env := NewTestEnv(t)
	assert.Equal(t, 1, env.RunBCE("hook").ExitCode, "nothing to register yet")

	importKubectl(t, env)
	result := env.MustRunBCE("hook", "--exe", "/opt/bce/bce")
	lines := result.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "complete -o default -C '/opt/bce/bce complete --' kubectl", lines[0])

	result = env.MustRunBCE("hook", "--exe", "/opt/bce/bce", "git", "docker")
	assert.Len(t, result.Lines(), 2)
}

func TestVersion(t *testing.T) {
	env := NewTestEnv(t)
	result := env.MustRunBCE("version")
	assert.True(t, strings.HasPrefix(result.Stdout, "bce "))
}
