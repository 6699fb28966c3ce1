package groups

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdcatalog/internal/cli/app"
	"mdcatalog/pkg/models"
)

const chaptersFile = `{"code":200,"status":"OK","data":{
	"chapters": [
		{"id": 1, "mangaId": 3, "chapter": "10", "language": "gb", "groups": [5, 7]},
		{"id": 2, "mangaId": 3, "chapter": "11", "language": "gb", "groups": [7]}
	],
	"groups": [{"id": 7, "name": "B"}, {"id": 5, "name": "A"}]
}}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	v := viper.New()
	v.Set(app.KeyConfig, filepath.Join(t.TempDir(), "absent.yaml"))
	v.Set(app.KeyJSON, true)
	v.Set(app.KeyLogLevel, "error")

	root := &cobra.Command{
		Use:           "mdcatalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Setup(cmd, v)
		},
	}
	root.AddCommand(GroupsCmd)
	// Commands are package-level, so flag values persist between executions.
	resolveCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResolveGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapters.json")
	require.NoError(t, os.WriteFile(path, []byte(chaptersFile), 0644))

	out, err := execute(t, "groups", "resolve", path, "--chapter", "0")
	require.NoError(t, err)

	var got []chapterGroups
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []chapterGroups{
		{ChapterID: 1, Chapter: "10", Groups: []string{"A", "B"}},
		{ChapterID: 2, Chapter: "11", Groups: []string{"B"}},
	}, got)

	out, err = execute(t, "groups", "resolve", path, "--chapter", "2")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 1)

	_, err = execute(t, "groups", "resolve", path, "--chapter", "9")
	assert.True(t, errors.Is(err, models.ErrLookupMiss))
}

func TestResolveGroupsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapters.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"code":200,"status":"OK","data":{"chapters":[],"groups":[]}}`), 0644))

	out, err := execute(t, "groups", "resolve", path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestRenderGroups(t *testing.T) {
	out := renderGroups([]chapterGroups{{ChapterID: 1, Chapter: "10", Groups: []string{"A", "B"}}})
	assert.Contains(t, out, "Ch. 10")
	assert.Contains(t, out, "A, B")

	assert.Contains(t, renderGroups(nil), "no chapters")
}
