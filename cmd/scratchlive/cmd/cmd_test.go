package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ssargent/scratchlivedb/pkg/api"
	"github.com/ssargent/scratchlivedb/pkg/codec"
	"github.com/ssargent/scratchlivedb/pkg/config"
	"github.com/ssargent/scratchlivedb/pkg/di"
	"github.com/ssargent/scratchlivedb/pkg/logging"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
	"github.com/stretchr/testify/require"
)

// cliEnv is a scratch directory with a config file whose backup store and
// library live inside the directory
type cliEnv struct {
	dir        string
	configPath string
	container  *di.Container
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Backup.Dir = filepath.Join(dir, "backups")
	cfg.Library.DatabasePath = filepath.Join(dir, "database V2")
	cfg.Library.CrateDir = filepath.Join(dir, "Subcrates")
	cfg.Backup.Keep = 3
	cfg.Logging.Level = "error"
	cfg.Logging.Format = "json"

	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, configPath))

	c := di.NewContainer()
	SetContainer(c)
	t.Cleanup(func() {
		c.Close()
		SetContainer(nil)
	})

	return &cliEnv{dir: dir, configPath: configPath, container: c}
}

func (env *cliEnv) path(name string) string {
	return filepath.Join(env.dir, name)
}

// run executes the root command with the env's config file and returns what
// the command printed.
func (env *cliEnv) run(args ...string) (string, error) {
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", env.configPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

var fixedNow = time.Unix(1335865095, 0)

func writeCrate(t *testing.T, path string, tracks ...string) []byte {
	t.Helper()

	f := scratchdb.NewFile(scratchdb.Crate)
	for _, track := range tracks {
		e := scratchdb.NewTrack()
		require.NoError(t, e.SetFileTrack(track))
		f.Append(e)
	}
	require.NoError(t, os.WriteFile(path, f.Bytes(), 0644))
	return f.Bytes()
}

// writeDatabase writes two entries: "One" with an unknown tzzz field, and
// "Two"
func writeDatabase(t *testing.T, path string) []byte {
	t.Helper()

	opts := []scratchdb.Option{
		scratchdb.WithLogger(logging.Discard()),
		scratchdb.WithClock(func() time.Time { return fixedNow }),
	}
	f := scratchdb.NewFile(scratchdb.Database, opts...)

	one := f.MakeEntry("/music/one.mp3")
	require.NoError(t, one.SetTrackTitle("One"))
	require.NoError(t, one.SetRaw("tzzz", codec.EncodeString("mystery")))

	two := f.MakeEntry("/music/two.mp3")
	require.NoError(t, two.SetTrackTitle("Two"))

	f.Append(one, two)
	require.NoError(t, os.WriteFile(path, f.Bytes(), 0644))
	return f.Bytes()
}

func parseFile(t *testing.T, path string) *scratchdb.File {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	f, err := scratchdb.Parse(data, scratchdb.FormatForPath(path), scratchdb.WithLogger(logging.Discard()))
	require.NoError(t, err)
	return f
}

// recordingFactory captures the server configuration instead of listening
type recordingFactory struct {
	starter *recordingStarter
}

func (f *recordingFactory) CreateServerStarter() api.ServerStarter {
	return f.starter
}

type recordingStarter struct {
	config api.ServerConfig
	file   *scratchdb.File
}

func (s *recordingStarter) StartServer(ctx context.Context, loader api.Loader, config api.ServerConfig, logger *slog.Logger) error {
	s.config = config
	f, err := loader.Load(ctx, config.Path, config.Format)
	if err != nil {
		return err
	}
	s.file = f
	return nil
}
