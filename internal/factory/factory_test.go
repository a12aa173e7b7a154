package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhuonas/ai-snippet-service/internal/config"
)

func TestNewStore_SQLite(t *testing.T) {
	cfg := config.NewForTesting()
	st, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()

	n, err := st.Snippets().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewStore_SQLiteDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SNIPPET_SERVICE_HOME", home)

	cfg := config.NewForTesting()
	cfg.SQLitePath = ""
	st, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()

	_, err = os.Stat(filepath.Join(home, "snippets.db"))
	assert.NoError(t, err)
}

func TestNewStore_PostgresRequiresDSN(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = "postgres"
	_, err := NewStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewStore_UnknownDriver(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = "mysql"
	_, err := NewStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewSummarizer(t *testing.T) {
	for _, name := range []string{"anthropic", "openai", "local"} {
		cfg := config.NewForTesting()
		cfg.Summarizer = name
		p, err := NewSummarizer(cfg, zerolog.Nop())
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}

	cfg := config.NewForTesting()
	cfg.Summarizer = "bard"
	_, err := NewSummarizer(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewSummarizer_LocalWorksOffline(t *testing.T) {
	p, err := NewSummarizer(config.NewForTesting(), zerolog.Nop())
	require.NoError(t, err)
	out, err := p.Summarize(context.Background(), "This is an example text.")
	require.NoError(t, err)
	assert.Equal(t, "This is an example text.", out)
}
