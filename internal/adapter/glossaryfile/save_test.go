package glossaryfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/heartmarshall/concept-clarity/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trickyGlossary() *domain.Glossary {
	return domain.NewGlossary(
		domain.Entry{Term: "Zeta", Definition: "Last letter first"},
		domain.Entry{Term: "Buy Now, Pay Later", Definition: "Short-term financing: split payments"},
		domain.Entry{Term: "true", Definition: "yes"},
		domain.Entry{Term: "P2P <Lending>", Definition: "Loans & \"peer\" matching"},
		domain.Entry{Term: "Multi-line", Definition: "line one\nline two"},
		domain.Entry{Term: "Ünïcode", Definition: "Кредит 💳"},
		domain.Entry{Term: "Alpha", Definition: "  padded  "},
	)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"terms.json", "terms.yaml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			want := trickyGlossary()

			require.NoError(t, Save(context.Background(), path, FormatAuto, want))
			first, err := Read(path, FormatAuto)
			require.NoError(t, err)
			assert.True(t, want.Equal(first), "got %v", first.Entries())

			require.NoError(t, Save(context.Background(), path, FormatAuto, first))
			second, err := Read(path, FormatAuto)
			require.NoError(t, err)
			assert.True(t, first.Equal(second))
		})
	}
}

func TestSave_LoadWriteReloadUnchanged(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "terms.json", `{
  "Blockchain": "A distributed ledger technology",
  "Digital Wallet": "An app for storing payment info"
}`)

	g, err := Read(path, FormatAuto)
	require.NoError(t, err)
	require.NoError(t, Save(context.Background(), path, FormatAuto, g))

	again, err := Read(path, FormatAuto)
	require.NoError(t, err)
	assert.True(t, g.Equal(again))
}

func TestSave_ConvertJSONToYAML(t *testing.T) {
	t.Parallel()

	src := writeFile(t, "terms.json", `{"Blockchain": "ledger", "API": "interface"}`)
	dst := filepath.Join(t.TempDir(), "out", "terms.yml")

	g, err := Read(src, FormatAuto)
	require.NoError(t, err)
	require.NoError(t, Save(context.Background(), dst, FormatAuto, g))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "Blockchain: ledger\nAPI: interface\n", string(data))
}

func TestSave_EmptyGlossary(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"empty.json", "empty.yaml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(context.Background(), path, FormatAuto, domain.NewGlossary()))

			g, err := Read(path, FormatAuto)
			require.NoError(t, err)
			assert.Zero(t, g.Len())
		})
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "terms.json")

	require.NoError(t, Save(context.Background(), path, FormatAuto, trickyGlossary()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"terms.json", "terms.json.lock"}, names)
}

func TestSave_ConcurrentWritersProduceWholeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "terms.json")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g := domain.NewGlossary(domain.Entry{Term: fmt.Sprintf("Term %d", i), Definition: "def"})
			assert.NoError(t, Save(context.Background(), path, FormatAuto, g))
		}()
	}
	wg.Wait()

	g, err := Read(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}
