package process

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/legisync/internal/config"
	"github.com/roach88/legisync/internal/store"
)

func newTestProcessor(t *testing.T, cfg *config.Config) (*Processor, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(st, store.NewChangelog(st), cfg), st
}

func writeChangeFile(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	var content string
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFile(t *testing.T) {
	p, st := newTestProcessor(t, nil)
	ctx := context.Background()

	path := writeChangeFile(t, "SOBI.D110105.T100000.TXT",
		"2011S01234 1"+billInfoData("MARTINS", " 00000 ", ""),
		"2011S01234 3AN ACT to amend the tax law",
		"2011S01234 5Same as Uni. A 372",
		"2011S01234 2TAX",
	)
	require.NoError(t, p.ProcessFile(ctx, path))

	b, err := st.GetBillByID(ctx, "S1234-2011")
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.True(t, b.Published())
	assert.True(t, b.Active)
	require.NotNil(t, b.Sponsor)
	assert.Equal(t, "MARTINS", b.Sponsor.FullName)
	assert.Equal(t, "AN ACT to amend the tax law", b.Title)
	assert.Equal(t, "A372-2011", b.SameAs)
	assert.True(t, b.UniBill)
	assert.Equal(t, "TAX", b.LawSection)
	assert.Equal(t, []string{"SOBI.D110105.T100000.TXT"}, b.DataSources)

	entries, err := st.ChangelogEntries(ctx, 0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "SOBI.D110105.T100000.TXT", entries[0].SourceFile)
}

func TestProcessFileSkipsUnparsableName(t *testing.T) {
	p, st := newTestProcessor(t, nil)
	ctx := context.Background()

	path := writeChangeFile(t, "notes.txt",
		"2011S01234 3AN ACT to amend the tax law",
	)
	require.NoError(t, p.ProcessFile(ctx, path))

	b, err := st.GetBillByID(ctx, "S1234-2011")
	require.NoError(t, err)
	assert.Nil(t, b, "file with bad name must be skipped entirely")
}

func TestProcessFileMissingFileIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t, nil)
	err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "SOBI.D110105.T100000.TXT"))
	assert.Error(t, err)
}

func TestProcessFileIsolatesBadBlocks(t *testing.T) {
	p, st := newTestProcessor(t, nil)
	ctx := context.Background()

	// The bill info block is malformed; the title block after it must
	// still be applied.
	path := writeChangeFile(t, "SOBI.D110105.T100000.TXT",
		"2011S01234 1garbage status line",
		"2011S01234 3AN ACT to amend the tax law",
	)
	require.NoError(t, p.ProcessFile(ctx, path))

	b, err := st.GetBillByID(ctx, "S1234-2011")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "AN ACT to amend the tax law", b.Title)
	assert.False(t, b.Published(), "failed status block must not publish")
}

func TestProcessFileUnknownLineCodeIsSkipped(t *testing.T) {
	p, st := newTestProcessor(t, nil)
	ctx := context.Background()

	path := writeChangeFile(t, "SOBI.D110105.T100000.TXT",
		"2011S01234 DNOT A REAL CODE",
		"2011S01234 3TITLE",
	)
	require.NoError(t, p.ProcessFile(ctx, path))

	b, err := st.GetBillByID(ctx, "S1234-2011")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "TITLE", b.Title)
}
