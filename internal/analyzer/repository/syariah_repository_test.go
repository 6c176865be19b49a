package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idx-market-intel/pkg/logger"
)

func TestSyariahRepository_FromReader(t *testing.T) {
	csv := "No,Kode,Nama\n1,TLKM,Telkom Indonesia\n2,BRIS.JK,Bank Syariah Indonesia\n3,12345,\n"
	repo, err := NewSyariahRepositoryFromReader(strings.NewReader(csv))
	require.NoError(t, err)

	assert.True(t, repo.IsSyariah("TLKM.JK"))
	assert.True(t, repo.IsSyariah("bris"))
	assert.False(t, repo.IsSyariah("BBCA.JK"))
	assert.True(t, repo.IsSyariah("KODE"), "header cells that look like tickers are accepted")
}

func TestSyariahRepository_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issi.csv")
	require.NoError(t, os.WriteFile(path, []byte("ANTM\nICBP\n"), 0o600))

	repo, err := NewSyariahRepository(path, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Count())

	missing, err := NewSyariahRepository(filepath.Join(t.TempDir(), "missing.csv"), logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, missing.Count())
}
