package target

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
xlen: 64
extensions: imafdv
vlenb: 16
mlenb: 64
mrlenb: 8
mamul: 2
expose_csrs: [mscratch, "0x7c8"]
hide_csrs: [mscratch]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	info, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, uint(64), info.XLen)
	assert.Equal(t, uint(16), info.Vlenb)
	assert.Equal(t, []string{"mscratch", "0x7c8"}, info.ExposeCsrs)
	assert.Equal(t, []string{"mscratch"}, info.HideCsrs)
}

func TestLoadProfile_BadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("xlen: [not a number"), 0o644))

	_, err := LoadProfile(path)
	assert.ErrorIs(t, err, ErrBadProfile)
}

func TestInfoNormalize(t *testing.T) {
	// xlen defaults to 32, flen derives from the extension string
	info, err := Info{Extensions: "imafd"}.normalize()
	require.NoError(t, err)
	assert.Equal(t, uint(32), info.XLen)
	assert.Equal(t, uint(64), info.FLen)

	info, err = Info{Extensions: "imf"}.normalize()
	require.NoError(t, err)
	assert.Equal(t, uint(32), info.FLen)

	// mamul defaults to 1 when the matrix extension is present
	info, err = Info{Mlenb: 64, Mrlenb: 8}.normalize()
	require.NoError(t, err)
	assert.Equal(t, uint(1), info.Mamul)

	_, err = Info{XLen: 16}.normalize()
	assert.ErrorIs(t, err, ErrBadProfile)

	_, err = Info{Mlenb: 60, Mrlenb: 8}.normalize()
	assert.ErrorIs(t, err, ErrBadProfile)
}

func TestSupportsExtension(t *testing.T) {
	info := Info{Extensions: "IMAFD"}

	assert.True(t, info.SupportsExtension('m'))
	assert.True(t, info.SupportsExtension('d'))
	assert.False(t, info.SupportsExtension('e'))
}
