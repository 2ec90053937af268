package ignore

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll("/project", 0755))
	require.NoError(t, afero.WriteFile(fs, "/project/"+FileName, []byte(content), 0644))
}

func TestLoadWithoutRulesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/project", 0755))

	rules, err := Load(fs, "/project")
	require.NoError(t, err)

	expected := NewPatternSet(append(BasePatterns(), DefaultPatterns()...)...)
	assert.Equal(t, expected.Strings(), rules.Patterns.Strings())
	assert.Empty(t, rules.Settings.Keys())
	assert.Empty(t, rules.Warnings)
	assert.False(t, rules.FromFile)

	again, err := Load(fs, "/project")
	require.NoError(t, err)
	assert.Equal(t, rules.Patterns.Strings(), again.Patterns.Strings())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		verify  func(*testing.T, *Rules)
	}{
		{
			name:    "patterns are added to the base set only",
			content: "dist\n*.log\n",
			verify: func(t *testing.T, r *Rules) {
				assert.True(t, r.FromFile)
				assert.True(t, r.Patterns.Has("dist"))
				assert.True(t, r.Patterns.Has("*.log"))
				assert.True(t, r.Patterns.Has(NodeModules))
				assert.False(t, r.Patterns.Has("package.json"), "defaults only apply without a rules file")
				assert.Equal(t, len(BasePatterns())+2, r.Patterns.Len())
			},
		},
		{
			name:    "comment and blank lines are skipped",
			content: "// header\n\n   \nsrc // trailing comment\nbuild\r\n",
			verify: func(t *testing.T, r *Rules) {
				assert.False(t, r.Patterns.Has("src // trailing comment"))
				assert.False(t, r.Patterns.Has("src"))
				assert.True(t, r.Patterns.Has("build"))
			},
		},
		{
			name:    "valid settings",
			content: "@exploreTimeout=9000\n@reExploreTimeout=6000\n@noIgnoreNodeModules=false\n",
			verify: func(t *testing.T, r *Rules) {
				assert.Empty(t, r.Warnings)
				assert.Equal(t, 9*time.Second, r.Settings.Explore())
				assert.Equal(t, 6*time.Second, r.Settings.ReExplore())
				assert.Equal(t, []Key{KeyExploreTimeout, KeyReExploreTimeout, KeyNoIgnoreNodeModules}, r.Settings.Keys())
				assert.True(t, r.Patterns.Has(NodeModules))
			},
		},
		{
			name:    "explore timeout out of range",
			content: "@exploreTimeout=1000\n",
			verify: func(t *testing.T, r *Rules) {
				require.Len(t, r.Warnings, 1)
				assert.Equal(t, "exploreTimeout's value '1000' is not correct", r.Warnings[0])
				assert.False(t, r.Settings.Has(KeyExploreTimeout))
				assert.Equal(t, 7000*time.Millisecond, r.Settings.Explore())
			},
		},
		{
			name:    "explore timeout bounds are exclusive",
			content: "@exploreTimeout=2000\n@exploreTimeout=25000\n@reExploreTimeout=5000\n",
			verify: func(t *testing.T, r *Rules) {
				assert.Len(t, r.Warnings, 3)
				assert.Empty(t, r.Settings.Keys())
				assert.Equal(t, DefaultReExploreTimeout, r.Settings.ReExplore())
			},
		},
		{
			name:    "unknown key",
			content: "@colour=red\n",
			verify: func(t *testing.T, r *Rules) {
				require.Len(t, r.Warnings, 1)
				assert.Equal(t, "colour is not recognized as correct option", r.Warnings[0])
				assert.Empty(t, r.Settings.Keys())
			},
		},
		{
			name:    "non numeric timeout",
			content: "@exploreTimeout=soon\n",
			verify: func(t *testing.T, r *Rules) {
				assert.Len(t, r.Warnings, 1)
				assert.Equal(t, DefaultExploreTimeout, r.Settings.Explore())
			},
		},
		{
			name:    "last valid assignment wins",
			content: "@exploreTimeout=3000\n@exploreTimeout=4000\n@exploreTimeout=1\n",
			verify: func(t *testing.T, r *Rules) {
				assert.Len(t, r.Warnings, 1)
				assert.Equal(t, 4*time.Second, r.Settings.Explore())
				assert.Equal(t, []Key{KeyExploreTimeout}, r.Settings.Keys())
			},
		},
		{
			name:    "value stops at the second equals sign",
			content: "@exploreTimeout=3000=9000\n",
			verify: func(t *testing.T, r *Rules) {
				assert.Empty(t, r.Warnings)
				assert.Equal(t, 3*time.Second, r.Settings.Explore())
			},
		},
		{
			name:    "node_modules can be scanned",
			content: "@noIgnoreNodeModules=true\n",
			verify: func(t *testing.T, r *Rules) {
				assert.True(t, r.Settings.NoIgnoreNodeModules)
				assert.False(t, r.Patterns.Has(NodeModules))
				_, ignored := r.Ignored(NodeModules)
				assert.False(t, ignored)
			},
		},
		{
			name:    "invalid boolean",
			content: "@noIgnoreNodeModules=yes\n",
			verify: func(t *testing.T, r *Rules) {
				assert.Equal(t, []string{"noIgnoreNodeModules's value 'yes' is not correct"}, r.Warnings)
				assert.True(t, r.Patterns.Has(NodeModules))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeRules(t, fs, tt.content)

			rules, err := Load(fs, "/project")
			require.NoError(t, err)
			tt.verify(t, rules)
		})
	}
}

func TestLoadDoesNotLeakBetweenScans(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRules(t, fs, "@noIgnoreNodeModules=true\nextra\n")

	first, err := Load(fs, "/project")
	require.NoError(t, err)
	assert.False(t, first.Patterns.Has(NodeModules))

	writeRules(t, fs, "other\n")
	second, err := Load(fs, "/project")
	require.NoError(t, err)
	assert.True(t, second.Patterns.Has(NodeModules))
	assert.False(t, second.Patterns.Has("extra"))
	assert.Empty(t, second.Settings.Keys())
}

func TestLoadLongLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	long := strings.Repeat("x", 70*1024)
	writeRules(t, fs, "@exploreTimeout=9000\nsecret.js\n"+long+"\nlast.txt")

	rules, err := Load(fs, "/project")
	require.NoError(t, err)
	assert.True(t, rules.FromFile)
	assert.Equal(t, 9*time.Second, rules.Settings.Explore())
	assert.True(t, rules.Patterns.Has("secret.js"))
	assert.True(t, rules.Patterns.Has(long))
	assert.True(t, rules.Patterns.Has("last.txt"))
}

func TestWriteDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/project", 0755))

	require.NoError(t, WriteDefault(fs, "/project"))

	data, err := afero.ReadFile(fs, "/project/"+FileName)
	require.NoError(t, err)
	assert.Equal(t, DefaultContent(), string(data))

	rules, err := Load(fs, "/project")
	require.NoError(t, err)
	assert.Empty(t, rules.Warnings, "the generated header must not produce warnings")
	for _, p := range DefaultPatterns() {
		assert.True(t, rules.Patterns.Has(p), p)
	}
}

func TestWriteDefaultExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRules(t, fs, "mine\n")

	err := WriteDefault(fs, "/project")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigExists))

	data, err := afero.ReadFile(fs, "/project/"+FileName)
	require.NoError(t, err)
	assert.Equal(t, "mine\n", string(data))
}

func TestWriteDefaultReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := WriteDefault(fs, "/project")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigExists))

	_, statErr := fs.Stat("/project/" + FileName)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

var errDiskFull = errors.New("no space left on device")

// brokenFs hands out files whose writes or close fail, and can refuse to
// remove them.
type brokenFs struct {
	afero.Fs
	writeErr, closeErr, removeErr error
}

func (b *brokenFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f, err := b.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &brokenFile{File: f, fs: b}, nil
}

func (b *brokenFs) Remove(name string) error {
	if b.removeErr != nil {
		return b.removeErr
	}
	return b.Fs.Remove(name)
}

type brokenFile struct {
	afero.File
	fs *brokenFs
}

func (f *brokenFile) WriteString(s string) (int, error) {
	if f.fs.writeErr != nil {
		return 0, f.fs.writeErr
	}
	return f.File.WriteString(s)
}

func (f *brokenFile) Close() error {
	if err := f.File.Close(); err != nil {
		return err
	}
	return f.fs.closeErr
}

func TestWriteDefaultCleansUp(t *testing.T) {
	tests := []struct {
		name    string
		fs      func(afero.Fs) *brokenFs
		exists  bool
		wantErr string
	}{
		{
			name:    "write fails",
			fs:      func(base afero.Fs) *brokenFs { return &brokenFs{Fs: base, writeErr: errDiskFull} },
			wantErr: "no space left on device",
		},
		{
			name:    "close fails",
			fs:      func(base afero.Fs) *brokenFs { return &brokenFs{Fs: base, closeErr: errDiskFull} },
			wantErr: "no space left on device",
		},
		{
			name: "cleanup fails",
			fs: func(base afero.Fs) *brokenFs {
				return &brokenFs{Fs: base, writeErr: errDiskFull, removeErr: os.ErrPermission}
			},
			exists:  true,
			wantErr: "cleanup failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := afero.NewMemMapFs()
			require.NoError(t, base.MkdirAll("/project", 0755))

			err := WriteDefault(tt.fs(base), "/project")
			require.Error(t, err)
			assert.ErrorIs(t, err, errDiskFull)
			assert.NotErrorIs(t, err, ErrConfigExists)
			assert.Contains(t, err.Error(), tt.wantErr)

			exists, err := afero.Exists(base, "/project/"+FileName)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, exists)
		})
	}
}
