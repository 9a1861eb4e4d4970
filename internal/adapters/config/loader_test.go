package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modlock/internal/adapters/config"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	path := writeFile(t, t.TempDir(), "mods.yaml", `
Version:
  - "1.20"
  - "1.20.1"
Mods:
  - https://www.curseforge.com/minecraft/mc-mods/jei
  - https://www.curseforge.com/minecraft/mc-mods/create:
      - https://www.curseforge.com/minecraft/mc-mods/flywheel
  - https://example.com/files/optifine.jar
`)

	list, err := config.NewLoader(log).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.VersionConstraint{"1.20", "1.20.1"}, list.Version)
	assert.Equal(t, []domain.ModReference{
		"https://www.curseforge.com/minecraft/mc-mods/jei",
		"https://www.curseforge.com/minecraft/mc-mods/create",
		"https://www.curseforge.com/minecraft/mc-mods/flywheel",
		"https://example.com/files/optifine.jar",
	}, list.References())
}

func TestLoader_Load_FlowStyleDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	path := writeFile(t, t.TempDir(), "mods.yaml",
		"Mods: [{http://site/mod-x: []}, http://direct/file.jar]\nVersion: [\"1.20\"]\n")

	list, err := config.NewLoader(log).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.VersionConstraint{"1.20"}, list.Version)
	require.Equal(t, domain.NodeList, list.Mods.Kind)
	require.Len(t, list.Mods.Items, 2)
	assert.Equal(t, domain.NodeMap, list.Mods.Items[0].Kind)
	assert.Equal(t, domain.NodeList, list.Mods.Items[0].Entries[0].Value.Kind)
	assert.Equal(t, []domain.ModReference{"http://site/mod-x", "http://direct/file.jar"}, list.References())
}

func TestLoader_Load_ScalarVersionAndAliases(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	path := writeFile(t, t.TempDir(), "mods.yaml", `
Version: "1.19.2"
Mods:
  shared: &common
    - a
    - b
  again: *common
`)

	list, err := config.NewLoader(log).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.VersionConstraint{"1.19.2"}, list.Version)
	assert.Equal(t, []string{"shared", "a", "b", "again", "a", "b"}, list.Mods.Flatten())
	assert.Equal(t, []domain.ModReference{"shared", "a", "b", "again"}, list.References())
}

func TestLoader_Load_EmptyModsWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	path := writeFile(t, t.TempDir(), "mods.yaml", "Version: []\nMods: []\n")

	list, err := config.NewLoader(log).Load(path)
	require.NoError(t, err)
	assert.Empty(t, list.References())
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected error
	}{
		{
			name:     "missing mods",
			content:  "Version: [\"1.20\"]\n",
			expected: domain.ErrModListInvalid,
		},
		{
			name:     "missing version",
			content:  "Mods: [a]\n",
			expected: domain.ErrModListInvalid,
		},
		{
			name:     "version mapping",
			content:  "Version: {a: b}\nMods: [a]\n",
			expected: domain.ErrModListInvalid,
		},
		{
			name:     "malformed yaml",
			content:  "Mods: [a\n",
			expected: domain.ErrModListInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			log := mocks.NewMockLogger(ctrl)

			path := writeFile(t, t.TempDir(), "mods.yaml", tt.content)

			_, err := config.NewLoader(log).Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}

func TestLoader_Load_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	_, err := config.NewLoader(log).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModListNotFound))
}
