package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSections(t *testing.T) {
	content := `# Введение
Это введение.

## Интерфейс
Требования к интерфейсу.

Ещё про интерфейс.

## Оплата
Как происходит оплата.
`

	sections := SplitSections(content)
	require.Len(t, sections, 3)

	assert.True(t, strings.HasPrefix(sections[0], "# Введение"))
	assert.True(t, strings.HasPrefix(sections[1], "## Интерфейс"))
	assert.True(t, strings.HasPrefix(sections[2], "## Оплата"))
	assert.Contains(t, sections[1], "Ещё про интерфейс")
}

func TestSplitSections_NoHeadings(t *testing.T) {
	sections := SplitSections("Просто текст без заголовков.\nВторая строка.")

	require.Len(t, sections, 1)
	assert.Equal(t, "Просто текст без заголовков.\nВторая строка.", sections[0])
}

func TestSplitSections_LeadingText(t *testing.T) {
	sections := SplitSections("Преамбула до заголовков.\n\n# Раздел\nСодержание.")

	require.Len(t, sections, 2)
	assert.Equal(t, "Преамбула до заголовков.", sections[0])
}

func TestSplitSections_Empty(t *testing.T) {
	assert.Empty(t, SplitSections(""))
	assert.Empty(t, SplitSections("\n\n\n"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tz.md")
	require.NoError(t, os.WriteFile(path, []byte("# Раздел\nТекст."), 0o644))

	sections, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, sections, 1)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}

func TestLoadFile_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.md")
	require.NoError(t, os.WriteFile(path, []byte("  \n\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
}
