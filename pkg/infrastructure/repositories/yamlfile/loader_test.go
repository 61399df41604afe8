package yamlfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadRequest(t *testing.T) {
	path := writeFile(t, `
name: gharrawain
estate: "120000000"
heirs:
  - category_id: 3
    quantity: 1
  - category_id: 18
    quantity: 1
  - category_id: 2
    quantity: 1
    blocking_reason: ""
`)
	req, err := NewLoader().LoadRequest(path)
	require.NoError(t, err)

	assert.Equal(t, "gharrawain", req.Name)
	assert.Equal(t, "120000000", req.Estate)
	require.Len(t, req.Heirs, 3)
	assert.Equal(t, 18, req.Heirs[1].CategoryID)
}

func TestLoader_LoadRequestRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, `
estate: "100"
heirs:
  - category: son
    quantity: 1
`)
	_, err := NewLoader().LoadRequest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse request file")
}

func TestLoader_LoadChain(t *testing.T) {
	path := writeFile(t, `
estate: "960"
first_heirs:
  - {category_id: 3, quantity: 1}
  - {category_id: 1, quantity: 1}
second_deceased: 3
second_heirs:
  - {category_id: 1, quantity: 1}
`)
	req, err := NewLoader().LoadChain(path)
	require.NoError(t, err)
	assert.Equal(t, 3, req.SecondDeath)
	assert.Len(t, req.FirstHeirs, 2)
	assert.Len(t, req.SecondHeirs, 1)
}

func TestLoader_LoadBatch(t *testing.T) {
	path := writeFile(t, `
problems:
  - name: a
    estate: "100"
    heirs: [{category_id: 1, quantity: 2}]
  - name: b
    estate: "200"
    heirs: [{category_id: 16, quantity: 1}]
`)
	req, err := NewLoader().LoadBatch(path)
	require.NoError(t, err)
	require.Len(t, req.Problems, 2)
	assert.Equal(t, "b", req.Problems[1].Name)
}

func TestLoader_EmptyInputs(t *testing.T) {
	_, err := NewLoader().LoadBatch(writeFile(t, "problems: []\n"))
	assert.ErrorContains(t, err, "lists no problems")

	_, err = NewLoader().LoadRequest(writeFile(t, ""))
	assert.ErrorContains(t, err, "empty document")

	_, err = NewLoader().LoadChain(writeFile(t, "estate: \"10\"\n"))
	assert.ErrorContains(t, err, "second_deceased")
}
