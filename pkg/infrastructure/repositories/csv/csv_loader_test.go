package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/faraid/pkg/application/dto"
)

func TestLoader_ReadHeirs(t *testing.T) {
	input := `category_id,quantity,blocking_reason,status
3,1,,
1,1,murder,
16, 2,,khuntsa
`
	lines, err := NewLoader().ReadHeirs(strings.NewReader(input))
	require.NoError(t, err)

	want := []dto.HeirLine{
		{CategoryID: 3, Quantity: 1},
		{CategoryID: 1, Quantity: 1, BlockingReason: "murder"},
		{CategoryID: 16, Quantity: 2, Status: "khuntsa"},
	}
	assert.Equal(t, want, lines)
}

func TestLoader_ReadHeirsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"header_only", "category_id,quantity,blocking_reason,status\n", "at least one data row"},
		{"wrong_header", "id,qty,reason,status\n1,1,,\n", "header mismatch"},
		{"bad_quantity", "category_id,quantity,blocking_reason,status\n1,two,,\n", "row 2: invalid quantity"},
		{"bad_category", "category_id,quantity,blocking_reason,status\nson,1,,\n", "row 2: invalid category_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().ReadHeirs(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoader_LoadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	content := `problem,estate,category_id,quantity,blocking_reason,status
father,600,2,1,,
father,,1,1,,
son,900,4,1,,
father,600,18,1,,
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	batch, err := NewLoader().LoadBatch(path)
	require.NoError(t, err)
	require.Len(t, batch.Problems, 2)

	assert.Equal(t, "father", batch.Problems[0].Name)
	assert.Equal(t, "600", batch.Problems[0].Estate)
	assert.Len(t, batch.Problems[0].Heirs, 3)
	assert.Equal(t, "900", batch.Problems[1].Estate)
	assert.Equal(t, 4, batch.Problems[1].Heirs[0].CategoryID)
}

func TestLoader_BatchConflictingEstate(t *testing.T) {
	input := "problem,estate,category_id,quantity,blocking_reason,status\na,100,1,1,,\na,200,16,1,,\n"
	_, err := NewLoader().ReadBatch(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting estates")
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadHeirs(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open heirs file")
}
