package xlsx_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/go-theft-auto/datagrid"
	"github.com/go-theft-auto/datagrid/source/xlsx"
)

// createVehicleBook builds a workbook with a header row and three vehicles.
//
//	A1: "Name"    B1: "Price"  C1: "Stock"
//	A2: "Infernus" B2: 95000   C2: TRUE
//	A3: "Banshee"  B3: 45000.5 C3: FALSE
//	A4: "Sabre"
func createVehicleBook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Name")
	f.SetCellValue(sheet, "B1", "Price")
	f.SetCellValue(sheet, "C1", "Stock")
	f.SetCellValue(sheet, "A2", "Infernus")
	f.SetCellValue(sheet, "B2", 95000)
	f.SetCellValue(sheet, "C2", true)
	f.SetCellValue(sheet, "A3", "Banshee")
	f.SetCellValue(sheet, "B3", 45000.5)
	f.SetCellValue(sheet, "C3", false)
	f.SetCellValue(sheet, "A4", "Sabre")
	return f
}

func TestSheet_ReadsHeaderAndValues(t *testing.T) {
	f := createVehicleBook(t)
	defer f.Close()

	s, err := xlsx.New(f, "", xlsx.WithHeaderRow(true))
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", s.Name())
	assert.Equal(t, 3, s.RowCount())
	assert.Equal(t, 3, s.Columns())
	assert.Equal(t, "Price", s.Header(1))
	assert.Equal(t, "D", s.Header(3), "columns past the header row use letters")

	v, err := s.CellValue(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Infernus", v)

	v, err = s.CellValue(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(95000), v)

	v, err = s.CellValue(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 45000.5, v)

	v, err = s.CellValue(2, 0)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = s.CellValue(1, 2)
	require.NoError(t, err)
	assert.Nil(t, v, "empty cells read as nil")

	_, err = s.CellValue(0, 3)
	assert.ErrorIs(t, err, xlsx.ErrOutOfRange)
}

func TestSheet_RawStrings(t *testing.T) {
	f := createVehicleBook(t)
	defer f.Close()

	s, err := xlsx.New(f, "Sheet1", xlsx.WithHeaderRow(true), xlsx.WithRawStrings())
	require.NoError(t, err)

	v, err := s.CellValue(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "95000", v)
}

func TestSheet_PushWritesWorkbook(t *testing.T) {
	f := createVehicleBook(t)
	defer f.Close()

	s, err := xlsx.New(f, "Sheet1", xlsx.WithHeaderRow(true))
	require.NoError(t, err)

	assert.False(t, s.IsRowDirty(2))
	require.NoError(t, s.PushCellValue(1, 2, 12000))
	assert.True(t, s.IsRowDirty(2))

	v, err := s.CellValue(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), v)

	got, err := f.GetCellValue("Sheet1", "B4")
	require.NoError(t, err)
	assert.Equal(t, "12000", got)

	assert.ErrorIs(t, s.PushCellValue(9, 0, "x"), xlsx.ErrOutOfRange)
}

func TestSheet_RowsAddedAndRemoved(t *testing.T) {
	f := createVehicleBook(t)
	defer f.Close()

	s, err := xlsx.New(f, "Sheet1", xlsx.WithHeaderRow(true), xlsx.WithDefaults("New", 0))
	require.NoError(t, err)

	s.NotifyRowAdded(1)
	assert.Equal(t, 4, s.RowCount())
	assert.True(t, s.IsRowDirty(1))
	v, err := s.CellValue(0, 2)
	require.NoError(t, err)
	assert.Equal(t, "Banshee", v, "rows after the insert shift down")
	got, err := f.GetCellValue("Sheet1", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Banshee", got)

	s.NotifyRowRemoved(1)
	assert.Equal(t, 3, s.RowCount())
	assert.False(t, s.IsRowDirty(1))
	v, err = s.CellValue(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "Banshee", v)

	assert.Equal(t, []any{"New", 0}, s.DefaultValues(3))
}

func TestSheet_SaveClearsDirtyRows(t *testing.T) {
	f := createVehicleBook(t)
	path := filepath.Join(t.TempDir(), "vehicles.xlsx")

	s, err := xlsx.New(f, "Sheet1", xlsx.WithHeaderRow(true))
	require.NoError(t, err)
	require.NoError(t, s.PushCellValue(0, 0, "Cheetah"))
	require.NoError(t, s.Save(path))
	assert.False(t, s.IsRowDirty(0))
	require.NoError(t, s.Close())

	reopened, err := xlsx.Open(path, "Sheet1", xlsx.WithHeaderRow(true))
	require.NoError(t, err)
	defer reopened.Close()
	v, err := reopened.CellValue(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Cheetah", v)
}

func TestSheet_DrivesVirtualGrid(t *testing.T) {
	f := createVehicleBook(t)
	defer f.Close()

	s, err := xlsx.New(f, "Sheet1", xlsx.WithHeaderRow(true))
	require.NoError(t, err)

	g := datagrid.NewGrid(datagrid.WithBounds(datagrid.Rect{W: 400, H: 300}))
	for c := range s.Columns() {
		_, err := g.Columns().Add(s.Header(c))
		require.NoError(t, err)
	}
	require.NoError(t, g.SetDataSource(s))

	assert.Equal(t, 3, g.Rows().Len())
	assert.Equal(t, 0, g.Rows().UnsharedCount(), "virtual rows stay shared")
	assert.Equal(t, "Banshee", g.FormattedValue(0, 1))

	require.NoError(t, g.SetCellValue(0, 2, "Sabre Turbo"))
	got, err := f.GetCellValue("Sheet1", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Sabre Turbo", got)
	assert.Equal(t, 0, g.Rows().UnsharedCount())
}
