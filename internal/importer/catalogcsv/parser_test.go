package catalogcsv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/importer/catalogcsv"
)

func TestParser_Parse_SpanishSemicolon(t *testing.T) {
	input := strings.Join([]string{
		"Nombre;Precio;Stock;Descripción",
		"Coca-Cola 600ml;$18,50;24;Refresco",
		"Pan Blanco;32,00;10;",
		"Leche 1L;1.234,56;5;Entera",
	}, "\n")

	got, err := catalogcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, catalog.CreateParams{
		Name:        "Coca-Cola 600ml",
		Price:       1850,
		Stock:       24,
		Description: "Refresco",
	}, got[0])

	assert.Equal(t, int64(3200), got[1].Price)
	assert.Empty(t, got[1].Description)

	assert.Equal(t, int64(123456), got[2].Price)
}

func TestParser_Parse_EnglishComma(t *testing.T) {
	input := strings.Join([]string{
		"Name,Price,Stock,Description",
		"Widget,10.50,5,A widget",
		"Gadget,\"1,234.56\",2,",
	}, "\n")

	got, err := catalogcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Widget", got[0].Name)
	assert.Equal(t, int64(1050), got[0].Price)
	assert.Equal(t, int64(123456), got[1].Price)
}

func TestParser_Parse_ExistenciasProfile(t *testing.T) {
	input := strings.Join([]string{
		"Nombre;Precio;Existencias",
		"Jabón;12,00;8",
	}, "\n")

	got, err := catalogcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Jabón", got[0].Name)
	assert.Equal(t, 8, got[0].Stock)
	assert.Empty(t, got[0].Description)
}

func TestParser_Parse_HeaderNotOnFirstRow(t *testing.T) {
	input := strings.Join([]string{
		"Inventario de la tienda;;;",
		";;;",
		"Nombre;Precio;Stock;Descripción",
		"Widget;10,00;3;",
	}, "\n")

	got, err := catalogcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Widget", got[0].Name)
}

func TestParser_Parse_SkipsBlankNameRows(t *testing.T) {
	input := strings.Join([]string{
		"Nombre;Precio;Stock",
		"Widget;10,00;3",
		";;",
		"  ;0;0",
		"Gadget;5,00;1",
	}, "\n")

	got, err := catalogcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Widget", got[0].Name)
	assert.Equal(t, "Gadget", got[1].Name)
}

func TestParser_Parse_Errors(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantMsg string
	}

	tests := []testCase{
		{
			name:    "UnknownHeaders",
			input:   "Foo;Bar;Baz\nx;y;z",
			wantMsg: "no matching catalog format",
		},
		{
			name:    "BadPrice",
			input:   "Nombre;Precio;Stock\nWidget;abc;3",
			wantMsg: "row 2: invalid price",
		},
		{
			name:    "BadStock",
			input:   "Nombre;Precio;Stock\nWidget;10,00;many",
			wantMsg: "row 2: invalid stock",
		},
		{
			name:    "NegativeStock",
			input:   "Nombre;Precio;Stock\nWidget;10,00;-1",
			wantMsg: "row 2: negative stock",
		},
		{
			name:    "NegativePrice",
			input:   "Nombre;Precio;Stock\nWidget;-10,00;1",
			wantMsg: "invalid price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalogcsv.New().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
