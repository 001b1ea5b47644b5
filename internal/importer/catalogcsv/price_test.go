package catalogcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "PlainDot", input: "10.50", want: 1050},
		{name: "PlainComma", input: "10,50", want: 1050},
		{name: "Integer", input: "10", want: 1000},
		{name: "CurrencySign", input: "$18.50", want: 1850},
		{name: "CurrencySignSpaced", input: " $ 18.50 ", want: 1850},
		{name: "EuropeanThousands", input: "1.234,56", want: 123456},
		{name: "AmericanThousands", input: "1,234.56", want: 123456},
		{name: "CommaOnlyThousands", input: "1,234", want: 123400},
		{name: "Zero", input: "0", want: 0},
		{name: "Empty", input: "", wantErr: true},
		{name: "Negative", input: "-10.00", wantErr: true},
		{name: "Garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrice(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
