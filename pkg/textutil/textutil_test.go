package textutil_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gimnasio-api/pkg/textutil"
)

func TestSearchKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"acentos", []string{"José", "Pérez"}, "jose perez"},
		{"eñe conserva base", []string{"Muñoz"}, "munoz"},
		{"espacios", []string{"  Ana  ", "María "}, "ana maria"},
		{"cedula", []string{"V-12345678"}, "v-12345678"},
		{"vacio", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textutil.SearchKey(tt.parts...))
		})
	}
}

func TestNumber_FormatoEspanol(t *testing.T) {
	assert.Equal(t, "12.345,50", textutil.Number(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "Bs. 0,00", textutil.Bs(decimal.Zero))
	assert.Equal(t, "$ 35,00", textutil.USD(decimal.NewFromInt(35)))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Febrero", textutil.MonthName(time.February))
	assert.Equal(t, "Diciembre", textutil.MonthName(time.December))
	assert.Equal(t, "", textutil.MonthName(0))
}
