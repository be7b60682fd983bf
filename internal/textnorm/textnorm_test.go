package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cartão  de CRÉDITO", "cartao de credito"},
		{"  Olá!  ", "ola!"},
		{"açaí no ônibus", "acai no onibus"},
		{"R$ 1.000,00 em 10×", "r$ 1.000,00 em 10×"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestHasWordPrefix(t *testing.T) {
	assert.True(t, HasWordPrefix("oi", "oi"))
	assert.True(t, HasWordPrefix("oi, tudo bem?", "oi"))
	assert.True(t, HasWordPrefix("bom dia pessoal", "bom dia"))
	assert.False(t, HasWordPrefix("oito reais de pao", "oi"))
	assert.False(t, HasWordPrefix("hidratante 30 reais", "hi"))
	assert.False(t, HasWordPrefix("menu", "menus"))
}
