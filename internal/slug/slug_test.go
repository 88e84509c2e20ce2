package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Minha Loja", "minha-loja"},
		{"Café da Maria!", "cafe-da-maria"},
		{"  Açaí & Cia  ", "acai-cia"},
		{"Loja 123", "loja-123"},
		{"---", ""},
		{"São João -- Doces", "sao-joao-doces"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromName(tt.name)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.True(t, Valid(got), "FromName output must be a valid slug")
			}
		})
	}
}

func TestFromName_Truncates(t *testing.T) {
	got := FromName(strings.Repeat("ab ", 40))
	assert.LessOrEqual(t, len(got), MaxLen)
	assert.True(t, Valid(got))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("minha-loja"))
	assert.True(t, Valid("loja1"))
	assert.False(t, Valid("Minha-Loja"))
	assert.False(t, Valid("minha--loja"))
	assert.False(t, Valid("-loja"))
	assert.False(t, Valid(""))
}
