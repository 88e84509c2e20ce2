package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhatsApp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11 91234-5678", "5511912345678"},
		{"5511912345678", "5511912345678"},
		{"+55 (11) 91234-5678", "5511912345678"},
		{"(21) 3333-4444", "552133334444"},
		{"", "55"},
		{"abc", "55"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeWhatsApp(tt.in))
		})
	}
}

func TestNormalizeWhatsApp_Idempotent(t *testing.T) {
	once := NormalizeWhatsApp("11 91234-5678")
	assert.Equal(t, once, NormalizeWhatsApp(once))
}
