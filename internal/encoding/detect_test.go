package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/fleet/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader(t *testing.T) {
	const text = "fecha;placa;tipo_gasto;monto;comentarios\n03-03-2025;1234ABC;reparación;1.200,00;embrague\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "UTF8", input: []byte(text)},
		{name: "UTF8BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, text...)},
		{name: "Windows1252", input: latin1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := readAll(t, tt.input)
			assert.Equal(t, text, got)
		})
	}
}

func TestNewUTF8Reader_ReportsCharset(t *testing.T) {
	_, charset := readAll(t, []byte("placa;monto\n"))
	assert.Equal(t, "UTF-8", charset)
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	// Longer than the sniffed prefix.
	line := "01-03-2025;1234ABC;combustible;80,00;\n"
	input := bytes.Repeat([]byte(line), 300)

	got, _ := readAll(t, input)
	assert.Equal(t, string(input), got)
}
