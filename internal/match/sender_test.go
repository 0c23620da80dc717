package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSenderAddress_BottomMostWins(t *testing.T) {
	text := `De: Fidel Castro <forwarder@ohmyshower.es>
Enviado el: lunes, 29 de septiembre de 2025 12:52

De: generalife maracena <dist.generalife@gmail.com>
Enviado: lunes, 29 de septiembre de 2025 12:49

Te indico pedido:
1 plato ducha nature 140x80 BLANCO`

	assert.Equal(t, "dist.generalife@gmail.com", SenderAddress(text))
}

func TestSenderAddress_Formats(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bracketed address", "De: Nombre Apellido <pedidos@example.es>", "pedidos@example.es"},
		{"standalone address", "De: pedidos@example.es", "pedidos@example.es"},
		{"bold markdown", "**De:** Nombre <Pedidos@Example.es>", "pedidos@example.es"},
		{"bracket preferred over standalone", "De: ventas@otra.es <pedidos@example.es>", "pedidos@example.es"},
		{"leading whitespace", "   de: <pedidos@example.es>", "pedidos@example.es"},
		{"no de line", "Te indico pedido: 2 platos", ""},
		{"empty text", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SenderAddress(tt.text))
		})
	}
}

func TestSenderAddress_StartOfLineWithoutAddressStopsSearch(t *testing.T) {
	// A quoted header with a blank sender ends the start-of-line pass
	// even though an older header above it has a usable address.
	text := `De: antiguo remitente <viejo@example.es>
Asunto: pedido

De: Fidel Castro <>
Enviado el: lunes`

	// The bottom-most quoted header is the original sender. Its address
	// slot is empty, so older headers further up must not be substituted.
	assert.Equal(t, "", SenderAddress(text))
}

func TestSenderAddress_InlineHeaderBlock(t *testing.T) {
	text := "pedido urgente. De: Daniel Montesinos <brosmovi@hotmail.com> Enviado el: lunes"
	assert.Equal(t, "brosmovi@hotmail.com", SenderAddress(text))
}
