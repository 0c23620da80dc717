package oracle

import (
	"fmt"
	"strings"

	"github.com/ohmyshower/order-cli/internal/sku"
)

// Prompts are written in the mixed Spanish/English register the order
// emails themselves use. Each one pins the exact JSON shape expected back;
// responses that deviate fail validation and are retried.

const customerPrompt = `Analiza el siguiente correo de pedido y extrae el nombre del cliente que realiza el pedido.

Reglas:
- Devuelve todos los nombres candidatos que puedan identificar al cliente (empresa o persona), ordenados del más probable al menos probable.
- Ignora los nombres de nuestro propio personal y de nuestra empresa.
- Clientes fijos: si el correo procede de NEWKER, responde customer_id 2387 con needs_fuzzy_match false. Si procede de FERROLAN, es el cliente ALANTA: customer_id 2856 con needs_fuzzy_match false.

Responde SOLO con JSON:
{"customer_names": ["..."], "customer_id": null, "customer_name": null, "needs_fuzzy_match": true}

CORREO:
%s`

const orderLinesSystem = `Eres un asistente que extrae líneas de pedido de correos de platos de ducha.

Familias de producto disponibles:
%s

Colores disponibles:
%s

Para cada línea de pedido extrae: family (descripción de la familia), length y width (dimensiones en cm, enteros), color (texto o código RAL de 4 dígitos) y quantity (entero positivo).

Responde SOLO con JSON:
{"order_lines": [{"family": "...", "length": 0, "width": 0, "color": "...", "quantity": 0}]}`

const orderLinesPrompt = `Extrae las líneas de pedido del siguiente correo.

CORREO:
%s`

const referencesPrompt = `Extrae los números de referencia del pedido del siguiente correo (referencia del cliente %d, no nuestros números internos).

Reglas:
- Un número de referencia por línea de pedido cuando el cliente los indica por línea.
- Si el cliente da una única referencia para todo el pedido, devuelve solo esa.
- Si no hay referencias, devuelve una lista vacía.

Responde SOLO con JSON:
{"reference_nos": ["..."]}

CORREO:
%s`

const valvesPrompt = `El siguiente correo contiene un pedido con %d línea(s) de producto. Determina para cada línea si el cliente pide válvula de desagüe y de qué tipo.

Valores permitidos por línea: "no", "Yes", "Horizontal valve", "Vertical valve", "Rectangular valve".

Responde SOLO con JSON:
{"valves": ["no"]}

CORREO:
%s`

const addressPrompt = `Extrae la dirección de entrega del siguiente correo de pedido.

Cliente: %s (id %s)

Reglas:
- Solo direcciones de entrega escritas en el correo; no inventes ninguna.
- Si aparece un teléfono o una persona de contacto junto a la dirección de entrega, inclúyelos.
- Si no hay dirección de entrega, devuelve null en todos los campos.

Responde SOLO con JSON:
{"delivery_address": null, "telephone_number": null, "contact_name": null}

CORREO:
%s`

const shipDatesPrompt = `Extrae del siguiente correo las fechas de entrega comprometidas con el cliente (una por línea de pedido si se indican por línea, o una sola si es para todo el pedido) y el identificador de entrada del hilo reenviado si existe.

Formato de fecha: YYYY-MM-DD. Si no hay fechas, devuelve una lista vacía.

Responde SOLO con JSON:
{"cpsds": ["2025-01-31"], "entry_id": null}

CORREO:
%s`

const optionsPrompt = `Determina si el siguiente correo pide accesorios para los platos de ducha: rejillas o tapas de desagüe ("rejilla", "cubre válvula", "tapa").

Colores disponibles:
%s

Si hay accesorios, extrae color, quantity (entero, por defecto 1) y, solo para la familia Premium, size y type ("grid" o "cover").

Responde SOLO con JSON:
{"has_options": false, "color": null, "quantity": 1, "size": null, "type": null}

CORREO:
%s`

func familiesListing(families []sku.Family) string {
	lines := make([]string, len(families))
	for i, f := range families {
		lines[i] = "- " + f.Description
	}
	return strings.Join(lines, "\n")
}

func colorsListing(colors []sku.Color) string {
	lines := make([]string, len(colors))
	for i, c := range colors {
		lines[i] = "- " + c.Description
	}
	return strings.Join(lines, "\n")
}

func formatAddressPrompt(emailText string, customerID *int, customerName *string) string {
	id := "NO DISPONIBLE"
	if customerID != nil {
		id = fmt.Sprintf("%d", *customerID)
	}
	name := "NO DISPONIBLE"
	if customerName != nil {
		name = *customerName
	}
	return fmt.Sprintf(addressPrompt, name, id, emailText)
}
