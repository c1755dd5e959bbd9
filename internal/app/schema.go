package app

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// RenderRequestSchema describes RenderInvoiceRequest as a JSON Schema, for API clients.
// Decimal amounts are exchanged as strings.
func RenderRequestSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == decimalType {
				return &jsonschema.Schema{
					Type:    "string",
					Pattern: `^[0-9]+(\.[0-9]+)?$`,
				}
			}
			return nil
		},
	}
	schema := reflector.Reflect(&RenderInvoiceRequest{})
	schema.Title = "Invoice render request"
	return schema
}
