package gdocai

import (
	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// invoiceEntityFields maps Document AI invoice parser entity types onto
// invoice field names. Types not listed here keep their own name.
var invoiceEntityFields = map[string]string{
	"invoice_id":       "invoice_number",
	"supplier_name":    "vendor_name",
	"supplier_address": "vendor_address",
	"supplier_iban":    "account_number",
	"receiver_name":    "customer_name",
	"receiver_address": "customer_address",
	"remit_to_address": "billing_address",
	"ship_to_address":  "shipping_address",
	"supplier_email":   "email_from",
	"receiver_email":   "email_to",
	"payment_terms":    "additional_info",
	"line_item":        "line_items",
}

// ExtractCustomExtractorFields extracts entities from custom extractors into a map
// Recursively handles any level of nested properties and handles duplicate keys
func ExtractCustomExtractorFields(docProto *documentaipb.Document) map[string]interface{} {
	fields := make(map[string]interface{})

	if docProto == nil || len(docProto.Entities) == 0 {
		return fields
	}

	for _, entity := range docProto.Entities {
		if entity.Type == "" {
			continue
		}
		processEntity(entity, fields)
	}

	return fields
}

// InvoiceFields returns the document's extractor entities keyed by invoice
// field name. Entities the invoice parser names differently are renamed,
// and an entity already carrying the field name wins over a renamed one.
func InvoiceFields(docProto *documentaipb.Document) map[string]interface{} {
	entities := ExtractCustomExtractorFields(docProto)
	fields := make(map[string]interface{}, len(entities))
	for key, value := range entities {
		if _, renamed := invoiceEntityFields[key]; !renamed {
			fields[key] = value
		}
	}
	for key, name := range invoiceEntityFields {
		value, ok := entities[key]
		if !ok {
			continue
		}
		if _, exists := fields[name]; !exists {
			fields[name] = value
		}
	}
	return fields
}

// processEntity handles a single entity and adds it to the provided fields map
// This function works recursively to handle any level of nesting
func processEntity(entity *documentaipb.Document_Entity, fields map[string]interface{}) {
	key := entity.Type
	value := entity.MentionText

	if len(entity.Properties) == 0 {
		addValueToMap(fields, key, value)
		return
	}

	var propMap map[string]interface{}
	if existing, exists := fields[key]; exists {
		if existingMap, ok := existing.(map[string]interface{}); ok {
			propMap = existingMap
		} else {
			// Keep the earlier plain value under a reserved key
			propMap = map[string]interface{}{"_value": existing}
		}
	} else {
		propMap = make(map[string]interface{})
		if value != "" {
			propMap["_value"] = value
		}
	}

	for _, prop := range entity.Properties {
		processEntity(prop, propMap)
	}

	fields[key] = propMap
}

// addValueToMap adds a value to a map, handling duplicates by converting to arrays
func addValueToMap(fields map[string]interface{}, key string, value string) {
	if key == "" {
		return
	}

	existing, exists := fields[key]
	if !exists {
		if value != "" {
			fields[key] = value
		} else {
			fields[key] = make(map[string]interface{})
		}
		return
	}

	if value == "" {
		return
	}
	switch v := existing.(type) {
	case string:
		if v != value {
			fields[key] = []string{v, value}
		}
	case []string:
		if !containsString(v, value) {
			fields[key] = append(v, value)
		}
	case map[string]interface{}:
		addValueToMap(v, "_value", value)
	}
}
