// Package schemafile declares schemas in YAML (or JSON) documents and builds
// them into *schema.Schema values.
//
// A document lists schemas; each has a name, an ordered list of fields and
// optionally a parent to extend:
//
//	schemas:
//	  - name: address
//	    fields:
//	      - name: city
//	        type: string
//	        validators: [trim, not_empty]
//	      - name: zip
//	        type: string
//	        required: false
//	        validators:
//	          - pattern: '^\d{5}$'
//
//	  - name: person
//	    strict: true
//	    fields:
//	      - {name: name, type: string, label: Name}
//	      - name: age
//	        type: int
//	        validators: [{min: 0}]
//	      - {name: address, type: object, schema: address}
//	      - {name: tags, type: list, items: {type: string}, default: []}
//
//	  - name: employee
//	    extends: person
//	    omit: [tags]
//	    fields:
//	      - {name: age, type: int, validators: [{min: 18}]}
//	      - {name: team, type: string}
//
// In a derived schema a field whose name exists in the parent replaces it in
// place; other fields are appended. Schemas may reference each other in any
// order across documents; references are resolved lazily by Registry.Schema
// and cycles are reported as ErrCycle.
//
// Supported field types: string, int, float, bool, time (format is the
// layout), uuid, object (schema) and list (items.type or items.schema).
//
// Validator rules are either a bare name (not_empty, email, url, trim, lower,
// upper, title, strip_html, collapse_whitespace, unique, isbn) or a single-key
// mapping (min, max, range, length, min_length, max_length, pattern, one_of,
// not_one_of, url). Item validators of list fields go under items.validators
// and are applied to every element.
package schemafile
