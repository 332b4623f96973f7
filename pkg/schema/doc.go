// Package schema declares ordered sets of named fields and processes raw
// input mappings against them.
//
// Each Field binds one converter.Converter and an ordered list of
// validator.Validator values. Processing a field runs in two phases:
// conversion turns the raw value into a typed value, then validators check
// (and optionally normalise) it. A conversion failure is final for the field;
// validators stop at the first failure unless the field collects all errors.
//
// Every declared field is attempted on every run. After processing, each
// field name appears in exactly one of Result.Value or Result.Errors, and
// both mappings iterate in declaration order regardless of the order of the
// raw input.
//
// # Declaring schemas
//
//	address := schema.MustNew("address",
//	    schema.Fields(
//	        schema.String("city", schema.Validate(validator.NotEmpty())),
//	        schema.String("zip", schema.Optional()),
//	    ),
//	)
//
//	person := schema.MustNew("person",
//	    schema.Fields(
//	        schema.String("name", schema.Label("Name")),
//	        schema.Int("age", schema.Validate(validator.Min(0))),
//	        schema.Object("address", address),
//	        schema.Bool("subscribe", schema.Default(false)),
//	    ),
//	)
//
// Derived schemas copy the parent's fields and apply Override, Fields and
// Omit operations. Inherited fields keep their original positions:
//
//	employee := person.MustExtend("employee",
//	    schema.Override(schema.Int("age", schema.Validate(validator.Min(18)))),
//	    schema.Fields(schema.String("team")),
//	)
//
// # Processing
//
//	res := person.Process(schema.Data{"name": "Ann", "age": "-3"})
//	if !res.IsValid() {
//	    fmt.Println(res.ErrorsFor("age")) // [must be >= 0]
//	}
//
// Schemas and fields are immutable after construction and safe for
// concurrent use. A Result belongs to a single run and can be processed once.
package schema
