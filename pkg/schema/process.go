package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"time"

	"github.com/dmitrymomot/formkit/pkg/converter"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const messageEqualTo = "validation.equal_to"

type fieldOutcome struct {
	name    string
	outcome Outcome
}

func (s *Schema) run(raw Data) (*Values, *Errors) {
	start := time.Now()
	values := newValues(len(s.fields))
	errs := newErrors()
	outcomes := make([]fieldOutcome, 0, len(s.fields))

	for _, f := range s.fields {
		value, fe, outcome := s.processField(f, raw)
		if fe != nil {
			errs.set(f.name, fe)
		} else {
			values.set(f.name, value)
		}
		outcomes = append(outcomes, fieldOutcome{name: f.name, outcome: outcome})
	}

	if s.checkEquality(values, errs, outcomes) {
		errs.sort(s.Names())
	}

	if s.strict {
		if unknown := s.unknownKeys(raw); len(unknown) > 0 {
			errs.set(UnknownFieldsKey, unknownFieldsError(unknown))
		}
	}

	ctx := context.Background()
	for _, o := range outcomes {
		s.observer.ObserveField(s.name, o.name, o.outcome)
		s.logger.LogAttrs(ctx, slog.LevelDebug, "field processed",
			logger.Schema(s.name),
			logger.Field(o.name),
			logger.Outcome(string(o.outcome)),
		)
	}

	elapsed := time.Since(start)
	valid := errs.Len() == 0
	s.observer.ObserveResult(s.name, valid, elapsed)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "schema processed",
		logger.Schema(s.name),
		logger.Valid(valid),
		slog.Int("failed_fields", errs.Len()),
		logger.Duration(elapsed),
	)

	return values, errs
}

// processField runs the pipeline of a single field: missing-value
// resolution, conversion, then validators.
func (s *Schema) processField(f Field, raw Data) (any, *FieldError, Outcome) {
	input, present := raw[f.name]
	if !present || input == nil {
		if !f.required {
			return f.def, nil, OutcomeDefault
		}
		return nil, &FieldError{Messages: []string{f.requiredMessage()}}, OutcomeMissing
	}

	value, err := f.converter.Convert(input)
	if err != nil {
		return nil, conversionFailure(f, err), OutcomeConversionError
	}

	if len(f.validators) == 0 {
		return value, nil, OutcomeValid
	}

	chain := validator.Chain(f.validators...)
	if f.collectAll(s.collectAll) {
		chain = validator.All(f.validators...)
	}

	value, err = chain.Validate(value)
	if err != nil {
		return nil, validationFailure(f, err), OutcomeValidationError
	}
	return value, nil, OutcomeValid
}

// conversionFailure keeps nested schema errors and per-item failures
// structured; everything else becomes a single message.
func conversionFailure(f Field, err error) *FieldError {
	var ce *converter.ConversionError
	if !errors.As(err, &ce) {
		return &FieldError{Messages: []string{err.Error()}}
	}

	var nested *Errors
	if errors.As(ce.Cause, &nested) {
		return &FieldError{Fields: nested}
	}

	var items converter.ItemErrors
	if errors.As(ce.Cause, &items) {
		fe := &FieldError{Items: make([]ItemError, 0, len(items))}
		for _, item := range items {
			fe.Items = append(fe.Items, ItemError{
				Index: item.Index,
				Err:   conversionFailure(f, item.Err),
			})
		}
		return fe
	}

	return &FieldError{Messages: []string{f.message(ce.TranslationKey, ce.Error())}}
}

func validationFailure(f Field, err error) *FieldError {
	violations := validator.ExtractValidationErrors(err)
	if violations == nil {
		return &FieldError{Messages: []string{err.Error()}}
	}
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, f.message(v.TranslationKey, v.Error()))
	}
	return &FieldError{Messages: messages}
}

// checkEquality applies EqualTo constraints between fields that both
// succeeded. It moves failing fields from values to errs and reports whether
// anything moved.
func (s *Schema) checkEquality(values *Values, errs *Errors, outcomes []fieldOutcome) bool {
	moved := false
	for i, f := range s.fields {
		if f.equalTo == "" {
			continue
		}
		value, ok := values.Get(f.name)
		if !ok {
			continue
		}
		other, ok := values.Get(f.equalTo)
		if !ok {
			continue
		}
		if reflect.DeepEqual(value, other) {
			continue
		}

		target, _ := s.Field(f.equalTo)
		values.delete(f.name)
		errs.set(f.name, &FieldError{Messages: []string{
			f.message(messageEqualTo, fmt.Sprintf("must equal %s", target.Label())),
		}})
		outcomes[i].outcome = OutcomeValidationError
		moved = true
	}
	return moved
}

func (s *Schema) unknownKeys(raw Data) []string {
	var unknown []string
	for key := range raw {
		if _, declared := s.index[key]; !declared {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func unknownFieldsError(keys []string) *FieldError {
	messages := make([]string, len(keys))
	for i, key := range keys {
		messages[i] = fmt.Sprintf("unknown field %q", key)
	}
	return &FieldError{Messages: messages}
}
