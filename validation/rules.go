// Package validation holds the rule set that gates submission of an edited log.
//
// Rules are declared as `validate` tags on models.LogDraft and evaluated by
// go-playground/validator. Results are keyed by the draft's JSON field names so they can
// be shown next to the matching form control. These checks are advisory; the API
// re-validates every payload.
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"dailylog/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Form field names, as used in Errors and for touched tracking.
const (
	FieldDate            = "date"
	FieldProject         = "projectId"
	FieldEmployees       = "employees"
	FieldStartTime       = "startTime"
	FieldEndTime         = "endTime"
	FieldWorkDescription = "workDescription"
)

// AllFields lists every validated field in display order.
var AllFields = []string{
	FieldDate,
	FieldProject,
	FieldEmployees,
	FieldStartTime,
	FieldEndTime,
	FieldWorkDescription,
}

var messages = map[string]string{
	FieldDate:            "Date is required",
	FieldProject:         "Project is required",
	FieldEmployees:       "At least one employee is required",
	FieldStartTime:       "Start time is required",
	FieldEndTime:         "End time is required",
	FieldWorkDescription: "Work description is required",
}

const (
	msgBlankEmployee  = "Employee names cannot be blank"
	msgEndBeforeStart = "End time must be after start time"
)

// Errors maps a field name to a human-readable message. An empty map means valid.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the failing field names in a stable order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Options select between the rule variants.
type Options struct {
	// StrictEmployees requires every roster entry to be non-blank. When false blank
	// entries are allowed and dropped at submission, but at least one name must remain.
	StrictEmployees bool
	// RequireEndAfterStart rejects an end time of day that is not after the start time of day.
	RequireEndAfterStart bool
}

// Validator evaluates the rule set against a draft.
type Validator struct {
	validate *validator.Validate
	opts     Options
}

// New builds a Validator with the given rule variants.
func New(opts Options) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("validation: registering notblank: %v", err))
	}

	return &Validator{validate: v, opts: opts}
}

// Validate runs every rule and returns the failing fields.
func (v *Validator) Validate(draft models.LogDraft) Errors {
	errs := Errors{}

	if err := v.validate.Struct(draft); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			// only returned for a nil or non-struct argument
			errs[FieldDate] = err.Error()
			return errs
		}
		for _, fe := range fieldErrs {
			if _, seen := errs[fe.Field()]; seen {
				continue
			}
			errs[fe.Field()] = message(fe.Field())
		}
	}

	if _, failed := errs[FieldEmployees]; !failed {
		if v.opts.StrictEmployees {
			if err := v.validate.Var([]string(draft.Employees), "dive,notblank"); err != nil {
				errs[FieldEmployees] = msgBlankEmployee
			}
		} else if len(draft.Employees.Materialize()) == 0 {
			errs[FieldEmployees] = messages[FieldEmployees]
		}
	}

	if v.opts.RequireEndAfterStart && !hasField(errs, FieldStartTime, FieldEndTime) {
		if minuteOfDay(draft.EndTime) <= minuteOfDay(draft.StartTime) {
			errs[FieldEndTime] = msgEndBeforeStart
		}
	}

	return errs
}

// Field evaluates a single field, for showing an error as soon as a control loses focus.
// It returns "" when the field is valid.
func (v *Validator) Field(draft models.LogDraft, field string) string {
	return v.Validate(draft)[field]
}

func message(field string) string {
	if msg, ok := messages[field]; ok {
		return msg
	}
	return field + " is invalid"
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func hasField(errs Errors, fields ...string) bool {
	for _, f := range fields {
		if _, ok := errs[f]; ok {
			return true
		}
	}
	return false
}
