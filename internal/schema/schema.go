package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Errors maps field names to the messages explaining why each field was
// rejected. It is the structured validation outcome of every schema.
type Errors map[string][]string

func (e Errors) Error() string {
	return "invalid input"
}

// Add appends a message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Check validates a parsed input struct and converts any violations into a
// field-keyed Errors value. It returns nil when the struct is valid.
func Check(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := Errors{}
	for _, fe := range verrs {
		fields.Add(fe.Field(), fe.Translate(Translator))
	}
	return fields
}

// checkInto folds tag violations into an existing field-error map so decode
// and validation messages come back in one response. A field that already
// failed decoding keeps its decode message only.
func checkInto(fields Errors, v any) error {
	err := Check(v)
	if err == nil {
		return nil
	}
	var tagged Errors
	if !errors.As(err, &tagged) {
		return err
	}
	for field, msgs := range tagged {
		if _, seen := fields[field]; !seen {
			fields[field] = msgs
		}
	}
	return nil
}
