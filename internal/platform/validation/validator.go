package validation

// Validator checks a struct and returns field errors keyed by json field name.
// A nil map means the struct is valid.
type Validator interface {
	ValidateStruct(s any) map[string]string
}
