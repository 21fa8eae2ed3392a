package validation

// ProjectValidator provides validation for Project-related operations
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{
		validator: NewValidator(),
	}
}

// ValidateProjectName validates a project name for creation or rename
func (pv *ProjectValidator) ValidateProjectName(name string) error {
	validationError := NewValidationError()

	trimmedName := pv.validator.TrimAndValidateString(name)

	if !pv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("project_name")
		return validationError
	}

	if !pv.validator.IsValidProjectNameLength(trimmedName) {
		validationError.AddInvalidLengthError("project_name", trimmedName, 1, 255)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateProjectForRename validates a rename operation. Name uniqueness is
// deliberately not re-checked here; only creation enforces it.
func (pv *ProjectValidator) ValidateProjectForRename(id int64, name string) error {
	validationError := NewValidationError()

	if !pv.validator.IsValidID(id) {
		validationError.AddInvalidValueError("project_id", id, "must be a positive integer")
	}

	if nameErr := pv.ValidateProjectName(name); nameErr != nil {
		if nameValidationErr, ok := nameErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, nameValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateProjectID validates a project ID
func (pv *ProjectValidator) ValidateProjectID(id int64) error {
	if !pv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("project_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidProjectName returns a cleaned project name if valid
func (pv *ProjectValidator) GetValidProjectName(name string) (string, error) {
	if err := pv.ValidateProjectName(name); err != nil {
		return "", err
	}
	return pv.validator.TrimAndValidateString(name), nil
}
