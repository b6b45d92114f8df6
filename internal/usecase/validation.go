package usecase

import (
	"strings"

	"github.com/vendaflow/pipecrm/internal/entity"
)

func ValidateAddLeadInput(input AddLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Company) == "" {
		errors = append(errors, ValidationError{"company", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "must contain a single @ separator"})
	}

	if input.Value < 0 {
		errors = append(errors, ValidationError{"value", "must be non-negative"})
	}

	if input.Priority != "" && !entity.IsValidPriority(entity.Priority(input.Priority)) {
		errors = append(errors, ValidationError{"priority", "must be low, medium or high"})
	}

	return errors
}

// isValidEmail exige exatamente um @ com texto dos dois lados.
// Validação de deliverability é problema do provedor de email, não nosso.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

var validActionTypes = map[string]bool{
	"email":   true,
	"call":    true,
	"meeting": true,
}

func IsValidActionType(actionType string) bool {
	return validActionTypes[actionType]
}
