package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() AddLeadInput {
	return AddLeadInput{
		Name:      "Ana Souza",
		Company:   "Acme Ltda",
		Email:     "ana@acme.com",
		Value:     12000,
		Priority:  "high",
		CreatedBy: "vendedor-1",
	}
}

func TestValidateAddLeadInputOK(t *testing.T) {
	assert.Empty(t, ValidateAddLeadInput(validInput()))
}

func TestValidateAddLeadInputRequiredFields(t *testing.T) {
	input := validInput()
	input.Name = "  "
	input.Company = ""
	input.Email = ""

	errs := ValidateAddLeadInput(input)

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}

	assert.True(t, fields["name"])
	assert.True(t, fields["company"])
	assert.True(t, fields["email"])
}

func TestValidateAddLeadInputEmail(t *testing.T) {
	cases := map[string]bool{
		"ana@acme.com":  true,
		"ana.acme.com":  false,
		"ana@@acme.com": false,
		"@acme.com":     false,
		"ana@":          false,
	}

	for email, ok := range cases {
		input := validInput()
		input.Email = email

		errs := ValidateAddLeadInput(input)
		if ok {
			assert.Empty(t, errs, email)
		} else {
			assert.NotEmpty(t, errs, email)
		}
	}
}

func TestValidateAddLeadInputValueAndPriority(t *testing.T) {
	input := validInput()
	input.Value = -1
	assert.NotEmpty(t, ValidateAddLeadInput(input))

	input = validInput()
	input.Priority = "urgent"
	assert.NotEmpty(t, ValidateAddLeadInput(input))

	// Prioridade vazia é aceita: o store assume medium.
	input = validInput()
	input.Priority = ""
	assert.Empty(t, ValidateAddLeadInput(input))
}

func TestIsValidActionType(t *testing.T) {
	assert.True(t, IsValidActionType("email"))
	assert.True(t, IsValidActionType("call"))
	assert.True(t, IsValidActionType("meeting"))
	assert.False(t, IsValidActionType("fax"))
	assert.False(t, IsValidActionType(""))
}
