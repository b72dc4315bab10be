package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserForm() *Form {
	return NewForm().
		AddField("nome", true, StringValidator(ValidateFullName)).
		AddField("email", true, StringValidator(ValidateEmail)).
		AddField("telefone", true, StringValidator(ValidatePhone)).
		AddField("senha", true, StringValidator(ValidatePassword))
}

func newProjectForm() *Form {
	form := NewForm().
		AddField("nome", true, StringValidator(ValidateProjectName)).
		AddField("verba_disponivel", false, func(v interface{}, _ Record) ValidationResult {
			return ValidateAmount(v)
		}).
		AddField("data_inicio", true, func(v interface{}, r Record) ValidationResult {
			s, _ := v.(string)
			return ValidateStartBeforeExpected(s, r.String("data_previsao"))
		}).
		AddField("data_previsao", true, func(v interface{}, r Record) ValidationResult {
			s, _ := v.(string)
			return ValidateStartBeforeExpected(r.String("data_inicio"), s)
		})
	form.DependsOn("data_inicio", "data_previsao")
	form.DependsOn("data_previsao", "data_inicio")
	return form
}

func TestFormValidationFollowsValue(t *testing.T) {
	form := newUserForm()

	result := form.SetField("email", "not-an-email")
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Message)

	result = form.SetField("email", "user@example.com")
	assert.True(t, result.IsValid)
	assert.True(t, form.Result("email").IsValid)
}

func TestFormIsValidRequiresAllFields(t *testing.T) {
	form := newUserForm()
	assert.False(t, form.IsValid())

	form.SetField("nome", "Maria Souza")
	form.SetField("email", "maria@prefeitura.gov.br")
	form.SetField("telefone", "(11) 91234-5678")
	assert.False(t, form.IsValid(), "password still missing")

	form.SetField("senha", "Abcdef1!")
	assert.True(t, form.IsValid())

	form.SetField("email", "broken@")
	assert.False(t, form.IsValid())
}

func TestFormCrossFieldRevalidation(t *testing.T) {
	form := newProjectForm()
	form.SetField("nome", "Reforma da Escola")
	form.SetField("data_inicio", "2024-06-01")
	form.SetField("data_previsao", "2024-03-01")

	require.False(t, form.Result("data_previsao").IsValid)

	// Pulling the start date back fixes the range on the sibling field too.
	form.SetField("data_inicio", "2024-01-01")
	assert.True(t, form.Result("data_previsao").IsValid)
	assert.True(t, form.Result("data_inicio").IsValid)
}

func TestFormSeedAndValidate(t *testing.T) {
	form := newProjectForm()
	form.Seed(Record{
		"nome":         "Praça Nova",
		"data_inicio":  "2024-01-01",
		"data_previsao": "2024-09-01",
	})

	// Seeding records values without emitting validation messages.
	assert.Empty(t, form.Errors())

	assert.True(t, form.Validate())
	assert.True(t, form.IsValid())

	form.SetField("nome", "ab")
	assert.False(t, form.Validate())
	assert.Equal(t, MsgTooShort, form.Errors()["nome"])
}
