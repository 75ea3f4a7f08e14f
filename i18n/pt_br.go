package i18n

// PtBR is the Brazilian Portuguese message catalog.
var PtBR = register("pt-BR", map[Code]string{
	CodeCastFailed:          "não é um {{.type}} válido",
	CodeRequired:            "é obrigatório",
	CodeLengthMin:           "o comprimento deve ser no mínimo {{.min}}, obtido {{.actual}}",
	CodeLengthMax:           "o comprimento deve ser no máximo {{.max}}, obtido {{.actual}}",
	CodeLengthIs:            "o comprimento deve ser exatamente {{.is}}, obtido {{.actual}}",
	CodeLengthUnsupported:   "não possui comprimento mensurável",
	CodeNumberInvalid:       "não é um número",
	CodeNumberGreaterThan:   "deve ser maior que {{.target}}",
	CodeNumberGreaterEqual:  "deve ser maior ou igual a {{.target}}",
	CodeNumberLessThan:      "deve ser menor que {{.target}}",
	CodeNumberLessEqual:     "deve ser menor ou igual a {{.target}}",
	CodeNumberEqualTo:       "deve ser igual a {{.target}}",
	CodeNumberNotEqualTo:    "não deve ser igual a {{.target}}",
	CodeFormat:              "possui um formato inválido",
	CodeInclusion:           "deve ser um de: {{.values}}",
	CodeExclusion:           "não deve ser um de: {{.values}}",
	CodeSubset:              "deve ser um subconjunto de: {{.values}}",
	CodeSubsetNotList:       "deve ser uma lista",
	CodeAcceptance:          "deve ser aceito",
	CodeConfirmationMissing: "a confirmação está ausente",
	CodeConfirmation:        "não corresponde à confirmação",
})
