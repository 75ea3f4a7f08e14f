package i18n

// EnUS is the base English (US) message catalog.
var EnUS = register("en-US", map[Code]string{
	CodeCastFailed:          "is not a valid {{.type}}",
	CodeRequired:            "is required",
	CodeLengthMin:           "length must be at least {{.min}}, got {{.actual}}",
	CodeLengthMax:           "length must be at most {{.max}}, got {{.actual}}",
	CodeLengthIs:            "length must be exactly {{.is}}, got {{.actual}}",
	CodeLengthUnsupported:   "does not have a measurable length",
	CodeNumberInvalid:       "is not a number",
	CodeNumberGreaterThan:   "must be greater than {{.target}}",
	CodeNumberGreaterEqual:  "must be greater than or equal to {{.target}}",
	CodeNumberLessThan:      "must be less than {{.target}}",
	CodeNumberLessEqual:     "must be less than or equal to {{.target}}",
	CodeNumberEqualTo:       "must be equal to {{.target}}",
	CodeNumberNotEqualTo:    "must not be equal to {{.target}}",
	CodeFormat:              "has an invalid format",
	CodeInclusion:           "must be one of: {{.values}}",
	CodeExclusion:           "must not be one of: {{.values}}",
	CodeSubset:              "must be a subset of: {{.values}}",
	CodeSubsetNotList:       "must be a list",
	CodeAcceptance:          "must be accepted",
	CodeConfirmationMissing: "confirmation is missing",
	CodeConfirmation:        "does not match its confirmation",
})
