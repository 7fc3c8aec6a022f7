package calendar

import (
	"strings"
	"unicode/utf8"
)

// ValidateTypeFields aplica las reglas que dependen del tipo de entrada.
// request: requiere al menos una mascota y un motivo.
// availability: sin campos obligatorios extra (neighborDistanceRange es opcional).
func ValidateTypeFields(e Entry) error {
	if e.Type != EntryTypeRequest {
		return nil
	}
	if len(e.Pets) == 0 {
		return ErrMissingPets
	}
	if strings.TrimSpace(e.Reason) == "" {
		return ErrMissingReason
	}
	return nil
}

func validateCreateFields(in CreateInput) *ValidationError {
	ve := &ValidationError{}

	if strings.TrimSpace(in.UserID) == "" {
		ve.add("userId is required")
	}
	switch {
	case strings.TrimSpace(string(in.Type)) == "":
		ve.add("type is required")
	case !in.Type.Valid():
		ve.add("type must be either 'availability' or 'request'")
	}
	if in.Status != nil && !in.Status.Valid() {
		ve.add("status must be one of: available, requested, booked, cancelled, in_review")
	}
	validatePets(ve, in.Pets)
	validateReason(ve, in.Reason)
	validateDistance(ve, in.NeighborDistanceRange)

	return ve
}

func validatePatchFields(p Patch) *ValidationError {
	ve := &ValidationError{}

	if p.Type != nil && !p.Type.Valid() {
		ve.add("type must be either 'availability' or 'request'")
	}
	if p.Status != nil && !p.Status.Valid() {
		ve.add("status must be one of: available, requested, booked, cancelled, in_review")
	}
	if p.Pets != nil {
		validatePets(ve, *p.Pets)
	}
	validateReason(ve, p.Reason)
	validateDistance(ve, p.NeighborDistanceRange)

	return ve
}

func validatePets(ve *ValidationError, pets []string) {
	for _, id := range pets {
		if strings.TrimSpace(id) == "" {
			ve.add("each pet ID must be a non-empty reference")
			return
		}
	}
}

func validateReason(ve *ValidationError, reason *string) {
	if reason == nil {
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(*reason)) > MaxReasonLength {
		ve.add("reason must not exceed %d characters", MaxReasonLength)
	}
}

func validateDistance(ve *ValidationError, d *int) {
	if d == nil {
		return
	}
	if *d < MinNeighborRange || *d > MaxNeighborRange {
		ve.add("neighborDistanceRange must be between %d and %d", MinNeighborRange, MaxNeighborRange)
	}
}

func normalizePets(in []string) []string {
	out := make([]string, 0, len(in))
	for _, id := range in {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}
