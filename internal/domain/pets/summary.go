package pets

import "context"

// Summary devuelve la vista {id, petType, breed}. La usa el calendario para
// completar petInfo sin importar este paquete.
func (s *Service) Summary(ctx context.Context, petID string) (Summary, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{ID: p.ID, PetType: p.PetType, Breed: p.Breed}, nil
}
