package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
)

type ListOccurrences struct {
	repo domain.Repository
}

func NewListOccurrences(repo domain.Repository) *ListOccurrences {
	return &ListOccurrences{repo: repo}
}

// Execute lists the generated children of a seed appointment.
func (uc *ListOccurrences) Execute(
	ctx context.Context,
	actor access.Actor,
	seedID uint,
) ([]dto.AppointmentListDTO, error) {

	seed, err := loadForActor(ctx, uc.repo, actor, seedID)
	if err != nil {
		return nil, err
	}

	children, err := uc.repo.ListOccurrences(ctx, seed.ID)
	if err != nil {
		return nil, err
	}

	// Children carry the seed's service and client.
	for i := range children {
		children[i].Service = seed.Service
		children[i].Client = seed.Client
	}

	return dto.NewAppointmentList(children), nil
}
