// Package dashboard arma el resumen del panel de administración.
package dashboard

import (
	"context"

	"ngo-animal-rescue/internal/domain/adoptions"
	"ngo-animal-rescue/internal/domain/catalog"

	"golang.org/x/sync/errgroup"
)

type Animals interface {
	List() []catalog.Animal
	State() catalog.State
}

type Applications interface {
	List(ctx context.Context, status adoptions.Status) ([]adoptions.Application, error)
}

type Incidents interface {
	Open(ctx context.Context) (int, error)
}

type Donations interface {
	Total(ctx context.Context) (float64, error)
}

type Summary struct {
	Animals        int                            `json:"animals"`
	AnimalsBy      map[catalog.AdoptionStatus]int `json:"animalsByStatus"`
	CatalogStatus  catalog.LoadStatus             `json:"catalogStatus"`
	Applications   int                            `json:"applications"`
	ApplicationsBy map[adoptions.Status]int       `json:"applicationsByStatus"`
	OpenIncidents  int                            `json:"openIncidents"`
	DonationTotal  float64                        `json:"donationTotal"`
}

type Service struct {
	animals      Animals
	applications Applications
	incidents    Incidents
	donations    Donations
}

func NewService(animals Animals, apps Applications, inc Incidents, don Donations) *Service {
	return &Service{
		animals:      animals,
		applications: apps,
		incidents:    inc,
		donations:    don,
	}
}

// Summary consulta las fuentes en paralelo. Si una falla se devuelve el error y no un resumen parcial.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	out := Summary{
		AnimalsBy:      map[catalog.AdoptionStatus]int{},
		ApplicationsBy: map[adoptions.Status]int{},
	}

	if s.animals != nil {
		items := s.animals.List()
		out.Animals = len(items)
		out.CatalogStatus = s.animals.State().Status
		for _, a := range items {
			out.AnimalsBy[a.AdoptionStatus]++
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if s.applications != nil {
		g.Go(func() error {
			apps, err := s.applications.List(gctx, "")
			if err != nil {
				return err
			}
			out.Applications = len(apps)
			for _, a := range apps {
				out.ApplicationsBy[a.Status]++
			}
			return nil
		})
	}
	if s.incidents != nil {
		g.Go(func() error {
			n, err := s.incidents.Open(gctx)
			if err != nil {
				return err
			}
			out.OpenIncidents = n
			return nil
		})
	}
	if s.donations != nil {
		g.Go(func() error {
			total, err := s.donations.Total(gctx)
			if err != nil {
				return err
			}
			out.DonationTotal = total
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}
