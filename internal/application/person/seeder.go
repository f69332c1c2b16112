package person

import (
	"context"
	"sync"

	"github.com/finapp2p/backend/internal/domain/person"
	"go.uber.org/zap"
)

// DemoSeeder fills an empty repository with sample records, at most once per instance
type DemoSeeder struct {
	repo   person.Repository
	logger *zap.Logger

	mu     sync.Mutex
	seeded bool
}

// NewDemoSeeder creates a DemoSeeder
func NewDemoSeeder(repo person.Repository, logger *zap.Logger) *DemoSeeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DemoSeeder{repo: repo, logger: logger}
}

// DemoPersons returns the sample records
func DemoPersons() []person.Person {
	return []person.Person{
		person.NewIndividual(person.IndividualParams{
			ID:       "1",
			Name:     "João da Silva",
			Document: "12345678900",
		}),
		person.NewCompany(person.CompanyParams{
			ID:        "2",
			Name:      "EMPRESA EXEMPLO LTDA",
			Document:  "00000000000000",
			TradeName: person.StringPtr("EXEMPLO COMÉRCIO"),
		}),
	}
}

// EnsureDemoData seeds the repository when it holds no records. Later calls
// on the same seeder do nothing. It reports whether records were written.
func (d *DemoSeeder) EnsureDemoData(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seeded {
		return false, nil
	}

	all, err := d.repo.FindAll(ctx)
	if err != nil {
		return false, err
	}
	if len(all) > 0 {
		d.seeded = true
		return false, nil
	}

	demo := DemoPersons()
	for _, p := range demo {
		if err := d.repo.Create(ctx, p); err != nil {
			return false, err
		}
	}
	d.seeded = true
	d.logger.Info("Demo persons seeded", zap.Int("count", len(demo)))
	return true, nil
}
