package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/heatguard/backend/internal/domain"
)

//go:embed plans.yaml
var plansYAML []byte

type planFile struct {
	Plans []domain.Plan `yaml:"plans"`
}

var loadPlans = sync.OnceValues(func() ([]domain.Plan, error) {
	var file planFile
	if err := yaml.Unmarshal(plansYAML, &file); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode plans: %w", err)
	}
	return file.Plans, nil
})

// Plans returns the suggested response plans in catalog order
func Plans() []domain.Plan {
	plans, err := loadPlans()
	if err != nil {
		panic(err)
	}
	out := make([]domain.Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID looks up a single plan
func PlanByID(id string) (domain.Plan, error) {
	for _, p := range Plans() {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Plan{}, fmt.Errorf("%w: %q", domain.ErrUnknownPlan, id)
}

// PlanCost rolls up the capital and operational cost of every action in a plan
func PlanCost(p domain.Plan) domain.PlanCostSummary {
	capital := decimal.Zero
	operational := decimal.Zero
	for _, a := range p.Actions {
		capital = capital.Add(decimal.NewFromFloat(a.Cost))
		operational = operational.Add(decimal.NewFromFloat(a.OperationalCost))
	}
	return domain.PlanCostSummary{
		CapitalCost:     capital.StringFixed(2),
		OperationalCost: operational.StringFixed(2),
		TotalCost:       capital.Add(operational).StringFixed(2),
	}
}
