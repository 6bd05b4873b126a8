package alerts

import (
	"math"
	"sort"

	"sgpj-client/internal/models"
)

// TopDeudasLimit is how many debts the dashboard ranks.
const TopDeudasLimit = 5

// TopDeudas ranks the contratos that still owe money by pending balance,
// largest first, and returns at most limit of them with their combined
// balance. A limit of 0 or less returns all of them.
func TopDeudas(contratos []models.Contrato, limit int) ([]models.Contrato, float64) {
	var owing []models.Contrato
	for _, c := range contratos {
		if math.Round(c.MontoPendiente()*100) > 0 {
			owing = append(owing, c)
		}
	}
	sort.SliceStable(owing, func(i, j int) bool {
		return owing[i].MontoPendiente() > owing[j].MontoPendiente()
	})
	if limit > 0 && len(owing) > limit {
		owing = owing[:limit]
	}
	total := 0.0
	for _, c := range owing {
		total += c.MontoPendiente()
	}
	return owing, total
}
