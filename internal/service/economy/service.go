package economy

import (
	"math"
	"math/big"

	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
)

type serv struct{}

// NewEconomyService Часы экономики. Чистая арифметика, всё состояние
// приходит параметрами от оркестратора
func NewEconomyService() service.EconomyService {
	return &serv{}
}

// Tick Доход за elapsedSeconds секунд:
// floor(Σ ценность экипированного × множитель ребёрса × Π money-множителей
// активных ивентов) за секунду, умноженный на число секунд.
// Вызывается строго последовательно, один логический тик за раз
func (s *serv) Tick(elapsedSeconds int64, equipped []model.RewardItem, rebirthMult float64, activeEvents []model.ActiveEvent) *big.Int {
	if elapsedSeconds <= 0 || len(equipped) == 0 {
		return big.NewInt(0)
	}

	income := big.NewInt(0)
	for _, it := range equipped {
		income.Add(income, it.TotalValue())
	}

	mult := rebirthMult
	if mult <= 0 {
		mult = 1.0
	}
	for _, ev := range activeEvents {
		if ev.MoneyMult > 0 {
			mult *= ev.MoneyMult
		}
	}

	// floor(income × mult) в целых: множитель переводится в тысячные,
	// чтобы не терять точность на дробных множителях
	mills := big.NewInt(int64(math.Round(mult * 1000)))
	perSecond := new(big.Int).Mul(income, mills)
	perSecond.Quo(perSecond, big.NewInt(1000))

	return perSecond.Mul(perSecond, big.NewInt(elapsedSeconds))
}
