package roll

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource Источник равномерных значений [0,1). Абстрагирован, чтобы
// тесты и симуляции могли подставить воспроизводимую последовательность
type RandomSource interface {
	Float64() float64
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// Старшие 53 бита дают равномерный float64 в [0,1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG Воспроизводимый источник для тестов
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
