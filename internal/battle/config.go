package battle

// DefaultMaxTurns - сколько ходов длится бой, если не задано иное
const DefaultMaxTurns = 100

// Config хранит параметры прогона
type Config struct {
	// MaxTurns - верхняя граница хода. Достижение границы не ошибка.
	MaxTurns int
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{MaxTurns: DefaultMaxTurns}
}
