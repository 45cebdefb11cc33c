package scenario

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"tactics-sim/internal/army"
	"tactics-sim/internal/battle"
	"tactics-sim/internal/domain"
	"tactics-sim/internal/terrain"
	"tactics-sim/pkg/logger"
)

// SchemaVersion - версия формата файла сценария. Поле schema можно опустить.
const SchemaVersion = 1

var validate = validator.New()

// Rect - прямоугольник расстановки
type Rect struct {
	X int `yaml:"x" validate:"gte=0"`
	Y int `yaml:"y" validate:"gte=0"`
	W int `yaml:"w" validate:"gte=1"`
	H int `yaml:"h" validate:"gte=1"`
}

// Side - одна сторона боя: состав (или готовая фракция) и зона расстановки
type Side struct {
	army.Composition `yaml:",inline" validate:"-"`
	Preset           string `yaml:"preset,omitempty"`
	Deploy           Rect   `yaml:"deploy"`
}

// Scenario - файл сценария
type Scenario struct {
	Schema   int      `yaml:"schema" validate:"gte=0"`
	Name     string   `yaml:"name"`
	MaxTurns int      `yaml:"max_turns" validate:"gte=0"`
	Terrain  []string `yaml:"terrain" validate:"required,min=1"`
	Armies   struct {
		A Side `yaml:"a"`
		B Side `yaml:"b"`
	} `yaml:"armies"`
}

// Setup - все, что нужно для запуска боя
type Setup struct {
	Name     string
	Terrain  *terrain.Map
	Field    *battle.Battlefield
	A, B     *army.Army
	MaxTurns int
}

// Parse читает сценарий из YAML
func Parse(r io.Reader) (*Scenario, error) {
	var s Scenario
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if s.Schema > SchemaVersion {
		return nil, fmt.Errorf("unsupported scenario schema %d (max %d)", s.Schema, SchemaVersion)
	}
	return &s, nil
}

// Load читает сценарий с файловой системы
func Load(fs afero.Fs, path string) (*Scenario, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Setup строит карту, армии и поле, расставляя юнитов по зонам.
// maxTurns из сценария используется, если он задан, иначе берется cfg.
func (s *Scenario) Setup(factory *domain.UnitFactory, cfg battle.Config) (*Setup, error) {
	m, err := terrain.Parse(s.Terrain)
	if err != nil {
		return nil, err
	}
	field := battle.New(m)

	a, err := s.Armies.A.build("a", factory)
	if err != nil {
		return nil, err
	}
	b, err := s.Armies.B.build("b", factory)
	if err != nil {
		return nil, err
	}

	if err := deploy(field, a, s.Armies.A.Deploy); err != nil {
		return nil, fmt.Errorf("deploy %s: %w", a.Name, err)
	}
	if err := deploy(field, b, s.Armies.B.Deploy); err != nil {
		return nil, fmt.Errorf("deploy %s: %w", b.Name, err)
	}

	maxTurns := cfg.MaxTurns
	if s.MaxTurns > 0 {
		maxTurns = s.MaxTurns
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "scenario",
		"scenario":  s.Name,
		"width":     m.Width,
		"height":    m.Height,
		"army_a":    a.Len(),
		"army_b":    b.Len(),
	}).Info("Scenario ready")

	return &Setup{Name: s.Name, Terrain: m, Field: field, A: a, B: b, MaxTurns: maxTurns}, nil
}

func (side Side) build(fallback string, factory *domain.UnitFactory) (*army.Army, error) {
	var (
		a   *army.Army
		err error
	)
	if side.Preset != "" {
		a, err = army.Preset(side.Preset, factory)
	} else {
		a, err = army.Build(side.Composition, factory)
	}
	if err != nil {
		return nil, fmt.Errorf("army %s: %w", fallback, err)
	}
	if a.Name == "" {
		a.Name = fallback
	}
	return a, nil
}

// deploy ставит юнитов построчно в свободные проходимые клетки зоны
func deploy(field *battle.Battlefield, a *army.Army, zone Rect) error {
	units := a.Units()
	next := 0
	for y := zone.Y; y < zone.Y+zone.H && next < len(units); y++ {
		for x := zone.X; x < zone.X+zone.W && next < len(units); x++ {
			if !field.IsWalkable(x, y) || field.IsOccupied(x, y) {
				continue
			}
			if err := field.Place(units[next], x, y); err != nil {
				return err
			}
			next++
		}
	}
	if next < len(units) {
		// Pos - угол зоны, от которого считалась расстановка
		return &domain.PlacementError{
			Unit:   units[next].ID,
			Pos:    domain.Pos(zone.X, zone.Y),
			Reason: domain.PlacementZoneFull,
		}
	}
	return nil
}
