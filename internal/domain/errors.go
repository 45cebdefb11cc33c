package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибки конфигурации (фатальны для вызова)
	ErrUnknownArchetype  = errors.New("unknown archetype")
	ErrUnsupportedTarget = errors.New("unsupported attack target")
	ErrInvalidPlacement  = errors.New("invalid placement")

	// Ошибки вызова действий
	ErrActionMissing  = errors.New("action not registered")
	ErrTargetRequired = errors.New("action requires a target")
	ErrTargetDead     = errors.New("target is dead")
)

// PlacementReason - почему юнита нельзя поставить в клетку
type PlacementReason string

const (
	PlacementOutOfBounds   PlacementReason = "out_of_bounds"
	PlacementObstacle      PlacementReason = "obstacle"
	PlacementOccupied      PlacementReason = "occupied"
	PlacementAlreadyPlaced PlacementReason = "already_placed"
	PlacementNoUnit        PlacementReason = "no_unit"
	PlacementZoneFull      PlacementReason = "zone_full" // в зоне расстановки кончились свободные клетки
)

// PlacementError - ошибка расстановки. errors.Is(err, ErrInvalidPlacement) == true.
type PlacementError struct {
	Unit   UnitID
	Pos    Position
	Reason PlacementReason
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place %s at (%d,%d): %s", e.Unit, e.Pos.X, e.Pos.Y, e.Reason)
}

func (e *PlacementError) Unwrap() error {
	return ErrInvalidPlacement
}

// ActionError оборачивает ошибку вызова действия контекстом.
type ActionError struct {
	Actor UnitID
	Kind  ActionKind
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Actor, e.Kind, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
