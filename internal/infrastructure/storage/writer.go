package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"

	"tactics-sim/internal/domain"
	"tactics-sim/pkg/api"
)

const (
	MagicHeader string = `BTRP` // 4 байта
	Version1    uint32 = 1
)

// ReplayFileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: только массивы и числа.
type ReplayFileHeader struct {
	Magic     [4]byte  // 4 байта
	Version   uint32   // 4 байта
	SessionID [16]byte // 16 байт, uuid
	Width     uint16   // 2
	Height    uint16   // 2
	TurnCount uint32   // 4
}

// TurnHeader - заголовок каждого хода
type TurnHeader struct {
	Number      uint32 // 4
	ActionCount uint16 // 2
}

// ActionHeader - одна запись действия фиксированной длины.
// Архетипы не пишутся: они зашиты в UnitID.
type ActionHeader struct {
	Type   uint8  // 1
	Actor  uint64 // 8
	Target uint64 // 8, 0 если цели нет
	FromX  int16  // 2
	FromY  int16  // 2
	ToX    int16  // 2
	ToY    int16  // 2
	Amount int32  // 4
}

func writeBinary(w io.Writer, e api.ReplayExport) error {
	sid, err := uuid.Parse(e.SessionID)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", e.SessionID, err)
	}

	if !fitsUint16(e.Width) || !fitsUint16(e.Height) {
		return fmt.Errorf("field %dx%d does not fit the binary format", e.Width, e.Height)
	}
	if uint64(len(e.Turns)) > math.MaxUint32 {
		return fmt.Errorf("too many turns: %d", len(e.Turns))
	}

	bw := bufio.NewWriter(w)

	// 1. Глобальный заголовок
	header := ReplayFileHeader{
		Version:   Version1,
		SessionID: sid,
		Width:     uint16(e.Width),
		Height:    uint16(e.Height),
		TurnCount: uint32(len(e.Turns)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Ходы
	for _, turn := range e.Records() {
		if len(turn.Actions) > math.MaxUint16 {
			return fmt.Errorf("turn %d: too many actions: %d", turn.Number, len(turn.Actions))
		}
		if turn.Number < 0 || uint64(turn.Number) > math.MaxUint32 {
			return fmt.Errorf("turn number %d out of range", turn.Number)
		}
		th := TurnHeader{Number: uint32(turn.Number), ActionCount: uint16(len(turn.Actions))}
		if err := binary.Write(bw, binary.LittleEndian, &th); err != nil {
			return err
		}

		for j, act := range turn.Actions {
			ah, err := encodeAction(act)
			if err != nil {
				return fmt.Errorf("turn %d action %d: %w", turn.Number, j, err)
			}
			if err := binary.Write(bw, binary.LittleEndian, &ah); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// encodeAction упаковывает запись; координаты и величина не должны обрезаться
func encodeAction(act domain.ActionRecord) (ActionHeader, error) {
	for _, v := range []int{act.Origin.X, act.Origin.Y, act.Destination.X, act.Destination.Y} {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return ActionHeader{}, fmt.Errorf("coordinate %d out of int16 range", v)
		}
	}
	if act.Amount < math.MinInt32 || act.Amount > math.MaxInt32 {
		return ActionHeader{}, fmt.Errorf("amount %d out of int32 range", act.Amount)
	}
	return ActionHeader{
		Type:   uint8(act.Type),
		Actor:  uint64(act.Actor),
		Target: uint64(act.Target),
		FromX:  int16(act.Origin.X),
		FromY:  int16(act.Origin.Y),
		ToX:    int16(act.Destination.X),
		ToY:    int16(act.Destination.Y),
		Amount: int32(act.Amount),
	}, nil
}

func fitsUint16(v int) bool {
	return v >= 0 && v <= math.MaxUint16
}
