package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"tactics-sim/internal/domain"
	"tactics-sim/pkg/api"
)

// LoadJSON читает и валидирует JSON-реплей
func (s *ReplayService) LoadJSON(path string) (api.ReplayExport, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return api.ReplayExport{}, err
	}
	var export api.ReplayExport
	if err := json.Unmarshal(data, &export); err != nil {
		return api.ReplayExport{}, fmt.Errorf("decode replay: %w", err)
	}
	if err := export.Validate(); err != nil {
		return api.ReplayExport{}, err
	}
	return export, nil
}

// LoadBinary читает .btrp
func (s *ReplayService) LoadBinary(path string) (api.ReplayExport, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return api.ReplayExport{}, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

// LoadArmy читает экспорт армии
func (s *ReplayService) LoadArmy(path string) ([]api.UnitView, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, err
	}
	var units []api.UnitView
	if err := json.Unmarshal(data, &units); err != nil {
		return nil, fmt.Errorf("decode army: %w", err)
	}
	return units, nil
}

// maxPrealloc - сколько элементов можно зарезервировать заранее по счетчику из файла
const maxPrealloc = 1024

func readBinary(r io.Reader) (api.ReplayExport, error) {
	// 1. Заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return api.ReplayExport{}, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return api.ReplayExport{}, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return api.ReplayExport{}, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	// Счетчикам из заголовка не верим: резервируем не больше maxPrealloc
	turns := make([]domain.TurnRecord, 0, min(header.TurnCount, maxPrealloc))

	// 2. Ходы
	for i := uint32(0); i < header.TurnCount; i++ {
		var th TurnHeader
		if err := binary.Read(r, binary.LittleEndian, &th); err != nil {
			return api.ReplayExport{}, fmt.Errorf("turn %d: %w", i+1, err)
		}

		turn := domain.TurnRecord{
			Number:  int(th.Number),
			Actions: make([]domain.ActionRecord, 0, min(th.ActionCount, maxPrealloc)),
		}
		for j := uint16(0); j < th.ActionCount; j++ {
			var ah ActionHeader
			if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
				return api.ReplayExport{}, fmt.Errorf("turn %d action %d: %w", th.Number, j, err)
			}
			turn.Actions = append(turn.Actions, domain.ActionRecord{
				Type:        domain.RecordType(ah.Type),
				Actor:       domain.UnitID(ah.Actor),
				Target:      domain.UnitID(ah.Target),
				Origin:      domain.Pos(int(ah.FromX), int(ah.FromY)),
				Destination: domain.Pos(int(ah.ToX), int(ah.ToY)),
				Amount:      int(ah.Amount),
			})
		}
		turns = append(turns, turn)
	}

	sessionID := uuid.UUID(header.SessionID).String()
	return api.NewReplayExport(sessionID, int(header.Width), int(header.Height), turns), nil
}
