package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"tactics-sim/pkg/api"
	"tactics-sim/pkg/logger"
)

const (
	ExtJSON   = ".json"
	ExtBinary = ".btrp"
)

// ReplayService сохраняет реплеи и экспорт армий в каталог на afero.Fs.
// В проде это OsFs, в тестах MemMapFs.
type ReplayService struct {
	fs      afero.Fs
	SaveDir string
	log     *logrus.Entry
}

func NewReplayService(fs afero.Fs, dir string) (*ReplayService, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{
		fs:      fs,
		SaveDir: dir,
		log:     logger.For("storage"),
	}, nil
}

// NewSessionID выдает новый ID прогона
func NewSessionID() string {
	return uuid.NewString()
}

func (s *ReplayService) replayPath(sessionID, ext string) string {
	return filepath.Join(s.SaveDir, fmt.Sprintf("replay_%s%s", sessionID, ext))
}

// ensureSession проставляет SessionID, если его нет
func ensureSession(e *api.ReplayExport) {
	if e.SessionID == "" {
		e.SessionID = NewSessionID()
	}
}

// SaveJSON пишет реплей в JSON и возвращает путь к файлу
func (s *ReplayService) SaveJSON(export api.ReplayExport) (string, error) {
	ensureSession(&export)
	if err := export.Validate(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal replay: %w", err)
	}

	path := s.replayPath(export.SessionID, ExtJSON)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write replay: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"path":  path,
		"turns": len(export.Turns),
	}).Info("Replay saved")
	return path, nil
}

// SaveBinary пишет реплей в формате .btrp
func (s *ReplayService) SaveBinary(export api.ReplayExport) (string, error) {
	ensureSession(&export)

	path := s.replayPath(export.SessionID, ExtBinary)
	f, err := s.fs.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeBinary(f, export); err != nil {
		_ = s.fs.Remove(path)
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"path":  path,
		"turns": len(export.Turns),
	}).Info("Binary replay saved")
	return path, nil
}

// SaveArmy пишет экспорт армии в army_<name>.json
func (s *ReplayService) SaveArmy(name string, units []api.UnitView) (string, error) {
	if name == "" {
		name = "army"
	}
	data, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal army: %w", err)
	}
	path := filepath.Join(s.SaveDir, fmt.Sprintf("army_%s.json", name))
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write army: %w", err)
	}
	s.log.WithFields(logrus.Fields{"path": path, "units": len(units)}).Info("Army saved")
	return path, nil
}

// Load выбирает формат по расширению файла
func (s *ReplayService) Load(path string) (api.ReplayExport, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtBinary:
		return s.LoadBinary(path)
	case ExtJSON:
		return s.LoadJSON(path)
	default:
		return api.ReplayExport{}, fmt.Errorf("unknown replay format: %q", path)
	}
}
