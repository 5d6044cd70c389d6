package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/larriantoniy/tg_support_watcher/internal/ports"
)

// JSONSessionConfigRepo: одна сессия = один каталог с config.json внутри
type JSONSessionConfigRepo struct {
	baseDir string // "./tdlib-sessions"
}

func NewJSONSessionConfigRepo(baseDir string) *JSONSessionConfigRepo {
	return &JSONSessionConfigRepo{baseDir: baseDir}
}

// ListSessions возвращает каталоги, в которых есть config.json
func (r *JSONSessionConfigRepo) ListSessions(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		_, err := os.Stat(filepath.Join(r.baseDir, e.Name(), sessionConfigFile))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

func (r *JSONSessionConfigRepo) GetSessionConfig(ctx context.Context, sessionName string) (*ports.SessionConfig, error) {
	raw, err := LoadRawSessionConfig(r.baseDir, sessionName)
	if err != nil {
		return nil, err
	}
	return raw.ToSessionConfig(sessionName)
}
