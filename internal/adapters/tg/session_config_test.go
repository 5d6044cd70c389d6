package tg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larriantoniy/tg_support_watcher/internal/ports"
)

func TestToTdParamsDefaults(t *testing.T) {
	p := tdParams(&ports.SessionConfig{}, 12345, "hash", "/db", "/files")

	assert.Equal(t, int32(12345), p.ApiId)
	assert.Equal(t, "hash", p.ApiHash)
	assert.Equal(t, "en", p.SystemLanguageCode)
	assert.Equal(t, "Desktop", p.DeviceModel)
	assert.Equal(t, "/db", p.DatabaseDirectory)

	own := tdParams(&ports.SessionConfig{AppID: 1, AppHash: "own", LangCode: "ru"}, 12345, "hash", "/db", "/files")
	assert.Equal(t, int32(1), own.ApiId)
	assert.Equal(t, "own", own.ApiHash)
	assert.Equal(t, "ru", own.SystemLanguageCode)
}

func TestSessionDirsUseDirectoryNotSessionFile(t *testing.T) {
	sc := &ports.SessionConfig{Dir: "watcher_a", SessionName: "acct1"}

	db, files := sessionDirs("/sessions", sc)
	assert.Equal(t, filepath.Join("/sessions", "watcher_a", "database"), db)
	assert.Equal(t, filepath.Join("/sessions", "watcher_a", "files"), files)
}
