package tg

import (
	"path/filepath"

	"github.com/larriantoniy/tg_support_watcher/internal/ports"
	"github.com/zelenin/go-tdlib/client"
)

// sessionDirs: база и файлы TDLib лежат в каталоге сессии, рядом с config.json
func sessionDirs(baseDir string, sc *ports.SessionConfig) (dbDir, filesDir string) {
	sessionDir := filepath.Join(baseDir, sc.Dir)
	return filepath.Join(sessionDir, "database"), filepath.Join(sessionDir, "files")
}

// tdParams: apiID/apiHash из config.json сессии имеют приоритет над общими
func tdParams(sc *ports.SessionConfig, apiID int32, apiHash string, dbDir, filesDir string) *client.SetTdlibParametersRequest {
	if sc.AppID != 0 && sc.AppHash != "" {
		apiID, apiHash = sc.AppID, sc.AppHash
	}

	lang := sc.LangCode
	if lang == "" {
		lang = "en"
	}

	systemVersion := sc.SystemVersion
	if systemVersion == "" {
		systemVersion = "Windows 10"
	}

	appVersion := sc.ApplicationVersion
	if appVersion == "" {
		appVersion = "2.0"
	}

	deviceModel := sc.DeviceModel
	if deviceModel == "" {
		deviceModel = "Desktop"
	}

	return &client.SetTdlibParametersRequest{
		UseTestDc:           false,
		DatabaseDirectory:   dbDir,
		FilesDirectory:      filesDir,
		UseFileDatabase:     false,
		UseChatInfoDatabase: true,
		UseMessageDatabase:  true,
		UseSecretChats:      false,
		ApiId:               apiID,
		ApiHash:             apiHash,
		SystemLanguageCode:  lang,
		DeviceModel:         deviceModel,
		SystemVersion:       systemVersion,
		ApplicationVersion:  appVersion,
	}
}
