package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/larriantoniy/tg_support_watcher/internal/ports"
)

// RawSessionConfig — config.json в каталоге сессии
type RawSessionConfig struct {
	SessionFile string `json:"session_file"`
	Phone       string `json:"phone"`
	UserID      int64  `json:"user_id"`
	// Label попадает в сводку для владельца, чтобы было видно, какой наблюдатель сработал
	Label string `json:"label"`

	AppID   int32  `json:"app_id"`
	AppHash string `json:"app_hash"`

	SDK        string `json:"sdk"`         // условно: SystemVersion
	AppVersion string `json:"app_version"` // ApplicationVersion
	Device     string `json:"device"`      // DeviceModel
	LangCode   string `json:"lang_code"`   // SystemLanguageCode

	Proxy    []any    `json:"proxy"` // [type, host, port, useAuth, user, pass]
	Channels []string `json:"channels"`
}

func (c *RawSessionConfig) ToProxyConfig() (*ports.ProxyConfig, error) {
	if len(c.Proxy) == 0 {
		return nil, nil
	}
	if len(c.Proxy) < 6 {
		return nil, fmt.Errorf("invalid proxy length: %d", len(c.Proxy))
	}

	host, _ := c.Proxy[1].(string)

	// port может прийти как float64 из json.Unmarshal
	var port int32
	switch v := c.Proxy[2].(type) {
	case float64:
		port = int32(v)
	case int:
		port = int32(v)
	default:
		return nil, fmt.Errorf("invalid proxy port type %T", c.Proxy[2])
	}

	useAuth, _ := c.Proxy[3].(bool)
	user, _ := c.Proxy[4].(string)
	pass, _ := c.Proxy[5].(string)

	if host == "" || port == 0 {
		return nil, nil
	}

	p := &ports.ProxyConfig{
		Enabled: true,
		Server:  host,
		Port:    port,
	}
	if useAuth {
		p.Username = user
		p.Password = pass
	}
	return p, nil
}

// ToSessionConfig собирает порт-конфиг; dir — каталог, из которого прочитан config.json
func (c *RawSessionConfig) ToSessionConfig(dir string) (*ports.SessionConfig, error) {
	proxyCfg, err := c.ToProxyConfig()
	if err != nil {
		return nil, fmt.Errorf("proxy parse: %w", err)
	}

	name := c.SessionFile
	if name == "" {
		name = dir
	}

	return &ports.SessionConfig{
		Dir:                dir,
		SessionName:        name,
		Label:              c.Label,
		Phone:              c.Phone,
		AppID:              c.AppID,
		AppHash:            c.AppHash,
		DeviceModel:        c.Device,
		SystemVersion:      c.SDK,
		ApplicationVersion: c.AppVersion,
		LangCode:           c.LangCode,
		Proxy:              proxyCfg,
		Channels:           c.Channels,
	}, nil
}

const sessionConfigFile = "config.json"

func LoadRawSessionConfig(baseDir, sessionName string) (*RawSessionConfig, error) {
	path := filepath.Join(baseDir, sessionName, sessionConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg RawSessionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	// подстрахуемся: если в json другое имя
	if cfg.SessionFile == "" {
		cfg.SessionFile = sessionName
	}
	return &cfg, nil
}
