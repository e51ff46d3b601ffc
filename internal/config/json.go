package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations so operators can keep a single config file.
type StructuredJSONConfig struct {
	App struct {
		AccessTokenSecret   string   `json:"access_token_secret"`
		RefreshTokenSecret  string   `json:"refresh_token_secret"`
		TokenIssuer         string   `json:"token_issuer"`
		AccessTokenTTL      Duration `json:"access_token_ttl"`
		RefreshTokenTTL     Duration `json:"refresh_token_ttl"`
		EncryptionKey       string   `json:"encryption_key"`
		VerificationCodeTTL Duration `json:"verification_code_ttl"`
		SecureCookies       bool     `json:"secure_cookies"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	OAuth struct {
		KakaoClientID     string   `json:"kakao_client_id"`
		KakaoRedirectURI  string   `json:"kakao_redirect_uri"`
		KakaoAuthBaseURL  string   `json:"kakao_auth_base_url"`
		KakaoAPIBaseURL   string   `json:"kakao_api_base_url"`
		SignupRedirectURL string   `json:"signup_redirect_url"`
		HomeRedirectURL   string   `json:"home_redirect_url"`
		RequestTimeout    Duration `json:"request_timeout"`
	} `json:"oauth,omitempty"`

	Mail struct {
		SMTPHost string `json:"smtp_host"`
		SMTPPort int    `json:"smtp_port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"mail,omitempty"`

	Workers struct {
		CodesCleanupInterval Duration `json:"codes_cleanup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AccessTokenSecret:   jsonCfg.App.AccessTokenSecret,
			RefreshTokenSecret:  jsonCfg.App.RefreshTokenSecret,
			TokenIssuer:         jsonCfg.App.TokenIssuer,
			AccessTokenTTL:      time.Duration(jsonCfg.App.AccessTokenTTL),
			RefreshTokenTTL:     time.Duration(jsonCfg.App.RefreshTokenTTL),
			EncryptionKey:       jsonCfg.App.EncryptionKey,
			VerificationCodeTTL: time.Duration(jsonCfg.App.VerificationCodeTTL),
			SecureCookies:       jsonCfg.App.SecureCookies,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		OAuth: OAuth{
			KakaoClientID:     jsonCfg.OAuth.KakaoClientID,
			KakaoRedirectURI:  jsonCfg.OAuth.KakaoRedirectURI,
			KakaoAuthBaseURL:  jsonCfg.OAuth.KakaoAuthBaseURL,
			KakaoAPIBaseURL:   jsonCfg.OAuth.KakaoAPIBaseURL,
			SignupRedirectURL: jsonCfg.OAuth.SignupRedirectURL,
			HomeRedirectURL:   jsonCfg.OAuth.HomeRedirectURL,
			RequestTimeout:    time.Duration(jsonCfg.OAuth.RequestTimeout),
		},
		Mail: Mail{
			SMTPHost: jsonCfg.Mail.SMTPHost,
			SMTPPort: jsonCfg.Mail.SMTPPort,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
		},
		Workers: Workers{
			CodesCleanupInterval: time.Duration(jsonCfg.Workers.CodesCleanupInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
