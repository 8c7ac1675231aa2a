package util

import (
	"encoding/json"
	"fmt"
	"os"
)

type Secrets struct {
	OpenAIApiKey string        `json:"openai"`
	JwtSecret    string        `json:"jwtSecret"`
	Db           DbSecrets     `json:"db"`
	Ollama       OllamaSecrets `json:"ollama"`
	CacheTTLSecs int           `json:"cacheTtlSeconds"`
}

type OllamaSecrets struct {
	BaseUrl       string `json:"baseUrl"`
	FastModel     string `json:"fastModel"`
	DetailedModel string `json:"detailedModel"`
}

type DbSecrets struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("CLARIFI_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("CLARIFI_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}
	f, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	if secrets.Ollama.BaseUrl == "" {
		secrets.Ollama.BaseUrl = "http://localhost:11434"
	}
	if secrets.Ollama.FastModel == "" {
		secrets.Ollama.FastModel = "phi3:mini"
	}
	if secrets.Ollama.DetailedModel == "" {
		secrets.Ollama.DetailedModel = "llama3.1:8b"
	}
	if secrets.CacheTTLSecs <= 0 {
		secrets.CacheTTLSecs = 300
	}

	return &secrets, nil
}
