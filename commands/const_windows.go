package commands

import (
	"os"
	"path/filepath"
)

var (
	DEFAULT_CONFIG      = filepath.Join(workdir(), "campaign-sheets.yaml")
	DEFAULT_CREDENTIALS = filepath.Join(workdir(), ".google", "credentials.json")
)

func workdir() string {
	programData, ok := os.LookupEnv("ProgramData")
	if !ok || programData == "" {
		return `C:\campaign-sheets`
	}

	return filepath.Join(programData, "campaign-sheets")
}
