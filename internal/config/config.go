package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectName   string // Project label stamped into reports.
	InspectionDir string // Directory holding IDE inspection XML exports.
	ReportPath    string // Destination for the aggregated error report.
	SourceDir     string // Root walked by the rewrite command.

	ZepAPIKey  string // Zep Cloud API key; required for devlog.
	ZepBaseURL string // Zep Cloud API base URL.
	ZepUserID  string // Graph user holding the project memory.
}

// Load reads configuration from the environment, picking up a local .env
// file when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ProjectName:   getEnv("FERMI_PROJECT_NAME", "teacher-dashboard-flutter-firebase"),
		InspectionDir: getEnv("FERMI_INSPECTION_DIR", "Project Inspection"),
		ReportPath:    getEnv("FERMI_REPORT_PATH", "project-inspection-errors.xml"),
		SourceDir:     getEnv("FERMI_SOURCE_DIR", "lib"),
		ZepAPIKey:     os.Getenv("ZEP_API_KEY"),
		ZepBaseURL:    getEnv("ZEP_BASE_URL", "https://api.getzep.com/api/v2"),
		ZepUserID:     getEnv("ZEP_USER_ID", "teacher-dashboard-flutter"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
