// Package config loads and validates the dictation pipeline configuration.
//
// It uses Viper to merge a config.yml file with environment variables and
// godotenv to pick up a local .env file. Environment variables use the
// DICTATE_ prefix with underscore-separated paths
// (e.g. DICTATE_TRANSCRIPTION_BASE_URL).
package config
