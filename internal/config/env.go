package config

import "os"

// providerKeyFromEnv resolves the API key from the provider's conventional
// environment variable when the generic AI_API_KEY is not set.
func providerKeyFromEnv(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GOOGLE_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
