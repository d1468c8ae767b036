package storage

import "fmt"

// Config selects and configures a storage backend.
type Config struct {
	Type      string // "local" or "s3"
	Dir       string // local only
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	PublicURL string
}

// NewStorage creates an ObjectStorage instance based on the configuration.
// Parameters:
//   - cfg: storage configuration; empty Type defaults to local.
// Returns:
//   - ObjectStorage: initialized storage client implementation.
//   - error: non-nil if the storage client cannot be created.
func NewStorage(cfg *Config) (ObjectStorage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(&LocalConfig{
			Dir:       cfg.Dir,
			PublicURL: cfg.PublicURL,
		})
	case "s3":
		return NewS3Storage(&S3Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			PublicURL: cfg.PublicURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
