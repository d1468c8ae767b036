package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/timmy/memeforge/internal/config"
	"github.com/timmy/memeforge/internal/logger"
)

const maxTemplateBytes = 10 * 1024 * 1024

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "memeforge-templates",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	name := flag.String("name", "", "Template name override (default: source file stem)")
	list := flag.Bool("list", false, "List installed templates instead of importing")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	if *list {
		listTemplates(appLogger, cfg.Templates.Dir)
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: templates [-config path] [-name override] image...")
		os.Exit(2)
	}
	if *name != "" && len(files) > 1 {
		appLogger.Fatal("-name can only be used with a single source file")
	}

	if err := os.MkdirAll(cfg.Templates.Dir, 0o755); err != nil {
		appLogger.WithError(err).Fatal("Failed to create templates directory")
	}

	for _, file := range files {
		templateName := *name
		if templateName == "" {
			templateName = templateNameFromPath(file)
		}
		if err := importTemplate(cfg, file, templateName); err != nil {
			appLogger.WithError(err).WithField("file", file).Fatal("Import failed")
		}
		appLogger.WithFields(logger.Fields{
			"file":     file,
			"template": templateName,
		}).Info("Template imported")
	}
}

// importTemplate validates the source image and installs it under the
// templates directory as a JPEG.
func importTemplate(cfg *config.Config, path, name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("invalid template name %q", name)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxTemplateBytes {
		return fmt.Errorf("%s is %d bytes, limit is %d", path, info.Size(), maxTemplateBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not a decodable image: %w", err)
	}

	// Oversized sources are shrunk at import time so the render path never
	// has to pay for it per request.
	maxDim := cfg.Render.MaxDimension
	if maxDim > 0 {
		b := img.Bounds()
		if b.Dx() > maxDim || b.Dy() > maxDim {
			img = resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return fmt.Errorf("re-encode failed: %w", err)
	}

	dest := filepath.Join(cfg.Templates.Dir, name+".jpg")
	return os.WriteFile(dest, buf.Bytes(), 0o644)
}

// templateNameFromPath derives the template name from the file stem,
// lowercased with spaces collapsed to underscores.
func templateNameFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.ToLower(stem)
	return strings.ReplaceAll(stem, " ", "_")
}

func listTemplates(appLogger *logger.Logger, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to read templates directory")
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".gif":
			fmt.Println(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
			count++
		}
	}
	appLogger.WithField("count", count).Info("Templates listed")
}
