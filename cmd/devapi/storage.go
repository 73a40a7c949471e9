package main

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/config"
	"github.com/Nixie-Tech-LLC/signage-console/internal/storage"
)

// initStorage selects local disk or DigitalOcean Spaces for uploads.
func initStorage(cfg *config.DevAPI) storage.Storage {
	if cfg.UseSpaces {
		s := cfg.Spaces
		spaces, err := storage.NewSpacesStorage(s.Endpoint, s.Region, s.Bucket, s.CDNURL, s.AccessKey, s.SecretKey)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", s.CDNURL).Msg("using DigitalOcean Spaces storage")
		return spaces
	}

	local := storage.NewLocalStorage(cfg.UploadDir, publicURL(cfg))
	log.Info().Str("dir", local.Dir()).Msg("using local file storage")
	return local
}

// localUploadDir is served under /uploads only when files are kept on disk.
func localUploadDir(cfg *config.DevAPI) string {
	if cfg.UseSpaces {
		return ""
	}
	return cfg.UploadDir
}

// publicURL is the absolute base uploaded files are linked from.
func publicURL(cfg *config.DevAPI) string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	addr := cfg.ServerAddress
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
