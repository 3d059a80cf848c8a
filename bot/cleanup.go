package bot

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cleanupInterval = 10 * time.Minute
	maxFileAge      = 1 * time.Hour
)

// startCleanupRoutine reaps downloaded audio files that outlived their
// welcome: tracks skipped or stopped before their file was deleted inline.
func (b *Bot) startCleanupRoutine(stop <-chan struct{}) {
	go func() {
		ticker := b.clock.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				b.sweepDownloads()
			}
		}
	}()
}

func (b *Bot) sweepDownloads() {
	dir := b.yt.DownloadDir
	files, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("dir", dir).Msg("cleanup: failed to read dir")
		}
		return
	}

	now := b.clock.Now()
	for _, file := range files {
		path := filepath.Join(dir, file.Name())
		info, err := file.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > maxFileAge {
			if err := os.Remove(path); err != nil {
				log.Warn().Err(err).Str("file", path).Msg("cleanup: failed to remove file")
			} else {
				log.Debug().Str("file", path).Msg("cleanup: removed stale file")
			}
		}
	}
}
