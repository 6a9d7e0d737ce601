package main

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tarwn/consuming-logs/internal/adapters/persistence"
	"github.com/tarwn/consuming-logs/internal/adapters/publisher"
	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/infrastructure/config"
)

// sinkSet is the fanout plus the sinks that need closing on shutdown
type sinkSet struct {
	fanout       *publisher.FanoutPublisher
	journal      *publisher.Journal
	streamServer *publisher.StreamServer
}

func buildPublishers(ctx context.Context, cfg *config.Config, db *gorm.DB, logger common.Logger) (*sinkSet, error) {
	pub := cfg.Publishing
	s := &sinkSet{fanout: publisher.NewFanoutPublisher()}

	if pub.Log.Enabled {
		s.fanout.Add("log", publisher.NewLoggingPublisher("DEBUG"))
	}

	if pub.Database.Enabled && db != nil {
		s.fanout.Add("database", persistence.NewGormEventRepository(db))
	}

	if pub.Journal.Enabled {
		var opts []publisher.JournalOption
		if pub.Archive.Enabled {
			archiver, err := publisher.NewS3Archiver(ctx, publisher.ArchiveConfig{
				Bucket:            pub.Archive.Bucket,
				Prefix:            pub.Archive.Prefix,
				Region:            pub.Archive.Region,
				Endpoint:          pub.Archive.Endpoint,
				UsePathStyle:      pub.Archive.UsePathStyle,
				DeleteAfterUpload: pub.Archive.DeleteAfterUpload,
			}, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to create journal archiver: %w", err)
			}
			opts = append(opts, publisher.WithRotateHook(archiver.RotateHook(context.WithoutCancel(ctx))))
		}
		s.journal = publisher.NewJournal(pub.Journal.Dir, "events", pub.Journal.RotateEvery, opts...)
		s.fanout.Add("journal", s.journal)
	}

	if pub.Stream.Enabled {
		hub := publisher.NewStreamHub(pub.Stream.Buffer)
		server, err := publisher.NewStreamServer(pub.Stream.Host, pub.Stream.Port, pub.Stream.Path, hub)
		if err != nil {
			return nil, fmt.Errorf("failed to create event stream server: %w", err)
		}
		s.streamServer = server
		s.streamServer.Start()
		s.fanout.Add("stream", hub)
		logger.Log("INFO", "[Stream] Serving events on ws://"+server.Addr()+pub.Stream.Path, nil)
	}

	logger.Log("INFO", fmt.Sprintf("[Daemon] Publishing to %d sinks", s.fanout.Len()), nil)
	return s, nil
}

// addLedgerProjection must run before the tick loop starts
func (s *sinkSet) addLedgerProjection(med common.Mediator) {
	s.fanout.Add("ledger", publisher.NewLedgerProjection(med))
}

func (s *sinkSet) close(cfg *config.Config, logger common.Logger) {
	if s.streamServer != nil {
		shutdownWithTimeout(cfg, "event stream", logger, s.streamServer.Shutdown)
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			logger.Log("WARNING", fmt.Sprintf("[Daemon] Failed to close journal: %v", err), nil)
		}
	}
}
