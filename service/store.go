package service

import (
	"context"
	"fmt"

	"blogapi/app/config"
	"blogapi/app/repositories"
	"blogapi/app/repositories/mongostore"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// store bundles the repositories of one backend with its teardown.
type store struct {
	blogs repositories.BlogRepository
	posts repositories.PostRepository
	close func(ctx context.Context) error
}

// badgerLogger routes badger's internal logging through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}

func badgerOptions(cfg config.StoreConfig, log zerolog.Logger) badger.Options {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Documents are overwritten in place; older versions are never read.
	return opts.
		WithLogger(badgerLogger{log: log}).
		WithNumVersionsToKeep(1)
}

func openStore(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		db, err := badger.Open(badgerOptions(cfg, log.With().Str("component", "badger").Logger()))
		if err != nil {
			return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
		}
		log.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("opened badger store")
		return &store{
			blogs: repositories.NewBadgerBlogRepository(db),
			posts: repositories.NewBadgerPostRepository(db),
			close: func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		log.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongo")
		return &store{
			blogs: mongostore.NewBlogRepository(db),
			posts: mongostore.NewPostRepository(db),
			close: client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
