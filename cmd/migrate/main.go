// Blob maintenance CLI: seeds first-run data, upgrades legacy note blobs to
// the versioned envelope, and copies blobs left under old storage keys.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/pinwall/pinwall-core/internal/app"
	"github.com/pinwall/pinwall-core/internal/config"
	"github.com/pinwall/pinwall-core/internal/repository"
	"github.com/pinwall/pinwall-core/internal/seed"
	"github.com/pinwall/pinwall-core/pkg/kv"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: configs/config.<APP_ENV>.yaml)")
	doSeed := flag.Bool("seed", false, "write bundled seed notes when no collection exists")
	upgrade := flag.Bool("upgrade", false, "rewrap a legacy bare-array blob into the versioned envelope")
	fromKey := flag.String("from-key", "", "copy the blob under this legacy key into the current notes key")
	dryRun := flag.Bool("dry-run", false, "show what would change without writing")
	flag.Parse()

	config.LoadDotEnv()

	path := *configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := app.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}

	ctx := context.Background()

	if *fromKey != "" {
		if err := copyLegacyKey(ctx, store, *fromKey, *dryRun); err != nil {
			log.Fatalf("Copy from %q failed: %v", *fromKey, err)
		}
	}
	if *upgrade {
		if err := upgradeEnvelope(ctx, store, *dryRun); err != nil {
			log.Fatalf("Upgrade failed: %v", err)
		}
	}
	if *doSeed {
		if err := seedNotes(ctx, store, *dryRun); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}
	if !*doSeed && !*upgrade && *fromKey == "" {
		flag.Usage()
	}
}

// copyLegacyKey moves a blob written under an old key (e.g. the
// AsyncStorage-era "@bulletin_board_notes") to the current notes key.
// The target is never overwritten.
func copyLegacyKey(ctx context.Context, store kv.Store, key string, dryRun bool) error {
	if _, found, err := store.Get(ctx, repository.NotesKey); err != nil {
		return err
	} else if found {
		log.Printf("Target key %q already populated, skipping copy", repository.NotesKey)
		return nil
	}

	value, found, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		log.Printf("No blob under legacy key %q", key)
		return nil
	}
	if dryRun {
		log.Printf("[dry-run] would copy %d bytes from %q to %q", len(value), key, repository.NotesKey)
		return nil
	}
	if err := store.Set(ctx, repository.NotesKey, value); err != nil {
		return err
	}
	log.Printf("Copied blob from %q to %q", key, repository.NotesKey)
	return nil
}

// upgradeEnvelope re-encodes whatever is stored into the current versioned
// layout. Legacy bare-array blobs are accepted on read.
func upgradeEnvelope(ctx context.Context, store kv.Store, dryRun bool) error {
	value, found, err := store.Get(ctx, repository.NotesKey)
	if err != nil {
		return err
	}
	if !found {
		log.Printf("No notes blob to upgrade")
		return nil
	}

	notes, err := repository.DecodeNotes(value)
	if err != nil {
		return err
	}
	encoded, err := repository.EncodeNotes(notes)
	if err != nil {
		return err
	}
	if encoded == value {
		log.Printf("Blob already at schema version %d", repository.SchemaVersion)
		return nil
	}
	if dryRun {
		log.Printf("[dry-run] would rewrap %d note(s) into schema version %d", len(notes), repository.SchemaVersion)
		return nil
	}
	if err := store.Set(ctx, repository.NotesKey, encoded); err != nil {
		return err
	}
	log.Printf("Upgraded %d note(s) to schema version %d", len(notes), repository.SchemaVersion)
	return nil
}

// seedNotes writes the bundled seed collection when nothing is stored yet
func seedNotes(ctx context.Context, store kv.Store, dryRun bool) error {
	if _, found, err := store.Get(ctx, repository.NotesKey); err != nil {
		return err
	} else if found {
		log.Printf("Notes blob already exists, skipping seed")
		return nil
	}

	notes, err := seed.Notes()
	if err != nil {
		return err
	}
	if dryRun {
		log.Printf("[dry-run] would seed %d note(s)", len(notes))
		return nil
	}
	encoded, err := repository.EncodeNotes(notes)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, repository.NotesKey, encoded); err != nil {
		return err
	}
	log.Printf("Seeded %d note(s)", len(notes))
	return nil
}
