package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/repository/firestore"
	"github.com/mindcorps/psyrisk/pkg/repository/memory"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
	"github.com/mindcorps/psyrisk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	seedFile         string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore or memory)",
			Value:       "firestore",
			Sources:     cli.EnvVars("PSYRISK_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("PSYRISK_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("PSYRISK_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix added to every Firestore collection name",
			Sources:     cli.EnvVars("PSYRISK_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "JSON fixture loaded into the repository at startup",
			Sources:     cli.EnvVars("PSYRISK_SEED_FILE"),
			Destination: &r.seedFile,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	var repo interfaces.Repository

	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "firestore-project-id is required when using firestore backend")
		}
		var opts []firestore.Option
		if r.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.collectionPrefix))
		}
		fs, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		repo = fs

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		repo = memory.New()

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend", goerr.V("backend", r.backend))
	}

	if r.seedFile != "" {
		if err := r.seed(ctx, repo); err != nil {
			safe.Close(ctx, repo)
			return nil, err
		}
	}

	return repo, nil
}

func (r *Repository) seed(ctx context.Context, repo interfaces.Repository) error {
	// #nosec G304 - path is provided by CLI flag
	f, err := os.Open(r.seedFile)
	if err != nil {
		return goerr.Wrap(err, "failed to open seed file", goerr.V(ConfigPathKey, r.seedFile))
	}
	defer safe.Close(ctx, f)

	if err := memory.Load(ctx, repo, f); err != nil {
		return goerr.Wrap(err, "failed to seed repository", goerr.V(ConfigPathKey, r.seedFile))
	}
	logging.Default().Info("Repository seeded", "path", r.seedFile)
	return nil
}
