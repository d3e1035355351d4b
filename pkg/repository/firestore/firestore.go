package firestore

import (
	"context"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

type Firestore struct {
	client      *firestore.Client
	company     *companyRepository
	response    *responseRepository
	probability *probabilityRepository
	report      *reportRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.company.collectionPrefix = prefix
		f.response.collectionPrefix = prefix
		f.probability.collectionPrefix = prefix
		f.report.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:      client,
		company:     newCompanyRepository(client),
		response:    newResponseRepository(client),
		probability: newProbabilityRepository(client),
		report:      newReportRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Company() interfaces.CompanyRepository {
	return f.company
}

func (f *Firestore) Response() interfaces.ResponseRepository {
	return f.response
}

func (f *Firestore) Probability() interfaces.ProbabilityRepository {
	return f.probability
}

func (f *Firestore) Report() interfaces.ReportRepository {
	return f.report
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// collectionName applies the optional test prefix to a collection name
func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

// Firestore map keys must be strings, so int-keyed maps are stored with
// decimal string keys.

func toStringKeys[K ~int, V any](m map[K]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[strconv.Itoa(int(k))] = v
	}
	return out
}

func fromStringKeys[K ~int, V any](m map[string]V) (map[K]V, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid numeric map key", goerr.V("key", k))
		}
		out[K(n)] = v
	}
	return out, nil
}

func toFactorKeys[V any](m map[types.FactorID]V) map[string]V {
	return toStringKeys(m)
}

func fromFactorKeys[V any](m map[string]V) (map[types.FactorID]V, error) {
	return fromStringKeys[types.FactorID](m)
}

// now is truncated to the microsecond precision Firestore stores
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
