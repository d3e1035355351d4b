package memory

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
)

// Load decodes a JSON fixture from r and writes its content into repo. Any
// backend can be seeded this way; the memory backend uses it for local runs.
func Load(ctx context.Context, repo interfaces.Repository, r io.Reader) error {
	var fixture interfaces.Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return goerr.Wrap(err, "failed to decode fixture")
	}

	for _, c := range fixture.Companies {
		if err := repo.Company().Put(ctx, c); err != nil {
			return goerr.Wrap(err, "failed to load company", goerr.V("id", c.ID))
		}
	}
	for _, resp := range fixture.Responses {
		if _, err := repo.Response().Create(ctx, resp); err != nil {
			return goerr.Wrap(err, "failed to load response", goerr.V("id", resp.ID))
		}
	}
	for _, p := range fixture.Probabilities {
		if _, err := repo.Probability().Put(ctx, p); err != nil {
			return goerr.Wrap(err, "failed to load probability assessment",
				goerr.V("company_id", p.CompanyID), goerr.V("sector_id", p.SectorID))
		}
	}
	for _, rep := range fixture.Reports {
		if _, err := repo.Report().Put(ctx, rep); err != nil {
			return goerr.Wrap(err, "failed to load report",
				goerr.V("company_id", rep.CompanyID), goerr.V("sector_id", rep.SectorID))
		}
	}

	return nil
}
