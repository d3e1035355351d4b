package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
	"github.com/mindcorps/psyrisk/pkg/usecase"
	"github.com/mindcorps/psyrisk/pkg/utils/errutil"
)

// errMalformedBody is returned when a request body cannot be decoded
var errMalformedBody = errors.New("malformed request body")

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// readJSON decodes the request body into v, rejecting unknown fields
func (s *Server) readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(errMalformedBody, err.Error())
	}
	return nil
}

// statusOf maps use case and validation errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, errMalformedBody),
		errors.Is(err, usecase.ErrInvalidCompany),
		errors.Is(err, model.ErrInvalidAnswer),
		errors.Is(err, model.ErrUnknownQuestion),
		errors.Is(err, model.ErrInvalidProbability),
		errors.Is(err, model.ErrUnknownFactor),
		errors.Is(err, model.ErrMissingRequired):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrCompanyNotFound),
		errors.Is(err, usecase.ErrSectorNotFound),
		errors.Is(err, usecase.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrLLMNotConfigured),
		errors.Is(err, usecase.ErrExporterNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

// publicCompany hides the survey access code from API responses
func publicCompany(c *model.Company) *model.Company {
	cp := c.Clone()
	cp.AccessCode = ""
	return cp
}

type catalogResponse struct {
	Factors  []config.RiskFactor  `json:"factors"`
	Inverted []int                `json:"inverted"`
	Policy   config.ScoringPolicy `json:"policy"`
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	engine := s.uc.Engine()
	writeJSON(w, r, http.StatusOK, catalogResponse{
		Factors:  engine.Catalog().Factors(),
		Inverted: engine.Catalog().Inverted(),
		Policy:   engine.Policy(),
	})
}

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.uc.Company.ListCompanies(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := struct {
		Companies []*model.Company `json:"companies"`
	}{
		Companies: make([]*model.Company, len(companies)),
	}
	for i, c := range companies {
		resp.Companies[i] = publicCompany(c)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) registerCompany(w http.ResponseWriter, r *http.Request) {
	var company model.Company
	if err := s.readJSON(r, &company); err != nil {
		handleError(w, r, err)
		return
	}

	stored, err := s.uc.Company.RegisterCompany(r.Context(), &company)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, publicCompany(stored))
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.uc.Company.GetCompany(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, publicCompany(company))
}

func (s *Server) analyzeCompany(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.uc.Analysis.AnalyzeCompany(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, analysis)
}

func (s *Server) analyzeSector(w http.ResponseWriter, r *http.Request) {
	companyID, sectorID := sectorParams(r)
	analysis, err := s.uc.Analysis.AnalyzeSector(r.Context(), companyID, sectorID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, analysis)
}

func (s *Server) listResponses(w http.ResponseWriter, r *http.Request) {
	companyID, sectorID := sectorParams(r)
	responses, err := s.uc.Survey.ListResponses(r.Context(), companyID, sectorID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if responses == nil {
		responses = []*model.SurveyResponse{}
	}
	writeJSON(w, r, http.StatusOK, struct {
		Responses []*model.SurveyResponse `json:"responses"`
	}{Responses: responses})
}

func (s *Server) submitResponse(w http.ResponseWriter, r *http.Request) {
	var response model.SurveyResponse
	if err := s.readJSON(r, &response); err != nil {
		handleError(w, r, err)
		return
	}
	response.CompanyID, response.SectorID = sectorParams(r)

	stored, err := s.uc.Survey.Submit(r.Context(), &response)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, stored)
}

func (s *Server) getProbability(w http.ResponseWriter, r *http.Request) {
	companyID, sectorID := sectorParams(r)
	assessment, err := s.uc.Probability.Get(r.Context(), companyID, sectorID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, assessment)
}

func (s *Server) saveProbability(w http.ResponseWriter, r *http.Request) {
	var assessment model.ProbabilityAssessment
	if err := s.readJSON(r, &assessment); err != nil {
		handleError(w, r, err)
		return
	}
	assessment.CompanyID, assessment.SectorID = sectorParams(r)

	stored, err := s.uc.Probability.Save(r.Context(), &assessment)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stored)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	companyID, sectorID := sectorParams(r)
	report, err := s.uc.Report.Get(r.Context(), companyID, sectorID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) saveReport(w http.ResponseWriter, r *http.Request) {
	var report model.DiagnosticReport
	if err := s.readJSON(r, &report); err != nil {
		handleError(w, r, err)
		return
	}
	report.CompanyID, report.SectorID = sectorParams(r)

	stored, err := s.uc.Report.Save(r.Context(), &report)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stored)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	companyID, sectorID := sectorParams(r)
	doc, err := s.uc.Report.Document(r.Context(), companyID, sectorID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	companyID, sectorID := sectorParams(r)
	location, err := s.uc.Report.Export(r.Context(), companyID, sectorID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"location": location})
}

func (s *Server) generateInsight(w http.ResponseWriter, r *http.Request) {
	companyID, sectorID := sectorParams(r)
	insight, err := s.uc.Insight.Generate(r.Context(), companyID, sectorID, r.URL.Query().Get("language"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, insight)
}

func sectorParams(r *http.Request) (companyID, sectorID string) {
	return chi.URLParam(r, "companyID"), chi.URLParam(r, "sectorID")
}
