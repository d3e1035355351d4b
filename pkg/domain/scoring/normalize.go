package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
)

// Normalize returns the polarity-corrected answer of question in r. ok is false
// when the respondent did not answer. A raw value outside 0..4 yields
// ErrAnswerOutOfRange; callers exclude it rather than clamp it.
func Normalize(catalog *config.FactorCatalog, r *model.SurveyResponse, question int) (value int, ok bool, err error) {
	raw, answered := r.Answers[question]
	if !answered {
		return 0, false, nil
	}
	if raw < model.MinAnswer || raw > model.MaxAnswer {
		return 0, false, goerr.Wrap(ErrAnswerOutOfRange, "answer excluded",
			goerr.V("response_id", r.ID),
			goerr.V("question", question),
			goerr.V("answer", raw))
	}
	if catalog.IsInverted(question) {
		return model.MaxAnswer - raw, true, nil
	}
	return raw, true, nil
}
