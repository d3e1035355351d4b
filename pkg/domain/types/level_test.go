package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

func TestSeverityLevel_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		level types.SeverityLevel
		want  bool
	}{
		{name: "valid low", level: types.SeverityLow, want: true},
		{name: "valid medium", level: types.SeverityMedium, want: true},
		{name: "valid high", level: types.SeverityHigh, want: true},
		{name: "critical is not a severity band", level: types.SeverityLevel("CRITICAL"), want: false},
		{name: "empty level", level: types.SeverityLevel(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.level.IsValid()).Equal(tt.want)
		})
	}
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.RiskLevel
		wantErr bool
	}{
		{name: "valid low", input: "LOW", want: types.RiskLow},
		{name: "valid medium", input: "MEDIUM", want: types.RiskMedium},
		{name: "valid high", input: "HIGH", want: types.RiskHigh},
		{name: "valid critical", input: "CRITICAL", want: types.RiskCritical},
		{name: "lowercase is rejected", input: "low", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseRiskLevel(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestLevelRanksAscend(t *testing.T) {
	t.Run("severity", func(t *testing.T) {
		for i, level := range types.AllSeverityLevels() {
			gt.Value(t, level.Rank()).Equal(i)
		}
	})

	t.Run("probability", func(t *testing.T) {
		for i, level := range types.AllProbabilityLevels() {
			gt.Value(t, level.Rank()).Equal(i)
		}
	})

	t.Run("risk", func(t *testing.T) {
		levels := types.AllRiskLevels()
		gt.A(t, levels).Length(4)
		for i, level := range levels {
			gt.Value(t, level.Rank()).Equal(i)
		}
	})

	t.Run("invalid level ranks below everything", func(t *testing.T) {
		gt.Value(t, types.RiskLevel("bogus").Rank()).Equal(-1)
	})
}

func TestParseFactorID(t *testing.T) {
	id, err := types.ParseFactorID("7")
	gt.NoError(t, err).Required()
	gt.Value(t, id).Equal(types.FactorID(7))
	gt.Value(t, id.String()).Equal("7")

	_, err = types.ParseFactorID("0")
	gt.Error(t, err)

	_, err = types.ParseFactorID("seven")
	gt.Error(t, err)
}

func TestFactorKey_Validate(t *testing.T) {
	gt.NoError(t, types.FactorKey("work-life").Validate())
	gt.Error(t, types.FactorKey("").Validate())
	gt.Error(t, types.FactorKey("Work_Life").Validate())
}
