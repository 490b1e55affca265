package calculation

import (
	"fmt"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer re-prices a row while sweeping one parameter
type SensitivityAnalyzer struct {
	engine *PricingEngine
}

// NewSensitivityAnalyzer creates an analyzer backed by engine. A nil engine
// gets a fresh one.
func NewSensitivityAnalyzer(engine *PricingEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewPricingEngine()
	}
	return &SensitivityAnalyzer{engine: engine}
}

// AnalyzeSingleParameter prices row at every value of parameter. The base
// value defaults to the one currently in cfg (or on the row, for
// annual_increase).
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	row domain.PricingRow,
	cfg domain.PricingConfig,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {

	base, err := currentParameterValue(row, cfg, parameter.Name)
	if err != nil {
		return nil, err
	}
	parameter.BaseValue = base

	baseRes, err := sa.priceAt(row, cfg, parameter.Name, base)
	if err != nil {
		return nil, fmt.Errorf("failed to price base case: %w", err)
	}

	values := generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(values))
	for _, v := range values {
		res, err := sa.priceAt(row, cfg, parameter.Name, v)
		if err != nil {
			return nil, fmt.Errorf("failed to price %s=%s: %w", parameter.Name, v, err)
		}
		res.HighChangePct = percentChange(baseRes.HighOffer, res.HighOffer)
		results = append(results, res)
	}

	return &domain.ParameterSensitivityAnalysis{
		RowID:      row.ID,
		Parameter:  parameter,
		BaseResult: baseRes,
		Results:    results,
		Summary:    summarize(baseRes, results),
	}, nil
}

func (sa *SensitivityAnalyzer) priceAt(row domain.PricingRow, cfg domain.PricingConfig, name string, value decimal.Decimal) (domain.SensitivityResult, error) {
	row, cfg, err := modifyParameter(row, cfg, name, value)
	if err != nil {
		return domain.SensitivityResult{}, err
	}
	res, err := sa.engine.PriceRow(row, cfg)
	if err != nil {
		return domain.SensitivityResult{}, err
	}
	return domain.SensitivityResult{
		ParameterValue: value,
		LowOffer:       res.LowOffer,
		HighOffer:      res.HighOffer,
		DeathBenefit:   res.DeathBenefit,
		NoOffer:        res.NoOffer,
	}, nil
}

// generateParameterValues spreads Steps values evenly from MinValue to MaxValue
func generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	values := make([]decimal.Decimal, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// modifyParameter returns copies of row and cfg with one parameter replaced
func modifyParameter(row domain.PricingRow, cfg domain.PricingConfig, name string, value decimal.Decimal) (domain.PricingRow, domain.PricingConfig, error) {
	cfg = cfg.Clone()
	switch name {
	case "base_rate":
		cfg.BaseRateGuaranteed = value
		cfg.BaseRateLifeContingent = value
		cfg.BaseRateLumpSumGuaranteed = value
		cfg.BaseRateLumpSumLifeContingent = value
	case "family_protection_rate":
		cfg.FamilyProtectionRate = value
	case "min_spread":
		cfg.RateSpreads.Min = value
	case "max_spread":
		cfg.RateSpreads.Max = value
	case "min_adjustment":
		cfg.AmountAdjustments.Min = value
	case "max_adjustment":
		cfg.AmountAdjustments.Max = value
	case "annual_increase":
		v := value
		row.AnnualIncrease = &v
	default:
		return row, cfg, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}
	return row, cfg, nil
}

func currentParameterValue(row domain.PricingRow, cfg domain.PricingConfig, name string) (decimal.Decimal, error) {
	switch name {
	case "base_rate":
		return cfg.BaseRate(row.PaymentType, domain.ParsePaymentFrequency(string(row.Frequency))), nil
	case "family_protection_rate":
		return cfg.FamilyProtectionRate, nil
	case "min_spread":
		return cfg.RateSpreads.Min, nil
	case "max_spread":
		return cfg.RateSpreads.Max, nil
	case "min_adjustment":
		return cfg.AmountAdjustments.Min, nil
	case "max_adjustment":
		return cfg.AmountAdjustments.Max, nil
	case "annual_increase":
		if row.AnnualIncrease != nil {
			return *row.AnnualIncrease, nil
		}
		return cfg.DefaultAnnualIncrease, nil
	}
	return decimal.Zero, fmt.Errorf("unknown sensitivity parameter: %s", name)
}

func percentChange(base, value decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return value.Sub(base).Div(base).Mul(hundred).Round(2)
}

func summarize(base domain.SensitivityResult, results []domain.SensitivityResult) domain.SensitivitySummary {
	s := domain.SensitivitySummary{
		HighOfferMin:    base.HighOffer,
		HighOfferMax:    base.HighOffer,
		DeathBenefitMin: base.DeathBenefit,
		DeathBenefitMax: base.DeathBenefit,
	}
	for _, r := range results {
		s.HighOfferMin = decimal.Min(s.HighOfferMin, r.HighOffer)
		s.HighOfferMax = decimal.Max(s.HighOfferMax, r.HighOffer)
		s.DeathBenefitMin = decimal.Min(s.DeathBenefitMin, r.DeathBenefit)
		s.DeathBenefitMax = decimal.Max(s.DeathBenefitMax, r.DeathBenefit)
		if r.NoOffer {
			s.NoOfferCount++
		}
	}
	s.SwingPct = percentChange(base.HighOffer, base.HighOffer.Add(s.HighOfferMax.Sub(s.HighOfferMin)))

	switch {
	case s.NoOfferCount > 0 || s.SwingPct.GreaterThan(decimal.NewFromInt(25)):
		s.RiskLevel = "HIGH"
	case s.SwingPct.GreaterThan(decimal.NewFromInt(10)):
		s.RiskLevel = "MEDIUM"
	default:
		s.RiskLevel = "LOW"
	}
	return s
}
