package fight

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// AgreementRate summarizes one batch's agreement rate as a proportion, with
// a 95% confidence interval built from the proportion's standard error and a
// Student's t quantile with n-1 degrees of freedom (each case is a Bernoulli
// trial: engine and reference agree, or they don't).
type AgreementRate struct {
	Rate       float64
	StdErr     float64
	CI95Low    float64
	CI95High   float64
	SampleSize int
}

// RateStats computes the agreement rate and its 95% CI for a completed
// batch.
func RateStats(s Summary) AgreementRate {
	if s.Total == 0 {
		return AgreementRate{}
	}
	p := float64(s.Agreements) / float64(s.Total)
	se := math.Sqrt(p * (1 - p) / float64(s.Total))
	low, high := calculateCI95(p, se, s.Total)
	return AgreementRate{Rate: p, StdErr: se, CI95Low: low, CI95High: high, SampleSize: s.Total}
}

// RateComparison is the result of comparing two independent AgreementRates,
// e.g. before and after a rule-shard change, via Welch's t-test on
// proportions.
type RateComparison struct {
	Difference float64
	StdError   float64
	TStatistic float64
	PValue     float64
	EffectSize float64
	CI95Low    float64
	CI95High   float64
}

// CompareRates reports whether the difference between two agreement rates
// is statistically significant, using Welch's t-test (unequal variances,
// unequal sample sizes) rather than assuming the two batches are the same
// size.
func CompareRates(baseline, challenger AgreementRate) RateComparison {
	difference := challenger.Rate - baseline.Rate

	sePooled := math.Sqrt(baseline.StdErr*baseline.StdErr + challenger.StdErr*challenger.StdErr)
	tStat := 0.0
	if sePooled > 0 {
		tStat = difference / sePooled
	}

	df := welchDF(baseline.StdErr, baseline.SampleSize, challenger.StdErr, challenger.SampleSize)
	pValue := tTestPValue(tStat, df)

	pooledSD := pooledStdDev(baseline.StdErr*math.Sqrt(float64(baseline.SampleSize)), baseline.SampleSize,
		challenger.StdErr*math.Sqrt(float64(challenger.SampleSize)), challenger.SampleSize)
	effectSize := 0.0
	if pooledSD > 0 {
		effectSize = difference / pooledSD
	}

	tDist := distuv.StudentsT{Nu: float64(df), Mu: 0, Sigma: 1}
	margin := tDist.Quantile(0.975) * sePooled

	return RateComparison{
		Difference: difference,
		StdError:   sePooled,
		TStatistic: tStat,
		PValue:     pValue,
		EffectSize: effectSize,
		CI95Low:    difference - margin,
		CI95High:   difference + margin,
	}
}

func calculateCI95(mean, stdErr float64, n int) (float64, float64) {
	if n <= 1 {
		return mean, mean
	}
	tDist := distuv.StudentsT{Nu: float64(n - 1), Mu: 0, Sigma: 1}
	margin := tDist.Quantile(0.975) * stdErr
	return mean - margin, mean + margin
}

func welchDF(sd1 float64, n1 int, sd2 float64, n2 int) int {
	if n1 <= 1 || n2 <= 1 {
		return 2
	}
	v1 := sd1 * sd1
	v2 := sd2 * sd2
	numerator := (v1 + v2) * (v1 + v2)
	denominator := (v1*v1)/float64(n1-1) + (v2*v2)/float64(n2-1)
	if denominator == 0 {
		return n1 + n2 - 2
	}
	return int(math.Floor(numerator / denominator))
}

func tTestPValue(tStat float64, df int) float64 {
	if df <= 0 {
		return 1.0
	}
	tDist := distuv.StudentsT{Nu: float64(df), Mu: 0, Sigma: 1}
	pOneTail := 1 - tDist.CDF(math.Abs(tStat))
	pValue := 2 * pOneTail
	switch {
	case pValue > 1:
		return 1
	case pValue < 0:
		return 0
	default:
		return pValue
	}
}

func pooledStdDev(sd1 float64, n1 int, sd2 float64, n2 int) float64 {
	if n1+n2 <= 2 {
		return 0
	}
	pooledVar := (float64(n1-1)*sd1*sd1 + float64(n2-1)*sd2*sd2) / float64(n1+n2-2)
	return math.Sqrt(pooledVar)
}

// InterpretEffectSize returns a human-readable label for Cohen's d.
func InterpretEffectSize(d float64) string {
	absd := math.Abs(d)
	switch {
	case absd < 0.2:
		return "negligible"
	case absd < 0.5:
		return "small"
	case absd < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// InterpretPValue returns a human-readable label for a p-value at the given
// significance level.
func InterpretPValue(p, alpha float64) string {
	switch {
	case p < 0.001:
		return "highly significant"
	case p < 0.01:
		return "very significant"
	case p < alpha:
		return "significant"
	case p < 0.10:
		return "marginally significant"
	default:
		return "not significant"
	}
}
