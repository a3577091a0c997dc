package engine

import "math"

// tradingDaysPerYear is the annualization convention for daily bars.
const tradingDaysPerYear = 252

// Metrics summarizes a backtest. Metrics that cannot be computed (no trades,
// zero variance, missing benchmark) are NaN, and profit factor is +Inf when
// there are no losing trades; neither is ever collapsed to 0. Callers that
// serialize a Metrics must convert those values explicitly.
type Metrics struct {
	TotalReturn      float64
	AnnualizedReturn float64
	SharpeRatio      float64
	MaxDrawdown      float64
	WinRate          float64
	ProfitFactor     float64
	Alpha            float64
	Beta             float64
	NumTrades        int
}

// calculateMetrics derives the summary statistics from the equity curve and
// trade ledger. benchmarkCloses is optional; without it alpha and beta stay
// NaN.
func calculateMetrics(equity []EquityPoint, trades []Trade, benchmarkCloses []float64) Metrics {
	m := Metrics{
		SharpeRatio:  math.NaN(),
		WinRate:      math.NaN(),
		ProfitFactor: math.NaN(),
		Alpha:        math.NaN(),
		Beta:         math.NaN(),
		NumTrades:    len(trades),
	}
	if len(equity) == 0 {
		return m
	}

	initial := equity[0].Equity
	final := equity[len(equity)-1].Equity
	m.TotalReturn = final/initial - 1
	m.AnnualizedReturn = math.Pow(1+m.TotalReturn, tradingDaysPerYear/float64(len(equity))) - 1

	returns := dailyReturns(equity)
	if std := sampleStdDev(returns); std > 0 {
		m.SharpeRatio = mean(returns) / std * math.Sqrt(tradingDaysPerYear)
	}

	m.MaxDrawdown = maxDrawdown(equity)

	if len(trades) > 0 {
		wins := 0
		grossProfit := 0.0
		grossLoss := 0.0
		for _, t := range trades {
			if t.PnL > 0 {
				wins++
				grossProfit += t.PnL
			} else if t.PnL < 0 {
				grossLoss += -t.PnL
			}
		}
		m.WinRate = float64(wins) / float64(len(trades))
		if grossLoss > 0 {
			m.ProfitFactor = grossProfit / grossLoss
		} else {
			m.ProfitFactor = math.Inf(1)
		}
	}

	if len(benchmarkCloses) == len(equity) {
		m.Alpha, m.Beta = alphaBeta(returns, closeReturns(benchmarkCloses))
	}

	return m
}

// dailyReturns is equity[i]/equity[i-1] - 1 for i >= 1.
func dailyReturns(equity []EquityPoint) []float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		returns[i-1] = equity[i].Equity/equity[i-1].Equity - 1
	}
	return returns
}

func closeReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = closes[i]/closes[i-1] - 1
	}
	return returns
}

// maxDrawdown is the worst decline from the running equity peak, always <= 0.
func maxDrawdown(equity []EquityPoint) float64 {
	peak := equity[0].Equity
	worst := 0.0
	for _, p := range equity {
		if p.Equity > peak {
			peak = p.Equity
		}
		if dd := p.Equity/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

// alphaBeta runs an ordinary least-squares regression of strategy daily
// returns against benchmark daily returns. Beta is covariance over benchmark
// variance; alpha is the daily intercept annualized by the 252-day
// convention. Both are NaN when the benchmark has no variance or too few
// points.
func alphaBeta(strategy, benchmark []float64) (alpha, beta float64) {
	if len(strategy) != len(benchmark) || len(strategy) < 2 {
		return math.NaN(), math.NaN()
	}

	meanS := mean(strategy)
	meanB := mean(benchmark)

	cov := 0.0
	varB := 0.0
	for i := range strategy {
		cov += (strategy[i] - meanS) * (benchmark[i] - meanB)
		varB += (benchmark[i] - meanB) * (benchmark[i] - meanB)
	}
	if varB == 0 {
		return math.NaN(), math.NaN()
	}

	beta = cov / varB
	alpha = (meanS - beta*meanB) * tradingDaysPerYear
	return alpha, beta
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator, matching the convention of the
// usual daily-return volatility estimate.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mu := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - mu) * (v - mu)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
