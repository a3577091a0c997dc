package engine

import (
	"math"
	"time"
)

// ExitReason records why a position was closed.
type ExitReason string

const (
	ExitSignal      ExitReason = "signal"
	ExitStopLoss    ExitReason = "stop_loss"
	ExitEndOfPeriod ExitReason = "end_of_period"
)

// Trade is one completed round trip, appended to the ledger when a position
// closes and immutable afterwards. PnL is net of the transaction costs on
// both legs.
type Trade struct {
	EntryDate       time.Time
	ExitDate        time.Time
	EntryPrice      float64
	ExitPrice       float64
	Shares          int64
	TransactionCost float64
	PnL             float64
	ExitReason      ExitReason
}

// EquityPoint is one day's total portfolio value (cash plus holdings marked
// at that bar's close).
type EquityPoint struct {
	Date   time.Time
	Equity float64
}

// simulationState is owned exclusively by one simulate call and discarded
// after the run.
type simulationState struct {
	cash       float64
	shares     int64
	entryPrice float64
	entryDate  time.Time
	entryCost  float64
}

// simulate replays the intent series bar by bar in timestamp order. An intent
// decided at bar i (which uses bar i's close) executes at bar i+1's open, the
// next tradable price. At most one transition happens per bar; a stop-loss
// (checked against the close, inclusive) takes priority over a simultaneous
// signal exit, and a position still open after the last bar is force-closed
// at the final close.
func simulate(series PriceSeries, intents []Intent, risk RiskParams, costRate, initialCapital float64) ([]EquityPoint, []Trade) {
	equity := make([]EquityPoint, len(series))
	trades := []Trade{}

	st := simulationState{cash: initialCapital}
	stopPrice := 0.0

	for i, bar := range series {
		if st.shares > 0 {
			switch {
			case bar.Close <= stopPrice:
				trades = append(trades, closePosition(&st, bar.Timestamp, bar.Close, costRate, ExitStopLoss))
			case intents[i-1] == IntentFlat:
				trades = append(trades, closePosition(&st, bar.Timestamp, bar.Open, costRate, ExitSignal))
			}
		} else if i > 0 && intents[i-1] == IntentLong {
			costPerShare := bar.Open * (1 + costRate)
			shares := int64(math.Floor(st.cash * risk.PositionSizeFraction / costPerShare))
			if shares >= 1 {
				// insufficient capital (shares < 1) is skipped silently
				st.shares = shares
				st.entryPrice = bar.Open
				st.entryDate = bar.Timestamp
				st.entryCost = float64(shares) * bar.Open * costRate
				st.cash -= float64(shares) * costPerShare
				stopPrice = bar.Open * (1 - risk.StopLossFraction)
			}
		}

		equity[i] = EquityPoint{
			Date:   bar.Timestamp,
			Equity: st.cash + float64(st.shares)*bar.Close,
		}
	}

	// Force-close whatever is still open at the final close.
	if st.shares > 0 {
		last := series[len(series)-1]
		trades = append(trades, closePosition(&st, last.Timestamp, last.Close, costRate, ExitEndOfPeriod))
		equity[len(series)-1].Equity = st.cash
	}

	return equity, trades
}

func closePosition(st *simulationState, exitDate time.Time, exitPrice, costRate float64, reason ExitReason) Trade {
	exitCost := float64(st.shares) * exitPrice * costRate
	proceeds := float64(st.shares)*exitPrice - exitCost
	costBasis := float64(st.shares)*st.entryPrice + st.entryCost

	trade := Trade{
		EntryDate:       st.entryDate,
		ExitDate:        exitDate,
		EntryPrice:      st.entryPrice,
		ExitPrice:       exitPrice,
		Shares:          st.shares,
		TransactionCost: st.entryCost + exitCost,
		PnL:             proceeds - costBasis,
		ExitReason:      reason,
	}

	st.cash += proceeds
	st.shares = 0
	st.entryPrice = 0
	st.entryCost = 0

	return trade
}
