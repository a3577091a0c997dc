package common

const (
	KEY_STOCK_DATA = "stock_data:%s:%s:%s"
)

const (
	INTERVAL_DAILY = "1d"
)

// Nifty50Symbols is the NSE Nifty 50 universe (as of 2024), in Yahoo
// Finance notation.
func Nifty50Symbols() []string {
	return []string{
		"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
		"HINDUNILVR.NS", "ITC.NS", "SBIN.NS", "BHARTIARTL.NS", "KOTAKBANK.NS",
		"LT.NS", "AXISBANK.NS", "ASIANPAINT.NS", "MARUTI.NS", "SUNPHARMA.NS",
		"TITAN.NS", "BAJFINANCE.NS", "NESTLEIND.NS", "HCLTECH.NS", "WIPRO.NS",
		"ULTRACEMCO.NS", "ONGC.NS", "NTPC.NS", "POWERGRID.NS", "M&M.NS",
		"TATAMOTORS.NS", "TATASTEEL.NS", "ADANIPORTS.NS", "JSWSTEEL.NS", "INDUSINDBK.NS",
		"HINDALCO.NS", "COALINDIA.NS", "DRREDDY.NS", "BAJAJFINSV.NS", "GRASIM.NS",
		"CIPLA.NS", "TECHM.NS", "EICHERMOT.NS", "HEROMOTOCO.NS", "DIVISLAB.NS",
		"BRITANNIA.NS", "TATACONSUM.NS", "APOLLOHOSP.NS", "SBILIFE.NS", "HDFCLIFE.NS",
		"BPCL.NS", "ADANIENT.NS", "LTIM.NS", "BAJAJ-AUTO.NS", "SHRIRAMFIN.NS",
	}
}
