package domain

// Asset symbols are free-form strings; these are the instruments the journal
// is typically used with (B3 index and dollar mini futures).
const (
	AssetWIN = "WIN" // Mini Ibovespa futures
	AssetWDO = "WDO" // Mini US dollar futures
	AssetIND = "IND" // Full Ibovespa futures
	AssetDOL = "DOL" // Full US dollar futures
)
