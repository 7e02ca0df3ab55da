package models

// AnalyzeRequest runs the engine synchronously over a caller-supplied
// snapshot. Used by dashboards and for debugging rule behavior.
type AnalyzeRequest struct {
	Symbol   string                 `json:"symbol" query:"symbol" validate:"required,min=1,max=32"`
	Snapshot map[string]interface{} `json:"snapshot" validate:"required"`
}

// LatestRequest fetches the latest cached analysis for a symbol.
type LatestRequest struct {
	Symbol string `param:"symbol" query:"symbol" validate:"required,min=1,max=32"`
}

// HistoryRequest queries persisted analyses from the history store.
type HistoryRequest struct {
	Symbol string `query:"symbol" validate:"required,min=1,max=32"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit" default:"100" validate:"gte=1,lte=1000"`
}
