package domain

type Breakdown string

const (
	BreakdownDay  Breakdown = "day"
	BreakdownNone Breakdown = "none"
)

type DailyRate struct {
	Date      string
	Rate      float64
	PctChange *float64 // nil for the earliest date
}

type SummaryTotals struct {
	StartRate      float64
	EndRate        float64
	TotalPctChange float64
	MeanRate       float64
}

type Summary struct {
	Days   []DailyRate // nil unless breakdown is BreakdownDay
	Totals SummaryTotals
}
