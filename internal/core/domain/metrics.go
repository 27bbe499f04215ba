package domain

// MetricsSnapshot is a fully-recomputed, non-incremental metrics result for
// the current ticket set. It is superseded by the next computation and never
// updated in place.
type MetricsSnapshot struct {
	TotalTickets        int            `json:"total_tickets"`
	ResolvedTickets     int            `json:"resolved_tickets"`
	OpenTickets         int            `json:"open_tickets"`
	ResolutionRate      float64        `json:"resolution_rate"`
	MeanResolutionHours float64        `json:"mean_resolution_hours"`
	MeanSatisfaction    float64        `json:"mean_satisfaction"`
	SLA24hRate          float64        `json:"sla_24h_rate"`
	TicketsByCategory   map[string]int `json:"tickets_by_category"`
	TicketsByPriority   map[string]int `json:"tickets_by_priority"`
	TicketsByChannel    map[string]int `json:"tickets_by_channel"`
}

// CategoryStatusRow is one (category, status) bucket of the grouped report.
type CategoryStatusRow struct {
	Category            string  `json:"category"`
	Status              string  `json:"status"`
	Count               int     `json:"count"`
	MeanResolutionHours float64 `json:"mean_resolution_hours"`
}

// AgentPerformanceRow aggregates resolved tickets per agent.
type AgentPerformanceRow struct {
	Agent               string  `json:"agent"`
	Count               int     `json:"count"`
	MeanResolutionHours float64 `json:"mean_resolution_hours"`
	MeanSatisfaction    float64 `json:"mean_satisfaction"`
}

// WeeklyTrendRow counts created vs resolved tickets for one ISO week.
type WeeklyTrendRow struct {
	Week     string `json:"week"`
	Created  int    `json:"created"`
	Resolved int    `json:"resolved"`
}

// GroupedReport bundles the three secondary aggregations.
type GroupedReport struct {
	ByCategoryStatus []CategoryStatusRow   `json:"by_category_status"`
	ByAgent          []AgentPerformanceRow `json:"by_agent"`
	WeeklyTrend      []WeeklyTrendRow      `json:"weekly_trend"`
}
