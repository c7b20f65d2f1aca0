package domain

import "time"

// RiskLevel grades a response plan
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// PlanAction is one step of a response plan
type PlanAction struct {
	Category         string   `json:"category" yaml:"category"`
	Title            string   `json:"title" yaml:"title"`
	Description      string   `json:"description" yaml:"description"`
	TechnicalDetails string   `json:"technical_details" yaml:"technical_details"`
	Impact           string   `json:"impact" yaml:"impact"`
	Cost             float64  `json:"cost" yaml:"cost"`
	OperationalCost  float64  `json:"operational_cost" yaml:"operational_cost"`
	Duration         string   `json:"duration" yaml:"duration"`
	Priority         string   `json:"priority" yaml:"priority"`
	Prerequisites    []string `json:"prerequisites" yaml:"prerequisites"`
	Risks            []string `json:"risks" yaml:"risks"`
	KPIs             []string `json:"kpis" yaml:"kpis"`
}

// Plan is a suggested heatwave response plan
type Plan struct {
	ID                string       `json:"id" yaml:"id"`
	Name              string       `json:"name" yaml:"name"`
	Description       string       `json:"description" yaml:"description"`
	RiskLevel         RiskLevel    `json:"risk_level" yaml:"risk_level"`
	SuccessRate       float64      `json:"success_rate" yaml:"success_rate"`
	EstimatedCost     float64      `json:"estimated_cost" yaml:"estimated_cost"`
	EnergySavings     float64      `json:"energy_savings" yaml:"energy_savings"`
	CoolingEfficiency float64      `json:"cooling_efficiency" yaml:"cooling_efficiency"`
	PaybackPeriod     float64      `json:"payback_period_years" yaml:"payback_period"`
	ExecutionTime     int          `json:"execution_time_minutes" yaml:"execution_time"`
	Dependencies      []string     `json:"dependencies" yaml:"dependencies"`
	CriticalPath      []string     `json:"critical_path" yaml:"critical_path"`
	Actions           []PlanAction `json:"actions" yaml:"actions"`
}

// PlanCostSummary rolls up the action costs of a plan
type PlanCostSummary struct {
	CapitalCost     string `json:"capital_cost"`
	OperationalCost string `json:"operational_cost"`
	TotalCost       string `json:"total_cost"`
}

// Incident is an extreme weather event that affected a data center
type Incident struct {
	ID          string `json:"id" csv:"id"`
	Timestamp   string `json:"timestamp" csv:"timestamp"`
	Type        string `json:"type" csv:"type"` // "error", "warning", "info"
	Title       string `json:"title" csv:"title"`
	Description string `json:"description" csv:"description"`
	Status      string `json:"status" csv:"status"` // "active", "resolved"
	Location    string `json:"location" csv:"location"`
	Provider    string `json:"provider" csv:"provider"`
	Duration    string `json:"duration" csv:"duration"`
	Cause       string `json:"cause" csv:"cause"`
	Impact      string `json:"impact" csv:"impact"`
	Actions     string `json:"actions" csv:"actions"`
	Prevention  string `json:"prevention" csv:"prevention"`
}

// SiteStatus is the health of a data center in the regional network
type SiteStatus string

const (
	SiteOperational SiteStatus = "operational"
	SiteWarning     SiteStatus = "warning"
	SiteCritical    SiteStatus = "critical"
)

// DataCenter is one site of the regional network
type DataCenter struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	LocationKey string      `json:"location_key,omitempty"`
	Status      SiteStatus  `json:"status"`
	Temperature float64     `json:"temperature"`
	Uptime      float64     `json:"uptime"`
	Load        float64     `json:"load"`
	Capacity    string      `json:"capacity"`
	Servers     int         `json:"servers"`
	Coordinates Coordinates `json:"coordinates"`
	DistanceKm  float64     `json:"distance_km"`
	Selected    bool        `json:"selected"`
}

// Recommendation is a suggested operator action
type Recommendation struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Action      string `json:"action"`
	Estimated   string `json:"estimated"`
}

// PowerAlert warns about remaining backup runtime
type PowerAlert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// EnergyShare is one slice of the energy mix
type EnergyShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// EmissionSource is one bar of the carbon breakdown
type EmissionSource struct {
	Source    string  `json:"source"`
	Emissions float64 `json:"emissions"`
	Color     string  `json:"color"`
}

// Rack is one server rack of the facility view
type Rack struct {
	Index       int     `json:"index"`
	X           float64 `json:"x"`
	Z           float64 `json:"z"`
	Overheating bool    `json:"overheating"`
}

// CoolingUnit is one perimeter cooling unit of the facility view
type CoolingUnit struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Active bool    `json:"active"`
}

// FacilityStatus describes the 3D facility panel
type FacilityStatus struct {
	Racks         []Rack        `json:"racks"`
	CoolingUnits  []CoolingUnit `json:"cooling_units"`
	Servers       string        `json:"servers"`
	Cooling       string        `json:"cooling"`
	Power         string        `json:"power"`
	Emergency     string        `json:"emergency"`
	EmergencyNote string        `json:"emergency_note"`
}

// Badge is a presentation severity band
type Badge string

const (
	BadgeOutline     Badge = "outline"
	BadgeSecondary   Badge = "secondary"
	BadgeDestructive Badge = "destructive"
)

// Severity holds the badge bands of the headline metrics
type Severity struct {
	HeatRisk      Badge `json:"heat_risk"`
	Uptime        Badge `json:"uptime"`
	GridStability Badge `json:"grid_stability"`
	PowerDuration Badge `json:"power_duration"`
}

// DashboardData aggregates everything a dashboard view renders
type DashboardData struct {
	Location        LocationProfile  `json:"location"`
	Input           SimulationInput  `json:"input"`
	Metrics         DerivedMetrics   `json:"metrics"`
	Severity        Severity         `json:"severity"`
	EnergyMix       []EnergyShare    `json:"energy_mix"`
	CarbonBreakdown []EmissionSource `json:"carbon_breakdown"`
	EstimatedPUE    float64          `json:"estimated_pue"`
	Facility        FacilityStatus   `json:"facility"`
	DataCenters     []DataCenter     `json:"data_centers"`
	Recommendations []Recommendation `json:"recommendations"`
	PowerAlerts     []PowerAlert     `json:"power_alerts"`
	Timestamp       time.Time        `json:"timestamp"`
}
